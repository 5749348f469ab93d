// Package autogarch implements automatic GARCH order selection.
//
// Candidates GARCH(p, q) with 0 <= p <= MaxP and 1 <= q <= MaxQ are fitted
// through volatility.GARCH and ranked by an information criterion.
//
// # Basic Usage
//
//	result, err := autogarch.Select(returns, nil, autogarch.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Best model: GARCH(%d,%d), AIC %.2f, %d models evaluated\n",
//	    result.P, result.Q, result.AIC, result.ModelsEvaluated)
//
//	f, _ := result.PredictInterval(10, nil, []float64{0.95})
//
// # Search Methods
//
//   - Stepwise (default): starts from a handful of low orders and walks to
//     neighboring orders while the criterion improves
//   - Grid: exhaustive search over all combinations (set Stepwise=false)
package autogarch
