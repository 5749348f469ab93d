// Package timeseries provides time series data structures and utilities.
//
// This package includes the Series type for representing time series data,
// along with functions for loading prices and turning them into returns.
//
// # Creating a Series
//
//	values := []float64{100, 102, 105, 103, 108, 110}
//	series := timeseries.New(values)
//
// # Loading from CSV
//
//	// Load with filtering
//	series, err := timeseries.LoadCSVFiltered(
//	    "prices.csv",
//	    "ticker", "SPX", // filter column and value
//	    "close",         // value column
//	)
//
//	// Load a value column with exogenous regressors
//	opts := timeseries.DefaultCSVOptions()
//	opts.ValueColumn = "ret"
//	opts.ExogColumns = []string{"vix", "volume"}
//	series, X, err := timeseries.LoadCSV("data.csv", opts)
//
// Rows with a missing value or regressor are skipped, so X stays aligned
// with series.Values.
//
// # Returns
//
//	simple := prices.Returns()        // (x_t - x_{t-1}) / x_{t-1}
//	logret, err := prices.LogReturns() // log(x_t / x_{t-1}), prices must be positive
//	pct := logret.Scale(100)           // percent returns
//	centered := pct.Demean()
//
// # Basic Statistics
//
//	mean := series.Mean()
//	std := series.Std()
//	min := series.Min()
//	max := series.Max()
//
// # Slicing
//
//	train := series.Slice(0, 500)
//	copy := series.Copy()
package timeseries
