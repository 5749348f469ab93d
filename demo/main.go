// Package main fits ARCH and GARCH models to a return series described by a
// YAML config and reports volatility forecasts.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/sartorproj/govolatility/autogarch"
	"github.com/sartorproj/govolatility/forecaster"
	"github.com/sartorproj/govolatility/garch"
	"github.com/sartorproj/govolatility/stats"
	"github.com/sartorproj/govolatility/timeseries"
	"github.com/sartorproj/govolatility/volatility"
)

// ModelResult holds one fitted model's results for JSON export.
type ModelResult struct {
	Name            string             `json:"name"`
	Params          forecaster.Params  `json:"params,omitempty"`
	AIC             float64            `json:"aic"`
	AICc            float64            `json:"aicc"`
	BIC             float64            `json:"bic"`
	LogLik          float64            `json:"loglik"`
	Persistence     float64            `json:"persistence"`
	Mean            []float64          `json:"mean"`
	Variance        []float64          `json:"variance"`
	Intervals       []IntervalResult   `json:"intervals"`
	Score           *Score             `json:"score,omitempty"`
	ModelsEvaluated int                `json:"models_evaluated,omitempty"`
	Tags            forecaster.Tags    `json:"tags"`
	Diagnostics     map[string]float64 `json:"diagnostics,omitempty"`
}

// IntervalResult is one prediction band.
type IntervalResult struct {
	Coverage float64   `json:"coverage"`
	Lower    []float64 `json:"lower"`
	Upper    []float64 `json:"upper"`
}

// Score compares forecast variances with realized squared deviations on the
// held-out tail.
type Score struct {
	RMSE  float64 `json:"rmse"`
	MAE   float64 `json:"mae"`
	QLIKE float64 `json:"qlike"`
	N     int     `json:"n"`
}

// Output holds all results.
type Output struct {
	Series      string             `json:"series"`
	NObs        int                `json:"n_obs"`
	TrainSize   int                `json:"train_size"`
	TestSize    int                `json:"test_size"`
	Diagnostics map[string]float64 `json:"diagnostics"`
	Clustering  []int              `json:"clustering_lags"` // Significant lags of the squared-return ACF
	Models      []ModelResult      `json:"models"`
}

// estimator is the surface shared by volatility.ARCH and volatility.GARCH.
type estimator interface {
	forecaster.Estimator
	Fit(y *timeseries.Series, X [][]float64) error
	PredictInterval(h int, X [][]float64, coverage []float64) (*forecaster.Forecast, error)
	Model() forecaster.Model
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: demo [flags]\n\nFit ARCH/GARCH models described by a YAML config.\n\nFlags:\n")
		flag.PrintDefaults()
	}

	configPath := flag.String("config", "demo.yaml", "path to configuration file")
	envFile := flag.String("env", ".env", "path to .env file (ignored if missing)")
	flag.Parse()

	if err := loadDotEnv(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := runFile(*configPath, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func runFile(path string, w io.Writer) error {
	cfg, err := LoadConfig(path)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := cfg.Log.NewLogger(os.Stderr)
	if err != nil {
		return err
	}

	out, err := run(cfg, logger, w)
	if err != nil {
		return err
	}

	if cfg.Output == "" {
		return nil
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("demo: encode results: %w", err)
	}
	if err := os.WriteFile(cfg.Output, data, 0o644); err != nil {
		return fmt.Errorf("demo: write results: %w", err)
	}
	fmt.Fprintf(w, "Exported %d models to %s\n", len(out.Models), cfg.Output)
	return nil
}

// run executes the configured analysis and prints a report to w.
func run(cfg Config, logger *slog.Logger, w io.Writer) (*Output, error) {
	series, X, err := loadData(cfg.Data)
	if err != nil {
		return nil, err
	}

	n := series.Len()
	trainSize := n - cfg.TestSize
	if trainSize < 20 {
		return nil, fmt.Errorf("demo: %d observations leave too few for training after test_size %d", n, cfg.TestSize)
	}
	train := series.Slice(0, trainSize)
	test := series.Slice(trainSize, n)

	var trainX, futureX [][]float64
	if X != nil {
		trainX = X[:trainSize]
		futureX = X[trainSize : trainSize+cfg.Horizon]
	}

	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintf(w, "%s: %d observations (%.4f to %.4f), train %d, test %d\n",
		series.Name, n, series.Min(), series.Max(), trainSize, cfg.TestSize)
	fmt.Fprintln(w, strings.Repeat("=", 80))

	out := &Output{
		Series:      series.Name,
		NObs:        n,
		TrainSize:   trainSize,
		TestSize:    cfg.TestSize,
		Models:      []ModelResult{},
	}
	out.Diagnostics, out.Clustering = diagnostics(train)
	if p, ok := out.Diagnostics["mcleod_li_pvalue"]; ok {
		fmt.Fprintf(w, "   McLeod-Li p-value: %.4f\n", p)
	}
	if p, ok := out.Diagnostics["arch_lm_pvalue"]; ok {
		fmt.Fprintf(w, "   ARCH-LM p-value:   %.4f\n", p)
	}
	if len(out.Clustering) > 0 {
		fmt.Fprintf(w, "   Clustering lags:   %v\n", out.Clustering)
	}

	for i, mc := range cfg.Models {
		est, err := newEstimator(mc, logger)
		if err != nil {
			return nil, fmt.Errorf("demo: models[%d]: %w", i, err)
		}
		res, err := fitAndForecast(est, train, trainX, futureX, cfg)
		if err != nil {
			logger.Warn("model failed", "estimator", est.Name(), "error", err)
			fmt.Fprintf(w, "   %s: %v\n", est.Name(), err)
			continue
		}
		res.Params = mc.Params
		res.Score = score(test.Values, res.Mean, res.Variance)
		printModel(w, res)
		out.Models = append(out.Models, *res)
	}

	if cfg.Auto != nil {
		res, err := autoSelect(cfg, train, trainX, futureX, logger)
		if err != nil {
			logger.Warn("order selection failed", "error", err)
			fmt.Fprintf(w, "   Auto-GARCH: %v\n", err)
		} else {
			res.Score = score(test.Values, res.Mean, res.Variance)
			printModel(w, res)
			out.Models = append(out.Models, *res)
		}
	}

	if len(out.Models) == 0 {
		return nil, errors.New("demo: no model could be fitted")
	}
	return out, nil
}

// loadData loads the configured series and applies the transform, scale and
// observation cap. Exogenous rows stay aligned with the transformed values.
func loadData(dc DataConfig) (*timeseries.Series, [][]float64, error) {
	opts := timeseries.DefaultCSVOptions()
	opts.ValueColumn = dc.ValueColumn
	opts.DateColumn = dc.DateColumn
	opts.IDColumn = dc.IDColumn
	opts.IDFilter = dc.IDFilter
	opts.ExogColumns = dc.ExogColumns

	series, X, err := timeseries.LoadCSV(dc.File, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("demo: load %s: %w", dc.File, err)
	}

	switch dc.Transform {
	case "returns":
		series = series.Returns()
		if X != nil {
			X = X[1:]
		}
	case "log_returns":
		series, err = series.LogReturns()
		if err != nil {
			return nil, nil, fmt.Errorf("demo: log returns: %w", err)
		}
		if X != nil {
			X = X[1:]
		}
	}
	if series.HasNaN() {
		return nil, nil, fmt.Errorf("demo: transformed series %q contains NaN", series.Name)
	}

	if dc.MaxObs > 0 && series.Len() > dc.MaxObs {
		start := series.Len() - dc.MaxObs
		series = series.Slice(start, series.Len())
		if X != nil {
			X = X[start:]
		}
	}
	if dc.Scale != 1 {
		series = series.Scale(dc.Scale)
	}

	return series, X, nil
}

// clusteringLags is how many lags of the squared-return ACF are inspected.
const clusteringLags = 20

// diagnostics tests the demeaned training returns for ARCH effects and
// returns the lags at which squared returns stay autocorrelated.
func diagnostics(train *timeseries.Series) (map[string]float64, []int) {
	d := make(map[string]float64)
	var lags []int
	if sq := stats.SquaredACF(train, clusteringLags); sq != nil {
		if len(sq.Values) > 1 {
			d["squared_acf_lag1"] = sq.Values[1]
		}
		d["squared_acf_bound"] = sq.ConfBounds
		d["squared_acf_significant"] = float64(len(sq.Significant))
		lags = sq.Significant
	}
	demeaned := train.Demean()
	if ml := stats.McLeodLi(demeaned, 10); ml != nil {
		d["mcleod_li_stat"] = ml.Statistic
		d["mcleod_li_pvalue"] = ml.PValue
	}
	if lm := stats.ARCHLM(demeaned.Values, 5); lm != nil {
		d["arch_lm_stat"] = lm.Statistic
		d["arch_lm_pvalue"] = lm.PValue
	}
	return d, lags
}

func newEstimator(mc ModelConfig, logger *slog.Logger) (estimator, error) {
	switch mc.Kind {
	case "arch":
		a, err := volatility.NewARCHFromParams(mc.Params, volatility.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		return a, nil
	case "garch":
		g, err := volatility.NewGARCHFromParams(mc.Params, volatility.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, fmt.Errorf("unknown model kind %q", mc.Kind)
	}
}

// fitAndForecast fits est on the training data and forecasts the horizon.
func fitAndForecast(est estimator, train *timeseries.Series, trainX, futureX [][]float64, cfg Config) (*ModelResult, error) {
	if err := est.Fit(train, trainX); err != nil {
		return nil, err
	}
	f, err := est.PredictInterval(cfg.Horizon, futureX, cfg.Coverage)
	if err != nil {
		return nil, err
	}
	res := newModelResult(est.Name(), f, cfg.Coverage)
	res.Tags = est.Tags()
	fillFit(res, est.Model())
	return res, nil
}

func autoSelect(cfg Config, train *timeseries.Series, trainX, futureX [][]float64, logger *slog.Logger) (*ModelResult, error) {
	ac := autogarch.DefaultConfig()
	if cfg.Auto.MaxP > 0 {
		ac.MaxP = cfg.Auto.MaxP
	}
	if cfg.Auto.MaxQ > 0 {
		ac.MaxQ = cfg.Auto.MaxQ
	}
	if cfg.Auto.Criterion != "" {
		ac.Criterion = cfg.Auto.Criterion
	}
	if cfg.Auto.Stepwise != nil {
		ac.Stepwise = *cfg.Auto.Stepwise
	}
	ac.Approximation = cfg.Auto.Approximation
	ac.Logger = logger

	sel, err := autogarch.Select(train, trainX, ac)
	if err != nil {
		return nil, err
	}
	f, err := sel.PredictInterval(cfg.Horizon, futureX, cfg.Coverage)
	if err != nil {
		return nil, err
	}

	res := newModelResult("Auto-"+sel.Estimator.Name(), f, cfg.Coverage)
	res.Params = sel.Estimator.Params()
	res.Tags = sel.Estimator.Tags()
	res.ModelsEvaluated = sel.ModelsEvaluated
	fillFit(res, sel.Model())
	return res, nil
}

func newModelResult(name string, f *forecaster.Forecast, coverage []float64) *ModelResult {
	res := &ModelResult{
		Name:     name,
		Mean:     f.Mean,
		Variance: f.Variance,
	}
	for _, c := range coverage {
		if iv, ok := f.Interval(c); ok {
			res.Intervals = append(res.Intervals, IntervalResult{Coverage: c, Lower: iv.Lower, Upper: iv.Upper})
		}
	}
	return res
}

// fillFit copies the fit statistics from a garch backend model.
func fillFit(res *ModelResult, m forecaster.Model) {
	gm, ok := m.(*garch.Model)
	if !ok {
		return
	}
	sm := gm.Summary()
	if sm == nil {
		return
	}
	res.AIC, res.AICc, res.BIC, res.LogLik = sm.AIC, sm.AICc, sm.BIC, sm.LogLik
	res.Persistence = sm.Persistence
	res.Diagnostics = make(map[string]float64)
	if sm.LjungBox != nil {
		res.Diagnostics["ljung_box_pvalue"] = sm.LjungBox.PValue
	}
	if sm.McLeodLi != nil {
		res.Diagnostics["mcleod_li_pvalue"] = sm.McLeodLi.PValue
	}
	if sm.ARCHLM != nil {
		res.Diagnostics["arch_lm_pvalue"] = sm.ARCHLM.PValue
	}
}

// score computes variance forecast accuracy against squared deviations of
// the realized values from the forecast mean.
func score(actual, mean, variance []float64) *Score {
	n := min(len(actual), len(mean), len(variance))
	if n == 0 {
		return nil
	}
	s := &Score{N: n}
	for i := 0; i < n; i++ {
		d := actual[i] - mean[i]
		realized := d * d
		e := realized - variance[i]
		s.RMSE += e * e
		s.MAE += math.Abs(e)
		s.QLIKE += math.Log(variance[i]) + realized/variance[i]
	}
	s.RMSE = math.Sqrt(s.RMSE / float64(n))
	s.MAE /= float64(n)
	s.QLIKE /= float64(n)
	return s
}

func printModel(w io.Writer, res *ModelResult) {
	fmt.Fprintf(w, "   %s: AIC=%.2f BIC=%.2f persistence=%.4f", res.Name, res.AIC, res.BIC, res.Persistence)
	if res.Score != nil {
		fmt.Fprintf(w, " QLIKE=%.4f", res.Score.QLIKE)
	}
	if res.ModelsEvaluated > 0 {
		fmt.Fprintf(w, " (%d models)", res.ModelsEvaluated)
	}
	fmt.Fprintln(w)
	if len(res.Variance) > 0 {
		fmt.Fprintf(w, "      1-step volatility: %.4f\n", math.Sqrt(res.Variance[0]))
	}
}
