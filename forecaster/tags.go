package forecaster

// Tags describe what an estimator supports. They are static per estimator
// type and are read by Adapter to decide which calls to allow.
type Tags struct {
	// IgnoresExogenousX is true when the estimator drops exogenous
	// regressors. Adapter then never forwards X to the backend.
	IgnoresExogenousX bool `yaml:"ignores_exogenous_x" json:"ignores_exogenous_x"`

	// PredInt is true when the backend produces out-of-sample prediction intervals.
	PredInt bool `yaml:"pred_int" json:"pred_int"`

	// PredIntInSample is true when the backend produces in-sample prediction intervals.
	PredIntInSample bool `yaml:"pred_int_insample" json:"pred_int_insample"`
}
