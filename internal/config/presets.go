package config

// Presets are named run configurations grouped by model.
var Presets = map[string]map[string]*Config{
	"pendulum": {
		"small": {
			Model: "pendulum", Method: "rk4", Dt: 0.01, Duration: 20.0,
			InitState: []float64{0.2, 0.0},
		},
		"large": {
			Model: "pendulum", Method: "rk4", Dt: 0.01, Duration: 20.0,
			InitState: []float64{2.5, 0.0},
		},
		"spinning": {
			Model: "pendulum", Method: "dopri5", Adaptive: true, Tolerance: 1e-8,
			Dt: 0.05, Duration: 30.0,
			InitState: []float64{0.1, 8.0},
		},
	},
	"lorenz": {
		"butterfly": {
			Model: "lorenz", Method: "dopri5", Adaptive: true, Tolerance: 1e-9,
			Dt: 0.01, Duration: 40.0,
			InitState: []float64{1, 1, 1},
		},
		"coarse": {
			Model: "lorenz", Method: "rk4", Dt: 0.005, Duration: 40.0,
			InitState: []float64{1, 1, 1},
		},
	},
	"vanderpol": {
		"limit-cycle": {
			Model: "vanderpol", Method: "fehlberg45", Adaptive: true, Tolerance: 1e-7,
			Dt: 0.05, Duration: 30.0,
			InitState: []float64{2, 0},
		},
	},
	"kepler": {
		"orbit": {
			Model: "kepler", Method: "dopri5", Adaptive: true, Tolerance: 1e-10,
			Dt: 0.1, Duration: 20.0,
			InitState: []float64{1, 0, 0, 1.2},
		},
	},
	"decay": {
		"reference": {
			Model: "decay", Method: "euler", Dt: 0.001, Duration: 5.0,
			InitState: []float64{1},
		},
	},
}

// LookupPreset resolves model/name to a preset, or nil when absent.
func LookupPreset(model, name string) *Config {
	group, ok := Presets[model]
	if !ok {
		return nil
	}
	return group[name]
}
