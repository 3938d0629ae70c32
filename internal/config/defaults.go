package config

import "runtime"

// Worker resolution chain (highest priority first):
//   1. CLI flag (-workers)
//   2. Environment variable (TAURIDEMO_WORKERS)
//   3. Adaptive hardware estimation (this file)

// ApplyAdaptiveDefaults fills values left at their zero default with a
// hardware-derived estimate. User-specified values are preserved.
func ApplyAdaptiveDefaults(cfg AppConfig) AppConfig {
	if cfg.Workers == 0 {
		cfg.Workers = EstimateOptimalWorkers()
	}
	return cfg
}

// EstimateOptimalWorkers returns the Monte Carlo worker pool size. Sampling is
// CPU bound with no shared state, so one worker per schedulable CPU saturates
// the machine without oversubscription.
func EstimateOptimalWorkers() int {
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		return 1
	}
	return n
}
