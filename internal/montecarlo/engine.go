package montecarlo

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"github.com/FlyinPancake/tauri-presentation/internal/logging"
)

// DefaultChunkSize is the number of samples per chunk when Options leaves it unset.
const DefaultChunkSize = 1_000_000

// SamplingResult is the outcome of one π estimation.
type SamplingResult struct {
	// Estimate is the π estimate, in [0, 4].
	Estimate float64 `json:"pi_estimate"`
	// Iterations echoes the requested sample count.
	Iterations uint64 `json:"iterations"`
	// ElapsedMs is the wall time of sampling and reduction in milliseconds.
	ElapsedMs float64 `json:"elapsed_ms"`
	// Error is |Estimate - π|.
	Error float64 `json:"error"`
}

// Options configures an Engine.
type Options struct {
	// ChunkSize is the number of samples per chunk (DefaultChunkSize if 0).
	ChunkSize uint64
	// Workers bounds the worker pool; 0 means unbounded.
	Workers int
	// Seed fixes the root seed. 0 draws a fresh root seed per call.
	Seed uint64
}

// Engine estimates π by sampling the quarter circle.
type Engine struct {
	reducer Reducer
	seed    uint64
	logger  logging.Logger
}

// NewEngine creates an Engine. A nil logger discards output.
func NewEngine(opts Options, logger logging.Logger) *Engine {
	if opts.ChunkSize == 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Engine{
		reducer: Reducer{ChunkSize: opts.ChunkSize, Workers: opts.Workers},
		seed:    opts.Seed,
		logger:  logger,
	}
}

// InQuarterCircle draws one point and reports whether it lies inside the
// unit quarter circle.
func InQuarterCircle(g *SampleGenerator) bool {
	x, y := g.Point()
	return x*x+y*y <= 1.0
}

// EstimatePi samples iterations points and returns the resulting estimate.
// Zero iterations yield the sentinel {Estimate: 0, Error: π} instead of NaN.
func (e *Engine) EstimatePi(ctx context.Context, iterations uint64) (SamplingResult, error) {
	start := time.Now()

	if iterations == 0 {
		return SamplingResult{
			Estimate:   0,
			Iterations: 0,
			ElapsedMs:  millis(time.Since(start)),
			Error:      math.Pi,
		}, nil
	}

	seed := e.seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	plan := PlanChunks(iterations, e.reducer.ChunkSize)
	e.logger.Debug("monte carlo run planned",
		logging.Uint64("iterations", iterations),
		logging.Uint64("chunks", plan.FullChunks),
		logging.Uint64("remainder", plan.Remainder),
		logging.Int("workers", e.reducer.Workers))

	inside, err := e.reducer.Run(ctx, iterations, seed, InQuarterCircle)
	if err != nil {
		return SamplingResult{}, err
	}
	estimate := 4.0 * float64(inside) / float64(iterations)
	elapsed := time.Since(start)

	return SamplingResult{
		Estimate:   estimate,
		Iterations: iterations,
		ElapsedMs:  millis(elapsed),
		Error:      math.Abs(estimate - math.Pi),
	}, nil
}

func millis(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}
