package sim

import (
	"context"
	"sync"

	"github.com/odekit/odekit/internal/ode"
)

// Ensemble runs independent variations of one simulation concurrently.
// Parallelism lives here, above the kernel: each run owns its own system
// instance and controller state.
type Ensemble struct {
	build   func() *Simulator
	numRuns int
	perturb func(run int, y0 ode.Vector) ode.Vector
}

// NewEnsemble builds an ensemble of numRuns runs. build must return a
// fresh Simulator per call; perturb derives each run's initial condition
// from the base one (nil means all runs share it).
func NewEnsemble(build func() *Simulator, numRuns int, perturb func(int, ode.Vector) ode.Vector) *Ensemble {
	return &Ensemble{build: build, numRuns: numRuns, perturb: perturb}
}

func (e *Ensemble) Run(ctx context.Context, y0 ode.Vector, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			start := y0.Clone()
			if e.perturb != nil {
				start = e.perturb(idx, start)
			}
			results[idx], errs[idx] = e.build().Run(ctx, start, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
