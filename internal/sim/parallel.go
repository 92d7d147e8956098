package sim

import (
	"context"
	"sync"
)

// Ensemble runs the same configuration under a range of seeds, one
// independent driver per run, for intrusion-placement statistics.
// Drivers share nothing, so the runs proceed concurrently.
type Ensemble struct {
	opts      Options
	numRuns   int
	seedStart int64
}

func NewEnsemble(opts Options, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{opts: opts, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			opts := e.opts
			opts.Seed = e.seedStart + int64(idx)

			d, err := NewDriver(opts)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = d.Run(ctx)
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
