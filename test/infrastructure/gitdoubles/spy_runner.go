// Package gitdoubles provides test doubles for the external process runner.
// These are hand-crafted implementations — no mock frameworks.
package gitdoubles

import (
	"context"
	"sync"

	"github.com/rios0rios0/gitshell/internal/infrastructure/repositories/git"
)

// SpyRunner implements git.Runner as a configurable spy. Configure Lines,
// Result and Err for the outcome your test needs, then inspect Specs to
// verify what was executed.
type SpyRunner struct {
	mu    sync.Mutex
	specs []git.Spec

	// Lines are emitted to the sink, in order, before returning.
	Lines []string

	// Result and Err are returned after the lines were emitted.
	Result git.Result
	Err    error

	// BlockUntilCancel makes Run emit its lines and then wait for context
	// cancellation, returning a cancelled result. Useful for exercising
	// the operation guard and Cancel.
	BlockUntilCancel bool

	// Started, when non-nil, receives one value as soon as Run is
	// entered. Buffer it to avoid blocking the operation goroutine.
	Started chan struct{}
}

func (r *SpyRunner) Run(ctx context.Context, spec git.Spec, sink git.LineSink) (git.Result, error) {
	r.mu.Lock()
	r.specs = append(r.specs, spec)
	r.mu.Unlock()

	if r.Started != nil {
		r.Started <- struct{}{}
	}

	for _, line := range r.Lines {
		if sink != nil {
			sink(line)
		}
	}

	if r.BlockUntilCancel {
		<-ctx.Done()
		return git.Result{ExitCode: -1, Cancelled: true}, nil
	}

	return r.Result, r.Err
}

// Specs returns a copy of the recorded invocations.
func (r *SpyRunner) Specs() []git.Spec {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]git.Spec(nil), r.specs...)
}
