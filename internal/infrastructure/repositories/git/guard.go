package git

import "sync/atomic"

// OperationGuard enforces at most one active operation per repository
// instance. Acquisition is non-blocking: a losing caller is rejected
// immediately, never queued.
type OperationGuard struct {
	busy atomic.Bool
}

// TryAcquire attempts to mark the guard busy. It returns false without
// blocking when an operation already holds it.
func (g *OperationGuard) TryAcquire() bool {
	return g.busy.CompareAndSwap(false, true)
}

// Release clears the busy flag.
func (g *OperationGuard) Release() {
	g.busy.Store(false)
}

// Busy reports whether an operation currently holds the guard.
func (g *OperationGuard) Busy() bool {
	return g.busy.Load()
}
