// Package repositorydoubles provides test doubles (spies, stubs, dummies)
// for the domain repository interfaces. These are hand-crafted
// implementations — no mock frameworks.
package repositorydoubles

import "sync"

// SpyEventDelegate records every notification it receives, preserving the
// overall delivery order in Events ("start" / "progress").
type SpyEventDelegate struct {
	mu sync.Mutex

	startedArguments [][]string
	progressLines    []string
	events           []string
}

func (d *SpyEventDelegate) WillStartTask(arguments []string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.startedArguments = append(d.startedArguments, append([]string(nil), arguments...))
	d.events = append(d.events, "start")
}

func (d *SpyEventDelegate) DidProgressClone(line string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.progressLines = append(d.progressLines, line)
	d.events = append(d.events, "progress")
}

// StartedArguments returns the argument lists of every WillStartTask call.
func (d *SpyEventDelegate) StartedArguments() [][]string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([][]string(nil), d.startedArguments...)
}

// ProgressLines returns every progress line in delivery order.
func (d *SpyEventDelegate) ProgressLines() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.progressLines...)
}

// Events returns the notification kinds in delivery order.
func (d *SpyEventDelegate) Events() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.events...)
}

// PanickingDelegate panics on every notification, for verifying that a
// misbehaving delegate never aborts an operation.
type PanickingDelegate struct{}

func (PanickingDelegate) WillStartTask(_ []string) {
	panic("delegate failure on start")
}

func (PanickingDelegate) DidProgressClone(_ string) {
	panic("delegate failure on progress")
}
