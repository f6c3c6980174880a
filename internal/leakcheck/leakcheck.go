// Package leakcheck counts live resources so tests can tell a release
// that happened from one that was skipped.
package leakcheck

import (
	"fmt"

	"go.uber.org/atomic"
)

// Tracker counts acquisitions and releases.
type Tracker struct {
	live     atomic.Int64
	acquired atomic.Int64
	released atomic.Int64
}

// Resource is a value that must be released exactly once.
type Resource struct {
	ID int
	t  *Tracker
}

// Acquire returns a new live Resource.
func (t *Tracker) Acquire(id int) Resource {
	t.live.Inc()
	t.acquired.Inc()
	return Resource{ID: id, t: t}
}

// Release returns r to its tracker. Releasing the zero Resource is a no-op.
func (r *Resource) Release() {
	if r.t == nil {
		return
	}
	r.t.live.Dec()
	r.t.released.Inc()
}

// Live returns the number of acquired but unreleased resources.
func (t *Tracker) Live() int64 { return t.live.Load() }

// Released returns the total number of releases.
func (t *Tracker) Released() int64 { return t.released.Load() }

// Check returns an error describing any resources still live.
func (t *Tracker) Check() error {
	n := t.live.Load()
	switch {
	case n > 0:
		return fmt.Errorf("leakcheck: %d of %d resources never released", n, t.acquired.Load())
	case n < 0:
		return fmt.Errorf("leakcheck: %d more releases than acquisitions", -n)
	}
	return nil
}
