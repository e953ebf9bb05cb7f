package mock

import (
	"sync/atomic"

	"github.com/viant/sessionauth/widget"
)

// Locator reports the capability as present from the After-th lookup on.
// After 0 or 1 means present immediately; a negative After means never.
type Locator struct {
	Capability widget.Capability
	After      int
	// OnLookup, when set, runs on every lookup with its 1-based sequence number.
	OnLookup func(n int)

	lookups atomic.Int32
}

// NewLocator creates a locator for capability present after n lookups.
func NewLocator(capability widget.Capability, n int) *Locator {
	return &Locator{Capability: capability, After: n}
}

func (l *Locator) Lookup() (widget.Capability, bool) {
	n := int(l.lookups.Add(1))
	if l.OnLookup != nil {
		l.OnLookup(n)
	}
	if l.After < 0 || n < l.After {
		return nil, false
	}
	return l.Capability, true
}

// Lookups returns the number of lookups so far.
func (l *Locator) Lookups() int {
	return int(l.lookups.Load())
}
