// Package loading provides a process-wide loading indicator.
package loading

import "sync"

// Indicator tracks whether something is loading. Start and Stop are
// idempotent and safe for concurrent use.
type Indicator struct {
	mu       sync.Mutex
	active   bool
	onChange []func(active bool)
}

// New returns an inactive indicator.
func New() *Indicator {
	return &Indicator{}
}

// OnChange registers fn to be called whenever the indicator flips.
func (i *Indicator) OnChange(fn func(active bool)) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.onChange = append(i.onChange, fn)
}

// Start activates the indicator.
func (i *Indicator) Start() { i.set(true) }

// Stop deactivates the indicator.
func (i *Indicator) Stop() { i.set(false) }

// Active reports whether the indicator is on.
func (i *Indicator) Active() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.active
}

func (i *Indicator) set(active bool) {
	i.mu.Lock()
	if i.active == active {
		i.mu.Unlock()
		return
	}
	i.active = active
	hooks := append([]func(bool){}, i.onChange...)
	i.mu.Unlock()

	for _, fn := range hooks {
		fn(active)
	}
}
