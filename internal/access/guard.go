package access

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"hirelink/internal/model"
)

// Indicator is a process-wide loading indicator. Start and Stop must be
// idempotent.
type Indicator interface {
	Start()
	Stop()
}

// StateSource exposes the current auth state.
type StateSource interface {
	State() AuthState
}

// Observable is a StateSource that notifies subscribers of every change.
type Observable interface {
	StateSource
	Subscribe(fn func(AuthState)) (unsubscribe func())
}

// RenderFallbackOnDeny is the client-side Render Guard. It renders Children
// when the policy allows, Fallback (or nothing) when it denies, and nothing at
// all while the auth state is loading.
type RenderFallbackOnDeny struct {
	Policy
	Children templ.Component
	// Fallback is optional.
	Fallback templ.Component

	source    StateSource
	indicator Indicator
}

var (
	_ AccessPolicy    = (*RenderFallbackOnDeny)(nil)
	_ templ.Component = (*RenderFallbackOnDeny)(nil)
)

// NewRenderGuard builds a guard over source. indicator may be nil.
func NewRenderGuard(source StateSource, indicator Indicator, role model.Role, children, fallback templ.Component) *RenderFallbackOnDeny {
	return &RenderFallbackOnDeny{
		Policy:    Policy{Required: role},
		Children:  children,
		Fallback:  fallback,
		source:    source,
		indicator: indicator,
	}
}

// Resolve evaluates state, forwards the loading signal to the indicator and
// returns the component to show. A nil component means render nothing.
func (g *RenderFallbackOnDeny) Resolve(state AuthState) (Decision, templ.Component) {
	decision := g.Evaluate(state)
	g.signal(decision)

	switch decision.Outcome {
	case Authorized:
		return decision, g.Children
	case Unauthorized:
		return decision, g.Fallback
	default:
		return decision, nil
	}
}

// Render writes the component selected for the source's current state.
func (g *RenderFallbackOnDeny) Render(ctx context.Context, w io.Writer) error {
	var state AuthState
	if g.source != nil {
		state = g.source.State()
	} else {
		state = AuthState{IsLoading: true}
	}
	_, comp := g.Resolve(state)
	if comp == nil {
		return nil
	}
	return comp.Render(ctx, w)
}

// Bind re-evaluates the guard on every change of src and calls redraw with the
// new decision. It evaluates once immediately. The returned func unsubscribes.
// Bind does not change the source Render reads, which is fixed by
// NewRenderGuard.
func (g *RenderFallbackOnDeny) Bind(src Observable, redraw func(Decision)) func() {
	update := func(state AuthState) {
		decision, _ := g.Resolve(state)
		if redraw != nil {
			redraw(decision)
		}
	}
	unsubscribe := src.Subscribe(update)
	update(src.State())
	return unsubscribe
}

func (g *RenderFallbackOnDeny) signal(d Decision) {
	if g.indicator == nil {
		return
	}
	if d.Outcome == Resolving {
		g.indicator.Start()
		return
	}
	g.indicator.Stop()
}
