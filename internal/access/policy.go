// Package access gates protected content behind a required role.
//
// A Policy decides whether an AuthState may see protected content. Two
// strategies enforce that decision at different points of the pipeline:
// RedirectOnDeny aborts a server render with a redirect, and
// RenderFallbackOnDeny swaps protected children for a fallback on the client.
package access

import "hirelink/internal/model"

// AuthState is the observable authentication state of a client.
type AuthState struct {
	IsAuthenticated bool
	IsLoading       bool
	// UserRole is empty when no user is signed in.
	UserRole model.Role
}

// Outcome is the logical state a gate resolves to.
type Outcome int

const (
	// Resolving means the auth state is still loading; nothing may render.
	Resolving Outcome = iota
	Authorized
	Unauthorized
)

func (o Outcome) String() string {
	switch o {
	case Resolving:
		return "resolving"
	case Authorized:
		return "authorized"
	case Unauthorized:
		return "unauthorized"
	}
	return "unknown"
}

// Reason explains why protected content was withheld.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonPending
	ReasonUnauthenticated
	ReasonRoleMismatch
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonPending:
		return "resolution_pending"
	case ReasonUnauthenticated:
		return "unauthenticated"
	case ReasonRoleMismatch:
		return "role_mismatch"
	}
	return "unknown"
}

// Decision is the result of evaluating a Policy against an AuthState.
type Decision struct {
	Outcome Outcome
	Reason  Reason
}

// Allowed reports whether protected content may be shown.
func (d Decision) Allowed() bool { return d.Outcome == Authorized }

// AccessPolicy is implemented by every gating strategy.
type AccessPolicy interface {
	Evaluate(state AuthState) Decision
}

// Policy requires an authenticated user and, when Required is set, that the
// user holds exactly that role.
type Policy struct {
	Required model.Role
}

var _ AccessPolicy = Policy{}

// RoleSatisfies is the single role comparison used by every gate. Roles are
// compared by strict equality; there is no hierarchy.
func RoleSatisfies(userRole, required model.Role) bool {
	return required == "" || userRole == required
}

// Evaluate resolves state into a Decision.
func (p Policy) Evaluate(state AuthState) Decision {
	switch {
	case state.IsLoading:
		return Decision{Outcome: Resolving, Reason: ReasonPending}
	case !state.IsAuthenticated:
		return Decision{Outcome: Unauthorized, Reason: ReasonUnauthenticated}
	case !RoleSatisfies(state.UserRole, p.Required):
		return Decision{Outcome: Unauthorized, Reason: ReasonRoleMismatch}
	default:
		return Decision{Outcome: Authorized, Reason: ReasonNone}
	}
}
