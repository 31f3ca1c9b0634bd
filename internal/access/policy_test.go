package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hirelink/internal/model"
)

func TestRoleSatisfies(t *testing.T) {
	for _, user := range append(model.Roles(), "") {
		assert.True(t, RoleSatisfies(user, ""), "empty requirement accepts %q", user)
		for _, required := range model.Roles() {
			assert.Equal(t, user == required, RoleSatisfies(user, required), "user=%q required=%q", user, required)
		}
	}
}

func TestPolicy_Evaluate(t *testing.T) {
	tests := []struct {
		name     string
		required model.Role
		state    AuthState
		want     Decision
	}{
		{
			name:     "loading wins over everything",
			required: model.RoleEmployer,
			state:    AuthState{IsAuthenticated: true, IsLoading: true, UserRole: model.RoleEmployer},
			want:     Decision{Outcome: Resolving, Reason: ReasonPending},
		},
		{
			name:     "signed out",
			required: model.RoleEmployer,
			state:    AuthState{},
			want:     Decision{Outcome: Unauthorized, Reason: ReasonUnauthenticated},
		},
		{
			name:     "wrong role",
			required: model.RoleEmployer,
			state:    AuthState{IsAuthenticated: true, UserRole: model.RoleTalent},
			want:     Decision{Outcome: Unauthorized, Reason: ReasonRoleMismatch},
		},
		{
			name:     "matching role",
			required: model.RoleTalent,
			state:    AuthState{IsAuthenticated: true, UserRole: model.RoleTalent},
			want:     Decision{Outcome: Authorized, Reason: ReasonNone},
		},
		{
			name:  "no required role",
			state: AuthState{IsAuthenticated: true},
			want:  Decision{Outcome: Authorized, Reason: ReasonNone},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Policy{Required: tt.required}.Evaluate(tt.state)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Outcome == Authorized, got.Allowed())
		})
	}
}
