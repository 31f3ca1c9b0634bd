package model

import (
	"fmt"
	"strings"
)

// Role identifies the category of a user. The zero value means no role.
type Role string

const (
	RoleEmployer Role = "EMPLOYER"
	RoleTalent   Role = "TALENT"
)

// Roles lists every known role.
func Roles() []Role {
	return []Role{RoleEmployer, RoleTalent}
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleEmployer, RoleTalent:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// ParseRole converts user input such as "talent" into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}
