// Package view holds the server-rendered pages. The components are written
// in the .templ files next to this one.
package view

//go:generate templ generate

import (
	"fmt"

	"hirelink/internal/access"
)

// SessionInfo is the part of a session shown in the page chrome. SignInPath
// is the target of the sign-in link shown to signed-out visitors.
type SessionInfo struct {
	Email      string
	Name       string
	SignInPath string
}

// SignInData fills the sign-in form. Action defaults to the default sign-in
// path.
type SignInData struct {
	Action      string
	Email       string
	RedirectURI string
	Error       string
}

// TalentPage is the data of the talent dashboard.
type TalentPage struct {
	Email               string
	ResumeText          string
	Bio                 string
	WorkStylePreference string
	IndustryPreference  string
	LocationPreference  string
	Indexed             bool
	Notice              string
}

// TalentCard is one talent shown to employers.
type TalentCard struct {
	Name  string
	Email string
	Bio   string
	// Score is the search similarity; zero outside search results.
	Score float64
}

// EmployerPage is the data of the employer dashboard.
type EmployerPage struct {
	Email  string
	Query  string
	Talent []TalentCard
	Notice string
}

func signInPath(p string) string {
	if p == "" {
		return access.DefaultSignInPath
	}
	return p
}

func matchLabel(score float64) string {
	return fmt.Sprintf("%.0f%% match", score*100)
}
