package main

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"hirelink/internal/access"
	"hirelink/internal/model"
)

// SessionSource is the part of authstate.Store the views read.
type SessionSource interface {
	access.Observable
	Session() *model.Session
}

func text(fn func(w io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return fn(w)
	})
}

func welcome(src SessionSource, lines ...string) templ.Component {
	return text(func(w io.Writer) error {
		sess := src.Session()
		if sess == nil {
			return nil
		}
		if _, err := fmt.Fprintf(w, "Welcome, %s\n", sess.Email); err != nil {
			return err
		}
		for _, l := range lines {
			if _, err := fmt.Fprintln(w, l); err != nil {
				return err
			}
		}
		return nil
	})
}

// dashboard is the role-gated home screen: employers and talent each see
// their own view, signed-out users see the sign-in hint and other roles see
// nothing.
type dashboard struct {
	signedIn *access.RenderFallbackOnDeny
	employer *access.RenderFallbackOnDeny
	talent   *access.RenderFallbackOnDeny
}

func newDashboard(src SessionSource, indicator access.Indicator, server string) *dashboard {
	d := &dashboard{
		employer: access.NewRenderGuard(src, indicator, model.RoleEmployer,
			welcome(src,
				"Role: employer",
				"Browse and search talent at "+server+"/employer",
			), nil),
		talent: access.NewRenderGuard(src, indicator, model.RoleTalent,
			welcome(src,
				"Role: talent",
				"Upload a resume with `portal extract <file>`",
				"Draft a bio with `portal bio --resume-file <file>`",
			), nil),
	}
	d.signedIn = access.NewRenderGuard(src, indicator, "",
		templ.Join(d.employer, d.talent),
		text(func(w io.Writer) error {
			_, err := fmt.Fprintln(w, "You are not signed in. Run `portal login --email <email>`.")
			return err
		}))
	return d
}

// Render writes whatever the current auth state allows.
func (d *dashboard) Render(ctx context.Context, w io.Writer) error {
	return d.signedIn.Render(ctx, w)
}
