package access

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"hirelink/internal/model"
)

const (
	DefaultSignInPath       = "/auth/signin"
	DefaultUnauthorizedPath = "/unauthorized"
)

// SessionResolver resolves the session attached to a request.
type SessionResolver interface {
	ResolveSession(ctx context.Context, r *http.Request) (*model.Session, error)
}

// Redirect aborts a render and sends the browser to Location.
type Redirect struct {
	Location string
	Reason   Reason
}

func (r *Redirect) Error() string {
	return "access denied (" + r.Reason.String() + "): redirect to " + r.Location
}

// Paths are the redirect destinations for denied requests. The router serves
// the sign-in and unauthorized pages at the same paths.
type Paths struct {
	SignIn       string
	Unauthorized string
}

// WithDefaults fills empty paths with DefaultSignInPath and
// DefaultUnauthorizedPath.
func (p Paths) WithDefaults() Paths {
	if p.SignIn == "" {
		p.SignIn = DefaultSignInPath
	}
	if p.Unauthorized == "" {
		p.Unauthorized = DefaultUnauthorizedPath
	}
	return p
}

// RedirectOnDeny is the server-side Session Role Check. It resolves the session
// before any content is written and redirects when the policy denies access.
type RedirectOnDeny struct {
	Policy
	resolver SessionResolver
	paths    Paths
	logger   *slog.Logger
}

// NewRedirectOnDeny builds a check requiring role. An empty role only requires
// an authenticated session.
func NewRedirectOnDeny(resolver SessionResolver, role model.Role, paths Paths, logger *slog.Logger) *RedirectOnDeny {
	paths = paths.WithDefaults()
	if logger == nil {
		logger = slog.Default()
	}
	return &RedirectOnDeny{
		Policy:   Policy{Required: role},
		resolver: resolver,
		paths:    paths,
		logger:   logger,
	}
}

// Check returns the session when it satisfies the policy. Otherwise it returns
// a *Redirect error that the caller must return without writing a response.
func (g *RedirectOnDeny) Check(c echo.Context) (*model.Session, error) {
	req := c.Request()
	sess, err := g.resolver.ResolveSession(req.Context(), req)
	if err != nil {
		g.logger.Debug("session resolution failed",
			slog.String("path", req.URL.Path),
			slog.Any("error", err))
		sess = nil
	}

	state := AuthState{IsAuthenticated: sess != nil}
	if sess != nil {
		state.UserRole = sess.Role
	}

	decision := g.Evaluate(state)
	if decision.Allowed() {
		return sess, nil
	}

	g.logger.Info("access denied",
		slog.String("path", req.URL.Path),
		slog.String("required_role", g.Required.String()),
		slog.String("reason", decision.Reason.String()))
	return nil, &Redirect{Location: g.location(req, decision.Reason), Reason: decision.Reason}
}

// Middleware applies Check to every route of a group and stores the session
// for SessionFrom.
func (g *RedirectOnDeny) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := g.Check(c)
			if err != nil {
				if WriteRedirect(c, err) {
					return nil
				}
				return err
			}
			SetSession(c, sess)
			return next(c)
		}
	}
}

func (g *RedirectOnDeny) location(r *http.Request, reason Reason) string {
	if reason == ReasonRoleMismatch {
		return g.paths.Unauthorized
	}
	back := safeRedirectPath(r.URL.RequestURI())
	if back == "" || back == "/" || back == g.paths.SignIn {
		return g.paths.SignIn
	}
	return g.paths.SignIn + "?redirect_uri=" + url.QueryEscape(back)
}

// WriteRedirect issues the redirect carried by err, if any. It reports whether
// err was a *Redirect.
func WriteRedirect(c echo.Context, err error) bool {
	var redirect *Redirect
	if !errors.As(err, &redirect) {
		return false
	}
	if c.Response().Committed {
		return true
	}
	_ = c.Redirect(http.StatusSeeOther, redirect.Location)
	return true
}

// SafeRedirectPath returns p if it is a same-origin absolute path, else "".
func SafeRedirectPath(p string) string {
	return safeRedirectPath(p)
}

func safeRedirectPath(p string) string {
	if p == "" || !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return ""
	}
	u, err := url.Parse(p)
	if err != nil || u.IsAbs() || u.Host != "" {
		return ""
	}
	return p
}
