package handler

import (
	"errors"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"hirelink/internal/access"
	apperrors "hirelink/internal/errors"
	"hirelink/internal/model"
	"hirelink/internal/view"
)

// render writes a full HTML page.
func render(c echo.Context, status int, title string, body templ.Component) error {
	return renderWith(c, view.SessionInfo{}, status, title, body)
}

// renderWith is render with page chrome settings in info. The session fields
// are taken from c.
func renderWith(c echo.Context, info view.SessionInfo, status int, title string, body templ.Component) error {
	if sess, ok := access.SessionFrom(c); ok {
		info.Email, info.Name = sess.Email, sess.Name
	}
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)
	ctx := templ.WithChildren(c.Request().Context(), body)
	return view.Layout(title, info).Render(ctx, c.Response())
}

// domainError converts a service error into an echo error carrying an ErrorResponse.
func domainError(err error) *echo.HTTPError {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}
	mapped := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
}

// currentSession returns the session stored by the auth middleware.
func currentSession(c echo.Context) (*model.Session, error) {
	sess, ok := access.SessionFrom(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
			Error: "authentication required",
			Code:  "UNAUTHENTICATED",
		})
	}
	return sess, nil
}

// homePath is where a signed-in user lands.
func homePath(role model.Role) string {
	switch role {
	case model.RoleEmployer:
		return "/employer"
	case model.RoleTalent:
		return "/talent"
	default:
		return "/"
	}
}
