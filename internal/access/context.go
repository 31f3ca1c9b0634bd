package access

import (
	"github.com/labstack/echo/v4"

	"hirelink/internal/model"
)

// SessionContextKey is the echo context key holding the *model.Session. The
// JWT middleware of the API group stores its session under the same key.
const SessionContextKey = "access.session"

// SetSession stores a resolved session on the echo context.
func SetSession(c echo.Context, sess *model.Session) {
	c.Set(SessionContextKey, sess)
}

// SessionFrom returns the session stored by RedirectOnDeny.Middleware or the
// API JWT middleware.
func SessionFrom(c echo.Context) (*model.Session, bool) {
	sess, ok := c.Get(SessionContextKey).(*model.Session)
	return sess, ok && sess != nil
}
