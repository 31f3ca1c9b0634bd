package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"hirelink/internal/access"
	"hirelink/internal/model"
)

// SessionCookieName holds the access token for browser sessions.
const SessionCookieName = "hirelink_session"

var (
	// ErrNoSession is returned when the request carries no token.
	ErrNoSession = errors.New("no session")
	// ErrTokenRevoked is returned for tokens revoked by sign out.
	ErrTokenRevoked = errors.New("token revoked")
)

// SessionResolver resolves sessions from the session cookie or a bearer token.
type SessionResolver struct {
	jwt    *JWTService
	tokens TokenStoreInterface
}

var _ access.SessionResolver = (*SessionResolver)(nil)

// NewSessionResolver creates a resolver.
func NewSessionResolver(jwt *JWTService, tokens TokenStoreInterface) *SessionResolver {
	return &SessionResolver{jwt: jwt, tokens: tokens}
}

// ResolveSession implements access.SessionResolver.
func (r *SessionResolver) ResolveSession(ctx context.Context, req *http.Request) (*model.Session, error) {
	raw := TokenFromRequest(req)
	if raw == "" {
		return nil, ErrNoSession
	}
	return r.ResolveToken(ctx, raw)
}

// ResolveToken validates an access token and returns its session.
func (r *SessionResolver) ResolveToken(ctx context.Context, raw string) (*model.Session, error) {
	claims, err := r.jwt.ValidateToken(raw)
	if err != nil {
		return nil, err
	}
	revoked, err := r.tokens.IsAccessTokenBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenRevoked
	}
	return claims.Session()
}

// TokenFromRequest returns the bearer token, falling back to the session cookie.
func TokenFromRequest(req *http.Request) string {
	if h := req.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if c, err := req.Cookie(SessionCookieName); err == nil {
		return c.Value
	}
	return ""
}
