package apiclient

import (
	"context"
	"net/http"

	"hirelink/internal/model"
)

// Tokens is a pair of access and refresh tokens.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Name     string     `json:"name"`
	Role     model.Role `json:"role"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, in RegisterRequest) error {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/api/auth/register", in)
	if err != nil {
		return err
	}
	if err := c.do(req, "", nil); err != nil {
		c.fail("register", err, "")
		return err
	}
	return nil
}

// Login exchanges credentials for tokens.
func (c *Client) Login(ctx context.Context, email, password string) (Tokens, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/api/auth/login", credentials{Email: email, Password: password})
	if err != nil {
		return Tokens{}, err
	}
	var out Tokens
	if err := c.do(req, "", &out); err != nil {
		c.fail("login", err, "")
		return Tokens{}, err
	}
	return out, nil
}

// Refresh returns a new access token for refreshToken.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (string, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/api/auth/refresh", refreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return "", err
	}
	var out Tokens
	if err := c.do(req, "", &out); err != nil {
		c.fail("refresh", err, "")
		return "", err
	}
	return out.AccessToken, nil
}

// Logout revokes both tokens.
func (c *Client) Logout(ctx context.Context, tokens Tokens) error {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/api/auth/logout", refreshRequest{RefreshToken: tokens.RefreshToken})
	if err != nil {
		return err
	}
	if err := c.do(req, tokens.AccessToken, nil); err != nil {
		c.fail("logout", err, "")
		return err
	}
	return nil
}

// Me returns the session behind accessToken.
func (c *Client) Me(ctx context.Context, accessToken string) (*model.Session, error) {
	req, err := c.newJSONRequest(ctx, http.MethodGet, "/api/me", nil)
	if err != nil {
		return nil, err
	}
	var out model.Session
	if err := c.do(req, accessToken, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
