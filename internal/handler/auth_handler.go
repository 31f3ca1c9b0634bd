package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"hirelink/internal/access"
	"hirelink/internal/auth"
	apperrors "hirelink/internal/errors"
	"hirelink/internal/model"
	"hirelink/internal/service"
	"hirelink/internal/view"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService  service.AuthService
	userService  service.UserService
	paths        access.Paths
	cookieSecure bool
}

// NewAuthHandler creates a new auth handler. paths must match the routes the
// sign-in and unauthorized pages are served at.
func NewAuthHandler(authService service.AuthService, userService service.UserService, paths access.Paths, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		userService:  userService,
		paths:        paths.WithDefaults(),
		cookieSecure: cookieSecure,
	}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=EMPLOYER TALENT employer talent"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest represents a token refresh request.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest represents a logout request. The access token, if any, is
// read from the Authorization header.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse represents an authentication response.
type AuthResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token,omitempty"`
	User         *model.User `json:"user,omitempty"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Email, req.Password, req.Name, req.Role)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			return echo.NewHTTPError(http.StatusConflict, apperrors.ErrorResponse{
				Error: err.Error(),
				Code:  "USER_ALREADY_EXISTS",
			})
		}
		if errors.Is(err, apperrors.ErrInvalidRole) {
			return domainError(err)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{
			Error: "failed to register user",
			Code:  "REGISTRATION_FAILED",
		})
	}

	return c.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tokens, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return loginError(err)
	}

	return c.JSON(http.StatusOK, AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         user,
	})
}

func loginError(err error) *echo.HTTPError {
	if errors.Is(err, service.ErrInvalidCredentials) {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
			Error: err.Error(),
			Code:  "INVALID_CREDENTIALS",
		})
	}
	return echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{
		Error: "failed to login",
		Code:  "LOGIN_FAILED",
	})
}

// Refresh godoc
// @Summary Refresh access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	accessToken, err := h.authService.RefreshToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefreshToken) {
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: err.Error(),
				Code:  "INVALID_REFRESH_TOKEN",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{
			Error: "failed to refresh token",
			Code:  "REFRESH_FAILED",
		})
	}

	return c.JSON(http.StatusOK, AuthResponse{
		AccessToken: accessToken,
	})
}

// Logout godoc
// @Summary Logout user
// @Description Revokes the refresh token and the bearer access token, if present.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LogoutRequest true "Refresh token"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	var req LogoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	accessToken := auth.TokenFromRequest(c.Request())
	if req.RefreshToken == "" && accessToken == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "refresh_token or bearer token required")
	}

	if err := h.authService.Logout(c.Request().Context(), req.RefreshToken, accessToken); err != nil {
		if errors.Is(err, service.ErrInvalidRefreshToken) {
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: err.Error(),
				Code:  "INVALID_REFRESH_TOKEN",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{
			Error: "failed to logout",
			Code:  "LOGOUT_FAILED",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "logged out successfully",
	})
}

// Me godoc
// @Summary Current session
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Session
// @Failure 401 {object} errors.ErrorResponse
// @Router /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	user, err := h.userService.GetUser(c.Request().Context(), sess.UserID)
	if errors.Is(err, apperrors.ErrUserNotFound) || (err == nil && !user.Active) {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
			Error: "account is not active",
			Code:  "UNAUTHENTICATED",
		})
	}
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, model.Session{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		ExpiresAt: sess.ExpiresAt,
	})
}

// SignInPage renders the browser sign-in form.
func (h *AuthHandler) SignInPage(c echo.Context) error {
	return h.render(c, http.StatusOK, "Sign in", view.SignIn(view.SignInData{
		Action:      h.paths.SignIn,
		RedirectURI: access.SafeRedirectPath(c.QueryParam("redirect_uri")),
	}))
}

// SignIn handles the browser sign-in form and sets the session cookie.
func (h *AuthHandler) SignIn(c echo.Context) error {
	email := c.FormValue("email")
	back := access.SafeRedirectPath(c.FormValue("redirect_uri"))

	tokens, user, err := h.authService.Login(c.Request().Context(), email, c.FormValue("password"))
	if err != nil {
		msg := "Sign in failed. Please try again."
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrInvalidCredentials) {
			msg = "Invalid email or password."
			status = http.StatusUnauthorized
		}
		return h.render(c, status, "Sign in", view.SignIn(view.SignInData{
			Action:      h.paths.SignIn,
			Email:       email,
			RedirectURI: back,
			Error:       msg,
		}))
	}

	c.SetCookie(h.sessionCookie(tokens.AccessToken, int(auth.AccessTokenExpiry.Seconds())))
	if back == "" {
		back = homePath(user.Role)
	}
	return c.Redirect(http.StatusSeeOther, back)
}

// SignOut revokes the browser session and clears the cookie.
func (h *AuthHandler) SignOut(c echo.Context) error {
	if cookie, err := c.Cookie(auth.SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.authService.Logout(c.Request().Context(), "", cookie.Value); err != nil {
			slog.WarnContext(c.Request().Context(), "sign out failed", slog.Any("error", err))
		}
	}
	c.SetCookie(h.sessionCookie("", -1))
	return c.Redirect(http.StatusSeeOther, h.paths.SignIn)
}

// UnauthorizedPage is the destination of role mismatches.
func (h *AuthHandler) UnauthorizedPage(c echo.Context) error {
	return h.render(c, http.StatusForbidden, "Not available", view.Unauthorized())
}

func (h *AuthHandler) render(c echo.Context, status int, title string, body templ.Component) error {
	return renderWith(c, view.SessionInfo{SignInPath: h.paths.SignIn}, status, title, body)
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
