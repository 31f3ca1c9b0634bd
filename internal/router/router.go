package router

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"hirelink/internal/access"
	"hirelink/internal/auth"
	apperrors "hirelink/internal/errors"
	"hirelink/internal/handler"
	"hirelink/internal/model"
)

// uploadBodyLimit leaves room for multipart framing around a 5 MiB file.
const uploadBodyLimit = "6M"

// Handlers groups everything Register wires.
type Handlers struct {
	Auth      *handler.AuthHandler
	AI        *handler.AIHandler
	Dashboard *handler.DashboardHandler
}

// Gates are the role checks of the browser pages. Paths are where they send
// denied requests; Register serves the sign-in and unauthorized pages there.
type Gates struct {
	Talent   *access.RedirectOnDeny
	Employer *access.RedirectOnDeny
	Paths    access.Paths
}

// Register wires routes and middleware.
func Register(e *echo.Echo, logger *slog.Logger, resolver *auth.SessionResolver, gates Gates, h Handlers) {
	e.HTTPErrorHandler = errorHandler(e)
	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))
	e.Use(middleware.Recover())

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Browser pages
	paths := gates.Paths.WithDefaults()
	e.GET("/", h.Dashboard.Home)
	e.GET(paths.SignIn, h.Auth.SignInPage)
	e.POST(paths.SignIn, h.Auth.SignIn)
	e.POST("/auth/signout", h.Auth.SignOut)
	e.GET(paths.Unauthorized, h.Auth.UnauthorizedPage)

	talent := e.Group("/talent", gates.Talent.Middleware())
	talent.GET("", h.Dashboard.TalentDashboard)
	talent.POST("/profile", h.Dashboard.SaveProfile)
	talent.POST("/bio", h.Dashboard.GenerateBio)

	employer := e.Group("/employer", gates.Employer.Middleware())
	employer.GET("", h.Dashboard.EmployerDashboard)
	employer.GET("/search", h.Dashboard.EmployerSearch)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/refresh", h.Auth.Refresh)
	api.POST("/auth/logout", h.Auth.Logout)

	// Secured routes (require a valid, unrevoked access token)
	secured := api.Group("", echojwt.WithConfig(jwtConfig(resolver)))
	secured.GET("/me", h.Auth.Me)
	secured.POST("/get-embedding", h.AI.GetEmbedding)
	secured.POST("/extract-resume", h.AI.ExtractResume, middleware.BodyLimit(uploadBodyLimit))
	secured.POST("/generate-bio", h.AI.GenerateBio)
}

func jwtConfig(resolver *auth.SessionResolver) echojwt.Config {
	return echojwt.Config{
		ContextKey:  access.SessionContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ,cookie:" + auth.SessionCookieName,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return resolver.ResolveToken(c.Request().Context(), token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: "invalid or missing access token",
				Code:  "UNAUTHENTICATED",
			})
		},
	}
}

// errorHandler turns access redirects into 303s and defers everything else
// to echo.
func errorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if access.WriteRedirect(c, err) {
			return
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			}
			if sess, ok := access.SessionFrom(c); ok {
				attrs = append(attrs, slog.String("user_id", sess.UserID.String()))
			}
			level := slog.LevelInfo
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
				if v.Status >= http.StatusInternalServerError {
					level = slog.LevelError
				}
			}
			logger.LogAttrs(context.Background(), level, "request", attrs...)
			return nil
		},
	})
}

// NewGates builds the role checks for the browser pages.
func NewGates(resolver access.SessionResolver, paths access.Paths, logger *slog.Logger) Gates {
	return Gates{
		Talent:   access.NewRedirectOnDeny(resolver, model.RoleTalent, paths, logger),
		Employer: access.NewRedirectOnDeny(resolver, model.RoleEmployer, paths, logger),
		Paths:    paths.WithDefaults(),
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
