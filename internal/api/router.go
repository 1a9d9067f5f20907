package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/apostaesportiva/bolao/docs"
	"github.com/apostaesportiva/bolao/internal/api/cookie"
	"github.com/apostaesportiva/bolao/internal/api/handler"
	"github.com/apostaesportiva/bolao/internal/api/middleware"
	"github.com/apostaesportiva/bolao/internal/core/domain"
	"github.com/apostaesportiva/bolao/internal/core/ports"
	"github.com/apostaesportiva/bolao/internal/infrastructure/http/handlers"
)

// RouterDeps carries everything the HTTP layer needs.
type RouterDeps struct {
	Auth    ports.AuthService
	Users   ports.UserService
	Profile ports.ProfileService

	Jar           cookie.Jar
	Limiter       *middleware.RateLimiter
	Checks        []handlers.Check
	BaseURL       string
	NoImageURL    string
	GoogleEnabled bool
	Log           zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) (*echo.Echo, error) {
	renderer, err := handler.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echomiddleware.Secure())
	e.Use(echomiddleware.BodyLimit("6M"))
	e.Use(echoprometheus.NewMiddleware("bolao"))
	e.Use(middleware.Language())
	e.Use(middleware.LoadSession(middleware.SessionConfig{
		Auth:    deps.Auth,
		Users:   deps.Users,
		Jar:     deps.Jar,
		Log:     deps.Log,
		Skipper: middleware.SkipOpsRoutes,
	}))

	// --- Dependencies ---
	pages := handler.NewPageHandler(handler.PageDeps{
		Auth:          deps.Auth,
		Users:         deps.Users,
		Jar:           deps.Jar,
		BaseURL:       deps.BaseURL,
		NoImageURL:    deps.NoImageURL,
		GoogleEnabled: deps.GoogleEnabled,
		Log:           deps.Log,
	})
	profile := handler.NewProfileHandler(deps.Profile, deps.Users, deps.Jar, deps.NoImageURL, deps.Log)
	authAPI := handler.NewAuthHandler(deps.Auth, deps.Users, deps.Jar, deps.BaseURL)
	userAPI := handler.NewUserHandler(deps.Users)

	guest := middleware.GuestOnly()
	signedIn := middleware.RequireUser()
	apiAuth := middleware.APIAuth()
	limited := func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	if deps.Limiter != nil {
		limited = deps.Limiter.Middleware()
	}

	// --- Pages for visitors ---
	e.GET("/login", pages.LoginPage, guest)
	e.POST("/login", pages.Login, guest, limited)
	e.GET("/signup", pages.SignupPage, guest)
	e.POST("/signup", pages.Signup, guest, limited)
	e.GET("/forgot", pages.ForgotPage, guest)
	e.POST("/forgot", pages.Forgot, guest, limited)
	e.GET("/reset", pages.ResetPage, guest)
	e.POST("/reset", pages.Reset, guest, limited)
	e.GET("/auth/google/login", pages.GoogleLogin, guest)
	e.GET("/auth/google/callback", pages.GoogleCallback, guest)

	// --- Pages for signed-in users ---
	e.GET("/", pages.Home, signedIn)
	e.GET("/dashboard", pages.Dashboard, signedIn)
	e.POST("/logout", pages.Logout, signedIn)
	e.GET("/profile", profile.Page, signedIn)
	e.POST("/profile/name", profile.UpdateName, signedIn)
	e.POST("/profile/email", profile.UpdateEmail, signedIn)
	e.POST("/profile/password", profile.UpdatePassword, signedIn, limited)
	e.POST("/profile/photo", profile.UploadPhoto, signedIn)
	e.POST("/profile/photo/delete", profile.DeletePhoto, signedIn)

	e.POST("/theme", pages.ToggleTheme)
	e.GET("/photos/*", profile.Photo)
	e.StaticFS("/static", handler.StaticFS())

	// --- JSON API ---
	api := e.Group("/api")
	api.POST("/auth/signup", authAPI.SignUp, limited)
	api.POST("/auth/login", authAPI.Login, limited)
	api.POST("/auth/forgot", authAPI.Forgot, limited)
	api.GET("/auth/methods", authAPI.SignInMethods, limited)
	api.POST("/auth/refresh", authAPI.Refresh, apiAuth)
	api.POST("/auth/logout", authAPI.Logout)

	api.POST("/users/createUser", userAPI.CreateUser, apiAuth)
	api.GET("/users/getUserDetails", userAPI.GetUserDetails, apiAuth)
	api.GET("/users/getUserByUid/:uid", userAPI.GetUserByUID, apiAuth)
	api.GET("/users/getUserByEmail/:email", userAPI.GetUserByEmail, apiAuth)
	api.PUT("/users/:uid", userAPI.UpdateUser, apiAuth, middleware.RBAC(domain.RoleAdmin))

	// --- Operations ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Checks...)

	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}

// requestLogger feeds echo's request log into zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				event = log.Error().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
