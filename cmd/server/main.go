package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/apostaesportiva/bolao/internal/api"
	"github.com/apostaesportiva/bolao/internal/api/cookie"
	"github.com/apostaesportiva/bolao/internal/api/middleware"
	"github.com/apostaesportiva/bolao/internal/core/ports"
	"github.com/apostaesportiva/bolao/internal/core/service"
	"github.com/apostaesportiva/bolao/internal/i18n"
	"github.com/apostaesportiva/bolao/internal/infrastructure/config"
	mongostore "github.com/apostaesportiva/bolao/internal/infrastructure/db/mongo"
	redisstore "github.com/apostaesportiva/bolao/internal/infrastructure/db/redis"
	"github.com/apostaesportiva/bolao/internal/infrastructure/http/handlers"
	"github.com/apostaesportiva/bolao/internal/infrastructure/mail"
	"github.com/apostaesportiva/bolao/internal/infrastructure/oauth"
	"github.com/apostaesportiva/bolao/internal/infrastructure/queue"
	"github.com/apostaesportiva/bolao/internal/infrastructure/storage/minio"
	"github.com/apostaesportiva/bolao/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

//	@title			Bolão API
//	@version		1.0
//	@description	Session-cookie guarded JSON API of the bolão web app.
//	@BasePath		/
func main() {
	// A missing .env is fine outside development; real deployments use the environment.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{Level: "info", Service: "bolao"})
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.IsDevelopment(), Service: "bolao"})

	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect")
		}
	}()
	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to create mongodb indexes")
	}

	rdb, err := redisstore.Connect(ctx, redisstore.Config{URL: cfg.Redis.URL, Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	store, err := minio.Connect(ctx, minio.Config{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		UseSSL:    cfg.Storage.UseSSL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize object storage")
	}

	accounts := mongostore.NewAccountRepository(db)
	users := mongostore.NewUserRepository(db)
	cache := redisstore.NewUserCache(rdb, cfg.Redis.CacheTTL)
	resets := redisstore.NewResetTokenStore(rdb, cfg.Auth.ResetTokenTTL)
	tokens := service.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	var google ports.GoogleProvider
	if cfg.Google.Enabled() {
		redirect := cfg.Google.RedirectURL
		if redirect == "" {
			redirect = cfg.BaseURL + "/auth/google/callback"
		}
		google = oauth.NewGoogle(oauth.GoogleConfig{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			RedirectURL:  redirect,
		})
	} else {
		log.Warn().Msg("google sign-in disabled: GOOGLE_CLIENT_ID or GOOGLE_CLIENT_SECRET not set")
	}

	dispatcher := queue.NewDispatcher(cfg.Limits.CleanupWorkers, store, cache, logger.Component("cleanup"))
	dispatcher.Start(ctx)

	authService := service.NewAuthService(service.AuthDeps{
		Accounts:        accounts,
		Users:           users,
		Cache:           cache,
		Resets:          resets,
		Mailer:          mail.NewLogMailer(logger.Component("mailer"), i18n.Default()),
		Google:          google,
		Tokens:          tokens,
		IsAdmin:         cfg.IsAdminEmail,
		RefreshInterval: cfg.Auth.TokenRefreshInterval,
		Log:             logger.Component("auth"),
	})
	userService := service.NewUserService(accounts, users, cache, cfg.IsAdminEmail, logger.Component("users"))
	profileService := service.NewProfileService(accounts, cache, store, dispatcher, tokens, cfg.Auth.RecentLoginWindow, logger.Component("profile"))

	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		PerMinute: cfg.Limits.RateLimitPerMinute,
		Burst:     cfg.Limits.RateLimitBurst,
	})
	defer limiter.Stop()

	e, err := api.NewRouter(api.RouterDeps{
		Auth:    authService,
		Users:   userService,
		Profile: profileService,
		Jar:     cookie.NewJar(cfg.Auth.CookieSecure, cfg.Auth.SessionMaxAge),
		Limiter: limiter,
		Checks: []handlers.Check{
			handlers.MongoCheck(db),
			handlers.RedisCheck(rdb),
			{Name: "minio", Ping: store.Ping},
		},
		BaseURL:       cfg.BaseURL,
		NoImageURL:    cfg.NoImageURL,
		GoogleEnabled: google != nil,
		Log:           log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("received interruption signal, shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}
	dispatcher.Stop()
	log.Info().Msg("shutdown complete")
}
