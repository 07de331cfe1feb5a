package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lumina-reports/lumina/internal/app"
	"github.com/lumina-reports/lumina/internal/authz"
	"github.com/lumina-reports/lumina/internal/bindings"
	"github.com/lumina-reports/lumina/internal/campaigns"
	"github.com/lumina-reports/lumina/internal/identity"
	"github.com/lumina-reports/lumina/internal/modules"
	"github.com/lumina-reports/lumina/internal/observability"
	"github.com/lumina-reports/lumina/internal/permissions"
	"github.com/lumina-reports/lumina/internal/platform/cache"
	"github.com/lumina-reports/lumina/internal/platform/db"
	"github.com/lumina-reports/lumina/internal/roles"
)

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := app.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	var permissionCache *authz.PermissionCache
	if cfg.CacheEnabled() {
		redisClient, err := cache.New(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Error("connect redis", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() { _ = redisClient.Close() }()
		permissionCache = authz.NewPermissionCache(redisClient, cfg.AuthzCacheTTL)
		logger.Info("authz cache enabled", slog.Duration("ttl", cfg.AuthzCacheTTL))
	}

	metrics := observability.NewMetrics()

	authzRepo := authz.NewRepository(pool)
	resolver := authz.NewResolver(authzRepo, permissionCache, logger)
	classifier := authz.NewClassifier(cfg.ElevatedRoleNames)
	authzService := authz.NewService(authzRepo, resolver, classifier, metrics)
	authzMiddleware := authz.Middleware{Service: authzService, Logger: logger}

	identityMiddleware := identity.Middleware{
		Verifier: identity.NewVerifier(cfg.TokenSecret),
		Logger:   logger,
	}

	modulesService := modules.NewService(modules.NewRepository(pool))
	permissionsService := permissions.NewService(permissions.NewRepository(pool), resolver)
	rolesService := roles.NewService(roles.NewRepository(pool), resolver)
	bindingsService := bindings.NewService(bindings.NewRepository(pool), resolver)
	campaignsService := campaigns.NewService(campaigns.NewRepository(pool), authzService)

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		Identity:           identityMiddleware,
		ModulesHandler:     modules.NewHandler(logger, modulesService, authzMiddleware),
		PermissionsHandler: permissions.NewHandler(logger, permissionsService, authzMiddleware),
		RolesHandler:       roles.NewHandler(logger, rolesService, authzMiddleware),
		BindingsHandler:    bindings.NewHandler(logger, bindingsService, authzMiddleware),
		EntitlementHandler: authz.NewHandler(logger, authzService),
		CampaignsHandler:   campaigns.NewHandler(logger, campaignsService, authzMiddleware),
		Metrics:            metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("listening", slog.String("addr", cfg.AppAddr), slog.String("env", cfg.AppEnv))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logger.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}
