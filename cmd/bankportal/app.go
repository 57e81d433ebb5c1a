package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	coreport "github.com/amirhossein-jamali/bank-portal/internal/domain/port/core"
	"github.com/amirhossein-jamali/bank-portal/internal/domain/port/persistence"
	securityport "github.com/amirhossein-jamali/bank-portal/internal/domain/port/security"
	"github.com/amirhossein-jamali/bank-portal/internal/domain/usecase/auth"
	"github.com/amirhossein-jamali/bank-portal/internal/domain/usecase/banker"
	"github.com/amirhossein-jamali/bank-portal/internal/domain/usecase/ledger"
	"github.com/amirhossein-jamali/bank-portal/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/bank-portal/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/bank-portal/internal/infrastructure/adapter/cache"
	"github.com/amirhossein-jamali/bank-portal/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/bank-portal/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/bank-portal/internal/infrastructure/adapter/repository"
	"github.com/amirhossein-jamali/bank-portal/internal/infrastructure/adapter/security"
	timeprovider "github.com/amirhossein-jamali/bank-portal/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/bank-portal/internal/infrastructure/config"
)

// application holds the wired dependencies shared by every command
type application struct {
	cfg          *config.Config
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	db           *database.Manager
	hasher       securityport.PasswordHasher
	sessions     *repository.SessionRepository
	sweeper      *auth.SessionSweeper
}

// bootstrap loads and validates configuration, builds the logger and connects to the database
func bootstrap(ctx context.Context) (*application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger, err := logger.NewZapLogger(logger.Options{
		Level:  cfg.Logger.Level,
		Format: cfg.Logger.Format,
		Output: cfg.Logger.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	tp := timeprovider.NewRealTimeProvider()

	dbManager := database.NewManager(database.ConfigFromAppConfig(cfg), appLogger, tp)
	if _, err := dbManager.Connect(ctx); err != nil {
		_ = appLogger.Flush()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sessions := repository.NewSessionRepository(dbManager.DB(), appLogger)

	return &application{
		cfg:          cfg,
		logger:       appLogger,
		timeProvider: tp,
		db:           dbManager,
		hasher:       security.NewBcryptHasher(cfg.Auth.BcryptCost),
		sessions:     sessions,
		sweeper:      auth.NewSessionSweeper(sessions, tp, appLogger),
	}, nil
}

func (a *application) close() {
	if err := a.db.Close(); err != nil {
		a.logger.Error("Failed to close database", map[string]any{"error": err.Error()})
	}
	_ = a.logger.Flush()
}

// serve runs the HTTP server, the session sweeper and the pool monitor until the context is cancelled
func serve(c *cli.Context) error {
	ctx := c.Context

	app, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer app.close()

	if err := app.db.Migrate(ctx); err != nil {
		return err
	}
	if app.cfg.Seed.Enabled {
		result, err := app.db.Seed(ctx, app.hasher)
		if err != nil {
			return err
		}
		app.logger.Info("Demo data seeded", map[string]any{
			"users":        result.Users,
			"accounts":     result.Accounts,
			"transactions": result.Transactions,
		})
	}

	var lookups persistence.SessionRepository = app.sessions
	if app.cfg.Session.CacheEnabled && app.cfg.Session.CacheTTL > 0 {
		sessionCache, err := cache.NewSessionCache(ctx, app.sessions, app.cfg.Session.CacheTTL, app.logger)
		if err != nil {
			return err
		}
		defer sessionCache.Close()
		lookups = sessionCache
	}

	router, err := app.router(lookups)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              net.JoinHostPort(app.cfg.Server.Host, strconv.Itoa(app.cfg.Server.Port)),
		Handler:           router,
		ReadTimeout:       app.cfg.Server.ReadTimeout,
		WriteTimeout:      app.cfg.Server.WriteTimeout,
		ReadHeaderTimeout: app.cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       app.cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.logger.Info("Starting server", map[string]any{
			"addr": server.Addr,
			"env":  app.cfg.Environment,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return app.sweeper.Run(gctx, app.cfg.Session.SweepInterval)
	})

	g.Go(func() error {
		return app.db.NewPoolMonitor().Run(gctx, app.db.MonitorInterval())
	})

	g.Go(func() error {
		<-gctx.Done()
		app.logger.Info("Shutting down server...", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			app.logger.Error("Server forced to shutdown", map[string]any{"error": err.Error()})
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	app.logger.Info("Server exited gracefully", nil)
	return nil
}

// router wires use cases and handlers. sessions serves token lookups and may be cached.
func (a *application) router(sessions persistence.SessionRepository) (*gin.Engine, error) {
	signer, err := security.NewJWTSigner(security.JWTConfig{
		Secret:   a.cfg.Auth.JWTSecret,
		Issuer:   a.cfg.Auth.JWTIssuer,
		Audience: a.cfg.Auth.JWTAudience,
		TTL:      a.cfg.Auth.SessionTokenTTL,
	}, a.timeProvider)
	if err != nil {
		return nil, err
	}

	uow := a.db.CreateUnitOfWork()

	authService := auth.NewAuthService(
		uow,
		sessions,
		a.hasher,
		signer,
		security.NewRandomTokenGenerator(),
		auth.Settings{
			AccessTokenTTL:         a.cfg.Auth.AccessTokenTTL,
			AllowStaffRegistration: a.cfg.Auth.AllowStaffRegistration,
		},
		a.timeProvider,
		a.logger,
	)
	gate := auth.NewGate(signer, sessions, a.timeProvider, a.logger)

	router := gin.New()
	routes.SetupMiddlewares(router, a.logger, a.timeProvider, a.cfg.Server.AllowedOrigins)
	routes.SetupRoutes(router, routes.Handlers{
		Auth: handler.NewAuthHandler(authService, handler.CookieSettings{
			Secure: a.cfg.IsProduction(),
			MaxAge: a.cfg.Auth.SessionTokenTTL,
		}, a.timeProvider, a.logger),
		Ledger: handler.NewLedgerHandler(ledger.NewLedgerService(uow, a.timeProvider, a.logger), a.logger),
		Banker: handler.NewBankerHandler(banker.NewBankerService(uow, a.timeProvider, a.logger), a.logger),
		Health: handler.NewHealthHandler(a.db, a.timeProvider, a.logger),
	}, gate, a.logger)

	return router, nil
}
