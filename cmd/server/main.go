package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	appfinance "github.com/finflow/backend/internal/application/finance"
	appidentity "github.com/finflow/backend/internal/application/identity"
	"github.com/finflow/backend/internal/infrastructure/auth"
	"github.com/finflow/backend/internal/infrastructure/cache"
	"github.com/finflow/backend/internal/infrastructure/config"
	"github.com/finflow/backend/internal/infrastructure/event"
	"github.com/finflow/backend/internal/infrastructure/logger"
	"github.com/finflow/backend/internal/infrastructure/persistence"
	"github.com/finflow/backend/internal/infrastructure/scheduler"
	"github.com/finflow/backend/internal/infrastructure/telemetry"
	"github.com/finflow/backend/internal/interfaces/http/handler"
	"github.com/finflow/backend/internal/interfaces/http/router"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting FinFlow backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	ctx := context.Background()

	// Telemetry first, so everything below traces from the start
	tracer, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, cfg.App.Env)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracer.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer", zap.Error(err))
		}
	}()

	profiler, err := telemetry.NewProfiler(cfg.Telemetry, cfg.App.Name, log)
	if err != nil {
		log.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Tenant resolution cache: Redis when reachable, otherwise a
	// per-process cache. Resolution correctness never depends on the
	// cache, so degrading here only costs extra membership lookups.
	var tenantCache cache.TenantCache
	redisCache, err := cache.NewRedisTenantCache(cache.RedisConfig{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, using in-process tenant cache", zap.Error(err))
		tenantCache = cache.NewInMemoryTenantCache()
	} else {
		log.Info("Redis tenant cache connected", zap.String("addr", cfg.Redis.Addr()))
		tenantCache = redisCache
	}

	// Repositories and transaction scopes
	userRepo := persistence.NewGormUserRepository(db.DB)
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	membershipRepo := persistence.NewGormMembershipRepository(db.DB)
	payableRepo := persistence.NewGormAccountPayableRepository(db.DB)
	receivableRepo := persistence.NewGormAccountReceivableRepository(db.DB)
	bankAccountRepo := persistence.NewGormBankAccountRepository(db.DB)
	ledgerRepo := persistence.NewGormLedgerTransactionRepository(db.DB)
	auditRepo := persistence.NewGormAuditLogRepository(db.DB)
	settlementScope := persistence.NewGormSettlementScope(db.DB)
	provisioningScope := persistence.NewGormProvisioningScope(db.DB)

	// Event bus; settlement and obligation lifecycle events fan out to
	// in-process subscribers after commit.
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewLoggingEventHandler(log))

	// Identity services
	jwtService := auth.NewJWTService(cfg.JWT)
	resolver := appidentity.NewTenantResolver(membershipRepo, tenantCache, cfg.Resolver, log)
	authService := appidentity.NewAuthService(userRepo, jwtService, auditRepo, log)
	membershipService := appidentity.NewMembershipService(
		membershipRepo, tenantRepo, userRepo, resolver, auditRepo, log)
	tenantService := appidentity.NewTenantService(tenantRepo, provisioningScope, resolver, log)

	// Finance services
	payableService := appfinance.NewPayableService(payableRepo, eventBus)
	receivableService := appfinance.NewReceivableService(receivableRepo, eventBus)
	settlementService := appfinance.NewSettlementService(settlementScope, eventBus)
	bankAccountService := appfinance.NewBankAccountService(bankAccountRepo)
	ledgerService := appfinance.NewLedgerService(ledgerRepo, bankAccountRepo)
	overdueService := appfinance.NewOverdueService(payableRepo, receivableRepo, log)

	// Background overdue sweep
	sched := scheduler.NewScheduler(cfg.Scheduler, log)
	sched.Register(
		scheduler.NewOverdueSweepJob(overdueService, cfg.Scheduler.OverdueSweepBatch),
		cfg.Scheduler.OverdueSweepInterval,
	)
	if err := sched.Start(ctx); err != nil {
		log.Fatal("Failed to start scheduler", zap.Error(err))
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := sched.Stop(stopCtx); err != nil {
			log.Error("Error stopping scheduler", zap.Error(err))
		}
	}()
	if cfg.Scheduler.Enabled {
		log.Info("Overdue sweep scheduled",
			zap.Duration("interval", cfg.Scheduler.OverdueSweepInterval),
			zap.Int("batch", cfg.Scheduler.OverdueSweepBatch),
		)
	}

	engine := router.New(router.Options{
		Config:     cfg,
		Logger:     log,
		JWTService: jwtService,
		Resolver:   resolver,
		Handlers: router.Handlers{
			Health:      handler.NewHealthHandler(db.DB, cfg.App.Name, version),
			Auth:        handler.NewAuthHandler(authService),
			Tenant:      handler.NewTenantHandler(tenantService),
			Membership:  handler.NewMembershipHandler(membershipService),
			Payable:     handler.NewPayableHandler(payableService, settlementService),
			Receivable:  handler.NewReceivableHandler(receivableService, settlementService),
			BankAccount: handler.NewBankAccountHandler(bankAccountService, ledgerService),
			Ledger:      handler.NewLedgerHandler(ledgerService),
		},
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
