// Package router wires middleware and handlers into the gin engine.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/finflow/backend/internal/infrastructure/auth"
	"github.com/finflow/backend/internal/infrastructure/config"
	"github.com/finflow/backend/internal/infrastructure/logger"
	"github.com/finflow/backend/internal/interfaces/http/handler"
	"github.com/finflow/backend/internal/interfaces/http/middleware"
)

// Handlers aggregates the handlers mounted by the router
type Handlers struct {
	Health      *handler.HealthHandler
	Auth        *handler.AuthHandler
	Tenant      *handler.TenantHandler
	Membership  *handler.MembershipHandler
	Payable     *handler.PayableHandler
	Receivable  *handler.ReceivableHandler
	BankAccount *handler.BankAccountHandler
	Ledger      *handler.LedgerHandler
}

// Options carries the router's dependencies
type Options struct {
	Config     *config.Config
	Logger     *zap.Logger
	JWTService *auth.JWTService
	Resolver   middleware.TenantResolver
	Handlers   Handlers
}

// New builds the gin engine. Middleware order matters: request id and
// logging first, then authentication, then tenant resolution, so every
// tenant-scoped handler can rely on both identities being present.
func New(opts Options) *gin.Engine {
	if opts.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	r := gin.New()
	_ = r.SetTrustedProxies(opts.Config.HTTP.TrustedProxies)

	corsCfg := middleware.DefaultCORSConfig()
	if len(opts.Config.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = opts.Config.HTTP.CORSAllowOrigins
	}
	if len(opts.Config.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = opts.Config.HTTP.CORSAllowMethods
	}
	if len(opts.Config.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = opts.Config.HTTP.CORSAllowHeaders
	}

	maxBody := opts.Config.HTTP.MaxBodySize
	if maxBody <= 0 {
		maxBody = 1 << 20
	}

	r.Use(
		middleware.RequestID(),
		logger.GinMiddleware(opts.Logger),
		logger.Recovery(opts.Logger),
		middleware.Secure(),
		middleware.CORSWithConfig(corsCfg),
		middleware.BodyLimit(maxBody),
	)

	h := opts.Handlers
	r.GET("/health", h.Health.Health)

	api := r.Group("/api/v1")
	api.Use(
		middleware.JWTAuthMiddleware(opts.JWTService),
		middleware.TenantContextMiddleware(opts.Resolver, opts.Logger),
	)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", h.Auth.Signup)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.GET("/me", h.Auth.Me)
	}

	tenants := api.Group("/tenants")
	{
		tenants.POST("", h.Tenant.Onboard)
		tenants.GET("", h.Tenant.List)
		tenants.GET("/:id", h.Tenant.Get)
		tenants.POST("/:id/activate", h.Tenant.Activate)
		tenants.POST("/:id/suspend", h.Tenant.Suspend)
		tenants.POST("/:id/block", h.Tenant.Block)
		tenants.GET("/:id/memberships", h.Membership.ListByTenant)
		tenants.DELETE("/:id/memberships/:userId", h.Membership.Remove)
	}

	memberships := api.Group("/memberships")
	{
		memberships.POST("", h.Membership.Assign)
		memberships.GET("/active", h.Membership.Active)
	}

	payables := api.Group("/payables")
	{
		payables.POST("", h.Payable.Create)
		payables.GET("", h.Payable.List)
		payables.GET("/:id", h.Payable.Get)
		payables.POST("/:id/pay", h.Payable.Pay)
		payables.POST("/:id/cancel", h.Payable.Cancel)
	}

	receivables := api.Group("/receivables")
	{
		receivables.POST("", h.Receivable.Create)
		receivables.GET("", h.Receivable.List)
		receivables.GET("/:id", h.Receivable.Get)
		receivables.POST("/:id/receive", h.Receivable.Receive)
		receivables.POST("/:id/cancel", h.Receivable.Cancel)
	}

	bankAccounts := api.Group("/bank-accounts")
	{
		bankAccounts.POST("", h.BankAccount.Create)
		bankAccounts.GET("", h.BankAccount.List)
		bankAccounts.GET("/:id", h.BankAccount.Get)
		bankAccounts.POST("/:id/deactivate", h.BankAccount.Deactivate)
		bankAccounts.GET("/:id/transactions", h.BankAccount.Transactions)
	}

	ledger := api.Group("/ledger")
	{
		ledger.POST("/transactions", h.Ledger.Record)
		ledger.GET("/transactions", h.Ledger.List)
		ledger.GET("/transactions/:id", h.Ledger.Get)
	}

	api.GET("/reports/cashflow", h.Ledger.CashFlow)

	return r
}
