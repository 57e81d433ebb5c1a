package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/bank-portal/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/bank-portal/internal/domain/port/core"
	"github.com/amirhossein-jamali/bank-portal/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/bank-portal/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/bank-portal/internal/infrastructure/adapter/api/middleware"
)

// Handlers groups the HTTP handlers mounted under /api
type Handlers struct {
	Auth   *handler.AuthHandler
	Ledger *handler.LedgerHandler
	Banker *handler.BankerHandler
	Health *handler.HealthHandler
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, handlers Handlers, authenticator usecase.Authenticator, logger coreport.Logger) {
	authenticate := middleware.Authenticate(authenticator, logger)

	api := router.Group("/api")

	api.GET("/health", handlers.Health.Health)

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", handlers.Auth.Register)
		authRoutes.POST("/login", handlers.Auth.Login)
		authRoutes.POST("/banker-login", handlers.Auth.BankerLogin)

		// logout never requires a valid session
		authRoutes.POST("/logout", handlers.Auth.Logout)
		authRoutes.GET("/logout", handlers.Auth.Logout)

		authRoutes.POST("/logout-all", authenticate, handlers.Auth.LogoutAll)
		authRoutes.GET("/me", authenticate, handlers.Auth.Me)
	}

	transactionRoutes := api.Group("/transactions", authenticate, middleware.RequireRoles(logger, entity.RoleCustomer))
	{
		transactionRoutes.GET("", handlers.Ledger.History)
		transactionRoutes.POST("/deposit", handlers.Ledger.Deposit)
		transactionRoutes.POST("/withdraw", handlers.Ledger.Withdraw)
	}

	bankerRoutes := api.Group("/banker", authenticate, middleware.RequireRoles(logger, entity.RoleBanker, entity.RoleAdmin))
	{
		bankerRoutes.GET("/accounts", handlers.Banker.Accounts)
		bankerRoutes.GET("/accounts/:accountId/transactions", handlers.Banker.AccountTransactions)
		bankerRoutes.GET("/dashboard", handlers.Banker.Dashboard)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, timeProvider coreport.TimeProvider, allowedOrigins []string) {
	// Apply middlewares in the correct order
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger, timeProvider))
	router.Use(middleware.CORS(allowedOrigins))
}
