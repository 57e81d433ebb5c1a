package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/bank-portal/internal/domain/port/core"
	"github.com/amirhossein-jamali/bank-portal/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/bank-portal/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/bank-portal/internal/infrastructure/adapter/api/middleware"
)

// BankerHandler serves the staff views
type BankerHandler struct {
	banker usecase.BankerUseCase
	logger coreport.Logger
}

func NewBankerHandler(banker usecase.BankerUseCase, logger coreport.Logger) *BankerHandler {
	return &BankerHandler{
		banker: banker,
		logger: logger,
	}
}

// Accounts handles GET /api/banker/accounts
func (h *BankerHandler) Accounts(c *gin.Context) {
	overview, err := h.banker.ListAccounts(c.Request.Context())
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.AccountsResponse{
		Accounts:   dto.FromOverviews(overview.Accounts),
		Statistics: dto.FromStatistics(overview.Statistics),
	})
}

// AccountTransactions handles GET /api/banker/accounts/:accountId/transactions
func (h *BankerHandler) AccountTransactions(c *gin.Context) {
	history, err := h.banker.AccountTransactions(c.Request.Context(), c.Param("accountId"))
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.AccountTransactionsResponse{
		Account:      dto.FromAccount(history.Account),
		Transactions: dto.FromTransactions(history.Transactions),
	})
}

// Dashboard handles GET /api/banker/dashboard
func (h *BankerHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.banker.Dashboard(c.Request.Context())
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromDashboard(dashboard))
}
