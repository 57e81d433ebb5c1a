package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/bank-portal/internal/domain/entity"
	errs "github.com/amirhossein-jamali/bank-portal/internal/domain/error"
	coreport "github.com/amirhossein-jamali/bank-portal/internal/domain/port/core"
	"github.com/amirhossein-jamali/bank-portal/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/bank-portal/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/bank-portal/internal/infrastructure/adapter/api/middleware"
)

// LedgerHandler handles customer deposits, withdrawals and history
type LedgerHandler struct {
	ledger usecase.LedgerUseCase
	logger coreport.Logger
}

func NewLedgerHandler(ledger usecase.LedgerUseCase, logger coreport.Logger) *LedgerHandler {
	return &LedgerHandler{
		ledger: ledger,
		logger: logger,
	}
}

type ledgerOperation func(ctx *gin.Context, principal entity.Principal, req usecase.LedgerRequest) (*usecase.LedgerResult, error)

// Deposit handles POST /api/transactions/deposit
func (h *LedgerHandler) Deposit(c *gin.Context) {
	h.apply(c, "Deposit successful", func(ctx *gin.Context, p entity.Principal, req usecase.LedgerRequest) (*usecase.LedgerResult, error) {
		return h.ledger.Deposit(ctx.Request.Context(), p, req)
	})
}

// Withdraw handles POST /api/transactions/withdraw
func (h *LedgerHandler) Withdraw(c *gin.Context) {
	h.apply(c, "Withdrawal successful", func(ctx *gin.Context, p entity.Principal, req usecase.LedgerRequest) (*usecase.LedgerResult, error) {
		return h.ledger.Withdraw(ctx.Request.Context(), p, req)
	})
}

func (h *LedgerHandler) apply(c *gin.Context, message string, op ledgerOperation) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		middleware.AbortWithError(c, h.logger, errs.ErrNoAuthToken)
		return
	}

	var req dto.LedgerRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}

	result, err := op(c, principal, usecase.LedgerRequest{
		AccountID:   req.AccountID,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.LedgerResponse{
		Success:     true,
		Message:     message,
		Transaction: dto.FromTransaction(result.Transaction),
		NewBalance:  entity.FormatAmount(result.NewBalance),
	})
}

// History handles GET /api/transactions
func (h *LedgerHandler) History(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		middleware.AbortWithError(c, h.logger, errs.ErrNoAuthToken)
		return
	}

	history, err := h.ledger.History(c.Request.Context(), principal)
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.HistoryResponse{
		Transactions: dto.FromActivities(history.Transactions, false),
		Accounts:     dto.FromAccounts(history.Accounts),
	})
}
