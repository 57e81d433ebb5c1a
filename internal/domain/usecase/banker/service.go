package banker

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/amirhossein-jamali/bank-portal/internal/domain/entity"
	errs "github.com/amirhossein-jamali/bank-portal/internal/domain/error"
	coreport "github.com/amirhossein-jamali/bank-portal/internal/domain/port/core"
	"github.com/amirhossein-jamali/bank-portal/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/bank-portal/internal/domain/port/usecase"
)

// Dashboard sizing
const (
	RecentTransactionsLimit = 10
	AnalyticsWindowMonths   = 6
	LeaderboardSize         = 5
)

// Service serves the read-only staff views
type Service struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

func NewBankerService(uow persistence.UnitOfWork, timeProvider coreport.TimeProvider, logger coreport.Logger) *Service {
	return &Service{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

var _ usecase.BankerUseCase = (*Service)(nil)

// ListAccounts returns every account with its owner and the bank-wide statistics
func (s *Service) ListAccounts(ctx context.Context) (*usecase.AccountsOverview, error) {
	var (
		overviews []entity.AccountOverview
		total     int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		overviews, err = s.uow.GetAccountRepository(gctx).ListOverviews(gctx)
		return err
	})
	g.Go(func() (err error) {
		total, err = s.uow.GetTransactionRepository(gctx).Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("Failed to list accounts", map[string]any{"error": err.Error()})
		return nil, err
	}

	return &usecase.AccountsOverview{
		Accounts:   overviews,
		Statistics: Summarize(overviews, total),
	}, nil
}

// AccountTransactions returns one account and its entries, newest first
func (s *Service) AccountTransactions(ctx context.Context, accountID string) (*usecase.AccountHistory, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return nil, errs.ErrAccountIDRequired
	}

	account, err := s.uow.GetAccountRepository(ctx).GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	transactions, err := s.uow.GetTransactionRepository(ctx).ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return &usecase.AccountHistory{
		Account:      account,
		Transactions: transactions,
	}, nil
}

// Dashboard loads its inputs concurrently and aggregates them in memory
func (s *Service) Dashboard(ctx context.Context) (*usecase.Dashboard, error) {
	var (
		overviews     []entity.AccountOverview
		recent        []entity.TransactionActivity
		window        []entity.Transaction
		depositTotals []entity.AccountDepositTotal
		total         int64
	)
	since := s.timeProvider.Now().AddDate(0, -AnalyticsWindowMonths, 0)

	g, gctx := errgroup.WithContext(ctx)
	accounts := s.uow.GetAccountRepository(gctx)
	transactions := s.uow.GetTransactionRepository(gctx)

	g.Go(func() (err error) {
		overviews, err = accounts.ListOverviews(gctx)
		return err
	})
	g.Go(func() (err error) {
		recent, err = transactions.ListRecent(gctx, RecentTransactionsLimit)
		return err
	})
	g.Go(func() (err error) {
		window, err = transactions.ListSince(gctx, since)
		return err
	})
	g.Go(func() (err error) {
		depositTotals, err = transactions.DepositTotals(gctx)
		return err
	})
	g.Go(func() (err error) {
		total, err = transactions.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("Failed to build dashboard", map[string]any{"error": err.Error()})
		return nil, err
	}

	return &usecase.Dashboard{
		Accounts:           overviews,
		RecentTransactions: recent,
		Statistics:         Summarize(overviews, total),
		Analytics: usecase.Analytics{
			MonthlyTotals: TotalsByType(window),
			Trends:        MonthlyTrends(window),
		},
		CustomerInsights: usecase.CustomerInsights{
			TopDepositors:       TopDepositors(overviews, depositTotals, LeaderboardSize),
			MostActiveCustomers: MostActive(overviews, LeaderboardSize),
		},
	}, nil
}

// Summarize computes account statistics. Inactive accounts count toward the total balance.
func Summarize(overviews []entity.AccountOverview, totalTransactions int64) usecase.AccountStatistics {
	stats := usecase.AccountStatistics{
		TotalAccounts:     len(overviews),
		TotalBalance:      decimal.Zero,
		TotalTransactions: totalTransactions,
	}
	for _, o := range overviews {
		if o.Account.IsActive {
			stats.ActiveAccounts++
		}
		stats.TotalBalance = stats.TotalBalance.Add(o.Account.Balance)
	}
	return stats
}
