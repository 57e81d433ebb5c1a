package banker

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/bank-portal/internal/domain/entity"
	"github.com/amirhossein-jamali/bank-portal/internal/domain/port/usecase"
)

// MonthLayout keys trend buckets
const MonthLayout = "2006-01"

// TotalsByType sums entries per transaction type, ordered by type
func TotalsByType(transactions []entity.Transaction) []usecase.TypeTotal {
	buckets := map[entity.TransactionType]*usecase.TypeTotal{}
	for _, tx := range transactions {
		b, ok := buckets[tx.Type]
		if !ok {
			b = &usecase.TypeTotal{Type: tx.Type, Total: decimal.Zero}
			buckets[tx.Type] = b
		}
		b.Total = b.Total.Add(tx.Amount)
		b.Count++
	}

	totals := make([]usecase.TypeTotal, 0, len(buckets))
	for _, b := range buckets {
		totals = append(totals, *b)
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Type < totals[j].Type })
	return totals
}

// MonthlyTrends sums entries per calendar month (UTC) and type, oldest month first
func MonthlyTrends(transactions []entity.Transaction) []usecase.TrendPoint {
	type key struct {
		month  string
		txType entity.TransactionType
	}
	buckets := map[key]*usecase.TrendPoint{}
	for _, tx := range transactions {
		k := key{month: tx.CreatedAt.UTC().Format(MonthLayout), txType: tx.Type}
		b, ok := buckets[k]
		if !ok {
			b = &usecase.TrendPoint{Month: k.month, Type: tx.Type, Total: decimal.Zero}
			buckets[k] = b
		}
		b.Total = b.Total.Add(tx.Amount)
		b.Count++
	}

	trends := make([]usecase.TrendPoint, 0, len(buckets))
	for _, b := range buckets {
		trends = append(trends, *b)
	}
	sort.Slice(trends, func(i, j int) bool {
		if trends[i].Month != trends[j].Month {
			return trends[i].Month < trends[j].Month
		}
		return trends[i].Type < trends[j].Type
	})
	return trends
}

// TopDepositors ranks accounts by total deposits, largest first
func TopDepositors(overviews []entity.AccountOverview, totals []entity.AccountDepositTotal, limit int) []usecase.CustomerRank {
	byAccount := make(map[string]entity.AccountOverview, len(overviews))
	for _, o := range overviews {
		byAccount[o.Account.ID] = o
	}

	ranks := make([]usecase.CustomerRank, 0, len(totals))
	for _, t := range totals {
		o, ok := byAccount[t.AccountID]
		if !ok || t.Count == 0 {
			continue
		}
		ranks = append(ranks, usecase.CustomerRank{
			Owner:            o.Owner,
			AccountID:        o.Account.ID,
			AccountNumber:    o.Account.AccountNumber,
			TotalDeposits:    t.Total,
			DepositCount:     t.Count,
			TransactionCount: o.TransactionCount,
		})
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		if c := ranks[i].TotalDeposits.Cmp(ranks[j].TotalDeposits); c != 0 {
			return c > 0
		}
		return ranks[i].AccountNumber < ranks[j].AccountNumber
	})
	return truncate(ranks, limit)
}

// MostActive ranks accounts with at least one entry by transaction count
func MostActive(overviews []entity.AccountOverview, limit int) []usecase.CustomerRank {
	ranks := make([]usecase.CustomerRank, 0, len(overviews))
	for _, o := range overviews {
		if o.TransactionCount == 0 {
			continue
		}
		ranks = append(ranks, usecase.CustomerRank{
			Owner:            o.Owner,
			AccountID:        o.Account.ID,
			AccountNumber:    o.Account.AccountNumber,
			TransactionCount: o.TransactionCount,
		})
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].TransactionCount != ranks[j].TransactionCount {
			return ranks[i].TransactionCount > ranks[j].TransactionCount
		}
		return ranks[i].AccountNumber < ranks[j].AccountNumber
	})
	return truncate(ranks, limit)
}

func truncate(ranks []usecase.CustomerRank, limit int) []usecase.CustomerRank {
	if limit > 0 && len(ranks) > limit {
		return ranks[:limit]
	}
	return ranks
}
