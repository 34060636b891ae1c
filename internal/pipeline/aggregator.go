// Package pipeline orchestrates the four ETL stages: load, clean, aggregate, write.
package pipeline

import (
	"sort"

	"github.com/shopspring/decimal"

	"txrollup/internal/model"
)

// AggregateMonthly groups cleaned transactions by (customer_id, calendar
// month) and computes per-group count, exact decimal total, and average
// rounded half-up to 2 places. Output is sorted by customer_id ascending,
// then year_month ascending, so repeated runs over the same input produce
// identical output.
//
// Input dates are assumed valid: unparseable dates never survive cleaning.
func AggregateMonthly(txs []model.Transaction, customers []model.Customer) []model.MonthlyStat {
	names := make(map[int64]string, len(customers))
	for _, c := range customers {
		names[c.ID] = c.Name
	}

	type groupKey struct {
		customerID int64
		yearMonth  string
	}

	groups := make(map[groupKey]*model.MonthlyStat)
	for _, t := range txs {
		k := groupKey{customerID: t.CustomerID, yearMonth: t.YearMonth()}
		g, ok := groups[k]
		if !ok {
			g = &model.MonthlyStat{
				CustomerID:   t.CustomerID,
				CustomerName: names[t.CustomerID],
				YearMonth:    k.yearMonth,
				TotalAmount:  decimal.Zero,
			}
			groups[k] = g
		}
		g.TransactionCount++
		g.TotalAmount = g.TotalAmount.Add(t.Amount)
	}

	stats := make([]model.MonthlyStat, 0, len(groups))
	for _, g := range groups {
		g.AverageAmount = g.TotalAmount.DivRound(decimal.NewFromInt(int64(g.TransactionCount)), 2)
		stats = append(stats, *g)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].CustomerID != stats[j].CustomerID {
			return stats[i].CustomerID < stats[j].CustomerID
		}
		return stats[i].YearMonth < stats[j].YearMonth
	})

	return stats
}
