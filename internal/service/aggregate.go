package service

import (
	"sort"

	"github.com/fintrack/backend/internal/model"
)

// Summary holds the income/expense totals for a set of transactions.
type Summary struct {
	TotalIncome  float64 `json:"totalIncome"`
	TotalExpense float64 `json:"totalExpense"`
	Balance      float64 `json:"balance"`
}

// CategoryTotal is one row of an expense category breakdown.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// summarize reduces transactions into income/expense totals. A transaction
// with an unrecognized type counts as an expense; that matches how records
// have always been classified and is relied on elsewhere.
func summarize(transactions []*model.Transaction) Summary {
	var s Summary
	for _, txn := range transactions {
		if txn.Type == model.TypeIncome {
			s.TotalIncome += txn.Amount
		} else {
			s.TotalExpense += txn.Amount
		}
	}
	s.Balance = s.TotalIncome - s.TotalExpense
	return s
}

// expenseByCategory sums expense transactions per category. Income rows
// are excluded; unrecognized types count as expense (see summarize).
func expenseByCategory(transactions []*model.Transaction) map[string]float64 {
	totals := make(map[string]float64)
	for _, txn := range transactions {
		if txn.Type == model.TypeIncome {
			continue
		}
		if txn.Category == "" {
			continue
		}
		totals[txn.Category] += txn.Amount
	}
	return totals
}

// sortedCategoryTotals converts a category sum map into rows ordered by
// total descending.
func sortedCategoryTotals(totals map[string]float64) []CategoryTotal {
	rows := make([]CategoryTotal, 0, len(totals))
	for category, total := range totals {
		rows = append(rows, CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Total != rows[j].Total {
			return rows[i].Total > rows[j].Total
		}
		return rows[i].Category < rows[j].Category
	})
	return rows
}

// topCategory returns the category with the largest total, or "" when the
// map is empty.
func topCategory(totals map[string]float64) string {
	var top string
	var max float64
	for category, total := range totals {
		if total > max || (total == max && top != "" && category < top) {
			top = category
			max = total
		}
	}
	return top
}
