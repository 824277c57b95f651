package service

import (
	"fmt"
	"sort"
	"time"

	"finance_tracker/internal/domain"
)

// Summary aggregates all of a user's transactions. Balance is always
// TotalIncome - TotalExpense; a user without transactions gets all zeros.
type Summary struct {
	TotalIncome      float64 `json:"totalIncome"`
	TotalExpense     float64 `json:"totalExpense"`
	Balance          float64 `json:"balance"`
	TransactionCount int64   `json:"transactionCount"`
}

// MonthlyFlow is the cash flow of one calendar month. Months without any
// transactions are not reported at all.
type MonthlyFlow struct {
	Month   string  `json:"month"` // Two digits, "01".."12"
	Year    int     `json:"year"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

// GetSummary computes the aggregate totals over all of the user's
// transactions in a single query
func (s *TransactionService) GetSummary(userID uint) (*Summary, error) {
	var summary Summary
	err := s.scoped(userID).
		Select("COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) AS total_income,"+
			" COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) AS total_expense,"+
			" COUNT(*) AS transaction_count",
			domain.TypeIncome, domain.TypeExpense).
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	summary.Balance = summary.TotalIncome - summary.TotalExpense
	return &summary, nil
}

// GetMonthlyFlow groups the user's transactions of one calendar year by
// month and reports income, expense and balance per present month, ordered
// by month ascending. Grouping happens on UTC dates so the result does not
// depend on the client's timezone
func (s *TransactionService) GetMonthlyFlow(userID uint, year int) ([]MonthlyFlow, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	transactions := []domain.Transaction{}
	err := s.scoped(userID).
		Where("date >= ? AND date < ?", start, end).
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	// Bucket by month. Month granularity is enough since the query already
	// bounds the year.
	buckets := make(map[time.Month]*MonthlyFlow)
	for _, t := range transactions {
		month := t.Date.UTC().Month()
		flow, ok := buckets[month]
		if !ok {
			flow = &MonthlyFlow{
				Month: fmt.Sprintf("%02d", int(month)),
				Year:  year,
			}
			buckets[month] = flow
		}
		if t.Type == domain.TypeIncome {
			flow.Income += t.Amount
		} else {
			flow.Expense += t.Amount
		}
	}

	flows := make([]MonthlyFlow, 0, len(buckets))
	for _, flow := range buckets {
		flow.Balance = flow.Income - flow.Expense
		flows = append(flows, *flow)
	}
	sort.Slice(flows, func(i, j int) bool {
		return flows[i].Month < flows[j].Month
	})
	return flows, nil
}
