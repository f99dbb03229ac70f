package service

import (
	"sort"
	"time"

	"github.com/kwadhq/cashflow-commander/internal/domain"
	"github.com/kwadhq/cashflow-commander/internal/util"
	"github.com/shopspring/decimal"
)

// ReportService is the aggregation engine: it derives cumulative balances,
// monthly category summaries and dashboard metrics from the transaction
// store. All arithmetic is decimal; nothing is rounded here.
type ReportService struct {
	transactionRepo domain.TransactionRepository
}

// NewReportService creates a new ReportService
func NewReportService(transactionRepo domain.TransactionRepository) *ReportService {
	return &ReportService{transactionRepo: transactionRepo}
}

// CumulativeBalance returns one point per distinct transaction date, ordered
// by date ascending, where each balance is the running sum of daily nets
// (income minus expense per date) from the earliest date onward. An owner
// with no transactions yields an empty series, not an error.
func (s *ReportService) CumulativeBalance(owner string) ([]*domain.CumulativePoint, error) {
	transactions, err := s.transactionRepo.ListByOwner(owner, nil)
	if err != nil {
		return nil, err
	}

	nets := make(map[time.Time]decimal.Decimal)
	for _, tx := range transactions {
		date := util.DateOnly(tx.Date)
		switch tx.Kind {
		case domain.KindIncome:
			nets[date] = nets[date].Add(tx.Amount)
		case domain.KindExpense:
			nets[date] = nets[date].Sub(tx.Amount)
		}
	}
	if len(nets) == 0 {
		return nil, nil
	}

	dates := make([]time.Time, 0, len(nets))
	for date := range nets {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	points := make([]*domain.CumulativePoint, 0, len(dates))
	running := decimal.Zero
	for _, date := range dates {
		running = running.Add(nets[date])
		points = append(points, &domain.CumulativePoint{Date: date, Balance: running})
	}
	return points, nil
}

// MonthlySummary sums the owner's transactions for one calendar month,
// grouped by (category, kind). Pairs with no transactions are omitted.
// Ordering is first-seen and not part of the contract; callers sort for
// display. Month is 1-indexed.
func (s *ReportService) MonthlySummary(owner string, year, month int) ([]*domain.CategoryTotal, error) {
	if month < 1 || month > 12 {
		return nil, domain.ErrInvalidMonth
	}

	start, end := util.MonthBounds(year, month)
	transactions, err := s.transactionRepo.ListByOwner(owner, &domain.TransactionFilters{
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return nil, err
	}

	type groupKey struct {
		category string
		kind     domain.Kind
	}
	totals := make(map[groupKey]decimal.Decimal)
	var order []groupKey
	for _, tx := range transactions {
		key := groupKey{category: tx.Category, kind: tx.Kind}
		if _, seen := totals[key]; !seen {
			order = append(order, key)
		}
		totals[key] = totals[key].Add(tx.Amount)
	}

	result := make([]*domain.CategoryTotal, 0, len(order))
	for _, key := range order {
		result = append(result, &domain.CategoryTotal{
			Category: key.category,
			Kind:     key.kind,
			Total:    totals[key],
		})
	}
	return result, nil
}

// CategoryNet pivots the monthly summary by category: for each category the
// income and expense totals side by side and Net = Income - Expense, with a
// missing side contributing zero. Rows are sorted by category name.
func (s *ReportService) CategoryNet(owner string, year, month int) ([]*domain.CategoryNet, error) {
	summary, err := s.MonthlySummary(owner, year, month)
	if err != nil {
		return nil, err
	}

	pivot := make(map[string]*domain.CategoryNet)
	for _, row := range summary {
		net, ok := pivot[row.Category]
		if !ok {
			net = &domain.CategoryNet{
				Category: row.Category,
				Income:   decimal.Zero,
				Expense:  decimal.Zero,
			}
			pivot[row.Category] = net
		}
		switch row.Kind {
		case domain.KindIncome:
			net.Income = net.Income.Add(row.Total)
		case domain.KindExpense:
			net.Expense = net.Expense.Add(row.Total)
		}
	}

	result := make([]*domain.CategoryNet, 0, len(pivot))
	for _, net := range pivot {
		net.Net = net.Income.Sub(net.Expense)
		result = append(result, net)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Category < result[j].Category })
	return result, nil
}

// DashboardMetrics returns the month's income, expenses and net flow together
// with the overall balance across all dates. No data means all zeros, not an
// error.
func (s *ReportService) DashboardMetrics(owner string, year, month int) (*domain.DashboardMetrics, error) {
	summary, err := s.MonthlySummary(owner, year, month)
	if err != nil {
		return nil, err
	}

	income := decimal.Zero
	expenses := decimal.Zero
	for _, row := range summary {
		switch row.Kind {
		case domain.KindIncome:
			income = income.Add(row.Total)
		case domain.KindExpense:
			expenses = expenses.Add(row.Total)
		}
	}

	series, err := s.CumulativeBalance(owner)
	if err != nil {
		return nil, err
	}
	balance := decimal.Zero
	if len(series) > 0 {
		balance = series[len(series)-1].Balance
	}

	return &domain.DashboardMetrics{
		Income:   income,
		Expenses: expenses,
		Net:      income.Sub(expenses),
		Balance:  balance,
	}, nil
}
