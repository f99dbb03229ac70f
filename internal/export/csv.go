// Package export serializes query results as delimited text. It is a pure
// formatting layer; nothing here touches the store.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/kwadhq/cashflow-commander/internal/domain"
)

const dateLayout = "2006-01-02"

// Transactions writes transactions as CSV with a header row. Amounts are
// rounded to two decimal places here, at the presentation boundary.
func Transactions(w io.Writer, transactions []*domain.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "date", "type", "category", "amount", "memo"}); err != nil {
		return err
	}
	for _, tx := range transactions {
		record := []string{
			strconv.FormatInt(tx.ID, 10),
			tx.Date.Format(dateLayout),
			string(tx.Kind),
			tx.Category,
			tx.Amount.StringFixed(2),
			tx.Memo,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// MonthlyPivot writes the per-category monthly pivot as CSV: income and
// expense totals side by side with their net.
func MonthlyPivot(w io.Writer, rows []*domain.CategoryNet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"category", "income", "expense", "net"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.Category,
			row.Income.StringFixed(2),
			row.Expense.StringFixed(2),
			row.Net.StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
