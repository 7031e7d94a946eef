package services

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/shopspring/decimal"
)

// TransactionRow is one line of the accounting export, assembled by the
// handlers from paid transactions and their booking/lesson/instructor views.
type TransactionRow struct {
	Reference  string
	Date       string
	Client     string
	Instructor string
	Lesson     string
	Amount     float64
	Commission float64
	Net        float64
}

var exportHeader = []string{"Reference", "Date", "Client", "Instructor", "Lesson", "Amount", "Commission", "Net"}

// utf8BOM lets spreadsheet software pick up the encoding; the rest of the
// format is semicolon-delimited with a trailing TOTAL row.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// BuildTransactionCSV renders the accounting export.
func BuildTransactionCSV(rows []TransactionRow) ([]byte, error) {
	b := new(bytes.Buffer)
	b.Write(utf8BOM)

	w := csv.NewWriter(b)
	w.Comma = ';'

	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}

	totalAmount := decimal.Zero
	totalCommission := decimal.Zero
	totalNet := decimal.Zero

	for _, row := range rows {
		record := []string{
			row.Reference,
			row.Date,
			row.Client,
			row.Instructor,
			row.Lesson,
			fmt.Sprintf("%.2f", row.Amount),
			fmt.Sprintf("%.2f", row.Commission),
			fmt.Sprintf("%.2f", row.Net),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}

		totalAmount = totalAmount.Add(decimal.NewFromFloat(row.Amount))
		totalCommission = totalCommission.Add(decimal.NewFromFloat(row.Commission))
		totalNet = totalNet.Add(decimal.NewFromFloat(row.Net))
	}

	total := []string{
		"TOTAL", "", "", "", "",
		totalAmount.StringFixed(2),
		totalCommission.StringFixed(2),
		totalNet.StringFixed(2),
	}
	if err := w.Write(total); err != nil {
		return nil, err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}
