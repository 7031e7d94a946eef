package services_test

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/skimonitor/api/services"
	"github.com/stretchr/testify/require"
)

func exportRows() []services.TransactionRow {
	return []services.TransactionRow{
		{
			Reference: "SKI-A2B3C4D5", Date: "2026-01-12",
			Client: "Alice Martin", Instructor: "Jean Dupont", Lesson: "Morning Group Lesson",
			Amount: 120.00, Commission: 12.00, Net: 108.00,
		},
		{
			Reference: "SKI-E6F7G8H9", Date: "2026-01-13",
			Client: "Bob Durand", Instructor: "Jean Dupont", Lesson: "Private Lesson",
			Amount: 80.50, Commission: 8.05, Net: 72.45,
		},
	}
}

func TestBuildTransactionCSVStartsWithBOM(t *testing.T) {
	data, err := services.BuildTransactionCSV(exportRows())
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
}

func TestBuildTransactionCSVUsesSemicolons(t *testing.T) {
	data, err := services.BuildTransactionCSV(exportRows())
	require.NoError(t, err)

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})))
	r.Comma = ';'
	records, err := r.ReadAll()
	require.NoError(t, err)

	// header + 2 rows + TOTAL
	require.Len(t, records, 4)
	require.Equal(t, []string{"Reference", "Date", "Client", "Instructor", "Lesson", "Amount", "Commission", "Net"}, records[0])
	require.Equal(t, "SKI-A2B3C4D5", records[1][0])
	require.Equal(t, "80.50", records[2][5])
}

func TestBuildTransactionCSVAppendsTotalRow(t *testing.T) {
	data, err := services.BuildTransactionCSV(exportRows())
	require.NoError(t, err)

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})))
	r.Comma = ';'
	records, err := r.ReadAll()
	require.NoError(t, err)

	total := records[len(records)-1]
	require.Equal(t, "TOTAL", total[0])
	require.Equal(t, "200.50", total[5])
	require.Equal(t, "20.05", total[6])
	require.Equal(t, "180.45", total[7])
}

func TestBuildTransactionCSVEmpty(t *testing.T) {
	data, err := services.BuildTransactionCSV(nil)
	require.NoError(t, err)

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})))
	r.Comma = ';'
	records, err := r.ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 2)
	require.Equal(t, "TOTAL", records[1][0])
	require.Equal(t, "0.00", records[1][5])
}
