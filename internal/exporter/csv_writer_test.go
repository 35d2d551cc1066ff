package exporter_test

import (
	"encoding/csv"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"membership-recon/internal/domain"
	"membership-recon/internal/exporter"
)

func sampleResult() *domain.ReconciliationResult {
	resolvedID := "1"
	return &domain.ReconciliationResult{
		RunID: "run-123",
		Selected: []domain.MemberStatus{
			{
				Member:          domain.Member{StudentID: "1", FullName: "Jon Tan", Team: "Badminton", Selected: true},
				PaidAmount:      decimal.NewFromInt(130),
				PaidStatus:      domain.Paid,
				Outstanding:     decimal.Zero,
				LastPaymentDate: "2024-09-15",
			},
		},
		Resolved: []domain.ResolvedPayment{
			{
				PaymentRecord:     domain.PaymentRecord{StudentID: "1", FullName: "Jon Tan", Amount: decimal.NewFromInt(50), PaymentDate: "2024-09-01"},
				ResolvedStudentID: &resolvedID,
				MatchType:         domain.MatchedByStudentID,
			},
		},
		Unmatched: []domain.ResolvedPayment{
			{
				PaymentRecord: domain.PaymentRecord{FullName: "Total Stranger", Amount: decimal.NewFromInt(99), PaymentDate: "2024-09-20"},
				MatchType:     domain.Unmatched,
			},
		},
		Suggestions: []domain.FuzzySuggestion{
			{EnteredName: "John Tann", SuggestedName: "Jon Tan"},
		},
		Bookings: []domain.BookingReport{
			{
				BookingRecord: domain.BookingRecord{BookingID: "B1", FullName: "External Hirer", BookingStart: "2024-09-01 18:00", Hours: decimal.NewFromInt(3), AmountPaid: decimal.NewFromInt(10)},
				Expected:      decimal.NewFromInt(15),
				Underpaid:     true,
			},
		},
		BookingIssues: []domain.BookingReport{},
		Summary:       "NTU Sports - Membership & Bookings Reconciliation\n",
	}
}

func TestCSVWriter_WriteAll(t *testing.T) {
	dir := t.TempDir()
	writer := exporter.NewCSVWriter(dir)

	paths, err := writer.WriteAll(sampleResult())

	assert.NoError(t, err)
	assert.Len(t, paths, 7)
	for name, path := range paths {
		info, err := os.Stat(path)
		assert.NoError(t, err, "report %s should exist", name)
		assert.False(t, info.IsDir())
	}
}

func TestCSVWriter_SelectedStatusColumns(t *testing.T) {
	dir := t.TempDir()
	writer := exporter.NewCSVWriter(dir)

	paths, err := writer.WriteAll(sampleResult())
	assert.NoError(t, err)

	file, err := os.Open(paths[exporter.ReportSelectedStatus])
	assert.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	assert.NoError(t, err)
	assert.Equal(t, []string{"StudentID", "FullName", "Team", "PaidAmount", "PaidStatus", "Outstanding", "PaymentDate"}, rows[0])
	assert.Equal(t, []string{"1", "Jon Tan", "Badminton", "130.00", "Paid", "0.00", "2024-09-15"}, rows[1])
}

func TestCSVWriter_UnmatchedHasNullResolvedID(t *testing.T) {
	dir := t.TempDir()
	writer := exporter.NewCSVWriter(dir)

	paths, err := writer.WriteAll(sampleResult())
	assert.NoError(t, err)

	file, err := os.Open(paths[exporter.ReportUnmatched])
	assert.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	assert.NoError(t, err)
	assert.Equal(t, []string{"", "Total Stranger", "99.00", "2024-09-20", "", "Unmatched"}, rows[1])
}

func TestCSVWriter_SummaryIsPlainText(t *testing.T) {
	dir := t.TempDir()
	writer := exporter.NewCSVWriter(dir)

	result := sampleResult()
	paths, err := writer.WriteAll(result)
	assert.NoError(t, err)

	content, err := os.ReadFile(paths[exporter.ReportSummary])
	assert.NoError(t, err)
	assert.Equal(t, result.Summary, string(content))
}

func TestCSVWriter_ReportPath(t *testing.T) {
	writer := exporter.NewCSVWriter("exports")

	_, ok := writer.ReportPath("run-123", exporter.ReportBookingsAll)
	assert.True(t, ok)

	_, ok = writer.ReportPath("run-123", "nonsense")
	assert.False(t, ok)
}
