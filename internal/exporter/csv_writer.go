package exporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"membership-recon/internal/domain"
	"membership-recon/pkg/logger"
)

// Report names addressable over the download endpoint
const (
	ReportSelectedStatus  = "selected_status"
	ReportPaidNotSelected = "paid_not_selected"
	ReportUnmatched       = "unmatched_payments"
	ReportBookingsAll     = "bookings_all"
	ReportBookingIssues   = "booking_issues"
	ReportSuggestions     = "fuzzy_suggestions"
	ReportSummary         = "summary"
)

var reportFiles = map[string]string{
	ReportSelectedStatus:  "membership_selected_status.csv",
	ReportPaidNotSelected: "membership_paid_not_selected.csv",
	ReportUnmatched:       "membership_unmatched_payments.csv",
	ReportBookingsAll:     "external_bookings_all.csv",
	ReportBookingIssues:   "external_bookings_issues.csv",
	ReportSuggestions:     "membership_fuzzy_suggestions.csv",
	ReportSummary:         "reconciliation_summary.txt",
}

// CSVWriter persists the result tables of a run under baseDir/<run_id>/
type CSVWriter struct {
	baseDir string
}

func NewCSVWriter(baseDir string) *CSVWriter {
	return &CSVWriter{baseDir: baseDir}
}

// ReportPath resolves a report name for a run to its file path, reporting
// whether the name is known.
func (w *CSVWriter) ReportPath(runID, name string) (string, bool) {
	file, ok := reportFiles[name]
	if !ok {
		return "", false
	}
	return filepath.Join(w.baseDir, runID, file), true
}

// WriteAll writes all seven reports for one run and returns name -> path
func (w *CSVWriter) WriteAll(result *domain.ReconciliationResult) (map[string]string, error) {
	dir := filepath.Join(w.baseDir, result.RunID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	writers := map[string]func(path string) error{
		ReportSelectedStatus:  func(p string) error { return w.writeSelected(p, result.Selected) },
		ReportPaidNotSelected: func(p string) error { return w.writePayments(p, result.PaidNotSelected) },
		ReportUnmatched:       func(p string) error { return w.writeResolved(p, result.Unmatched) },
		ReportBookingsAll:     func(p string) error { return w.writeBookings(p, result.Bookings) },
		ReportBookingIssues:   func(p string) error { return w.writeBookings(p, result.BookingIssues) },
		ReportSuggestions:     func(p string) error { return w.writeSuggestions(p, result.Suggestions) },
		ReportSummary:         func(p string) error { return os.WriteFile(p, []byte(result.Summary), 0o644) },
	}

	paths := make(map[string]string, len(writers))
	for name, write := range writers {
		path := filepath.Join(dir, reportFiles[name])
		if err := write(path); err != nil {
			logger.GetLogger().WithError(err).WithField("report", name).Error("Failed to write report")
			return nil, fmt.Errorf("failed to write %s: %w", name, err)
		}
		paths[name] = path
	}

	logger.GetLogger().WithFields(map[string]interface{}{
		"run_id":  result.RunID,
		"reports": len(paths),
	}).Info("Run reports exported")

	return paths, nil
}

func (w *CSVWriter) writeSelected(path string, members []domain.MemberStatus) error {
	return writeCSV(path, []string{"StudentID", "FullName", "Team", "PaidAmount", "PaidStatus", "Outstanding", "PaymentDate"}, len(members), func(i int) []string {
		m := members[i]
		return []string{
			m.StudentID, m.FullName, m.Team,
			m.PaidAmount.StringFixed(2),
			string(m.PaidStatus),
			m.Outstanding.StringFixed(2),
			m.LastPaymentDate,
		}
	})
}

func (w *CSVWriter) writePayments(path string, payments []domain.ResolvedPayment) error {
	return writeCSV(path, []string{"StudentID", "FullName", "Amount", "PaymentDate"}, len(payments), func(i int) []string {
		p := payments[i]
		return []string{p.StudentID, p.FullName, p.Amount.StringFixed(2), p.PaymentDate}
	})
}

func (w *CSVWriter) writeResolved(path string, payments []domain.ResolvedPayment) error {
	return writeCSV(path, []string{"StudentID", "FullName", "Amount", "PaymentDate", "ResolvedStudentID", "MatchType"}, len(payments), func(i int) []string {
		p := payments[i]
		resolved := ""
		if p.ResolvedStudentID != nil {
			resolved = *p.ResolvedStudentID
		}
		return []string{p.StudentID, p.FullName, p.Amount.StringFixed(2), p.PaymentDate, resolved, string(p.MatchType)}
	})
}

func (w *CSVWriter) writeBookings(path string, bookings []domain.BookingReport) error {
	return writeCSV(path, []string{"BookingID", "FullName", "BookingStart", "Hours", "AmountPaid", "Expected", "Underpaid", "MissingPayment"}, len(bookings), func(i int) []string {
		b := bookings[i]
		return []string{
			b.BookingID, b.FullName, b.BookingStart,
			b.Hours.String(),
			b.AmountPaid.StringFixed(2),
			b.Expected.StringFixed(2),
			strconv.FormatBool(b.Underpaid),
			strconv.FormatBool(b.MissingPayment),
		}
	})
}

func (w *CSVWriter) writeSuggestions(path string, suggestions []domain.FuzzySuggestion) error {
	return writeCSV(path, []string{"EnteredName", "SuggestedName"}, len(suggestions), func(i int) []string {
		return []string{suggestions[i].EnteredName, suggestions[i].SuggestedName}
	})
}

func writeCSV(path string, header []string, rows int, row func(i int) []string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return err
	}
	for i := 0; i < rows; i++ {
		if err := writer.Write(row(i)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
