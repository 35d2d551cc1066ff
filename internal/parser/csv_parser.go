package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"membership-recon/internal/domain"
	"membership-recon/pkg/logger"
)

// The three input tables are column-name-addressed: headers are matched
// case-insensitively and row order is irrelevant. A missing required column
// aborts the run before any reconciliation step; malformed rows are data
// quality issues and are skipped with a warning.

// RosterCSVParser parses the membership roster
type RosterCSVParser struct{}

func NewRosterCSVParser() *RosterCSVParser {
	return &RosterCSVParser{}
}

func (p *RosterCSVParser) Parse(filePath string) ([]domain.Member, error) {
	var members []domain.Member

	err := readTable(filePath, []string{"studentid", "fullname", "team", "isselectedofficialteam"}, func(record []string, columns map[string]int, line int) error {
		members = append(members, domain.Member{
			StudentID: field(record, columns, "studentid"),
			FullName:  field(record, columns, "fullname"),
			Team:      field(record, columns, "team"),
			// "Yes" is the only recognized selection flag
			Selected: field(record, columns, "isselectedofficialteam") == "Yes",
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return members, nil
}

// PaymentsCSVParser parses the membership payments ledger
type PaymentsCSVParser struct{}

func NewPaymentsCSVParser() *PaymentsCSVParser {
	return &PaymentsCSVParser{}
}

func (p *PaymentsCSVParser) Parse(filePath string) ([]domain.PaymentRecord, error) {
	var payments []domain.PaymentRecord

	// StudentID is optional on payments; a ledger exported without the
	// column still reconciles via the name pass.
	err := readTable(filePath, []string{"fullname", "amount", "paymentdate"}, func(record []string, columns map[string]int, line int) error {
		amountStr := field(record, columns, "amount")
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return fmt.Errorf("invalid amount '%s': %w", amountStr, err)
		}

		payments = append(payments, domain.PaymentRecord{
			StudentID:   field(record, columns, "studentid"),
			FullName:    field(record, columns, "fullname"),
			Amount:      amount,
			PaymentDate: field(record, columns, "paymentdate"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return payments, nil
}

// BookingsCSVParser parses the external facility-booking ledger
type BookingsCSVParser struct{}

func NewBookingsCSVParser() *BookingsCSVParser {
	return &BookingsCSVParser{}
}

func (p *BookingsCSVParser) Parse(filePath string) ([]domain.BookingRecord, error) {
	var bookings []domain.BookingRecord

	err := readTable(filePath, []string{"bookingid", "fullname", "bookingstart", "hours", "amountpaid"}, func(record []string, columns map[string]int, line int) error {
		hoursStr := field(record, columns, "hours")
		hours, err := decimal.NewFromString(hoursStr)
		if err != nil {
			return fmt.Errorf("invalid hours '%s': %w", hoursStr, err)
		}

		paidStr := field(record, columns, "amountpaid")
		paid, err := decimal.NewFromString(paidStr)
		if err != nil {
			return fmt.Errorf("invalid amountpaid '%s': %w", paidStr, err)
		}

		bookings = append(bookings, domain.BookingRecord{
			BookingID:    field(record, columns, "bookingid"),
			FullName:     field(record, columns, "fullname"),
			BookingStart: field(record, columns, "bookingstart"),
			Hours:        hours,
			AmountPaid:   paid,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

// readTable opens a CSV, validates required columns and invokes parse per
// data row. Row-level parse errors are logged and skipped.
func readTable(filePath string, required []string, parse func(record []string, columns map[string]int, line int) error) error {
	file, err := os.Open(filePath)
	if err != nil {
		logger.GetLogger().WithError(err).WithField("file", filePath).Error("Failed to open file")
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		logger.GetLogger().WithError(err).WithField("file", filePath).Error("Failed to read CSV header")
		return fmt.Errorf("failed to read header: %w", err)
	}

	columns := mapColumns(header)
	if missing := missingColumns(columns, required); len(missing) > 0 {
		return fmt.Errorf("invalid CSV format: missing required columns (%s)", strings.Join(missing, ", "))
	}

	lineNumber := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		lineNumber++
		if err != nil {
			logger.GetLogger().WithError(err).WithField("line", lineNumber).Warn("Failed to read CSV row, skipping")
			continue
		}

		if err := parse(record, columns, lineNumber); err != nil {
			logger.GetLogger().WithError(err).WithField("line", lineNumber).Warn("Failed to parse record, skipping")
		}
	}

	return nil
}

func mapColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, col := range header {
		normalized := strings.ToLower(strings.TrimSpace(col))
		columns[normalized] = i
	}
	return columns
}

func missingColumns(columns map[string]int, required []string) []string {
	var missing []string
	for _, col := range required {
		if _, exists := columns[col]; !exists {
			missing = append(missing, col)
		}
	}
	return missing
}

// field returns the trimmed cell for a column, or "" when the column or cell
// is absent.
func field(record []string, columns map[string]int, name string) string {
	idx, exists := columns[name]
	if !exists || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
