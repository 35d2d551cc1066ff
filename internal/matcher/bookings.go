package matcher

import (
	"github.com/shopspring/decimal"

	"membership-recon/internal/domain"
)

// paymentTolerance absorbs floating-point rounding in uploaded amounts; it
// is not a business rule.
var paymentTolerance = decimal.NewFromFloat(0.01)

// BookingValidator computes the expected charge for external facility
// bookings and flags underpayment and missing payment.
type BookingValidator struct {
	hourlyRate decimal.Decimal
}

func NewBookingValidator(hourlyRate decimal.Decimal) *BookingValidator {
	return &BookingValidator{hourlyRate: hourlyRate}
}

// Validate annotates every booking and returns the full set plus the issue
// subset (underpaid or missing payment; the flags can overlap).
func (v *BookingValidator) Validate(bookings []domain.BookingRecord) ([]domain.BookingReport, []domain.BookingReport) {
	reports := make([]domain.BookingReport, 0, len(bookings))
	issues := make([]domain.BookingReport, 0)

	for _, booking := range bookings {
		expected := booking.Hours.Mul(v.hourlyRate)
		report := domain.BookingReport{
			BookingRecord:  booking,
			Expected:       expected,
			Underpaid:      booking.AmountPaid.LessThan(expected.Sub(paymentTolerance)),
			MissingPayment: !booking.AmountPaid.IsPositive(),
		}
		reports = append(reports, report)
		if report.HasIssue() {
			issues = append(issues, report)
		}
	}

	return reports, issues
}
