package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"membership-recon/internal/domain"
)

// Input is everything the summary aggregates over. GeneratedAt is injected
// by the caller so the rendered text is deterministic for fixed inputs.
type Input struct {
	Selected        []domain.MemberStatus
	PaidNotSelected []domain.ResolvedPayment
	Unmatched       []domain.ResolvedPayment
	Bookings        []domain.BookingReport
	BookingIssues   []domain.BookingReport
	AnnualFee       decimal.Decimal
	GeneratedAt     time.Time
}

// Render produces the fixed-format multi-line text summary. Pure formatting,
// no side effects.
func Render(in Input) string {
	totalSelected := len(in.Selected)
	paidCount, underpaidCount, unpaidCount := 0, 0, 0
	membershipCollected := decimal.Zero

	for _, member := range in.Selected {
		switch member.PaidStatus {
		case domain.Paid:
			paidCount++
		case domain.Underpaid:
			underpaidCount++
		default:
			unpaidCount++
		}
		membershipCollected = membershipCollected.Add(member.PaidAmount)
	}

	// Guard the zero-selected case; an empty roster reports 0%, not NaN.
	mismatchRate := 0.0
	if totalSelected > 0 {
		mismatchRate = float64(underpaidCount+unpaidCount) / float64(totalSelected) * 100
	}

	membershipExpected := in.AnnualFee.Mul(decimal.NewFromInt(int64(totalSelected)))

	bookingsExpected := decimal.Zero
	bookingsCollected := decimal.Zero
	for _, booking := range in.Bookings {
		bookingsExpected = bookingsExpected.Add(booking.Expected)
		bookingsCollected = bookingsCollected.Add(booking.AmountPaid)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "NTU Sports - Membership & Bookings Reconciliation\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", in.GeneratedAt.Format("2006-01-02 15:04:05"))

	fmt.Fprintf(&b, "MEMBERSHIP SUMMARY:\n")
	fmt.Fprintf(&b, "Total selected members: %d\n", totalSelected)
	fmt.Fprintf(&b, "- Paid in full: %d\n", paidCount)
	fmt.Fprintf(&b, "- Underpaid: %d\n", underpaidCount)
	fmt.Fprintf(&b, "- Unpaid: %d\n", unpaidCount)
	fmt.Fprintf(&b, "Mismatch rate: %.1f%%\n\n", mismatchRate)

	fmt.Fprintf(&b, "Membership revenue:\n")
	fmt.Fprintf(&b, "- Expected: £%s\n", Money(membershipExpected))
	fmt.Fprintf(&b, "- Collected: £%s\n", Money(membershipCollected))
	fmt.Fprintf(&b, "- Difference: £%s\n\n", Money(membershipCollected.Sub(membershipExpected)))

	fmt.Fprintf(&b, "EXTERNAL BOOKINGS:\n")
	fmt.Fprintf(&b, "Total bookings: %d\n", len(in.Bookings))
	fmt.Fprintf(&b, "- Expected: £%s\n", Money(bookingsExpected))
	fmt.Fprintf(&b, "- Collected: £%s\n", Money(bookingsCollected))
	fmt.Fprintf(&b, "- Difference: £%s\n", Money(bookingsCollected.Sub(bookingsExpected)))
	fmt.Fprintf(&b, "- Bookings with issues: %d\n\n", len(in.BookingIssues))

	fmt.Fprintf(&b, "ADDITIONAL FINDINGS:\n")
	fmt.Fprintf(&b, "- Payments from non-selected players: %d\n", len(in.PaidNotSelected))
	fmt.Fprintf(&b, "- Unmatched payments (need review): %d\n", len(in.Unmatched))

	return b.String()
}

// Money formats a decimal with two fixed places and comma-grouped thousands
func Money(d decimal.Decimal) string {
	s := d.StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	dot := strings.Index(s, ".")
	intPart, fracPart := s[:dot], s[dot:]

	var grouped strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(r)
	}

	return sign + grouped.String() + fracPart
}
