package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Member represents one roster row
type Member struct {
	StudentID      string `json:"student_id" db:"student_id"`
	FullName       string `json:"full_name" db:"full_name"`
	Team           string `json:"team" db:"team"`
	Selected       bool   `json:"selected" db:"selected"`
	NormalizedName string `json:"-" db:"normalized_name"`
}

// PaidStatus classifies a selected member's payment state
type PaidStatus string

const (
	Paid      PaidStatus = "Paid"
	Underpaid PaidStatus = "Underpaid"
	Unpaid    PaidStatus = "Unpaid"
)

// MemberStatus is the reconciled working copy of a selected member
type MemberStatus struct {
	Member
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	PaidStatus      PaidStatus      `json:"paid_status"`
	Outstanding     decimal.Decimal `json:"outstanding"`
	LastPaymentDate string          `json:"last_payment_date,omitempty"`
}

// PaymentRecord represents one payments-ledger row. StudentID may be empty
// (missing identifier). PaymentDate is an opaque pass-through value.
type PaymentRecord struct {
	StudentID   string          `json:"student_id,omitempty"`
	FullName    string          `json:"full_name"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate string          `json:"payment_date"`
}

// MatchType is the final disposition of a payment record
type MatchType string

const (
	MatchedByStudentID MatchType = "StudentID"
	MatchedByFuzzyName MatchType = "FuzzyName"
	Unmatched          MatchType = "Unmatched"
)

// ResolvedPayment is a payment annotated with its disposition
type ResolvedPayment struct {
	PaymentRecord
	ResolvedStudentID *string   `json:"resolved_student_id"`
	MatchType         MatchType `json:"match_type"`
}

// FuzzySuggestion pairs an as-entered payment name with the roster name it
// was approximately matched to, for human review.
type FuzzySuggestion struct {
	EnteredName   string `json:"entered_name"`
	SuggestedName string `json:"suggested_name"`
}

// BookingRecord represents one external facility-booking row. BookingStart
// is opaque and never parsed.
type BookingRecord struct {
	BookingID    string          `json:"booking_id"`
	FullName     string          `json:"full_name"`
	BookingStart string          `json:"booking_start"`
	Hours        decimal.Decimal `json:"hours"`
	AmountPaid   decimal.Decimal `json:"amount_paid"`
}

// BookingReport is a booking annotated with its expected charge and flags
type BookingReport struct {
	BookingRecord
	Expected       decimal.Decimal `json:"expected"`
	Underpaid      bool            `json:"underpaid"`
	MissingPayment bool            `json:"missing_payment"`
}

// HasIssue reports whether the booking needs follow-up. Underpaid and
// missing-payment are not exclusive; issues are the union.
func (b BookingReport) HasIssue() bool {
	return b.Underpaid || b.MissingPayment
}

// RunStatus represents the status of a reconciliation run
type RunStatus string

const (
	Pending    RunStatus = "PENDING"
	Processing RunStatus = "PROCESSING"
	Completed  RunStatus = "COMPLETED"
	Failed     RunStatus = "FAILED"
)

// ReconciliationRun is the persisted bookkeeping record for one run
type ReconciliationRun struct {
	ID                int             `json:"id" db:"id"`
	RunID             string          `json:"run_id" db:"run_id"`
	Status            RunStatus       `json:"status" db:"status"`
	TotalSelected     int             `json:"total_selected" db:"total_selected"`
	TotalPayments     int             `json:"total_payments" db:"total_payments"`
	TotalMatched      int             `json:"total_matched" db:"total_matched"`
	TotalUnmatched    int             `json:"total_unmatched" db:"total_unmatched"`
	TotalNotSelected  int             `json:"total_not_selected" db:"total_not_selected"`
	TotalBookings     int             `json:"total_bookings" db:"total_bookings"`
	TotalBookingIssue int             `json:"total_booking_issues" db:"total_booking_issues"`
	CollectedAmount   decimal.Decimal `json:"collected_amount" db:"collected_amount"`
	ErrorMessage      *string         `json:"error_message,omitempty" db:"error_message"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at" db:"updated_at"`
}

// ReconciliationResult is the immutable output of one run. It is built once
// by the reconciliation service and handed to reporting and export; nothing
// mutates it afterwards.
type ReconciliationResult struct {
	RunID           string            `json:"run_id"`
	Selected        []MemberStatus    `json:"selected"`
	Resolved        []ResolvedPayment `json:"resolved"`
	PaidNotSelected []ResolvedPayment `json:"paid_not_selected"`
	Unmatched       []ResolvedPayment `json:"unmatched"`
	Suggestions     []FuzzySuggestion `json:"fuzzy_suggestions"`
	Bookings        []BookingReport   `json:"bookings"`
	BookingIssues   []BookingReport   `json:"booking_issues"`
	Summary         string            `json:"summary"`
}
