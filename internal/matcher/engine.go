package matcher

import (
	"github.com/shopspring/decimal"

	"membership-recon/internal/domain"
	"membership-recon/pkg/logger"
)

// MembershipEngine links payment records to roster members and classifies
// each selected member's payment status. Matching runs as an explicit fold:
// build indexes over the selected roster, produce dispositions in two ordered
// passes (identifier first, then fuzzy name), then apply the credits. The
// identifier pass is authoritative; a payment it resolves is never
// reconsidered by the name pass.
type MembershipEngine struct {
	annualFee   decimal.Decimal
	fuzzyCutoff float64
}

func NewMembershipEngine(annualFee decimal.Decimal, fuzzyCutoff float64) *MembershipEngine {
	return &MembershipEngine{
		annualFee:   annualFee,
		fuzzyCutoff: fuzzyCutoff,
	}
}

// MembershipInput contains one snapshot of the roster and payments ledger
type MembershipInput struct {
	Roster   []domain.Member
	Payments []domain.PaymentRecord
}

// MembershipOutput contains the reconciled roster and the payment partition.
// PaidNotSelected, Unmatched and the matched subset of Resolved are mutually
// exclusive and together cover every payment.
type MembershipOutput struct {
	Selected        []domain.MemberStatus
	Resolved        []domain.ResolvedPayment
	PaidNotSelected []domain.ResolvedPayment
	Unmatched       []domain.ResolvedPayment
	Suggestions     []domain.FuzzySuggestion
}

// disposition records that payment index p was credited to selected slot s
type disposition struct {
	payment   int
	slot      int
	matchType domain.MatchType
}

// Reconcile runs both matching passes over one immutable snapshot
func (e *MembershipEngine) Reconcile(input MembershipInput) (*MembershipOutput, error) {
	selected, idIndex, nameIndex, names := e.buildSelectedSlots(input.Roster)

	logger.GetLogger().WithFields(map[string]interface{}{
		"roster_count":   len(input.Roster),
		"selected_count": len(selected),
		"payment_count":  len(input.Payments),
	}).Info("Starting membership reconciliation")

	matchType := make([]domain.MatchType, len(input.Payments))
	slotFor := make([]int, len(input.Payments))
	for i := range matchType {
		matchType[i] = domain.Unmatched
		slotFor[i] = -1
	}

	dispositions := make([]disposition, 0, len(input.Payments))
	suggestions := make([]domain.FuzzySuggestion, 0)

	// Pass 1: match by identifier against selected members
	for i, payment := range input.Payments {
		if payment.StudentID == "" {
			continue
		}
		slot, ok := idIndex[payment.StudentID]
		if !ok {
			continue
		}
		matchType[i] = domain.MatchedByStudentID
		slotFor[i] = slot
		dispositions = append(dispositions, disposition{payment: i, slot: slot, matchType: domain.MatchedByStudentID})
	}

	// Pass 2: fuzzy-match remaining payments by normalized name
	for i, payment := range input.Payments {
		if matchType[i] != domain.Unmatched {
			continue
		}
		name := NormalizeName(payment.FullName)
		if name == "" {
			continue
		}
		best, score, ok := ClosestName(name, names)
		if !ok || score < e.fuzzyCutoff {
			continue
		}
		slot := nameIndex[best]
		matchType[i] = domain.MatchedByFuzzyName
		slotFor[i] = slot
		dispositions = append(dispositions, disposition{payment: i, slot: slot, matchType: domain.MatchedByFuzzyName})

		if name != best {
			suggestions = append(suggestions, domain.FuzzySuggestion{
				EnteredName:   payment.FullName,
				SuggestedName: selected[slot].FullName,
			})
		}
	}

	// Apply credits in disposition order. Last applied payment's date wins.
	for _, d := range dispositions {
		payment := input.Payments[d.payment]
		slot := &selected[d.slot]
		slot.PaidAmount = slot.PaidAmount.Add(payment.Amount)
		slot.Outstanding = e.outstanding(slot.PaidAmount)
		slot.LastPaymentDate = payment.PaymentDate
	}

	// Classify every selected member
	for i := range selected {
		selected[i].PaidStatus = e.classify(selected[i].PaidAmount)
	}

	output := &MembershipOutput{
		Selected:        selected,
		Resolved:        make([]domain.ResolvedPayment, 0, len(input.Payments)),
		PaidNotSelected: make([]domain.ResolvedPayment, 0),
		Unmatched:       make([]domain.ResolvedPayment, 0),
		Suggestions:     suggestions,
	}

	// Route every payment not matched to a selected member: full-roster
	// correspondence (exact identifier or exact normalized name, no fuzzy
	// fallback here) means a non-selected member paid; no correspondence at
	// all means fully unmatched.
	rosterIDs, rosterNames := e.buildRosterSets(input.Roster)

	for i, payment := range input.Payments {
		resolved := domain.ResolvedPayment{
			PaymentRecord: payment,
			MatchType:     matchType[i],
		}
		if slotFor[i] >= 0 {
			resolved.ResolvedStudentID = &selected[slotFor[i]].StudentID
		}
		output.Resolved = append(output.Resolved, resolved)

		if matchType[i] != domain.Unmatched {
			continue
		}
		if e.knownToRoster(payment, rosterIDs, rosterNames) {
			output.PaidNotSelected = append(output.PaidNotSelected, resolved)
		} else {
			output.Unmatched = append(output.Unmatched, resolved)
		}
	}

	logger.GetLogger().WithFields(map[string]interface{}{
		"matched":           len(dispositions),
		"paid_not_selected": len(output.PaidNotSelected),
		"unmatched":         len(output.Unmatched),
		"suggestions":       len(suggestions),
	}).Info("Membership reconciliation completed")

	return output, nil
}

// buildSelectedSlots creates the working copy of the selected roster plus
// identifier and normalized-name indexes. On duplicates the first roster row
// wins; later rows never receive credit.
func (e *MembershipEngine) buildSelectedSlots(roster []domain.Member) ([]domain.MemberStatus, map[string]int, map[string]int, []string) {
	selected := make([]domain.MemberStatus, 0)
	idIndex := make(map[string]int)
	nameIndex := make(map[string]int)
	names := make([]string, 0)

	for _, member := range roster {
		if !member.Selected {
			continue
		}
		member.NormalizedName = NormalizeName(member.FullName)

		slot := len(selected)
		selected = append(selected, domain.MemberStatus{
			Member:      member,
			PaidAmount:  decimal.Zero,
			PaidStatus:  domain.Unpaid,
			Outstanding: e.annualFee,
		})

		if member.StudentID != "" {
			if _, exists := idIndex[member.StudentID]; !exists {
				idIndex[member.StudentID] = slot
			}
		}
		if member.NormalizedName != "" {
			if _, exists := nameIndex[member.NormalizedName]; !exists {
				nameIndex[member.NormalizedName] = slot
			}
			names = append(names, member.NormalizedName)
		}
	}

	return selected, idIndex, nameIndex, names
}

func (e *MembershipEngine) buildRosterSets(roster []domain.Member) (map[string]bool, map[string]bool) {
	ids := make(map[string]bool, len(roster))
	names := make(map[string]bool, len(roster))
	for _, member := range roster {
		if member.StudentID != "" {
			ids[member.StudentID] = true
		}
		if name := NormalizeName(member.FullName); name != "" {
			names[name] = true
		}
	}
	return ids, names
}

func (e *MembershipEngine) knownToRoster(payment domain.PaymentRecord, ids, names map[string]bool) bool {
	if payment.StudentID != "" && ids[payment.StudentID] {
		return true
	}
	if name := NormalizeName(payment.FullName); name != "" && names[name] {
		return true
	}
	return false
}

func (e *MembershipEngine) outstanding(paid decimal.Decimal) decimal.Decimal {
	remaining := e.annualFee.Sub(paid)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

func (e *MembershipEngine) classify(paid decimal.Decimal) domain.PaidStatus {
	switch {
	case paid.GreaterThanOrEqual(e.annualFee):
		return domain.Paid
	case paid.IsPositive():
		return domain.Underpaid
	default:
		return domain.Unpaid
	}
}
