package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"membership-recon/internal/domain"
	"membership-recon/internal/exporter"
	"membership-recon/internal/matcher"
	"membership-recon/internal/parser"
	"membership-recon/internal/report"
	"membership-recon/internal/repository"
	"membership-recon/pkg/logger"
)

type ReconciliationService interface {
	Reconcile(rosterPath, paymentsPath, bookingsPath string) (*domain.ReconciliationResult, error)
	GetRunStatus(runID string) (*domain.ReconciliationRun, error)
	GetReportPath(runID, name string) (string, error)
}

type reconciliationService struct {
	memberRepo repository.MemberRepository
	runRepo    repository.RunRepository
	engine     *matcher.MembershipEngine
	validator  *matcher.BookingValidator
	writer     *exporter.CSVWriter
	annualFee  decimal.Decimal
	now        func() time.Time
}

func NewReconciliationService(
	memberRepo repository.MemberRepository,
	runRepo repository.RunRepository,
	annualFee, hourlyRate decimal.Decimal,
	fuzzyCutoff float64,
	writer *exporter.CSVWriter,
) ReconciliationService {
	return &reconciliationService{
		memberRepo: memberRepo,
		runRepo:    runRepo,
		engine:     matcher.NewMembershipEngine(annualFee, fuzzyCutoff),
		validator:  matcher.NewBookingValidator(hourlyRate),
		writer:     writer,
		annualFee:  annualFee,
		now:        time.Now,
	}
}

// Reconcile runs one isolated reconciliation over a snapshot of the three
// input tables. The roster is read from the uploaded CSV when provided,
// otherwise from the database. The returned result is immutable; exports and
// run bookkeeping are written from it, never the other way around.
func (s *reconciliationService) Reconcile(rosterPath, paymentsPath, bookingsPath string) (*domain.ReconciliationResult, error) {
	runID := uuid.New().String()
	run := &domain.ReconciliationRun{
		RunID:           runID,
		Status:          domain.Processing,
		CollectedAmount: decimal.Zero,
	}

	if err := s.runRepo.CreateRun(run); err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	logger.GetLogger().WithField("run_id", runID).Info("Starting reconciliation run")

	roster, err := s.loadRoster(rosterPath)
	if err != nil {
		s.failRun(run, err)
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	payments, err := parser.NewPaymentsCSVParser().Parse(paymentsPath)
	if err != nil {
		s.failRun(run, err)
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}

	// The membership and booking pipelines are separable stages: a broken
	// bookings file is recorded on the run but does not block membership
	// reconciliation.
	bookings, bookingsErr := parser.NewBookingsCSVParser().Parse(bookingsPath)
	if bookingsErr != nil {
		logger.GetLogger().WithError(bookingsErr).Warn("Failed to load bookings, continuing with membership only")
	}

	membership, err := s.engine.Reconcile(matcher.MembershipInput{
		Roster:   roster,
		Payments: payments,
	})
	if err != nil {
		s.failRun(run, err)
		return nil, fmt.Errorf("reconciliation failed: %w", err)
	}

	allBookings, bookingIssues := s.validator.Validate(bookings)

	summary := report.Render(report.Input{
		Selected:        membership.Selected,
		PaidNotSelected: membership.PaidNotSelected,
		Unmatched:       membership.Unmatched,
		Bookings:        allBookings,
		BookingIssues:   bookingIssues,
		AnnualFee:       s.annualFee,
		GeneratedAt:     s.now(),
	})

	result := &domain.ReconciliationResult{
		RunID:           runID,
		Selected:        membership.Selected,
		Resolved:        membership.Resolved,
		PaidNotSelected: membership.PaidNotSelected,
		Unmatched:       membership.Unmatched,
		Suggestions:     membership.Suggestions,
		Bookings:        allBookings,
		BookingIssues:   bookingIssues,
		Summary:         summary,
	}

	if err := s.runRepo.BulkCreateDispositions(runID, result.Resolved); err != nil {
		logger.GetLogger().WithError(err).Error("Failed to save payment dispositions")
	}

	if s.writer != nil {
		if _, err := s.writer.WriteAll(result); err != nil {
			logger.GetLogger().WithError(err).Error("Failed to export run reports")
		}
	}

	run.Status = domain.Completed
	run.TotalSelected = len(result.Selected)
	run.TotalPayments = len(result.Resolved)
	run.TotalMatched = len(result.Resolved) - len(result.PaidNotSelected) - len(result.Unmatched)
	run.TotalUnmatched = len(result.Unmatched)
	run.TotalNotSelected = len(result.PaidNotSelected)
	run.TotalBookings = len(result.Bookings)
	run.TotalBookingIssue = len(result.BookingIssues)
	run.CollectedAmount = collectedAmount(result.Selected)
	if bookingsErr != nil {
		msg := bookingsErr.Error()
		run.ErrorMessage = &msg
	}

	if err := s.runRepo.UpdateRun(run); err != nil {
		logger.GetLogger().WithError(err).Error("Failed to update run")
	}

	logger.GetLogger().WithField("run_id", runID).Info("Reconciliation run completed")

	return result, nil
}

func (s *reconciliationService) GetRunStatus(runID string) (*domain.ReconciliationRun, error) {
	return s.runRepo.GetRunByID(runID)
}

func (s *reconciliationService) GetReportPath(runID, name string) (string, error) {
	if _, err := s.runRepo.GetRunByID(runID); err != nil {
		return "", err
	}

	path, ok := s.writer.ReportPath(runID, name)
	if !ok {
		return "", fmt.Errorf("unknown report: %s", name)
	}
	return path, nil
}

func (s *reconciliationService) loadRoster(rosterPath string) ([]domain.Member, error) {
	if rosterPath != "" {
		return parser.NewRosterCSVParser().Parse(rosterPath)
	}

	members, err := s.memberRepo.GetAll()
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("no roster uploaded and no roster members stored")
	}
	return members, nil
}

func (s *reconciliationService) failRun(run *domain.ReconciliationRun, cause error) {
	run.Status = domain.Failed
	msg := cause.Error()
	run.ErrorMessage = &msg

	if err := s.runRepo.UpdateRun(run); err != nil {
		logger.GetLogger().WithError(err).Error("Failed to mark run as failed")
	}
}

func collectedAmount(selected []domain.MemberStatus) decimal.Decimal {
	total := decimal.Zero
	for _, member := range selected {
		total = total.Add(member.PaidAmount)
	}
	return total
}
