package service_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"membership-recon/internal/domain"
	"membership-recon/internal/exporter"
	"membership-recon/internal/service"
)

type fakeMemberRepo struct {
	members []domain.Member
}

func (r *fakeMemberRepo) Create(member *domain.Member) error {
	r.members = append(r.members, *member)
	return nil
}

func (r *fakeMemberRepo) BulkUpsert(members []domain.Member) error {
	r.members = append(r.members, members...)
	return nil
}

func (r *fakeMemberRepo) GetByStudentID(studentID string) (*domain.Member, error) {
	for _, m := range r.members {
		if m.StudentID == studentID {
			return &m, nil
		}
	}
	return nil, fmt.Errorf("roster member not found")
}

func (r *fakeMemberRepo) GetAll() ([]domain.Member, error) {
	return r.members, nil
}

func (r *fakeMemberRepo) GetSelected() ([]domain.Member, error) {
	var selected []domain.Member
	for _, m := range r.members {
		if m.Selected {
			selected = append(selected, m)
		}
	}
	return selected, nil
}

type fakeRunRepo struct {
	runs         map[string]*domain.ReconciliationRun
	dispositions map[string][]domain.ResolvedPayment
}

func newFakeRunRepo() *fakeRunRepo {
	return &fakeRunRepo{
		runs:         make(map[string]*domain.ReconciliationRun),
		dispositions: make(map[string][]domain.ResolvedPayment),
	}
}

func (r *fakeRunRepo) CreateRun(run *domain.ReconciliationRun) error {
	run.CreatedAt = time.Now()
	run.UpdatedAt = run.CreatedAt
	copied := *run
	r.runs[run.RunID] = &copied
	return nil
}

func (r *fakeRunRepo) UpdateRun(run *domain.ReconciliationRun) error {
	copied := *run
	r.runs[run.RunID] = &copied
	return nil
}

func (r *fakeRunRepo) GetRunByID(runID string) (*domain.ReconciliationRun, error) {
	run, ok := r.runs[runID]
	if !ok {
		return nil, fmt.Errorf("reconciliation run not found")
	}
	return run, nil
}

func (r *fakeRunRepo) BulkCreateDispositions(runID string, payments []domain.ResolvedPayment) error {
	r.dispositions[runID] = payments
	return nil
}

func (r *fakeRunRepo) GetDispositionsByRunID(runID string) ([]domain.ResolvedPayment, error) {
	return r.dispositions[runID], nil
}

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	err := os.WriteFile(path, []byte(content), 0o644)
	assert.NoError(t, err)
	return path
}

func newService(runRepo *fakeRunRepo, memberRepo *fakeMemberRepo, exportDir string) service.ReconciliationService {
	return service.NewReconciliationService(
		memberRepo, runRepo,
		decimal.NewFromInt(120), decimal.NewFromInt(5), 0.86,
		exporter.NewCSVWriter(exportDir),
	)
}

const rosterCSV = `StudentID,FullName,Team,IsSelectedOfficialTeam
1,Jon Tan,Badminton,Yes
2,Casual Chan,Badminton,No
`

const paymentsCSV = `StudentID,FullName,Amount,PaymentDate
1,Jon Tan,50,2024-09-01
,John Tann,80,2024-09-15
,Total Stranger,99,2024-09-20
`

const bookingsCSV = `BookingID,FullName,BookingStart,Hours,AmountPaid
B1,External Hirer,2024-09-01 18:00,3,10
B2,Another Hirer,2024-09-02 19:00,2,10
`

func TestReconcile_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	runRepo := newFakeRunRepo()
	svc := newService(runRepo, &fakeMemberRepo{}, filepath.Join(dir, "exports"))

	result, err := svc.Reconcile(
		writeFixture(t, dir, "roster.csv", rosterCSV),
		writeFixture(t, dir, "payments.csv", paymentsCSV),
		writeFixture(t, dir, "bookings.csv", bookingsCSV),
	)

	assert.NoError(t, err)
	assert.Len(t, result.Selected, 1)
	assert.True(t, result.Selected[0].PaidAmount.Equal(decimal.NewFromInt(130)))
	assert.Equal(t, domain.Paid, result.Selected[0].PaidStatus)
	assert.Len(t, result.Suggestions, 1)
	assert.Len(t, result.Unmatched, 1)
	assert.Len(t, result.Bookings, 2)
	assert.Len(t, result.BookingIssues, 1)
	assert.Contains(t, result.Summary, "Total selected members: 1")

	run, err := svc.GetRunStatus(result.RunID)
	assert.NoError(t, err)
	assert.Equal(t, domain.Completed, run.Status)
	assert.Equal(t, 1, run.TotalSelected)
	assert.Equal(t, 3, run.TotalPayments)
	assert.Equal(t, 2, run.TotalMatched)
	assert.Equal(t, 1, run.TotalUnmatched)
	assert.Equal(t, 0, run.TotalNotSelected)
	assert.Equal(t, 2, run.TotalBookings)
	assert.Equal(t, 1, run.TotalBookingIssue)
	assert.True(t, run.CollectedAmount.Equal(decimal.NewFromInt(130)))

	assert.Len(t, runRepo.dispositions[result.RunID], 3)

	path, err := svc.GetReportPath(result.RunID, exporter.ReportSelectedStatus)
	assert.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestReconcile_BadPaymentsFileAbortsRun(t *testing.T) {
	dir := t.TempDir()
	runRepo := newFakeRunRepo()
	svc := newService(runRepo, &fakeMemberRepo{}, filepath.Join(dir, "exports"))

	_, err := svc.Reconcile(
		writeFixture(t, dir, "roster.csv", rosterCSV),
		writeFixture(t, dir, "payments.csv", "StudentID,FullName\n1,Jon Tan\n"),
		writeFixture(t, dir, "bookings.csv", bookingsCSV),
	)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load payments")

	// the run is recorded as failed and nothing was exported
	for _, run := range runRepo.runs {
		assert.Equal(t, domain.Failed, run.Status)
		assert.NotNil(t, run.ErrorMessage)
	}
	_, statErr := os.Stat(filepath.Join(dir, "exports"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestReconcile_BrokenBookingsStillReconcilesMembership(t *testing.T) {
	dir := t.TempDir()
	runRepo := newFakeRunRepo()
	svc := newService(runRepo, &fakeMemberRepo{}, filepath.Join(dir, "exports"))

	result, err := svc.Reconcile(
		writeFixture(t, dir, "roster.csv", rosterCSV),
		writeFixture(t, dir, "payments.csv", paymentsCSV),
		writeFixture(t, dir, "bookings.csv", "BookingID\nB1\n"),
	)

	assert.NoError(t, err)
	assert.Len(t, result.Selected, 1)
	assert.Empty(t, result.Bookings)

	run, err := svc.GetRunStatus(result.RunID)
	assert.NoError(t, err)
	assert.Equal(t, domain.Completed, run.Status)
	assert.NotNil(t, run.ErrorMessage)
}

func TestReconcile_RosterFallsBackToStore(t *testing.T) {
	dir := t.TempDir()
	runRepo := newFakeRunRepo()
	memberRepo := &fakeMemberRepo{members: []domain.Member{
		{StudentID: "1", FullName: "Jon Tan", Team: "Badminton", Selected: true},
	}}
	svc := newService(runRepo, memberRepo, filepath.Join(dir, "exports"))

	result, err := svc.Reconcile(
		"",
		writeFixture(t, dir, "payments.csv", paymentsCSV),
		writeFixture(t, dir, "bookings.csv", bookingsCSV),
	)

	assert.NoError(t, err)
	assert.Len(t, result.Selected, 1)
	assert.True(t, result.Selected[0].PaidAmount.Equal(decimal.NewFromInt(130)))
}

func TestReconcile_NoRosterAnywhere(t *testing.T) {
	dir := t.TempDir()
	svc := newService(newFakeRunRepo(), &fakeMemberRepo{}, filepath.Join(dir, "exports"))

	_, err := svc.Reconcile(
		"",
		writeFixture(t, dir, "payments.csv", paymentsCSV),
		writeFixture(t, dir, "bookings.csv", bookingsCSV),
	)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load roster")
}

func TestGetReportPath_UnknownRun(t *testing.T) {
	svc := newService(newFakeRunRepo(), &fakeMemberRepo{}, t.TempDir())

	_, err := svc.GetReportPath("no-such-run", exporter.ReportSummary)
	assert.Error(t, err)
}

func TestReconcile_RunsAreIsolated(t *testing.T) {
	dir := t.TempDir()
	runRepo := newFakeRunRepo()
	svc := newService(runRepo, &fakeMemberRepo{}, filepath.Join(dir, "exports"))

	rosterPath := writeFixture(t, dir, "roster.csv", rosterCSV)
	paymentsPath := writeFixture(t, dir, "payments.csv", paymentsCSV)
	bookingsPath := writeFixture(t, dir, "bookings.csv", bookingsCSV)

	first, err := svc.Reconcile(rosterPath, paymentsPath, bookingsPath)
	assert.NoError(t, err)
	second, err := svc.Reconcile(rosterPath, paymentsPath, bookingsPath)
	assert.NoError(t, err)

	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Equal(t, first.Selected, second.Selected)
	assert.Equal(t, first.Resolved, second.Resolved)
	assert.Equal(t, first.Unmatched, second.Unmatched)
	assert.Equal(t, first.Bookings, second.Bookings)
}
