package repository

import (
	"database/sql"
	"fmt"

	"membership-recon/internal/domain"
	"membership-recon/pkg/logger"
)

type RunRepository interface {
	CreateRun(run *domain.ReconciliationRun) error
	UpdateRun(run *domain.ReconciliationRun) error
	GetRunByID(runID string) (*domain.ReconciliationRun, error)
	BulkCreateDispositions(runID string, payments []domain.ResolvedPayment) error
	GetDispositionsByRunID(runID string) ([]domain.ResolvedPayment, error)
}

type runRepository struct {
	db *sql.DB
}

func NewRunRepository(db *sql.DB) RunRepository {
	return &runRepository{db: db}
}

func (r *runRepository) CreateRun(run *domain.ReconciliationRun) error {
	query := `
		INSERT INTO reconciliation_runs (
			run_id, status, total_selected, total_payments, total_matched,
			total_unmatched, total_not_selected, total_bookings,
			total_booking_issues, collected_amount
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		query,
		run.RunID,
		run.Status,
		run.TotalSelected,
		run.TotalPayments,
		run.TotalMatched,
		run.TotalUnmatched,
		run.TotalNotSelected,
		run.TotalBookings,
		run.TotalBookingIssue,
		run.CollectedAmount,
	).Scan(&run.ID, &run.CreatedAt, &run.UpdatedAt)

	if err != nil {
		logger.GetLogger().WithError(err).Error("Failed to create reconciliation run")
		return err
	}

	return nil
}

func (r *runRepository) UpdateRun(run *domain.ReconciliationRun) error {
	query := `
		UPDATE reconciliation_runs
		SET status = $1, total_selected = $2, total_payments = $3,
			total_matched = $4, total_unmatched = $5, total_not_selected = $6,
			total_bookings = $7, total_booking_issues = $8,
			collected_amount = $9, error_message = $10, updated_at = NOW()
		WHERE run_id = $11
	`

	_, err := r.db.Exec(
		query,
		run.Status,
		run.TotalSelected,
		run.TotalPayments,
		run.TotalMatched,
		run.TotalUnmatched,
		run.TotalNotSelected,
		run.TotalBookings,
		run.TotalBookingIssue,
		run.CollectedAmount,
		run.ErrorMessage,
		run.RunID,
	)

	if err != nil {
		logger.GetLogger().WithError(err).Error("Failed to update reconciliation run")
		return err
	}

	return nil
}

func (r *runRepository) GetRunByID(runID string) (*domain.ReconciliationRun, error) {
	query := `
		SELECT id, run_id, status, total_selected, total_payments,
			   total_matched, total_unmatched, total_not_selected,
			   total_bookings, total_booking_issues, collected_amount,
			   error_message, created_at, updated_at
		FROM reconciliation_runs
		WHERE run_id = $1
	`

	var run domain.ReconciliationRun
	err := r.db.QueryRow(query, runID).Scan(
		&run.ID,
		&run.RunID,
		&run.Status,
		&run.TotalSelected,
		&run.TotalPayments,
		&run.TotalMatched,
		&run.TotalUnmatched,
		&run.TotalNotSelected,
		&run.TotalBookings,
		&run.TotalBookingIssue,
		&run.CollectedAmount,
		&run.ErrorMessage,
		&run.CreatedAt,
		&run.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("reconciliation run not found")
	}
	if err != nil {
		logger.GetLogger().WithError(err).Error("Failed to get reconciliation run")
		return nil, err
	}

	return &run, nil
}

func (r *runRepository) BulkCreateDispositions(runID string, payments []domain.ResolvedPayment) error {
	if len(payments) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		logger.GetLogger().WithError(err).Error("Failed to begin transaction")
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO payment_dispositions (
			run_id, student_id, full_name, amount, payment_date,
			resolved_student_id, match_type
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`)
	if err != nil {
		logger.GetLogger().WithError(err).Error("Failed to prepare statement")
		return err
	}
	defer stmt.Close()

	for _, payment := range payments {
		_, err := stmt.Exec(
			runID,
			payment.StudentID,
			payment.FullName,
			payment.Amount,
			payment.PaymentDate,
			payment.ResolvedStudentID,
			payment.MatchType,
		)
		if err != nil {
			logger.GetLogger().WithError(err).Error("Failed to insert payment disposition")
			continue
		}
	}

	if err := tx.Commit(); err != nil {
		logger.GetLogger().WithError(err).Error("Failed to commit transaction")
		return err
	}

	return nil
}

func (r *runRepository) GetDispositionsByRunID(runID string) ([]domain.ResolvedPayment, error) {
	query := `
		SELECT student_id, full_name, amount, payment_date,
			   resolved_student_id, match_type
		FROM payment_dispositions
		WHERE run_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(query, runID)
	if err != nil {
		logger.GetLogger().WithError(err).Error("Failed to query payment dispositions")
		return nil, err
	}
	defer rows.Close()

	var payments []domain.ResolvedPayment
	for rows.Next() {
		var payment domain.ResolvedPayment
		err := rows.Scan(
			&payment.StudentID,
			&payment.FullName,
			&payment.Amount,
			&payment.PaymentDate,
			&payment.ResolvedStudentID,
			&payment.MatchType,
		)
		if err != nil {
			logger.GetLogger().WithError(err).Error("Failed to scan payment disposition")
			continue
		}
		payments = append(payments, payment)
	}

	return payments, rows.Err()
}
