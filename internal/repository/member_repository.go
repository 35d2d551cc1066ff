package repository

import (
	"database/sql"
	"fmt"

	"membership-recon/internal/domain"
	"membership-recon/pkg/logger"
)

type MemberRepository interface {
	Create(member *domain.Member) error
	BulkUpsert(members []domain.Member) error
	GetByStudentID(studentID string) (*domain.Member, error)
	GetAll() ([]domain.Member, error)
	GetSelected() ([]domain.Member, error)
}

type memberRepository struct {
	db *sql.DB
}

func NewMemberRepository(db *sql.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Create(member *domain.Member) error {
	query := `
		INSERT INTO roster_members (student_id, full_name, team, selected)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(query, member.StudentID, member.FullName, member.Team, member.Selected)
	if err != nil {
		logger.GetLogger().WithError(err).Error("Failed to create roster member")
		return err
	}

	return nil
}

// BulkUpsert replaces existing roster rows keyed by student_id
func (r *memberRepository) BulkUpsert(members []domain.Member) error {
	if len(members) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		logger.GetLogger().WithError(err).Error("Failed to begin transaction")
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO roster_members (student_id, full_name, team, selected)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (student_id) DO UPDATE
		SET full_name = EXCLUDED.full_name,
			team = EXCLUDED.team,
			selected = EXCLUDED.selected
	`)
	if err != nil {
		logger.GetLogger().WithError(err).Error("Failed to prepare statement")
		return err
	}
	defer stmt.Close()

	for _, member := range members {
		if _, err := stmt.Exec(member.StudentID, member.FullName, member.Team, member.Selected); err != nil {
			logger.GetLogger().WithError(err).WithField("student_id", member.StudentID).Error("Failed to upsert roster member")
			continue
		}
	}

	if err := tx.Commit(); err != nil {
		logger.GetLogger().WithError(err).Error("Failed to commit transaction")
		return err
	}

	return nil
}

func (r *memberRepository) GetByStudentID(studentID string) (*domain.Member, error) {
	query := `
		SELECT student_id, full_name, team, selected
		FROM roster_members
		WHERE student_id = $1
	`

	var member domain.Member
	err := r.db.QueryRow(query, studentID).Scan(
		&member.StudentID,
		&member.FullName,
		&member.Team,
		&member.Selected,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("roster member not found")
	}
	if err != nil {
		logger.GetLogger().WithError(err).Error("Failed to get roster member")
		return nil, err
	}

	return &member, nil
}

func (r *memberRepository) GetAll() ([]domain.Member, error) {
	return r.query(`
		SELECT student_id, full_name, team, selected
		FROM roster_members
		ORDER BY id
	`)
}

func (r *memberRepository) GetSelected() ([]domain.Member, error) {
	return r.query(`
		SELECT student_id, full_name, team, selected
		FROM roster_members
		WHERE selected = TRUE
		ORDER BY id
	`)
}

func (r *memberRepository) query(query string) ([]domain.Member, error) {
	rows, err := r.db.Query(query)
	if err != nil {
		logger.GetLogger().WithError(err).Error("Failed to query roster members")
		return nil, err
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		var member domain.Member
		if err := rows.Scan(&member.StudentID, &member.FullName, &member.Team, &member.Selected); err != nil {
			logger.GetLogger().WithError(err).Error("Failed to scan roster member")
			continue
		}
		members = append(members, member)
	}

	return members, rows.Err()
}
