package service

import (
	"fmt"

	"membership-recon/internal/domain"
	"membership-recon/internal/parser"
	"membership-recon/internal/repository"
	"membership-recon/pkg/logger"
)

type MemberService interface {
	Create(member *domain.Member) error
	ImportRoster(filePath string) (int, error)
	GetByStudentID(studentID string) (*domain.Member, error)
	GetAll() ([]domain.Member, error)
	GetSelected() ([]domain.Member, error)
}

type memberService struct {
	repo repository.MemberRepository
}

func NewMemberService(repo repository.MemberRepository) MemberService {
	return &memberService{repo: repo}
}

func (s *memberService) Create(member *domain.Member) error {
	if err := s.validate(member); err != nil {
		return err
	}
	return s.repo.Create(member)
}

// ImportRoster loads a roster CSV into the database so later runs can
// reconcile without re-uploading it.
func (s *memberService) ImportRoster(filePath string) (int, error) {
	members, err := parser.NewRosterCSVParser().Parse(filePath)
	if err != nil {
		return 0, err
	}

	valid := make([]domain.Member, 0, len(members))
	for i, member := range members {
		if err := s.validate(&member); err != nil {
			logger.GetLogger().WithError(err).WithField("index", i).Warn("Invalid roster member, skipping")
			continue
		}
		valid = append(valid, member)
	}

	if err := s.repo.BulkUpsert(valid); err != nil {
		return 0, err
	}
	return len(valid), nil
}

func (s *memberService) GetByStudentID(studentID string) (*domain.Member, error) {
	if studentID == "" {
		return nil, fmt.Errorf("studentID cannot be empty")
	}
	return s.repo.GetByStudentID(studentID)
}

func (s *memberService) GetAll() ([]domain.Member, error) {
	return s.repo.GetAll()
}

func (s *memberService) GetSelected() ([]domain.Member, error) {
	return s.repo.GetSelected()
}

func (s *memberService) validate(member *domain.Member) error {
	if member.StudentID == "" {
		return fmt.Errorf("student ID is required")
	}
	if member.FullName == "" {
		return fmt.Errorf("full name is required")
	}
	return nil
}
