package family

import (
	"context"
	"fmt"
	"time"

	"github.com/docinblink/api/internal/domain"
	"github.com/docinblink/api/internal/pkg/id"
)

type Store interface {
	Put(ctx context.Context, m *domain.FamilyMember) error
	Get(ctx context.Context, memberID string) (*domain.FamilyMember, error)
	ListByUser(ctx context.Context, userID string) ([]domain.FamilyMember, error)
	HardDelete(ctx context.Context, memberID string) error
}

// Service manages an account's family members.
type Service interface {
	Create(ctx context.Context, userID string, req domain.CreateFamilyMemberRequest) (*domain.FamilyMember, error)
	Get(ctx context.Context, userID, memberID string) (*domain.FamilyMember, error)
	List(ctx context.Context, userID string) ([]domain.FamilyMember, error)
	Delete(ctx context.Context, userID, memberID string) error
}

type service struct {
	repo Store
}

func NewService(repo Store) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, userID string, req domain.CreateFamilyMemberRequest) (*domain.FamilyMember, error) {
	m := &domain.FamilyMember{
		MemberID:     id.New(),
		UserID:       userID,
		Name:         req.Name,
		Relationship: req.Relationship,
		DateOfBirth:  req.DateOfBirth,
		HealthIssues: req.HealthIssues,
		Allergies:    req.Allergies,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Put(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) Get(ctx context.Context, userID, memberID string) (*domain.FamilyMember, error) {
	m, err := s.repo.Get(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if m.UserID != userID {
		return nil, fmt.Errorf("family member belongs to another account: %w", domain.ErrForbidden)
	}
	return m, nil
}

func (s *service) List(ctx context.Context, userID string) ([]domain.FamilyMember, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Delete(ctx context.Context, userID, memberID string) error {
	if _, err := s.Get(ctx, userID, memberID); err != nil {
		return err
	}
	return s.repo.HardDelete(ctx, memberID)
}
