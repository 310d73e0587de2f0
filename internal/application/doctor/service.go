package doctor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/docinblink/api/internal/application/doctorauth"
	"github.com/docinblink/api/internal/domain"
	"github.com/docinblink/api/internal/pkg/id"
)

type Store interface {
	Put(ctx context.Context, d *domain.Doctor) error
	Get(ctx context.Context, doctorID string) (*domain.Doctor, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Doctor, error)
	Scan(ctx context.Context) ([]domain.Doctor, error)
	Update(ctx context.Context, doctorID string, updates map[string]interface{}) error
}

// Service manages doctor profiles and answers role checks.
type Service interface {
	CreateDoctorProfile(ctx context.Context, userID string, p doctorauth.DoctorProfile) error
	IsDoctor(ctx context.Context, userID string) (bool, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Doctor, error)
	List(ctx context.Context) ([]domain.Doctor, error)
	SetAvailability(ctx context.Context, userID string, available bool) error
}

type service struct {
	repo Store
}

func NewService(repo Store) Service {
	return &service{repo: repo}
}

func (s *service) CreateDoctorProfile(ctx context.Context, userID string, p doctorauth.DoctorProfile) error {
	if _, err := s.repo.GetByUserID(ctx, userID); err == nil {
		return fmt.Errorf("doctor profile already exists: %w", domain.ErrConflict)
	}
	now := time.Now().UTC()
	return s.repo.Put(ctx, &domain.Doctor{
		DoctorID:        id.New(),
		UserID:          userID,
		FullName:        p.FullName,
		Specialization:  p.Specialization,
		Qualification:   p.Qualification,
		ExperienceYears: p.ExperienceYears,
		ConsultationFee: p.ConsultationFee,
		IsAvailable:     true,
		Enable:          1,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
}

// IsDoctor reports whether userID has a doctor profile. A missing row means
// no; any other lookup failure propagates so callers never treat an outage
// as a role answer.
func (s *service) IsDoctor(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	if _, err := s.repo.GetByUserID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *service) GetByUserID(ctx context.Context, userID string) (*domain.Doctor, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *service) List(ctx context.Context) ([]domain.Doctor, error) {
	return s.repo.Scan(ctx)
}

func (s *service) SetAvailability(ctx context.Context, userID string, available bool) error {
	d, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, d.DoctorID, map[string]interface{}{"is_available": available})
}
