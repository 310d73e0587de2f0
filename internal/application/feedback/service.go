package feedback

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/docinblink/api/internal/domain"
	"github.com/docinblink/api/internal/pkg/id"
)

type Store interface {
	Put(ctx context.Context, f *domain.Feedback) error
	ListByPatient(ctx context.Context, patientID string) ([]domain.Feedback, error)
}

type DoctorStore interface {
	GetByUserID(ctx context.Context, userID string) (*domain.Doctor, error)
}

// Service lets doctors send feedback messages to patients.
type Service interface {
	Create(ctx context.Context, doctorUserID string, req domain.CreateFeedbackRequest) (*domain.Feedback, error)
	ListForPatient(ctx context.Context, patientID string) ([]domain.Feedback, error)
}

type service struct {
	repo    Store
	doctors DoctorStore
}

func NewService(repo Store, doctors DoctorStore) Service {
	return &service{repo: repo, doctors: doctors}
}

func (s *service) Create(ctx context.Context, doctorUserID string, req domain.CreateFeedbackRequest) (*domain.Feedback, error) {
	d, err := s.doctors.GetByUserID(ctx, doctorUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("no doctor profile for account: %w", domain.ErrForbidden)
		}
		return nil, err
	}

	f := &domain.Feedback{
		FeedbackID: id.New(),
		DoctorID:   d.DoctorID,
		PatientID:  req.PatientID,
		Message:    req.Message,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Put(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) ListForPatient(ctx context.Context, patientID string) ([]domain.Feedback, error) {
	return s.repo.ListByPatient(ctx, patientID)
}
