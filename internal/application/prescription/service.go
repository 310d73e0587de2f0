package prescription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/docinblink/api/internal/domain"
	"github.com/docinblink/api/internal/pkg/id"
)

type Store interface {
	Put(ctx context.Context, p *domain.Prescription) error
	ListByPatient(ctx context.Context, patientID string) ([]domain.Prescription, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]domain.Prescription, error)
}

type DoctorStore interface {
	GetByUserID(ctx context.Context, userID string) (*domain.Doctor, error)
}

// Service lets doctors issue prescriptions and both sides read them back.
type Service interface {
	Create(ctx context.Context, doctorUserID string, req domain.CreatePrescriptionRequest) (*domain.Prescription, error)
	ListForPatient(ctx context.Context, patientID string) ([]domain.Prescription, error)
	ListForDoctor(ctx context.Context, doctorUserID string) ([]domain.Prescription, error)
}

type service struct {
	repo    Store
	doctors DoctorStore
}

func NewService(repo Store, doctors DoctorStore) Service {
	return &service{repo: repo, doctors: doctors}
}

func (s *service) Create(ctx context.Context, doctorUserID string, req domain.CreatePrescriptionRequest) (*domain.Prescription, error) {
	d, err := s.resolveDoctor(ctx, doctorUserID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &domain.Prescription{
		PrescriptionID: id.New(),
		DoctorID:       d.DoctorID,
		PatientID:      req.PatientID,
		MedicationName: req.MedicationName,
		Dosage:         req.Dosage,
		Frequency:      req.Frequency,
		Duration:       req.Duration,
		Notes:          req.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Put(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) ListForPatient(ctx context.Context, patientID string) ([]domain.Prescription, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *service) ListForDoctor(ctx context.Context, doctorUserID string) ([]domain.Prescription, error) {
	d, err := s.resolveDoctor(ctx, doctorUserID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByDoctor(ctx, d.DoctorID)
}

func (s *service) resolveDoctor(ctx context.Context, userID string) (*domain.Doctor, error) {
	d, err := s.doctors.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("no doctor profile for account: %w", domain.ErrForbidden)
		}
		return nil, err
	}
	return d, nil
}
