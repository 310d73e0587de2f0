package appointment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/docinblink/api/internal/domain"
	"github.com/docinblink/api/internal/pkg/id"
)

type Store interface {
	Put(ctx context.Context, a *domain.Appointment) error
	Get(ctx context.Context, appointmentID string) (*domain.Appointment, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Appointment, error)
	ListByStatus(ctx context.Context, status string) ([]domain.Appointment, error)
	Update(ctx context.Context, appointmentID string, updates map[string]interface{}) error
}

type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

// Service handles the appointment booking lifecycle.
type Service interface {
	Create(ctx context.Context, userID string, req domain.CreateAppointmentRequest) (*domain.Appointment, error)
	Get(ctx context.Context, appointmentID string) (*domain.Appointment, error)
	ListForUser(ctx context.Context, userID string) ([]domain.Appointment, error)
	ListPending(ctx context.Context) ([]domain.Appointment, error)
	Accept(ctx context.Context, appointmentID, doctorID string, fee *float64) error
	Reject(ctx context.Context, appointmentID string) error
	ExpireStale(ctx context.Context) (int, error)
}

type ServiceDeps struct {
	Repo Store
	SMS  SMSSender
	Now  func() time.Time
}

type service struct {
	deps ServiceDeps
}

func NewService(deps ServiceDeps) Service {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &service{deps: deps}
}

func (s *service) Create(ctx context.Context, userID string, req domain.CreateAppointmentRequest) (*domain.Appointment, error) {
	preferred, err := time.Parse(time.RFC3339, req.PreferredTime)
	if err != nil {
		return nil, fmt.Errorf("preferred_time must be RFC 3339: %w", domain.ErrBadRequest)
	}

	now := s.deps.Now().UTC()
	a := &domain.Appointment{
		AppointmentID:  id.New(),
		UserID:         userID,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Address1:       req.Address1,
		Address2:       req.Address2,
		City:           req.City,
		State:          req.State,
		Pincode:        req.Pincode,
		Location:       req.Location,
		Symptoms:       req.Symptoms,
		MedicalHistory: req.MedicalHistory,
		NeedsAmbulance: req.NeedsAmbulance,
		PreferredTime:  preferred,
		Status:         domain.AppointmentPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.deps.Repo.Put(ctx, a); err != nil {
		return nil, err
	}

	s.notify(ctx, a.Phone, "Your DocInBlink appointment request has been received. We will confirm shortly.")
	return a, nil
}

func (s *service) Get(ctx context.Context, appointmentID string) (*domain.Appointment, error) {
	return s.deps.Repo.Get(ctx, appointmentID)
}

func (s *service) ListForUser(ctx context.Context, userID string) ([]domain.Appointment, error) {
	return s.deps.Repo.ListByUser(ctx, userID)
}

func (s *service) ListPending(ctx context.Context) ([]domain.Appointment, error) {
	return s.deps.Repo.ListByStatus(ctx, domain.AppointmentPending)
}

func (s *service) Accept(ctx context.Context, appointmentID, doctorID string, fee *float64) error {
	a, err := s.deps.Repo.Get(ctx, appointmentID)
	if err != nil {
		return err
	}
	if a.Status != domain.AppointmentPending {
		return fmt.Errorf("appointment is not pending: %w", domain.ErrConflict)
	}
	updates := map[string]interface{}{
		"status":    domain.AppointmentAccepted,
		"doctor_id": doctorID,
	}
	if fee != nil {
		updates["fee"] = *fee
	}
	if err := s.deps.Repo.Update(ctx, appointmentID, updates); err != nil {
		return err
	}

	s.notify(ctx, a.Phone, "Your DocInBlink appointment has been accepted.")
	return nil
}

func (s *service) Reject(ctx context.Context, appointmentID string) error {
	a, err := s.deps.Repo.Get(ctx, appointmentID)
	if err != nil {
		return err
	}
	if a.Status != domain.AppointmentPending {
		return fmt.Errorf("appointment is not pending: %w", domain.ErrConflict)
	}
	if err := s.deps.Repo.Update(ctx, appointmentID, map[string]interface{}{
		"status": domain.AppointmentRejected,
	}); err != nil {
		return err
	}

	s.notify(ctx, a.Phone, "Your DocInBlink appointment could not be scheduled. Please book a new slot.")
	return nil
}

// ExpireStale marks pending appointments whose preferred time has passed.
// It keeps going past individual failures and returns how many it expired.
func (s *service) ExpireStale(ctx context.Context) (int, error) {
	pending, err := s.deps.Repo.ListByStatus(ctx, domain.AppointmentPending)
	if err != nil {
		return 0, err
	}
	now := s.deps.Now()
	expired := 0
	for _, a := range pending {
		if a.PreferredTime.After(now) {
			continue
		}
		if err := s.deps.Repo.Update(ctx, a.AppointmentID, map[string]interface{}{
			"status": domain.AppointmentExpired,
		}); err != nil {
			slog.Warn("failed to expire appointment", "appointment_id", a.AppointmentID, "error", err)
			continue
		}
		expired++
	}
	return expired, nil
}

// notify sends a best-effort SMS; booking never fails because of it.
func (s *service) notify(ctx context.Context, phone, message string) {
	if s.deps.SMS == nil || phone == "" {
		return
	}
	if err := s.deps.SMS.SendSMS(ctx, phone, message); err != nil {
		slog.Warn("failed to send appointment SMS", "error", err)
	}
}
