package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/docinblink/api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct{ mock.Mock }

func (m *mockStore) Put(ctx context.Context, a *domain.Appointment) error {
	return m.Called(ctx, a).Error(0)
}
func (m *mockStore) Get(ctx context.Context, appointmentID string) (*domain.Appointment, error) {
	args := m.Called(ctx, appointmentID)
	if a, _ := args.Get(0).(*domain.Appointment); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockStore) ListByUser(ctx context.Context, userID string) ([]domain.Appointment, error) {
	args := m.Called(ctx, userID)
	if as, _ := args.Get(0).([]domain.Appointment); as != nil {
		return as, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockStore) ListByStatus(ctx context.Context, status string) ([]domain.Appointment, error) {
	args := m.Called(ctx, status)
	if as, _ := args.Get(0).([]domain.Appointment); as != nil {
		return as, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockStore) Update(ctx context.Context, appointmentID string, updates map[string]interface{}) error {
	return m.Called(ctx, appointmentID, updates).Error(0)
}

type mockSMS struct{ mock.Mock }

func (m *mockSMS) SendSMS(ctx context.Context, to, message string) error {
	return m.Called(ctx, to, message).Error(0)
}

func validRequest() domain.CreateAppointmentRequest {
	symptoms := "fever"
	return domain.CreateAppointmentRequest{
		Name:          "Pat Kumar",
		Email:         "pat@home.net",
		Phone:         "+919876543210",
		Address1:      "12 MG Road",
		City:          "Bengaluru",
		State:         "Karnataka",
		Pincode:       "560001",
		Location:      "home",
		Symptoms:      &symptoms,
		PreferredTime: time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
	}
}

func TestCreate(t *testing.T) {
	repo := &mockStore{}
	sms := &mockSMS{}
	repo.On("Put", mock.Anything, mock.MatchedBy(func(a *domain.Appointment) bool {
		return a.UserID == "u1" && a.Status == domain.AppointmentPending && a.AppointmentID != ""
	})).Return(nil)
	sms.On("SendSMS", mock.Anything, "+919876543210", mock.Anything).Return(nil)

	svc := NewService(ServiceDeps{Repo: repo, SMS: sms})
	a, err := svc.Create(context.Background(), "u1", validRequest())

	require.NoError(t, err)
	assert.Equal(t, domain.AppointmentPending, a.Status)
	repo.AssertExpectations(t)
	sms.AssertExpectations(t)
}

func TestCreate_BadPreferredTime(t *testing.T) {
	svc := NewService(ServiceDeps{Repo: &mockStore{}})
	req := validRequest()
	req.PreferredTime = "tomorrow morning"

	_, err := svc.Create(context.Background(), "u1", req)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestCreate_SMSFailureDoesNotFailBooking(t *testing.T) {
	repo := &mockStore{}
	sms := &mockSMS{}
	repo.On("Put", mock.Anything, mock.Anything).Return(nil)
	sms.On("SendSMS", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("sns down"))

	svc := NewService(ServiceDeps{Repo: repo, SMS: sms})
	_, err := svc.Create(context.Background(), "u1", validRequest())

	require.NoError(t, err)
}

func TestAccept(t *testing.T) {
	repo := &mockStore{}
	sms := &mockSMS{}
	fee := 500.0

	repo.On("Get", mock.Anything, "a1").Return(&domain.Appointment{
		AppointmentID: "a1", Phone: "+919876543210", Status: domain.AppointmentPending,
	}, nil)
	repo.On("Update", mock.Anything, "a1", map[string]interface{}{
		"status":    domain.AppointmentAccepted,
		"doctor_id": "d1",
		"fee":       fee,
	}).Return(nil)
	sms.On("SendSMS", mock.Anything, "+919876543210", mock.Anything).Return(nil)

	svc := NewService(ServiceDeps{Repo: repo, SMS: sms})
	require.NoError(t, svc.Accept(context.Background(), "a1", "d1", &fee))
	repo.AssertExpectations(t)
}

func TestAccept_NotPending(t *testing.T) {
	repo := &mockStore{}
	repo.On("Get", mock.Anything, "a1").Return(&domain.Appointment{
		AppointmentID: "a1", Status: domain.AppointmentRejected,
	}, nil)

	svc := NewService(ServiceDeps{Repo: repo})
	err := svc.Accept(context.Background(), "a1", "d1", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestReject(t *testing.T) {
	repo := &mockStore{}
	repo.On("Get", mock.Anything, "a1").Return(&domain.Appointment{
		AppointmentID: "a1", Status: domain.AppointmentPending,
	}, nil)
	repo.On("Update", mock.Anything, "a1", map[string]interface{}{
		"status": domain.AppointmentRejected,
	}).Return(nil)

	svc := NewService(ServiceDeps{Repo: repo})
	require.NoError(t, svc.Reject(context.Background(), "a1"))
	repo.AssertExpectations(t)
}

func TestExpireStale(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &mockStore{}

	repo.On("ListByStatus", mock.Anything, domain.AppointmentPending).Return([]domain.Appointment{
		{AppointmentID: "past", PreferredTime: now.Add(-2 * time.Hour), Status: domain.AppointmentPending},
		{AppointmentID: "future", PreferredTime: now.Add(2 * time.Hour), Status: domain.AppointmentPending},
		{AppointmentID: "stuck", PreferredTime: now.Add(-time.Hour), Status: domain.AppointmentPending},
	}, nil)
	repo.On("Update", mock.Anything, "past", map[string]interface{}{
		"status": domain.AppointmentExpired,
	}).Return(nil)
	repo.On("Update", mock.Anything, "stuck", map[string]interface{}{
		"status": domain.AppointmentExpired,
	}).Return(errors.New("conditional check failed"))

	svc := NewService(ServiceDeps{Repo: repo, Now: func() time.Time { return now }})
	expired, err := svc.ExpireStale(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, expired)
	repo.AssertNotCalled(t, "Update", mock.Anything, "future", mock.Anything)
}
