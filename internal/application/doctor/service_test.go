package doctor

import (
	"context"
	"errors"
	"testing"

	"github.com/docinblink/api/internal/application/doctorauth"
	"github.com/docinblink/api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct{ mock.Mock }

func (m *mockStore) Put(ctx context.Context, d *domain.Doctor) error {
	return m.Called(ctx, d).Error(0)
}
func (m *mockStore) Get(ctx context.Context, doctorID string) (*domain.Doctor, error) {
	args := m.Called(ctx, doctorID)
	if d, _ := args.Get(0).(*domain.Doctor); d != nil {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockStore) GetByUserID(ctx context.Context, userID string) (*domain.Doctor, error) {
	args := m.Called(ctx, userID)
	if d, _ := args.Get(0).(*domain.Doctor); d != nil {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockStore) Scan(ctx context.Context) ([]domain.Doctor, error) {
	args := m.Called(ctx)
	if ds, _ := args.Get(0).([]domain.Doctor); ds != nil {
		return ds, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockStore) Update(ctx context.Context, doctorID string, updates map[string]interface{}) error {
	return m.Called(ctx, doctorID, updates).Error(0)
}

func TestCreateDoctorProfile(t *testing.T) {
	repo := &mockStore{}
	repo.On("GetByUserID", mock.Anything, "u1").
		Return(nil, domain.ErrNotFound)
	repo.On("Put", mock.Anything, mock.MatchedBy(func(d *domain.Doctor) bool {
		return d.UserID == "u1" &&
			d.FullName == "Dr Jane" &&
			d.ExperienceYears == 10 &&
			d.ConsultationFee == 500 &&
			d.IsAvailable &&
			d.Enable == 1 &&
			d.DoctorID != ""
	})).Return(nil)

	svc := NewService(repo)
	err := svc.CreateDoctorProfile(context.Background(), "u1", doctorauth.DoctorProfile{
		FullName:        "Dr Jane",
		Specialization:  "Cardiology",
		Qualification:   "MBBS",
		ExperienceYears: 10,
		ConsultationFee: 500,
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCreateDoctorProfile_AlreadyExists(t *testing.T) {
	repo := &mockStore{}
	repo.On("GetByUserID", mock.Anything, "u1").Return(&domain.Doctor{DoctorID: "d1", UserID: "u1"}, nil)

	svc := NewService(repo)
	err := svc.CreateDoctorProfile(context.Background(), "u1", doctorauth.DoctorProfile{FullName: "Dr Jane"})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
	repo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestIsDoctor(t *testing.T) {
	t.Run("has profile", func(t *testing.T) {
		repo := &mockStore{}
		repo.On("GetByUserID", mock.Anything, "u1").Return(&domain.Doctor{DoctorID: "d1"}, nil)

		ok, err := NewService(repo).IsDoctor(context.Background(), "u1")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("no profile", func(t *testing.T) {
		repo := &mockStore{}
		repo.On("GetByUserID", mock.Anything, "u1").Return(nil, domain.ErrNotFound)

		ok, err := NewService(repo).IsDoctor(context.Background(), "u1")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("wrapped not found", func(t *testing.T) {
		repo := &mockStore{}
		repo.On("GetByUserID", mock.Anything, "u1").
			Return(nil, errors.Join(errors.New("doctor not found"), domain.ErrNotFound))

		ok, err := NewService(repo).IsDoctor(context.Background(), "u1")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("lookup failure propagates", func(t *testing.T) {
		repo := &mockStore{}
		repo.On("GetByUserID", mock.Anything, "u1").Return(nil, errors.New("table offline"))

		ok, err := NewService(repo).IsDoctor(context.Background(), "u1")
		require.Error(t, err)
		assert.False(t, ok)
	})

	t.Run("empty user id", func(t *testing.T) {
		repo := &mockStore{}

		ok, err := NewService(repo).IsDoctor(context.Background(), "")
		require.NoError(t, err)
		assert.False(t, ok)
		repo.AssertNotCalled(t, "GetByUserID", mock.Anything, mock.Anything)
	})
}

func TestSetAvailability(t *testing.T) {
	repo := &mockStore{}
	repo.On("GetByUserID", mock.Anything, "u1").Return(&domain.Doctor{DoctorID: "d1", UserID: "u1"}, nil)
	repo.On("Update", mock.Anything, "d1", map[string]interface{}{"is_available": false}).Return(nil)

	svc := NewService(repo)
	require.NoError(t, svc.SetAvailability(context.Background(), "u1", false))
	repo.AssertExpectations(t)
}
