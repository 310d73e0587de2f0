package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/docinblink/api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- mocks ---

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Put(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *mockUserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockSessionStore struct{ mock.Mock }

func (m *mockSessionStore) Put(ctx context.Context, s *domain.Session) error {
	return m.Called(ctx, s).Error(0)
}
func (m *mockSessionStore) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	args := m.Called(ctx, sessionID)
	if s, _ := args.Get(0).(*domain.Session); s != nil {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockSessionStore) Update(ctx context.Context, sessionID string, updates map[string]interface{}) error {
	return m.Called(ctx, sessionID, updates).Error(0)
}
func (m *mockSessionStore) GetByRefreshToken(ctx context.Context, token string) (*domain.Session, error) {
	args := m.Called(ctx, token)
	if s, _ := args.Get(0).(*domain.Session); s != nil {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockSessionStore) RotateRefreshToken(ctx context.Context, sessionID, newToken string, newExpiry int64) error {
	return m.Called(ctx, sessionID, newToken, newExpiry).Error(0)
}

type mockProfileStore struct{ mock.Mock }

func (m *mockProfileStore) Put(ctx context.Context, p *domain.Profile) error {
	return m.Called(ctx, p).Error(0)
}

type mockJWTSigner struct{ mock.Mock }

func (m *mockJWTSigner) Sign(userID, role, sessionID string) (string, error) {
	args := m.Called(userID, role, sessionID)
	return args.String(0), args.Error(1)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendEmail(to, subject, body string) error {
	return m.Called(to, subject, body).Error(0)
}

// --- builder ---

func newService(us *mockUserStore, ss *mockSessionStore, ps *mockProfileStore, jwt *mockJWTSigner, ml *mockMailer) Service {
	return NewService(ServiceDeps{
		UserRepo:        us,
		SessionRepo:     ss,
		ProfileRepo:     ps,
		JWTProvider:     jwt,
		Mailer:          ml,
		RefreshTokenDur: 30 * 24 * time.Hour,
	})
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

// --- tests ---

func TestRegister_CreatesUserProfileAndSession(t *testing.T) {
	us := &mockUserStore{}
	ss := &mockSessionStore{}
	ps := &mockProfileStore{}
	jwt := &mockJWTSigner{}
	ml := &mockMailer{}

	us.On("GetByEmail", mock.Anything, "doc@clinic.org").Return(nil, errors.New("not found"))
	us.On("Put", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "doc@clinic.org" && u.Role == domain.RoleDoctor && u.Enable == 1
	})).Return(nil)
	ps.On("Put", mock.Anything, mock.MatchedBy(func(p *domain.Profile) bool {
		return p.UserID != "" && p.FullName != nil && *p.FullName == "Dr Jane"
	})).Return(nil)
	ss.On("Put", mock.Anything, mock.AnythingOfType("*domain.Session")).Return(nil)
	jwt.On("Sign", mock.Anything, domain.RoleDoctor, mock.Anything).Return("bearer-token", nil)
	ml.On("SendEmail", "doc@clinic.org", mock.Anything, mock.Anything).Return(nil)

	svc := newService(us, ss, ps, jwt, ml)
	res, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "doc@clinic.org",
		Password: "secret123",
		FullName: "Dr Jane",
		Role:     domain.RoleDoctor,
	})

	require.NoError(t, err)
	assert.Equal(t, "bearer-token", res.Bearer)
	assert.NotEmpty(t, res.RefreshToken)
	require.NotNil(t, res.Session.User)
	assert.Equal(t, domain.RoleDoctor, res.Session.User.Role)
	us.AssertExpectations(t)
	ss.AssertExpectations(t)
	ps.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "dup@clinic.org").Return(&domain.User{UserID: "u1"}, nil)

	svc := newService(us, &mockSessionStore{}, &mockProfileStore{}, &mockJWTSigner{}, &mockMailer{})
	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "dup@clinic.org",
		Password: "secret123",
		FullName: "Dr Dup",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRegister_DefaultsToPatientRole(t *testing.T) {
	us := &mockUserStore{}
	ss := &mockSessionStore{}
	ps := &mockProfileStore{}
	jwt := &mockJWTSigner{}

	us.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, errors.New("not found"))
	us.On("Put", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Role == domain.RolePatient
	})).Return(nil)
	ps.On("Put", mock.Anything, mock.Anything).Return(nil)
	ss.On("Put", mock.Anything, mock.Anything).Return(nil)
	jwt.On("Sign", mock.Anything, domain.RolePatient, mock.Anything).Return("bearer", nil)

	svc := NewService(ServiceDeps{
		UserRepo: us, SessionRepo: ss, ProfileRepo: ps, JWTProvider: jwt,
		RefreshTokenDur: time.Hour,
	})
	_, err := svc.Register(context.Background(), RegisterRequest{
		Email: "pat@home.net", Password: "secret123", FullName: "Pat",
	})

	require.NoError(t, err)
	us.AssertExpectations(t)
}

func TestLogin_Success(t *testing.T) {
	us := &mockUserStore{}
	ss := &mockSessionStore{}
	jwt := &mockJWTSigner{}

	u := &domain.User{
		UserID: "u1", Email: "doc@clinic.org", Role: domain.RoleDoctor,
		Enable: 1, PasswordHash: hashOf(t, "secret123"),
	}
	us.On("GetByEmail", mock.Anything, "doc@clinic.org").Return(u, nil)
	ss.On("Put", mock.Anything, mock.AnythingOfType("*domain.Session")).Return(nil)
	jwt.On("Sign", "u1", domain.RoleDoctor, mock.Anything).Return("bearer-token", nil)

	svc := newService(us, ss, &mockProfileStore{}, jwt, &mockMailer{})
	res, err := svc.Login(context.Background(), LoginRequest{Email: "doc@clinic.org", Password: "secret123"})

	require.NoError(t, err)
	assert.Equal(t, "bearer-token", res.Bearer)
	assert.Equal(t, "u1", res.Session.UserID)
}

func TestLogin_WrongPassword(t *testing.T) {
	us := &mockUserStore{}
	u := &domain.User{UserID: "u1", Enable: 1, PasswordHash: hashOf(t, "secret123")}
	us.On("GetByEmail", mock.Anything, mock.Anything).Return(u, nil)

	svc := newService(us, &mockSessionStore{}, &mockProfileStore{}, &mockJWTSigner{}, &mockMailer{})
	_, err := svc.Login(context.Background(), LoginRequest{Email: "doc@clinic.org", Password: "wrong"})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_DisabledAccount(t *testing.T) {
	us := &mockUserStore{}
	u := &domain.User{UserID: "u1", Enable: 0, PasswordHash: hashOf(t, "secret123")}
	us.On("GetByEmail", mock.Anything, mock.Anything).Return(u, nil)

	svc := newService(us, &mockSessionStore{}, &mockProfileStore{}, &mockJWTSigner{}, &mockMailer{})
	_, err := svc.Login(context.Background(), LoginRequest{Email: "doc@clinic.org", Password: "secret123"})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestGetCurrent_ExpiredSession(t *testing.T) {
	ss := &mockSessionStore{}
	ss.On("Get", mock.Anything, "s1").Return(&domain.Session{SessionID: "s1", Enable: false}, nil)

	svc := newService(&mockUserStore{}, ss, &mockProfileStore{}, &mockJWTSigner{}, &mockMailer{})
	_, err := svc.GetCurrent(context.Background(), "s1")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRefresh_ExpiredToken(t *testing.T) {
	ss := &mockSessionStore{}
	ss.On("GetByRefreshToken", mock.Anything, "tok").Return(&domain.Session{
		SessionID: "s1", RefreshExpiresAt: time.Now().Add(-time.Hour).Unix(),
	}, nil)

	svc := newService(&mockUserStore{}, ss, &mockProfileStore{}, &mockJWTSigner{}, &mockMailer{})
	_, _, err := svc.Refresh(context.Background(), "tok")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRefresh_RotatesToken(t *testing.T) {
	us := &mockUserStore{}
	ss := &mockSessionStore{}
	jwt := &mockJWTSigner{}

	ss.On("GetByRefreshToken", mock.Anything, "tok").Return(&domain.Session{
		SessionID: "s1", UserID: "u1", Enable: true,
		RefreshExpiresAt: time.Now().Add(time.Hour).Unix(),
	}, nil)
	ss.On("RotateRefreshToken", mock.Anything, "s1", mock.Anything, mock.Anything).Return(nil)
	us.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", Role: domain.RolePatient, Enable: 1}, nil)
	jwt.On("Sign", "u1", domain.RolePatient, "s1").Return("new-bearer", nil)

	svc := newService(us, ss, &mockProfileStore{}, jwt, &mockMailer{})
	bearer, newToken, err := svc.Refresh(context.Background(), "tok")

	require.NoError(t, err)
	assert.Equal(t, "new-bearer", bearer)
	assert.NotEqual(t, "tok", newToken)
	ss.AssertExpectations(t)
}

// --- client ---

func TestClient_SessionLifecycle(t *testing.T) {
	us := &mockUserStore{}
	ss := &mockSessionStore{}
	jwt := &mockJWTSigner{}

	u := &domain.User{
		UserID: "u1", Email: "doc@clinic.org", Role: domain.RoleDoctor,
		Enable: 1, PasswordHash: hashOf(t, "secret123"),
	}
	us.On("GetByEmail", mock.Anything, "doc@clinic.org").Return(u, nil)
	us.On("Get", mock.Anything, "u1").Return(u, nil)
	ss.On("Put", mock.Anything, mock.AnythingOfType("*domain.Session")).Return(nil)
	ss.On("Get", mock.Anything, mock.Anything).Return(&domain.Session{SessionID: "s1", UserID: "u1", Enable: true}, nil)
	ss.On("Update", mock.Anything, mock.Anything, map[string]interface{}{"enable": false}).Return(nil)
	jwt.On("Sign", "u1", domain.RoleDoctor, mock.Anything).Return("bearer-token", nil)

	c := NewClient(newService(us, ss, &mockProfileStore{}, jwt, &mockMailer{}))

	sess, err := c.GetSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, sess)

	sess, err = c.SignInWithPassword(context.Background(), "doc@clinic.org", "secret123")
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "bearer-token", c.Bearer())

	sess, err = c.GetSession(context.Background())
	require.NoError(t, err)
	require.NotNil(t, sess)

	require.NoError(t, c.SignOut(context.Background()))
	assert.Empty(t, c.Bearer())

	sess, err = c.GetSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestClient_SignOutWithoutSession(t *testing.T) {
	c := NewClient(newService(&mockUserStore{}, &mockSessionStore{}, &mockProfileStore{}, &mockJWTSigner{}, &mockMailer{}))
	assert.NoError(t, c.SignOut(context.Background()))
}
