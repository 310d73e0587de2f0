package account

import (
	"context"
	"errors"

	"github.com/docinblink/api/internal/domain"
)

// Client is a stateful view over the account service for a single caller.
// It tracks the active session the way a browser SDK would, so higher level
// flows can ask whether anyone is signed in right now and sign them out
// again without threading tokens around.
type Client struct {
	svc     Service
	session *domain.Session
	bearer  string
	refresh string
}

func NewClient(svc Service) *Client {
	return &Client{svc: svc}
}

// SignUp registers a new account and signs it in.
func (c *Client) SignUp(ctx context.Context, email, password string, meta domain.SignUpMetadata) (*domain.Session, error) {
	role := domain.RolePatient
	if meta.IsDoctor {
		role = domain.RoleDoctor
	}
	res, err := c.svc.Register(ctx, RegisterRequest{
		Email:    email,
		Password: password,
		FullName: meta.FullName,
		Role:     role,
	})
	if err != nil {
		return nil, err
	}
	c.session, c.bearer, c.refresh = res.Session, res.Bearer, res.RefreshToken
	return res.Session, nil
}

// SignInWithPassword authenticates with email and password.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error) {
	res, err := c.svc.Login(ctx, LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	c.session, c.bearer, c.refresh = res.Session, res.Bearer, res.RefreshToken
	return res.Session, nil
}

// GetSession returns the active session, or nil when nobody is signed in.
func (c *Client) GetSession(ctx context.Context) (*domain.Session, error) {
	if c.session == nil {
		return nil, nil
	}
	sess, err := c.svc.GetCurrent(ctx, c.session.SessionID)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrNotFound) {
			c.session, c.bearer, c.refresh = nil, "", ""
			return nil, nil
		}
		return nil, err
	}
	c.session = sess
	return sess, nil
}

// SignOut disables the active session. Signing out with no session is a no-op.
func (c *Client) SignOut(ctx context.Context) error {
	if c.session == nil {
		return nil
	}
	err := c.svc.Logout(ctx, c.session.SessionID)
	c.session, c.bearer, c.refresh = nil, "", ""
	return err
}

// Bearer returns the access token for the active session, or empty.
func (c *Client) Bearer() string { return c.bearer }

// RefreshToken returns the refresh token for the active session, or empty.
func (c *Client) RefreshToken() string { return c.refresh }
