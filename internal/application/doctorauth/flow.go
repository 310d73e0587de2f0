package doctorauth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/docinblink/api/internal/domain"
)

// State tracks where a submit currently is in the auth flow.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateAuthenticating
	StateCreatingProfile
	StateResolving
	StateSuccess
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateAuthenticating:
		return "authenticating"
	case StateCreatingProfile:
		return "creating_profile"
	case StateResolving:
		return "resolving"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Backend is the slice of the auth API the flow needs.
type Backend interface {
	SignUp(ctx context.Context, email, password string, meta domain.SignUpMetadata) (*domain.Session, error)
	SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error)
	GetSession(ctx context.Context) (*domain.Session, error)
	SignOut(ctx context.Context) error
}

// RoleResolver answers whether a user is a registered doctor.
type RoleResolver interface {
	IsDoctor(ctx context.Context, userID string) (bool, error)
}

// DoctorProfile is the parsed payload for a new doctors row.
type DoctorProfile struct {
	FullName        string
	Specialization  string
	Qualification   string
	ExperienceYears int
	ConsultationFee float64
}

// ProfileCreator persists the doctor profile row for a new account.
type ProfileCreator interface {
	CreateDoctorProfile(ctx context.Context, userID string, p DoctorProfile) error
}

// Notifier receives user-facing success messages.
type Notifier interface {
	Success(message string)
}

// FlowDeps wires the flow's collaborators. SettleDelay defaults to one
// second; Now defaults to time.Now.
type FlowDeps struct {
	Backend     Backend
	Roles       RoleResolver
	Profiles    ProfileCreator
	Notifier    Notifier
	Attempts    AttemptStore
	SettleDelay time.Duration
	Now         func() time.Time
}

// Flow drives the doctor sign-in / sign-up sequence. A Flow starts in
// sign-in mode and only one submit runs at a time; overlapping submits
// return a busy result without touching the backend.
type Flow struct {
	deps FlowDeps

	mu     sync.Mutex
	busy   bool
	signUp bool
	state  State
}

// Result is the outcome of a submit, carrying the form and mode the next
// render should show.
type Result struct {
	State      State
	Busy       bool
	Err        string
	RedirectTo string
	SignUp     bool
	Form       Form
}

func NewFlow(deps FlowDeps) *Flow {
	if deps.SettleDelay == 0 {
		deps.SettleDelay = time.Second
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Flow{deps: deps}
}

// SignUpMode reports whether the flow is in sign-up mode.
func (f *Flow) SignUpMode() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.signUp
}

// State returns the state left behind by the last submit.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// SwitchMode toggles between sign-in and sign-up, resets the flow state and
// reports the new mode. The caller is expected to clear the form.
func (f *Flow) SwitchMode() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signUp = !f.signUp
	f.state = StateIdle
	return f.signUp
}

// Submit runs one pass of the auth flow for the given form.
func (f *Flow) Submit(ctx context.Context, form Form) Result {
	f.mu.Lock()
	if f.busy {
		state, signUp := f.state, f.signUp
		f.mu.Unlock()
		return Result{State: state, Busy: true, SignUp: signUp, Form: form}
	}
	f.busy = true
	signUp := f.signUp
	f.state = StateValidating
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.busy = false
		f.mu.Unlock()
	}()

	email := strings.ToLower(strings.TrimSpace(form.Email))
	if msg := ValidateForm(form, signUp, f.deps.Attempts.Last(email), f.deps.Now()); msg != "" {
		return f.fail(msg, signUp, form)
	}

	if signUp {
		return f.submitSignUp(ctx, email, form)
	}
	return f.submitSignIn(ctx, email, form)
}

func (f *Flow) submitSignUp(ctx context.Context, email string, form Form) Result {
	f.deps.Attempts.Record(email, f.deps.Now())
	f.setState(StateAuthenticating)

	sess, err := f.deps.Backend.SignUp(ctx, email, form.Password, domain.SignUpMetadata{
		FullName: form.FullName,
		IsDoctor: true,
	})
	if err != nil {
		return f.fail(MapAuthError(err), true, form)
	}
	if sess == nil || sess.User == nil {
		f.setState(StateIdle)
		return Result{State: StateIdle, SignUp: true, Form: form}
	}

	f.setState(StateCreatingProfile)
	if err := f.createProfile(ctx, sess.User.UserID, form); err != nil {
		slog.Error("failed to create doctor profile", "user_id", sess.User.UserID, "error", err)
		if signOutErr := f.deps.Backend.SignOut(ctx); signOutErr != nil {
			slog.Error("error signing out after profile failure", "error", signOutErr)
		}
		return f.fail("Failed to create doctor profile. Please try again.", true, form)
	}

	f.deps.Notifier.Success("Registration successful! Please check your email.")

	f.mu.Lock()
	f.signUp = false
	f.state = StateSuccess
	f.mu.Unlock()
	return Result{State: StateSuccess, SignUp: false, Form: Form{Email: email}}
}

// createProfile gives the freshly issued session a moment to settle, then
// re-checks it before touching the doctors table.
func (f *Flow) createProfile(ctx context.Context, userID string, form Form) error {
	select {
	case <-time.After(f.deps.SettleDelay):
	case <-ctx.Done():
		return ctx.Err()
	}

	sess, err := f.deps.Backend.GetSession(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify session: %w", err)
	}
	if sess == nil {
		return errors.New("no active session found")
	}

	exp, _ := parseNumber(form.ExperienceYears)
	fee, _ := parseNumber(form.ConsultationFee)
	return f.deps.Profiles.CreateDoctorProfile(ctx, userID, DoctorProfile{
		FullName:        form.FullName,
		Specialization:  form.Specialization,
		Qualification:   form.Qualification,
		ExperienceYears: int(exp),
		ConsultationFee: fee,
	})
}

func (f *Flow) submitSignIn(ctx context.Context, email string, form Form) Result {
	f.setState(StateAuthenticating)

	sess, err := f.deps.Backend.SignInWithPassword(ctx, email, form.Password)
	if err != nil {
		return f.fail(MapAuthError(err), false, form)
	}

	f.setState(StateResolving)
	userID := sess.UserID
	if sess.User != nil {
		userID = sess.User.UserID
	}

	// A resolver failure counts as "not a doctor": the account is signed
	// out the same way as on a negative answer.
	isDoctor, err := f.deps.Roles.IsDoctor(ctx, userID)
	if err != nil {
		slog.Error("doctor check error", "user_id", userID, "error", err)
		if signOutErr := f.deps.Backend.SignOut(ctx); signOutErr != nil {
			slog.Error("error signing out after doctor check failure", "error", signOutErr)
		}
		return f.fail("Error verifying doctor status", false, form)
	}
	if !isDoctor {
		if signOutErr := f.deps.Backend.SignOut(ctx); signOutErr != nil {
			slog.Error("error signing out non-doctor account", "error", signOutErr)
		}
		return f.fail("This account is not registered as a doctor", false, form)
	}

	f.deps.Notifier.Success("Successfully signed in!")
	f.setState(StateSuccess)
	return Result{State: StateSuccess, RedirectTo: "/doctor-dashboard", SignUp: false, Form: form}
}

func (f *Flow) fail(msg string, signUp bool, form Form) Result {
	f.setState(StateFailed)
	return Result{State: StateFailed, Err: msg, SignUp: signUp, Form: form}
}

func (f *Flow) setState(s State) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}
