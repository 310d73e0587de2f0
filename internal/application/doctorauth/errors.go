package doctorauth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/docinblink/api/internal/domain"
)

// AuthError is an authentication failure carrying the upstream status code.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// MapAuthError converts a backend auth failure into the message shown to the
// user. Rate limiting wins over everything else.
func MapAuthError(err error) string {
	slog.Error("auth error", "error", err)

	var ae *AuthError
	if errors.As(err, &ae) && ae.Status == http.StatusTooManyRequests {
		return "Too many attempts. Please wait a few seconds before trying again."
	}

	switch {
	case errors.Is(err, domain.ErrConflict):
		return "An account with this email already exists. Please sign in instead."
	case errors.Is(err, domain.ErrUnauthorized):
		return "Invalid email or password. Please try again."
	}

	switch err.Error() {
	case "Email address is invalid", "Email address invalid":
		return "Please enter a valid email address. Test emails are not allowed."
	case "User already registered":
		return "An account with this email already exists. Please sign in instead."
	case "Invalid login credentials":
		return "Invalid email or password. Please try again."
	case "For security purposes, you can only request this after 7 seconds.":
		return "Please wait 7 seconds before trying again."
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return "An unexpected error occurred. Please try again."
}
