package doctorauth

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/docinblink/api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestMapAuthError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{
			"rate limited",
			&AuthError{Status: http.StatusTooManyRequests, Message: "rate limit exceeded"},
			"Too many attempts. Please wait a few seconds before trying again.",
		},
		{
			"rate limit beats message mapping",
			&AuthError{Status: http.StatusTooManyRequests, Message: "Invalid login credentials"},
			"Too many attempts. Please wait a few seconds before trying again.",
		},
		{
			"duplicate account sentinel",
			fmt.Errorf("email already registered: %w", domain.ErrConflict),
			"An account with this email already exists. Please sign in instead.",
		},
		{
			"bad credentials sentinel",
			fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized),
			"Invalid email or password. Please try again.",
		},
		{
			"invalid email message",
			errors.New("Email address is invalid"),
			"Please enter a valid email address. Test emails are not allowed.",
		},
		{
			"invalid email message variant",
			errors.New("Email address invalid"),
			"Please enter a valid email address. Test emails are not allowed.",
		},
		{
			"already registered message",
			errors.New("User already registered"),
			"An account with this email already exists. Please sign in instead.",
		},
		{
			"bad credentials message",
			errors.New("Invalid login credentials"),
			"Invalid email or password. Please try again.",
		},
		{
			"security cooldown message",
			errors.New("For security purposes, you can only request this after 7 seconds."),
			"Please wait 7 seconds before trying again.",
		},
		{
			"unknown message passes through",
			errors.New("database on fire"),
			"database on fire",
		},
		{
			"empty message gets fallback",
			&AuthError{Status: http.StatusInternalServerError, Message: ""},
			"An unexpected error occurred. Please try again.",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapAuthError(tc.err))
		})
	}
}
