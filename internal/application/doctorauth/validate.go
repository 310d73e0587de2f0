package doctorauth

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// SignupThrottle is the minimum gap between sign-up attempts per email.
const SignupThrottle = 7 * time.Second

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

var blockedDomains = []string{"test.com", "example.com"}

// Form holds the raw text fields of the doctor auth form. Numeric fields
// stay strings until validation so error messages reflect the exact input.
type Form struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	FullName        string `json:"full_name"`
	Specialization  string `json:"specialization"`
	Qualification   string `json:"qualification"`
	ExperienceYears string `json:"experience_years"`
	ConsultationFee string `json:"consultation_fee"`
}

// ValidateEmail reports whether email is well formed and not from a
// blocked throwaway domain. Matching is case insensitive.
func ValidateEmail(email string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(trimmed) {
		return false
	}
	domain := trimmed[strings.Index(trimmed, "@")+1:]
	for _, d := range blockedDomains {
		if domain == d {
			return false
		}
	}
	return true
}

// ValidateForm checks the form ahead of a submit. Rules run in order and the
// first failure wins. lastAttempt is when this email last attempted to sign
// up; the zero value means never. An empty return means the form is valid.
func ValidateForm(f Form, signUp bool, lastAttempt, now time.Time) string {
	email := strings.TrimSpace(f.Email)
	if email == "" || f.Password == "" {
		return "Email and password are required"
	}
	if !ValidateEmail(email) {
		return "Please enter a valid email address. Test emails are not allowed."
	}
	if len(f.Password) < 6 {
		return "Password must be at least 6 characters long"
	}
	if signUp {
		if f.FullName == "" || f.Specialization == "" || f.Qualification == "" {
			return "All fields are required for registration"
		}
		if v, ok := parseNumber(f.ExperienceYears); !ok || v < 0 {
			return "Please enter valid years of experience"
		}
		if v, ok := parseNumber(f.ConsultationFee); !ok || v <= 0 {
			return "Please enter valid consultation fee"
		}
		if !lastAttempt.IsZero() && now.Sub(lastAttempt) < SignupThrottle {
			return "Please wait a few seconds before trying to sign up again"
		}
	}
	return ""
}

// parseNumber applies loose form-input numeric parsing: blank counts as
// zero, anything unparsable is invalid.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
