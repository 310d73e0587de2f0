package doctorauth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"doc@clinic.org", true},
		{"  Doc@Clinic.ORG  ", true},
		{"first.last+tag@sub.domain.co", true},
		{"", false},
		{"not-an-email", false},
		{"missing@tld", false},
		{"doc@test.com", false},
		{"doc@example.com", false},
		{"DOC@TEST.COM", false},
		{"doc@nottest.com", true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ValidateEmail(tc.email), "email %q", tc.email)
	}
}

func validSignUpForm() Form {
	return Form{
		Email:           "doc@clinic.org",
		Password:        "secret123",
		FullName:        "Dr Jane",
		Specialization:  "Cardiology",
		Qualification:   "MBBS",
		ExperienceYears: "10",
		ConsultationFee: "500",
	}
}

func TestValidateForm_SignIn(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name string
		form Form
		want string
	}{
		{"valid", Form{Email: "doc@clinic.org", Password: "secret123"}, ""},
		{"missing email", Form{Password: "secret123"}, "Email and password are required"},
		{"missing password", Form{Email: "doc@clinic.org"}, "Email and password are required"},
		{"whitespace email", Form{Email: "   ", Password: "secret123"}, "Email and password are required"},
		{"bad email", Form{Email: "nope", Password: "secret123"}, "Please enter a valid email address. Test emails are not allowed."},
		{"test domain", Form{Email: "doc@test.com", Password: "secret123"}, "Please enter a valid email address. Test emails are not allowed."},
		{"short password", Form{Email: "doc@clinic.org", Password: "12345"}, "Password must be at least 6 characters long"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidateForm(tc.form, false, time.Time{}, now))
		})
	}
}

func TestValidateForm_SignUp(t *testing.T) {
	now := time.Now()

	t.Run("valid", func(t *testing.T) {
		assert.Empty(t, ValidateForm(validSignUpForm(), true, time.Time{}, now))
	})

	t.Run("missing registration fields", func(t *testing.T) {
		for _, clear := range []func(*Form){
			func(f *Form) { f.FullName = "" },
			func(f *Form) { f.Specialization = "" },
			func(f *Form) { f.Qualification = "" },
		} {
			f := validSignUpForm()
			clear(&f)
			assert.Equal(t, "All fields are required for registration", ValidateForm(f, true, time.Time{}, now))
		}
	})

	t.Run("experience years", func(t *testing.T) {
		f := validSignUpForm()
		f.ExperienceYears = "abc"
		assert.Equal(t, "Please enter valid years of experience", ValidateForm(f, true, time.Time{}, now))

		f.ExperienceYears = "-1"
		assert.Equal(t, "Please enter valid years of experience", ValidateForm(f, true, time.Time{}, now))

		f.ExperienceYears = "0"
		assert.Empty(t, ValidateForm(f, true, time.Time{}, now))

		// blank parses as zero, matching loose form-input semantics
		f.ExperienceYears = ""
		assert.Empty(t, ValidateForm(f, true, time.Time{}, now))
	})

	t.Run("consultation fee", func(t *testing.T) {
		f := validSignUpForm()
		f.ConsultationFee = "abc"
		assert.Equal(t, "Please enter valid consultation fee", ValidateForm(f, true, time.Time{}, now))

		f.ConsultationFee = "0"
		assert.Equal(t, "Please enter valid consultation fee", ValidateForm(f, true, time.Time{}, now))

		f.ConsultationFee = ""
		assert.Equal(t, "Please enter valid consultation fee", ValidateForm(f, true, time.Time{}, now))

		f.ConsultationFee = "250.50"
		assert.Empty(t, ValidateForm(f, true, time.Time{}, now))
	})

	t.Run("throttle", func(t *testing.T) {
		f := validSignUpForm()

		last := now.Add(-3 * time.Second)
		assert.Equal(t, "Please wait a few seconds before trying to sign up again", ValidateForm(f, true, last, now))

		last = now.Add(-8 * time.Second)
		assert.Empty(t, ValidateForm(f, true, last, now))

		// sign-in never throttles
		assert.Empty(t, ValidateForm(Form{Email: f.Email, Password: f.Password}, false, now.Add(-time.Second), now))
	})

	t.Run("field checks run before throttle", func(t *testing.T) {
		f := validSignUpForm()
		f.FullName = ""
		last := now.Add(-time.Second)
		assert.Equal(t, "All fields are required for registration", ValidateForm(f, true, last, now))
	})
}
