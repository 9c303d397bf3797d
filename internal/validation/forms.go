// Package validation implements the client-side form schemas. Anything
// rejected here never reaches the network.
package validation

import (
	"net/mail"
	"regexp"
	"strings"

	passwordvalidator "github.com/wagslane/go-password-validator"
)

// passwordMinEntropyBits is the strength floor applied to new passwords at
// registration and reset. Existing passwords entered at login are only
// length-checked.
const passwordMinEntropyBits = 50

const (
	usernameMinLen = 3
	passwordMinLen = 6
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// FieldErrors maps field names to display-ready messages. An empty map means
// the form is valid.
type FieldErrors map[string]string

// Valid reports whether no field failed.
func (e FieldErrors) Valid() bool { return len(e) == 0 }

// First returns an arbitrary single message for compact display, or "".
func (e FieldErrors) First() string {
	for _, msg := range e {
		return msg
	}
	return ""
}

// ============================================================================
// Field Rules
// ============================================================================

func validUsername(login string) string {
	if len(login) < usernameMinLen {
		return "Username must be at least 3 characters"
	}
	if !usernamePattern.MatchString(login) {
		return "Username may only contain letters, digits, ., _, -"
	}
	return ""
}

func validEmail(email string) string {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "Invalid email address"
	}
	return ""
}

func validPassword(password string) string {
	if len(password) < passwordMinLen {
		return "Password must be at least 6 characters"
	}
	return ""
}

// validNewPassword applies the additional entropy floor for passwords being
// set, mirroring the backend's strength requirements so weak choices fail
// fast client-side.
func validNewPassword(password string) string {
	if msg := validPassword(password); msg != "" {
		return msg
	}
	if err := passwordvalidator.Validate(password, passwordMinEntropyBits); err != nil {
		return "Password is too weak: add length, digits, or symbols"
	}
	return ""
}

// ============================================================================
// Form Schemas
// ============================================================================

// LoginForm is the sign-in form.
type LoginForm struct {
	Identifier string
	Password   string
}

// Validate accepts either a username or an email as the identifier.
func (f LoginForm) Validate() FieldErrors {
	errs := FieldErrors{}

	if len(f.Identifier) < usernameMinLen {
		errs["identifier"] = "Enter your username or email"
	} else if strings.Contains(f.Identifier, "@") {
		if msg := validEmail(f.Identifier); msg != "" {
			errs["identifier"] = "Invalid username or email"
		}
	} else if msg := validUsername(f.Identifier); msg != "" {
		errs["identifier"] = "Invalid username or email"
	}

	if msg := validPassword(f.Password); msg != "" {
		errs["password"] = msg
	}

	return errs
}

// RegisterForm is the account creation form. ConfirmPassword equality is
// enforced here, before submission, not by the session store.
type RegisterForm struct {
	Login           string
	Email           string
	Password        string
	ConfirmPassword string
	AcceptTerms     bool
}

func (f RegisterForm) Validate() FieldErrors {
	errs := FieldErrors{}

	if msg := validUsername(f.Login); msg != "" {
		errs["login"] = msg
	}
	if msg := validEmail(f.Email); msg != "" {
		errs["email"] = msg
	}
	if msg := validNewPassword(f.Password); msg != "" {
		errs["password"] = msg
	}
	if f.Password != f.ConfirmPassword {
		errs["confirmPassword"] = "Passwords do not match"
	}
	if !f.AcceptTerms {
		errs["acceptTerms"] = "You must accept the terms of service"
	}

	return errs
}

// ForgotPasswordForm requests a reset code.
type ForgotPasswordForm struct {
	Email string
}

func (f ForgotPasswordForm) Validate() FieldErrors {
	errs := FieldErrors{}
	if msg := validEmail(f.Email); msg != "" {
		errs["email"] = msg
	}
	return errs
}

// PasswordResetForm sets a new password from an emailed code.
type PasswordResetForm struct {
	Password        string
	ConfirmPassword string
}

func (f PasswordResetForm) Validate() FieldErrors {
	errs := FieldErrors{}
	if msg := validNewPassword(f.Password); msg != "" {
		errs["password"] = msg
	}
	if f.Password != f.ConfirmPassword {
		errs["confirmPassword"] = "Passwords do not match"
	}
	return errs
}
