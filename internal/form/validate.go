// Package form implements the account registration form: per-field
// validation, explicit state transitions and the page that submits it through
// an injected auth session.
package form

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Field names a registration form input.
type Field string

const (
	FieldName      Field = "name"
	FieldEmail     Field = "email"
	FieldPassword  Field = "password"
	FieldPassword2 Field = "password2"
)

// AllFields lists the form inputs in display order.
var AllFields = []Field{FieldName, FieldEmail, FieldPassword, FieldPassword2}

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s\p{Z}\x{FEFF}@]+@[^\s\p{Z}\x{FEFF}@]+\.[^\s\p{Z}\x{FEFF}@]+$`)

// Values holds one string per field. It is used both for input values and for
// per-field error messages.
type Values struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

// Get returns the value of f, or "" for an unknown field.
func (v Values) Get(f Field) string {
	switch f {
	case FieldName:
		return v.Name
	case FieldEmail:
		return v.Email
	case FieldPassword:
		return v.Password
	case FieldPassword2:
		return v.Password2
	}
	return ""
}

// With returns v with f set to value. Unknown fields leave v unchanged.
func (v Values) With(f Field, value string) Values {
	switch f {
	case FieldName:
		v.Name = value
	case FieldEmail:
		v.Email = value
	case FieldPassword:
		v.Password = value
	case FieldPassword2:
		v.Password2 = value
	}
	return v
}

// Any reports whether any field is non-empty.
func (v Values) Any() bool {
	return v.Name != "" || v.Email != "" || v.Password != "" || v.Password2 != ""
}

// ValidateField returns the error message for value in field f, or "" when it
// is acceptable. form supplies the other fields; password2 is compared with
// form.Password.
func ValidateField(f Field, value string, form Values) string {
	blank := strings.TrimSpace(value) == ""

	switch f {
	case FieldName:
		if blank {
			return "Name is required"
		}
	case FieldEmail:
		if blank {
			return "Email is required"
		}
		if !emailPattern.MatchString(value) {
			return "Invalid email address"
		}
	case FieldPassword:
		if blank {
			return "Password is required"
		}
		if utf8.RuneCountInString(value) < MinPasswordLength {
			return "Password must be at least 6 characters"
		}
	case FieldPassword2:
		if blank {
			return "Confirm Password is required"
		}
		if value != form.Password {
			return "Passwords do not match"
		}
	}
	return ""
}
