// Package validation provides custom validation rules for the application.
package validation

import (
	"strconv"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/clinicnotes/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// PasswordLength validates that a password has at least Min bytes.
//
// Length is counted in bytes, not runes, so a multi-byte character counts
// for each of its bytes. Accepts string and []byte values.
type PasswordLength struct {
	Min int
}

// Validate checks the password length.
func (p PasswordLength) Validate(value interface{}) error {
	var n int
	switch v := value.(type) {
	case string:
		n = len(v)
	case []byte:
		n = len(v)
	default:
		return validation.NewError("validation_password_type", "password must be a string")
	}

	if n < p.Min {
		return validation.NewError(
			"validation_password_min_length",
			"password must be at least "+strconv.Itoa(p.Min)+" bytes",
		)
	}
	return nil
}

// ByteLength validates that a byte slice has exactly Size bytes.
//
// Unlike validation.Length, an empty slice is not skipped.
type ByteLength struct {
	Size int
}

// Validate checks the slice length.
func (b ByteLength) Validate(value interface{}) error {
	v, ok := value.([]byte)
	if !ok {
		return validation.NewError("validation_byte_length_type", "must be a byte slice")
	}
	if len(v) != b.Size {
		return validation.NewError(
			"validation_byte_length",
			"must be exactly "+strconv.Itoa(b.Size)+" bytes",
		)
	}
	return nil
}

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)
