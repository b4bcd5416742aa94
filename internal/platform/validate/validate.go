// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// This package is used exclusively in the service layer — never in handlers or
// storage. It ensures that business logic only operates on semantically valid
// data, and that multi-field input is validated in full BEFORE any mutation
// happens (no partially-applied writes on validation failure).
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/folio/internal/platform/apperr"
)

var (
	// usernameRegex matches account handles: letters, digits, underscores, hyphens.
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	// emailRegex is an RFC-light email pattern; full RFC 5322 is overkill here.
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	// titleRegex restricts book titles to letters, digits, spaces and common punctuation.
	titleRegex = regexp.MustCompile(`^[a-zA-Z0-9\s\-'.,!?()]+$`)
	// penNameRegex allows letters, spaces, hyphens, and apostrophes.
	penNameRegex = regexp.MustCompile(`^[a-zA-Z\s\-']+$`)
	// uuidRegex matches a UUIDv4 or UUIDv7 string.
	uuidRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")
)

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "This field is required")
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// MinLen fails if the Unicode character count is below min.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	if utf8.RuneCountInString(value) < min {
		v.add(field, fmt.Sprintf("Minimum %d characters", min))
	}
	return v
}

// Range fails if the value is outside the [min, max] range (inclusive).
func (v *Validator) Range(field string, value, min, max int) *Validator {
	if value < min || value > max {
		v.add(field, fmt.Sprintf("Must be between %d and %d", min, max))
	}
	return v
}

// Email fails if the value is not a plausible email address or exceeds 255 characters.
func (v *Validator) Email(field, value string) *Validator {
	if !emailRegex.MatchString(value) {
		v.add(field, "Must be a valid email address")
	}
	if utf8.RuneCountInString(value) > 255 {
		v.add(field, "Maximum 255 characters")
	}
	return v
}

// Username fails unless the value is a valid account handle.
//
// # Format
//
// 3–50 characters of letters, digits, underscores and hyphens; must not start
// or end with a hyphen or underscore.
func (v *Validator) Username(field, value string) *Validator {
	if utf8.RuneCountInString(value) < 3 {
		v.add(field, "Username must be at least 3 characters long")
	}
	if utf8.RuneCountInString(value) > 50 {
		v.add(field, "Username must be less than 50 characters")
	}
	if !usernameRegex.MatchString(value) {
		v.add(field, "Username can only contain letters, numbers, underscores, and hyphens")
	}
	if strings.HasPrefix(value, "-") || strings.HasPrefix(value, "_") {
		v.add(field, "Username cannot start with a hyphen or underscore")
	}
	if strings.HasSuffix(value, "-") || strings.HasSuffix(value, "_") {
		v.add(field, "Username cannot end with a hyphen or underscore")
	}
	return v
}

// Password fails unless the value meets the platform strength policy.
//
// # Policy
//
// 8–100 characters with at least one uppercase letter, one lowercase letter,
// one digit, and one special character.
func (v *Validator) Password(field, value string) *Validator {
	if len(value) < 8 {
		v.add(field, "Password must be at least 8 characters long")
	}
	if len(value) > 100 {
		v.add(field, "Password must be less than 100 characters")
	}
	if !strings.ContainsAny(value, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		v.add(field, "Password must contain at least one uppercase letter")
	}
	if !strings.ContainsAny(value, "abcdefghijklmnopqrstuvwxyz") {
		v.add(field, "Password must contain at least one lowercase letter")
	}
	if !strings.ContainsAny(value, "0123456789") {
		v.add(field, "Password must contain at least one digit")
	}
	if !strings.ContainsAny(value, `!@#$%^&*(),.?":{}|<>`) {
		v.add(field, "Password must contain at least one special character")
	}
	return v
}

// BookTitle fails unless the value is a valid book title.
//
// # Format
//
// 1–255 characters of letters, digits, spaces, and common punctuation.
func (v *Validator) BookTitle(field, value string) *Validator {
	if len(value) < 1 {
		v.add(field, "Book title cannot be empty")
		return v
	}
	if utf8.RuneCountInString(value) > 255 {
		v.add(field, "Book title must be less than 255 characters")
	}
	if !titleRegex.MatchString(value) {
		v.add(field, "Book title contains invalid characters")
	}
	return v
}

// PenName fails unless the value is a valid author pen name.
//
// # Format
//
// 2–100 characters of letters, spaces, hyphens, and apostrophes.
func (v *Validator) PenName(field, value string) *Validator {
	if utf8.RuneCountInString(value) < 2 {
		v.add(field, "Pen name must be at least 2 characters long")
	}
	if utf8.RuneCountInString(value) > 100 {
		v.add(field, "Pen name must be less than 100 characters")
	}
	if !penNameRegex.MatchString(value) {
		v.add(field, "Pen name can only contain letters, spaces, hyphens, and apostrophes")
	}
	return v
}

// UUID fails if the value is not a valid UUID string (case-insensitive).
func (v *Validator) UUID(field, value string) *Validator {
	lower := strings.ToLower(value)
	if !uuidRegex.MatchString(lower) {
		v.add(field, "Must be a valid UUID")
	}
	return v
}

// OneOf fails if the value is not in the allowed set of strings.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.add(field, fmt.Sprintf("Must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("current_page", page < 1, "Current page must be at least 1")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
//
// This is the only output method — call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// RequiredError is a shortcut to create a single-field validation error.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{
		Field:   field,
		Message: message,
	})
}
