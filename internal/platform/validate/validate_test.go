// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name", "Folio", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Username checks handle format and boundary rules.
*/
func TestValidator_Username(t *testing.T) {
	tests := []struct {
		name     string
		username string
		isValid  bool
	}{
		{"valid_simple", "reader42", true},
		{"valid_with_separators", "pen-name_ok", true},
		{"too_short", "ab", false},
		{"too_long", strings.Repeat("a", 51), false},
		{"invalid_chars", "bad user!", false},
		{"leading_hyphen", "-reader", false},
		{"leading_underscore", "_reader", false},
		{"trailing_hyphen", "reader-", false},
		{"trailing_underscore", "reader_", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Username("username", tt.username)

			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Password checks the full strength policy.
*/
func TestValidator_Password(t *testing.T) {
	tests := []struct {
		name     string
		password string
		isValid  bool
	}{
		{"valid_strong", "Sup3r$ecret", true},
		{"too_short", "Ab1$xyz", false},
		{"too_long", "Ab1$" + strings.Repeat("x", 100), false},
		{"missing_upper", "sup3r$ecret", false},
		{"missing_lower", "SUP3R$ECRET", false},
		{"missing_digit", "Super$ecret", false},
		{"missing_special", "Sup3rSecret", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Password("password", tt.password)

			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Email checks the email format validation rule.
*/
func TestValidator_Email(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		isValid bool
	}{
		{"valid_email", "test@example.com", true},
		{"invalid_format", "invalid-email", false},
		{"missing_domain", "test@", false},
		{"missing_tld", "test@example", false},
		{"too_long", strings.Repeat("a", 250) + "@example.com", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Email("email", tt.email)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_BookTitle checks title length and character restrictions.
*/
func TestValidator_BookTitle(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		isValid bool
	}{
		{"valid_plain", "Moons", true},
		{"valid_punctuation", "Moons II: Wait, What?!", false}, // colon is not in the allowed set
		{"valid_allowed_punctuation", "Moons II (Wait, What?!)", true},
		{"empty", "", false},
		{"too_long", strings.Repeat("a", 256), false},
		{"invalid_chars", "Moons <draft>", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.BookTitle("title", tt.title)

			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_PenName checks pen-name format rules.
*/
func TestValidator_PenName(t *testing.T) {
	tests := []struct {
		name    string
		penName string
		isValid bool
	}{
		{"valid_simple", "George Orwell", true},
		{"valid_apostrophe", "D'Arcy", true},
		{"too_short", "A", false},
		{"digits_not_allowed", "Writer42", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.PenName("pen_name", tt.penName)

			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	// Multi-rule validation
	err := v.
		Required("username", "tai").
		Username("username", "tai").
		Email("email", "tai@folio.app").
		Password("password", "Str0ng!pass").
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("username", "").       // Fails
		MinLen("username", "a", 5).     // Fails
		Email("email", "not-an-email"). // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors
	assert.Len(t, ae.Details, 3)
}
