package checkout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCountryCode = "+880"

// ============================================
// Phone Normalization Tests
// ============================================

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"leading zero replaced by prefix", "01712345678", "+8801712345678"},
		{"already canonical", "+8801712345678", "+8801712345678"},
		{"missing plus gets prefix", "1712345678", "+8801712345678"},
		{"spaces and dashes stripped", "017-123 456 78", "+8801712345678"},
		{"parentheses stripped", "(017) 12345678", "+8801712345678"},
		{"plus only kept at the front", "017+12345678", "+8801712345678"},
		{"surrounding whitespace", "  01712345678  ", "+8801712345678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizePhone(tt.raw, testCountryCode))
		})
	}
}

// ============================================
// Draft Validation Tests
// ============================================

func validDraft() Draft {
	return Draft{
		FullName:    "Jane Doe",
		Email:       "jane@example.com",
		PhoneNumber: "01712345678",
		District:    "Dhaka",
		Address:     "House 1, Road 2",
	}
}

func TestValidateDraft_Valid(t *testing.T) {
	normalized, fieldErrs := ValidateDraft(validDraft(), testCountryCode)

	require.Empty(t, fieldErrs)
	assert.Equal(t, "+8801712345678", normalized.PhoneNumber)
	assert.Equal(t, "jane@example.com", normalized.Email)
}

func TestValidateDraft_NormalizesEmail(t *testing.T) {
	d := validDraft()
	d.Email = "  Jane@Example.COM "

	normalized, fieldErrs := ValidateDraft(d, testCountryCode)

	require.Empty(t, fieldErrs)
	assert.Equal(t, "jane@example.com", normalized.Email)
}

func TestValidateDraft_EmailStaysPermissive(t *testing.T) {
	// The pattern is intentionally lax; these have always been accepted
	// and must keep passing.
	for _, email := range []string{
		"jane..doe@example.com",
		"jane-doe@my-shop.co",
		"a@b.io",
	} {
		d := validDraft()
		d.Email = email
		_, fieldErrs := ValidateDraft(d, testCountryCode)
		assert.Empty(t, fieldErrs, email)
	}
}

func TestValidateDraft_RejectsInvalidEmail(t *testing.T) {
	for _, email := range []string{
		"not-an-email",
		"jane@",
		"@example.com",
		"jane@example",
		"jane@example.abcdef",
	} {
		d := validDraft()
		d.Email = email
		_, fieldErrs := ValidateDraft(d, testCountryCode)
		assert.Contains(t, fieldErrs, "email", email)
	}
}

func TestValidateDraft_ReportsAllFieldsAtOnce(t *testing.T) {
	d := Draft{
		FullName:    "",
		Email:       "not-an-email",
		PhoneNumber: "",
		District:    "   ",
		Address:     "",
	}

	_, fieldErrs := ValidateDraft(d, testCountryCode)

	require.Len(t, fieldErrs, 5)
	assert.Contains(t, fieldErrs, "fullName")
	assert.Contains(t, fieldErrs, "email")
	assert.Contains(t, fieldErrs, "phoneNumber")
	assert.Contains(t, fieldErrs, "district")
	assert.Contains(t, fieldErrs, "address")
}

func TestValidateDraft_LengthLimits(t *testing.T) {
	d := validDraft()
	d.FullName = strings.Repeat("a", 101)
	d.Address = strings.Repeat("b", 501)
	d.Notes = strings.Repeat("c", 501)

	_, fieldErrs := ValidateDraft(d, testCountryCode)

	assert.Contains(t, fieldErrs, "fullName")
	assert.Contains(t, fieldErrs, "address")
	assert.Contains(t, fieldErrs, "notes")
}

func TestValidateDraft_LengthLimitsCountCharactersNotBytes(t *testing.T) {
	// 40 Bengali characters are 120 bytes in UTF-8 but well within the
	// 100-character limit.
	d := validDraft()
	d.FullName = strings.Repeat("ঢ", 40)

	_, fieldErrs := ValidateDraft(d, testCountryCode)
	assert.NotContains(t, fieldErrs, "fullName")

	d.FullName = strings.Repeat("ঢ", 101)
	_, fieldErrs = ValidateDraft(d, testCountryCode)
	assert.Contains(t, fieldErrs, "fullName")
}

func TestValidateDraft_NotesOptional(t *testing.T) {
	d := validDraft()
	d.Notes = ""

	_, fieldErrs := ValidateDraft(d, testCountryCode)
	assert.Empty(t, fieldErrs)
}

func TestValidateDraft_PhoneFailsEvenAfterNormalization(t *testing.T) {
	d := validDraft()
	d.PhoneNumber = "0123" // normalizes, then fails the pattern

	_, fieldErrs := ValidateDraft(d, testCountryCode)
	assert.Contains(t, fieldErrs, "phoneNumber")
}
