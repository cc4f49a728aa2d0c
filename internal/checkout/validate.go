package checkout

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/trendythreads/storefront/pkg/errors"
)

// Field length limits enforced before submission
const (
	maxFullNameLen = 100
	maxAddressLen  = 500
	maxNotesLen    = 500
)

// emailPattern is deliberately permissive: it accepts some malformed
// addresses (consecutive dots, for one). Tightening it would reject
// addresses the storefront has always accepted, so the laxity stays.
var emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.[A-Za-z]{2,3}$`)

// phonePattern matches a normalized number: one non-zero leading digit
// followed by 9 to 15 more, with an optional leading +.
var phonePattern = regexp.MustCompile(`^\+?[1-9][0-9]{9,15}$`)

// Draft is the transient form state for a single checkout session
type Draft struct {
	FullName    string
	Email       string
	PhoneNumber string
	District    string
	Address     string
	Notes       string
}

// NormalizePhone rewrites raw user input into canonical
// +<countrycode><digits> form: everything except digits and a leading
// + is stripped, a leading 0 is replaced by the country-code prefix,
// and a number still missing its prefix gets it prepended.
func NormalizePhone(raw, countryCode string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(raw) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	s := b.String()

	if strings.HasPrefix(s, "0") {
		return countryCode + s[1:]
	}
	if !strings.HasPrefix(s, "+") {
		return countryCode + s
	}
	return s
}

// ValidateDraft checks every field together and reports all failures at
// once. On success it returns the draft ready for submission: phone
// normalized, email trimmed and lower-cased, text fields trimmed.
func ValidateDraft(d Draft, countryCode string) (Draft, errors.FieldErrors) {
	fieldErrs := errors.FieldErrors{}

	out := Draft{
		FullName:    strings.TrimSpace(d.FullName),
		Email:       strings.ToLower(strings.TrimSpace(d.Email)),
		PhoneNumber: d.PhoneNumber,
		District:    strings.TrimSpace(d.District),
		Address:     strings.TrimSpace(d.Address),
		Notes:       strings.TrimSpace(d.Notes),
	}

	// Limits count characters, not bytes: a Bengali name is three
	// bytes per character in UTF-8.
	if out.FullName == "" {
		fieldErrs["fullName"] = "Full name is required"
	} else if utf8.RuneCountInString(out.FullName) > maxFullNameLen {
		fieldErrs["fullName"] = "Full name must be 100 characters or fewer"
	}

	if out.Email == "" {
		fieldErrs["email"] = "Email is required"
	} else if !emailPattern.MatchString(out.Email) {
		fieldErrs["email"] = "Enter a valid email address"
	}

	if strings.TrimSpace(d.PhoneNumber) == "" {
		fieldErrs["phoneNumber"] = "Phone number is required"
	} else {
		out.PhoneNumber = NormalizePhone(d.PhoneNumber, countryCode)
		if !phonePattern.MatchString(out.PhoneNumber) {
			fieldErrs["phoneNumber"] = "Enter a valid phone number"
		}
	}

	if out.District == "" {
		fieldErrs["district"] = "District is required"
	}

	if out.Address == "" {
		fieldErrs["address"] = "Address is required"
	} else if utf8.RuneCountInString(out.Address) > maxAddressLen {
		fieldErrs["address"] = "Address must be 500 characters or fewer"
	}

	if utf8.RuneCountInString(out.Notes) > maxNotesLen {
		fieldErrs["notes"] = "Notes must be 500 characters or fewer"
	}

	if len(fieldErrs) > 0 {
		return out, fieldErrs
	}
	return out, nil
}
