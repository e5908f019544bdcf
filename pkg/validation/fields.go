package validation

import (
	"fmt"
	"regexp"
	"time"
)

const (
	fieldName        = "name"
	fieldDateOfBirth = "date of birth"
	fieldEmail       = "email"
	fieldPhoneNumber = "phone number"
)

const emailAtom = "[a-z0-9!#$%&'*+/=?^_`{|}~-]"

var (
	// RFC 5322 addr-spec: dot-atom or quoted local part, host name
	// or bracketed IP literal domain.
	emailRegex = regexp.MustCompile(
		`(?i)^(?:` + emailAtom + `+(?:\.` + emailAtom + `+)*` +
			`|"(?:[\x01-\x08\x0b\x0c\x0e-\x1f\x21\x23-\x5b\x5d-\x7f]|\\[\x01-\x09\x0b\x0c\x0e-\x7f])*")` +
			`@(?:(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\.)+[a-z0-9](?:[a-z0-9-]*[a-z0-9])?` +
			`|\[(?:(?:25[0-5]|2[0-4][0-9]|1[0-9][0-9]|[1-9]?[0-9])\.){3}` +
			`(?:25[0-5]|2[0-4][0-9]|1[0-9][0-9]|[1-9]?[0-9]` +
			`|[a-z0-9-]*[a-z0-9]:(?:[\x01-\x08\x0b\x0c\x0e-\x1f\x21-\x5a\x53-\x7f]|\\[\x01-\x09\x0b\x0c\x0e-\x7f])+)\])$`,
	)

	phoneNumberRegex = regexp.MustCompile(`^\(\d{3}\) \d{3}-\d{4}$`)
)

var dateLayouts = [...]string{
	time.DateOnly,
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

// Clock is what ValidateDateOfBirth compares against.
var Clock = time.Now

var (
	nameField = Config{
		FieldName: fieldName,
		Required:  true,
	}.Field()

	emailField = Config{
		FieldName: fieldEmail,
		Required:  true,
		Pattern:   emailRegex,
	}.Field()

	phoneNumberField = Config{
		FieldName: fieldPhoneNumber,
		Required:  true,
		Pattern:   phoneNumberRegex,
	}.Field()

	dateOfBirthField = Config{
		FieldName: fieldDateOfBirth,
		Required:  true,
		Custom:    checkPastDate(fieldDateOfBirth),
	}.Field()
)

func ValidateName(input string) string {
	return nameField.Validate(input)
}

func ValidateDateOfBirth(input string) string {
	return dateOfBirthField.Validate(input)
}

func ValidateEmail(input string) string {
	return emailField.Validate(input)
}

func ValidatePhoneNumber(input string) string {
	return phoneNumberField.Validate(input)
}

func checkPastDate(field string) func(string) string {
	return func(input string) string {
		date, ok := parseDate(input)
		if !ok {
			return fmt.Sprintf("Invalid %s format", field)
		}
		if date.After(Clock()) {
			return fmt.Sprintf("The %s should be from past", field)
		}
		return ""
	}
}

// parseDate reads date-only values as UTC midnight.
func parseDate(input string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, input)
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
