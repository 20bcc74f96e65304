package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// Ugandan mobile number, either international (2567xxxxxxxx) or local (07xxxxxxxx)
	PhoneNumberPattern = `^(256|0)(7[0-8])[0-9]{7}$`

	// Password min length
	PasswordMinLength = 8

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email       *regexp.Regexp
	PhoneNumber *regexp.Regexp
}{
	Email:       regexp.MustCompile(EmailPattern),
	PhoneNumber: regexp.MustCompile(PhoneNumberPattern),
}

// IsValidEmail reports whether the value is a well-formed email address
func IsValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(email)
}

// IsValidPhoneNumber reports whether the value is a Ugandan mobile number
func IsValidPhoneNumber(phone string) bool {
	return CompiledPatterns.PhoneNumber.MatchString(phone)
}

// IsValidPassword checks minimum password requirements
func IsValidPassword(password string) bool {
	return len(password) >= PasswordMinLength
}
