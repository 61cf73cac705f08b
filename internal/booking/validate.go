package booking

import (
	"regexp"
	"strings"

	"github.com/sunrisemc/booking-api/pkg/errors"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateName requires a non-empty full name.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.BadRequest("please enter your name", nil)
	}
	return nil
}

func ValidateEmail(email string) error {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return errors.BadRequest("please enter a valid email address", nil)
	}
	return nil
}

// PhonePolicy validates and normalizes patient phone numbers for a region.
// Only Malaysian mobile numbers are supported for now.
type PhonePolicy struct {
	pattern *regexp.Regexp
}

var mobilePatterns = map[string]*regexp.Regexp{
	"MY": regexp.MustCompile(`^(?:\+?60|0)?1[0-46-9][0-9]{7,8}$`),
}

func NewPhonePolicy(region string) *PhonePolicy {
	pattern, ok := mobilePatterns[strings.ToUpper(region)]
	if !ok {
		pattern = mobilePatterns["MY"]
	}
	return &PhonePolicy{pattern: pattern}
}

var phoneStripper = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")

// Normalize strips separators, validates the number and returns it in
// international +60 form.
func (p *PhonePolicy) Normalize(phone string) (string, error) {
	cleaned := phoneStripper.Replace(strings.TrimSpace(phone))
	if !p.pattern.MatchString(cleaned) {
		return "", errors.BadRequest("please enter a valid Malaysian phone number", nil)
	}

	switch {
	case strings.HasPrefix(cleaned, "+60"):
		return cleaned, nil
	case strings.HasPrefix(cleaned, "60"):
		return "+" + cleaned, nil
	case strings.HasPrefix(cleaned, "0"):
		return "+6" + cleaned, nil
	default:
		return "+60" + cleaned, nil
	}
}
