package services

import (
	"regexp"
	"strings"

	"github.com/dmitrijs2005/geotracker/internal/client/models"
	"github.com/dmitrijs2005/geotracker/internal/common"
)

const (
	MsgPasswordsMismatch = "Passwords do not match"
	MsgPasswordTooShort  = "Password must be at least 8 characters long"
	MsgMissingFields     = "Please fill in all fields"
)

var dottedQuad = regexp.MustCompile(`^(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)$`)

// ValidateAddress reports whether input is a dotted-decimal IPv4 address.
// Each group is 0-255; surrounding whitespace is rejected.
func ValidateAddress(input string) bool {
	return dottedQuad.MatchString(input)
}

// ValidateSignup runs the signup form checks that happen before any request
// is sent.
func ValidateSignup(p models.SignupData) error {
	if p.Password != p.ConfirmPassword {
		return validationError(MsgPasswordsMismatch)
	}
	if len(p.Password) < common.MinPasswordLength {
		return validationError(MsgPasswordTooShort)
	}
	if strings.TrimSpace(p.Username) == "" || strings.TrimSpace(p.Email) == "" {
		return validationError(MsgMissingFields)
	}
	return nil
}

func ValidateLogin(c models.LoginData) error {
	if strings.TrimSpace(c.Email) == "" || c.Password == "" {
		return validationError(MsgMissingFields)
	}
	return nil
}
