// Package validate turns raw string input (form fields, CSV cells) into
// typed, constrained values. Every function reports a field-level error
// naming the offending field; empty optional input parses to nil.
package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"it_asset_manager/models"
)

var (
	AssetStatuses    = []string{models.StatusUnassigned, models.StatusAssigned, models.StatusMaintenance, models.StatusRetired}
	AssetConditions  = []string{"excellent", "good", "fair", "poor", "damaged"}
	OwnershipTypes   = []string{models.OwnershipPurchased, models.OwnershipRented, models.OwnershipLeased}
	AppAccessLevels  = []string{"Admin", "Read", "Write"}
	GitHubAccessType = []string{"Admin", "Write", "Read", "Maintainer"}
	AccessStatuses   = []string{models.AccessActive, models.AccessRevoked}
)

// Date formats accepted on input, tried in order. First parse wins.
var dateFormats = []string{"2006-01-02", "01/02/2006", "02/01/2006", "2006/01/02"}

var (
	assetTagRe = regexp.MustCompile(`^[A-Za-z0-9-]+$`)
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9._]+$`)
	emailRe    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// Int parses an optional non-negative integer field. Empty input is nil.
func Int(field, value string) (*int, error) {
	if value == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("%s must be a valid integer", field)
	}
	if n < 0 {
		return nil, fmt.Errorf("%s must be a positive integer", field)
	}
	return &n, nil
}

// Float parses an optional non-negative number field. Empty input is nil.
func Float(field, value string) (*float64, error) {
	if value == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be a valid number", field)
	}
	if f < 0 {
		return nil, fmt.Errorf("%s must be a positive number", field)
	}
	return &f, nil
}

// Date parses an optional date field, trying each accepted format in order.
func Date(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid date for %s: %q, use YYYY-MM-DD format", field, value)
}

// Enum checks that value is one of allowed. Invalid values are rejected on
// every code path, direct inserts included.
func Enum(field, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("invalid %s %q, must be one of: %s", field, value, strings.Join(allowed, ", "))
}

func AssetTag(tag string) error {
	switch {
	case tag == "":
		return fmt.Errorf("asset tag is required")
	case len(tag) < 3:
		return fmt.Errorf("asset tag must be at least 3 characters long")
	case len(tag) > 50:
		return fmt.Errorf("asset tag is too long (max 50 characters)")
	case !assetTagRe.MatchString(tag):
		return fmt.Errorf("asset tag can only contain letters, numbers, and hyphens")
	}
	return nil
}

func SerialNumber(serial string) error {
	switch {
	case serial == "":
		return fmt.Errorf("serial number is required")
	case len(serial) < 3:
		return fmt.Errorf("serial number must be at least 3 characters long")
	case len(serial) > 100:
		return fmt.Errorf("serial number is too long (max 100 characters)")
	case strings.TrimSpace(serial) != serial:
		return fmt.Errorf("serial number cannot have leading or trailing whitespace")
	}
	return nil
}

func Username(username string) error {
	switch {
	case username == "":
		return fmt.Errorf("username is required")
	case len(username) < 3:
		return fmt.Errorf("username must be at least 3 characters long")
	case len(username) > 80:
		return fmt.Errorf("username is too long (max 80 characters)")
	case !usernameRe.MatchString(username):
		return fmt.Errorf("username can only contain letters, numbers, dots, and underscores")
	case strings.HasPrefix(username, ".") || strings.HasPrefix(username, "_"):
		return fmt.Errorf("username cannot start with a dot or underscore")
	case strings.HasSuffix(username, ".") || strings.HasSuffix(username, "_"):
		return fmt.Errorf("username cannot end with a dot or underscore")
	}
	return nil
}

func Email(email string) error {
	switch {
	case email == "":
		return fmt.Errorf("email is required")
	case len(email) > 120:
		return fmt.Errorf("email address is too long (max 120 characters)")
	case !emailRe.MatchString(email):
		return fmt.Errorf("invalid email format")
	}
	return nil
}

func Password(password string) error {
	switch {
	case password == "":
		return fmt.Errorf("password is required")
	case len(password) < 6:
		return fmt.Errorf("password must be at least 6 characters long")
	case len(password) > 128:
		return fmt.Errorf("password is too long (max 128 characters)")
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter {
		return fmt.Errorf("password must contain at least one letter")
	}
	if !hasDigit {
		return fmt.Errorf("password must contain at least one number")
	}
	return nil
}
