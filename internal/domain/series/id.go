package series

import (
	"errors"
	"strings"
)

// MaxIDLength bounds the accepted length of a series identifier.
const MaxIDLength = 100

var (
	errEmptyID   = errors.New("series id cannot be empty")
	errLongID    = errors.New("series id must be at most 100 characters")
	errInvalidID = errors.New("series id contains invalid characters")
)

// ParseID trims, validates and upper-cases a series identifier.
func ParseID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", errEmptyID
	}
	if len(id) > MaxIDLength {
		return "", errLongID
	}
	if !ValidID(id) {
		return "", errInvalidID
	}
	return strings.ToUpper(id), nil
}

// ValidID reports whether id consists only of ASCII letters, digits, '_' and '-'.
func ValidID(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return false
		}
	}
	return true
}
