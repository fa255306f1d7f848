package validator

import (
	"errors"
	"strings"
	"time"
	"unicode"
)

func ValidateLocation(s string) (string, error) {
	loc := strings.TrimSpace(s)
	if len(loc) < 2 {
		return "", errors.New("invalid location")
	}
	return loc, nil
}

func ValidateDate(dateStr string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, errors.New("invalid date, expected YYYY-MM-DD")
	}
	return t, nil
}

// LooksLikeIATA reports whether s has the shape of a 3-letter airport code.
// It says nothing about the code actually existing.
func LooksLikeIATA(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
