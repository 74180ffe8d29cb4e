package utils

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"localbite-be/internal/apperror"
)

func StrPtr(s string) *string {
	return &s
}

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// TrimPtr trims the pointed string in place and returns the pointer.
func TrimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// MaxLen fails with a validation error when s is longer than n characters.
func MaxLen(field, s string, n int) error {
	if utf8.RuneCountInString(s) > n {
		return apperror.Validation(fmt.Sprintf("%s must be at most %d characters", field, n))
	}
	return nil
}

func Required(field, s string) error {
	if strings.TrimSpace(s) == "" {
		return apperror.Validation(field + " is required")
	}
	return nil
}

// FirstErr returns the first non-nil error.
func FirstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Truncate cuts s to at most n characters.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
