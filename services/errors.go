// services/errors.go
package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// The error taxonomy shared by the core subsystems. Controllers map these to
// HTTP statuses (400 / 403 / 404 / 409); anything else is a server error.

type ValidationError struct{ Msg string }

func (e ValidationError) Error() string { return e.Msg }

type PermissionError struct{ Msg string }

func (e PermissionError) Error() string { return e.Msg }

type NotFoundError struct{ Msg string }

func (e NotFoundError) Error() string { return e.Msg }

type ConflictError struct{ Msg string }

func (e ConflictError) Error() string { return e.Msg }

// isUniqueViolation reports whether err came from a unique index. gorm
// translates driver errors when TranslateError is set; the string checks cover
// drivers that don't implement the translator.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
