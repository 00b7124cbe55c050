// store.go - Shared helpers for the persistence layer

// Package store implements the credential and catalog stores on top of GORM.
// Mutating operations consult the policy package before touching the
// database and return apperrors sentinels the handler layer can map to
// status codes.
package store

import (
	"context"
	"errors"
	"strings"

	"go-tree-catalog/apperrors"

	"gorm.io/gorm"
)

// wrapDBError normalizes driver and context failures. A timed-out or canceled
// storage call surfaces as ErrUnavailable so a stalled database fails the
// request instead of hanging it; unknown errors pass through for the handler
// layer to log and mask as 500.
func wrapDBError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.ErrNotFound
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return apperrors.ErrUnavailable
	case isUniqueViolation(err):
		return apperrors.ErrConflict
	default:
		return err
	}
}

// isUniqueViolation detects a unique-constraint failure from the SQLite
// driver without importing it directly.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
