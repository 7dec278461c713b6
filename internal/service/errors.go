package service

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("validation error")
	// ErrUnauthorized is returned when a non-owner attempts a lifecycle action.
	ErrUnauthorized = errors.New("only the card owner can do that")
	// ErrNotFound is returned when the card id does not exist.
	ErrNotFound = errors.New("card not found")
	// ErrRetentionTooShort matches every *RetentionError.
	ErrRetentionTooShort = errors.New("retention is shorter than the restore window")
)

// ValidationError describes a rejected card input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrValidation) true.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// StoreError reports a failure of the card store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// RetentionError rejects a purge that would remove cards still inside
// the restore window.
type RetentionError struct {
	Retention time.Duration
}

func (e *RetentionError) Error() string {
	return fmt.Sprintf("retention %v is shorter than the %v restore window", e.Retention, RestoreWindow)
}

// Is makes errors.Is(err, ErrRetentionTooShort) true.
func (e *RetentionError) Is(target error) bool {
	return target == ErrRetentionTooShort
}

// CheckRetention reports whether cards soft-deleted longer than retention
// ago may be purged.
func CheckRetention(retention time.Duration) error {
	if retention < RestoreWindow {
		return &RetentionError{Retention: retention}
	}
	return nil
}
