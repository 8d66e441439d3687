package types

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports an unresolved booking, room or room type id.
	ErrNotFound = errors.New("record not found")
	// ErrUnavailable reports a storage fault unrelated to business rules.
	// Availability answers built on it must fail closed, never open.
	ErrUnavailable = errors.New("service unavailable")
)

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

type FeeTooLowError struct {
	Minimum  float64
	Declared float64
}

func (e *FeeTooLowError) Error() string {
	return fmt.Sprintf("payment amount must be at least %.2f, got %.2f", e.Minimum, e.Declared)
}

type InsufficientAvailabilityError struct {
	Requested int
	Available int
}

func (e *InsufficientAvailabilityError) Error() string {
	return fmt.Sprintf("not enough available rooms for selected type: requested %d, available %d", e.Requested, e.Available)
}

func (e *InsufficientAvailabilityError) Shortfall() int {
	return e.Requested - e.Available
}

type ConflictError struct {
	RoomID uint
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("room %d: %s", e.RoomID, e.Reason)
}

type InvalidTransitionError struct {
	From BookingStatus
	Op   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s a booking in %q status", e.Op, e.From)
}
