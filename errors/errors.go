/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when no instance or factory can resolve a slot
	ErrNotFound = errors.New("instance not found")

	// ErrTypeMismatch is returned when stored type identity disagrees with the requested type
	ErrTypeMismatch = errors.New("stored type does not match requested type")

	// ErrSignatureMismatch is returned when a factory's argument shape differs from the invocation
	ErrSignatureMismatch = errors.New("factory signature mismatch")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// NotFoundError represents a failed resolution for a (type, name) slot
type NotFoundError struct {
	Type string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no instance or factory for type %s with name %q", e.Type, e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// TypeMismatchError represents a disagreement between the stored type identity
// and the type requested at the same slot
type TypeMismatchError struct {
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("stored type %s does not match requested type %s", e.Actual, e.Expected)
}

func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// SignatureMismatchError represents a factory invoked with a different
// argument shape than it was registered with
type SignatureMismatchError struct {
	Type string
	Want string
	Got  string
}

func (e *SignatureMismatchError) Error() string {
	return fmt.Sprintf("factory for type %s expects arguments (%s), got (%s)", e.Type, e.Want, e.Got)
}

func (e *SignatureMismatchError) Is(target error) bool {
	return target == ErrSignatureMismatch
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(typeName, name string) error {
	return &NotFoundError{Type: typeName, Name: name}
}

// NewTypeMismatchError creates a new TypeMismatchError
func NewTypeMismatchError(expected, actual string) error {
	return &TypeMismatchError{Expected: expected, Actual: actual}
}

// NewSignatureMismatchError creates a new SignatureMismatchError
func NewSignatureMismatchError(typeName, want, got string) error {
	return &SignatureMismatchError{Type: typeName, Want: want, Got: got}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsTypeMismatch checks if an error is a type mismatch error
func IsTypeMismatch(err error) bool {
	return errors.Is(err, ErrTypeMismatch)
}

// IsSignatureMismatch checks if an error is a factory signature mismatch error
func IsSignatureMismatch(err error) bool {
	return errors.Is(err, ErrSignatureMismatch)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
