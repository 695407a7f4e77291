package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entity names used in not-found errors
const (
	EntityUser    = "User"
	EntityProject = "Project"
	EntityTask    = "ProjectTask"
)

var (
	// ErrNotFound matches every NotFoundError
	ErrNotFound = errors.New("entity not found")
	// ErrBusinessRule matches every BusinessRuleError
	ErrBusinessRule = errors.New("business rule violation")
)

// NotFoundError reports that a referenced entity id does not resolve.
type NotFoundError struct {
	Entity string
	ID     uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id '%s' was not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// BusinessRuleError reports a well-formed request rejected by a domain rule.
type BusinessRuleError struct {
	Message string
}

func (e *BusinessRuleError) Error() string {
	return e.Message
}

func (e *BusinessRuleError) Is(target error) bool {
	return target == ErrBusinessRule
}

// NewNotFoundError creates a NotFoundError
func NewNotFoundError(entity string, id uuid.UUID) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// NewBusinessRuleError creates a BusinessRuleError
func NewBusinessRuleError(format string, args ...interface{}) error {
	return &BusinessRuleError{Message: fmt.Sprintf(format, args...)}
}

// lookupError turns a missing row into a NotFoundError and wraps anything else
func lookupError(err error, entity string, id uuid.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NewNotFoundError(entity, id)
	}
	return fmt.Errorf("failed to find %s: %w", entity, err)
}
