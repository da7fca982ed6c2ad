package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeGraph represents graph database errors
	ErrorTypeGraph ErrorType = "graph"
	// ErrorTypeModel represents domain model errors
	ErrorTypeModel ErrorType = "model"
	// ErrorTypePublish represents pub/sub publishing errors
	ErrorTypePublish ErrorType = "publish"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Model Errors

// TypeConstraintError is returned when an operation receives a value that is
// not the entity kind it works on. The operation is not attempted.
type TypeConstraintError struct {
	*BaseError
	Expected string
	Got      string
}

func NewTypeConstraint(expected string, got interface{}) *TypeConstraintError {
	gotName := fmt.Sprintf("%T", got)
	if got == nil {
		gotName = "nil"
	}
	return &TypeConstraintError{
		BaseError: NewBaseError(ErrorTypeModel, fmt.Sprintf("expected %s, got %s", expected, gotName), nil),
		Expected:  expected,
		Got:       gotName,
	}
}

// InvalidFieldError is returned when a record field cannot be used
type InvalidFieldError struct {
	*BaseError
	Field  string
	Reason string
}

func NewInvalidField(field, reason string) *InvalidFieldError {
	return &InvalidFieldError{
		BaseError: NewBaseError(ErrorTypeModel, fmt.Sprintf("invalid field %q: %s", field, reason), nil),
		Field:     field,
		Reason:    reason,
	}
}

// GroupFullError is returned when adding a member to a group at capacity
type GroupFullError struct {
	*BaseError
	GroupID  int64
	MaxUsers int64
}

func NewGroupFull(groupID int64, maxUsers int64) *GroupFullError {
	return &GroupFullError{
		BaseError: NewBaseError(ErrorTypeModel, fmt.Sprintf("group %d is full (%d users)", groupID, maxUsers), nil),
		GroupID:   groupID,
		MaxUsers:  maxUsers,
	}
}

// Graph Errors

// ErrGraphConnectionFailed is returned when Neo4j connection fails
type ErrGraphConnectionFailed struct {
	*BaseError
	URI string
}

func NewGraphConnectionFailed(uri string, err error) *ErrGraphConnectionFailed {
	return &ErrGraphConnectionFailed{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("failed to connect to Neo4j: %s", uri), err),
		URI:       uri,
	}
}

// ErrGraphQueryFailed is returned when a statement against the store fails
type ErrGraphQueryFailed struct {
	*BaseError
	Operation string
}

func NewGraphQueryFailed(operation string, err error) *ErrGraphQueryFailed {
	return &ErrGraphQueryFailed{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("%s failed", operation), err),
		Operation: operation,
	}
}

// DuplicateKeyError is returned when a node with the same key already exists
type DuplicateKeyError struct {
	*BaseError
	Label string
	Key   int64
}

func NewDuplicateKey(label string, key int64, err error) *DuplicateKeyError {
	return &DuplicateKeyError{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("%s %d already exists", label, key), err),
		Label:     label,
		Key:       key,
	}
}

// Publish Errors

// ErrPublishFailed is returned when a notification could not be delivered
type ErrPublishFailed struct {
	*BaseError
	Target string
}

func NewPublishFailed(target string, err error) *ErrPublishFailed {
	return &ErrPublishFailed{
		BaseError: NewBaseError(ErrorTypePublish, fmt.Sprintf("failed to publish to %s", target), err),
		Target:    target,
	}
}

// Config Errors

// ErrConfigMissingRequired is returned when a required config value is missing
type ErrConfigMissingRequired struct {
	*BaseError
	Field string
}

func NewConfigMissingRequired(field string) *ErrConfigMissingRequired {
	return &ErrConfigMissingRequired{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("missing required config: %s", field), nil),
		Field:     field,
	}
}

// Helper functions

// IsErrorType checks if an error, or anything it wraps, is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	for err != nil {
		if t, ok := typeOf(err); ok && t == errType {
			return true
		}
		err = stderrors.Unwrap(err)
	}
	return false
}

func typeOf(err error) (ErrorType, bool) {
	switch e := err.(type) {
	case *BaseError:
		return e.Type, true
	case interface{ base() *BaseError }:
		return e.base().Type, true
	}
	return "", false
}

func (e *TypeConstraintError) base() *BaseError      { return e.BaseError }
func (e *InvalidFieldError) base() *BaseError        { return e.BaseError }
func (e *GroupFullError) base() *BaseError           { return e.BaseError }
func (e *ErrGraphConnectionFailed) base() *BaseError { return e.BaseError }
func (e *ErrGraphQueryFailed) base() *BaseError      { return e.BaseError }
func (e *DuplicateKeyError) base() *BaseError        { return e.BaseError }
func (e *ErrPublishFailed) base() *BaseError         { return e.BaseError }
func (e *ErrConfigMissingRequired) base() *BaseError { return e.BaseError }
