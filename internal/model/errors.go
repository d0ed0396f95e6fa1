package model

import (
	"errors"
	"fmt"
	"strings"
)

// Query error kinds.
const (
	QueryErrConnection = "connection"
	QueryErrTimeout    = "timeout"
	QueryErrSyntax     = "syntax"
	QueryErrConstraint = "constraint"
	QueryErrUndefined  = "undefined"
	QueryErrUnknown    = "unknown"
)

// ValidationError reports missing or malformed user input.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(e.Fields, ", "))
}

// NotFoundError reports an absent entity or table.
type NotFoundError struct {
	Resource string
	Message  string
}

func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Resource + " not found"
}

// QueryError wraps a storage engine failure. Message is the driver text and must not reach end users.
type QueryError struct {
	Kind    string
	Message string
	Err     error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query error [%s]: %s", e.Kind, e.Message)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// DataError reports a stored value that breaks a derived computation.
type DataError struct {
	Field   string
	Message string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsQuery(err error) bool {
	var target *QueryError
	return errors.As(err, &target)
}
