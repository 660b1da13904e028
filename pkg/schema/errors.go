package schema

import (
	"errors"
	"fmt"

	"github.com/aretw0/quill/pkg/domain"
)

// ValidationError represents a single validation failure.
type ValidationError = domain.ValidationError

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

func (e *AggregateError) Unwrap() []error { return e.Errors }

// ValidationErrors returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}

func mismatch(path, expected string, value any) error {
	if value == nil {
		return &ValidationError{Path: path, Reason: "expected " + expected + ", got nil"}
	}
	return &ValidationError{Path: path, Reason: "expected " + expected, Value: value}
}
