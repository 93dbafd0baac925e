package schemaorg

import (
	"errors"
	"fmt"
)

// Sentinel errors for common resolution failures.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrMissingContext indicates that an operation needed the active
	// resolution client but none was attached to the context.
	ErrMissingContext = errors.New("no active resolution context")

	// ErrMalformedID indicates that an id was expected to carry a fragment
	// separator ('#') but did not.
	ErrMalformedID = errors.New("id has no fragment")

	// ErrMissingRequired indicates that a resolved node lacks one or more of
	// the fields its definition declares as required.
	ErrMissingRequired = errors.New("missing required fields")

	// ErrRuleFailed indicates that a validation rule evaluated to false or
	// could not be evaluated.
	ErrRuleFailed = errors.New("validation rule failed")

	// ErrInvalidConfig indicates the provided configuration is invalid or incomplete.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnsupportedValue indicates a field held a value of a shape the
	// operation cannot process.
	ErrUnsupportedValue = errors.New("unsupported value")
)

// Error kinds categorize errors by their type.
const (
	// KindMissingContext represents calls made without an active client.
	KindMissingContext = "missing_context"

	// KindMalformedID represents ids that do not have the expected shape.
	KindMalformedID = "malformed_id"

	// KindValidation represents errors raised while validating resolved nodes.
	KindValidation = "validation"

	// KindConfiguration represents errors related to configuration.
	KindConfiguration = "configuration"

	// KindInternal represents internal errors.
	KindInternal = "internal"
)

// Error is a structured error type that wraps underlying errors with
// the operation that failed and the category of error.
//
// Error supports unwrapping, so errors.Is(err, ErrMissingContext) works on
// any *Error built by NewMissingContextError.
//
// Example usage:
//
//	err := &Error{
//		Op:   "NodeResolver.Resolve",
//		Kind: KindMissingContext,
//		Err:  ErrMissingContext,
//	}
type Error struct {
	// Op is the operation that failed (e.g., "NodeResolver.Resolve").
	Op string

	// Kind categorizes the error (e.g., KindMissingContext, KindValidation).
	Kind string

	// Err is the underlying error that caused this error.
	Err error

	// Context provides additional context about the error (optional),
	// such as the node id or the missing field names.
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("schemaorg: %s: %s", e.Op, e.Kind)
	}

	if len(e.Context) > 0 {
		return fmt.Sprintf("schemaorg: %s (%s): %v [context: %+v]", e.Op, e.Kind, e.Err, e.Context)
	}

	return fmt.Sprintf("schemaorg: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements error matching for Error, allowing comparison based on
// the underlying error or on Kind (and Op, when the target sets one).
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}

	if t, ok := target.(*Error); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}

	return errors.Is(e.Err, target)
}

// WithContext returns a copy of the error with the provided context added.
//
// Example:
//
//	err = err.WithContext(map[string]any{
//		"id": "https://example.com/#article",
//	})
func (e *Error) WithContext(ctx map[string]any) *Error {
	newErr := *e
	merged := make(map[string]any, len(e.Context)+len(ctx))
	for k, v := range e.Context {
		merged[k] = v
	}
	for k, v := range ctx {
		merged[k] = v
	}
	newErr.Context = merged
	return &newErr
}

// NewMissingContextError creates a new Error with KindMissingContext.
func NewMissingContextError(op string) *Error {
	return &Error{
		Op:   op,
		Kind: KindMissingContext,
		Err:  ErrMissingContext,
	}
}

// NewMalformedIDError creates a new Error with KindMalformedID for the given id.
func NewMalformedIDError(op, id string) *Error {
	return &Error{
		Op:      op,
		Kind:    KindMalformedID,
		Err:     ErrMalformedID,
		Context: map[string]any{"id": id},
	}
}

// NewValidationError creates a new Error with KindValidation.
func NewValidationError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindValidation,
		Err:  err,
	}
}

// NewConfigurationError creates a new Error with KindConfiguration.
func NewConfigurationError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindConfiguration,
		Err:  err,
	}
}

// NewInternalError creates a new Error with KindInternal.
func NewInternalError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindInternal,
		Err:  err,
	}
}
