package hoard

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrInvalidArgument indicates a required input was missing or empty.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConflict indicates a file exists and overwriting was not allowed.
	ErrConflict = errors.New("conflict")

	// ErrNotFound indicates a file or directory does not exist.
	ErrNotFound = errors.New("not found")

	// ErrPreconditionFailed indicates encryption was requested but no
	// cryptographic transform is configured.
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrTransform indicates a registered transform rejected the bytes.
	ErrTransform = errors.New("transform failed")

	// ErrInvalidOperation indicates an Object was used in a state that does
	// not permit the call (consumed, closed, or still encrypted).
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrIO indicates an underlying filesystem failure.
	ErrIO = errors.New("i/o failure")

	// ErrMarshal indicates the codec failed to marshal a value.
	ErrMarshal = errors.New("marshal failed")

	// ErrUnmarshal indicates the codec failed to unmarshal stored data.
	ErrUnmarshal = errors.New("unmarshal failed")
)

// TransformError represents a failure inside a registered transform.
// It matches both ErrTransform and the transform's own error with errors.Is.
type TransformError struct {
	Err       error  // Underlying sentinel error (ErrTransform)
	Transform string // Name of the transform that failed
	Operation string // "after-serialize" or "before-deserialize"
	Cause     error  // Original error from the transform
}

func (e *TransformError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s %s: %v", e.Err.Error(), e.Transform, e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s: %s %s", e.Err.Error(), e.Transform, e.Operation)
}

func (e *TransformError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// CodecError represents a marshal/unmarshal error.
type CodecError struct {
	Err         error  // Underlying sentinel error (ErrMarshal, ErrUnmarshal)
	ContentType string // Content type of the codec in use
	Cause       error  // Original error from the codec
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %v", e.Err.Error(), e.ContentType, e.Cause)
	}
	return fmt.Sprintf("%s (%s)", e.Err.Error(), e.ContentType)
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// Transform operations reported in TransformError.Operation.
const (
	opAfterSerialize    = "after-serialize"
	opBeforeDeserialize = "before-deserialize"
)

// newTransformError creates a TransformError for a failed chain step.
func newTransformError(name, operation string, cause error) error {
	return &TransformError{
		Err:       ErrTransform,
		Transform: name,
		Operation: operation,
		Cause:     cause,
	}
}

// newCodecError creates a CodecError for marshal/unmarshal failures.
func newCodecError(sentinel error, contentType string, cause error) error {
	return &CodecError{
		Err:         sentinel,
		ContentType: contentType,
		Cause:       cause,
	}
}

// ioError wraps a filesystem error with ErrIO.
func ioError(op, path string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrIO, op, path, err)
}

// argumentError reports a missing required argument.
func argumentError(name string) error {
	return fmt.Errorf("%w: %s is required", ErrInvalidArgument, name)
}
