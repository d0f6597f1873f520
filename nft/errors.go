package nft

import (
	"errors"
	"fmt"
)

// Error kinds returned by lifecycle operations. Every operation failure is an
// *OperationError whose Kind is one of these.
var (
	ErrNotConnected      = errors.New("wallet not connected")
	ErrInvalidInput      = errors.New("invalid input")
	ErrMissingMintKey    = errors.New("missing mint key")
	ErrSubmissionFailed  = errors.New("submission failed")
	ErrOperationInFlight = errors.New("another operation is in flight for this token")
)

// ErrUnknownToken is returned by lookups for ids the manager has never seen
var ErrUnknownToken = errors.New("unknown token")

var kinds = []error{
	ErrNotConnected,
	ErrInvalidInput,
	ErrMissingMintKey,
	ErrSubmissionFailed,
	ErrOperationInFlight,
}

// OperationError is a failed mint, update or burn
type OperationError struct {
	Op   Operation
	Kind error
	Err  error
}

func (e *OperationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As
func (e *OperationError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindOf returns the error kind of err, or nil if err is not an operation error
func KindOf(err error) error {
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return opErr.Kind
	}
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// IsKind checks if err is an operation error of the given kind
func IsKind(err error, kind error) bool {
	k := KindOf(err)
	return k != nil && k == kind
}

func opError(op Operation, kind error, err error) error {
	return &OperationError{Op: op, Kind: kind, Err: err}
}
