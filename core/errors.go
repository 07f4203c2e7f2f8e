package core

import (
	"errors"
	"fmt"
)

// Sentinel error kinds returned by the codec. Callers compare with
// errors.Is; wrapped instances carry additional context via fmt.Errorf's
// %w verb (see pkg/utils.Wrap).
var (
	// ErrTypeMismatch is returned when a Value's signature differs from the
	// Parameter it is being matched against.
	ErrTypeMismatch = errors.New("core: type mismatch")
	// ErrValueOutOfRange is returned when an integer exceeds its declared
	// bit width, a byte slice's length disagrees with a fixed declaration,
	// or an array's length disagrees with its fixed declaration.
	ErrValueOutOfRange = errors.New("core: value out of range")
	// ErrSerializationError is returned when a single parameter's encoding
	// cannot fit where chaining into a continuation cell is not permitted.
	ErrSerializationError = errors.New("core: serialization error")
	// ErrDeserializationError is returned on slice exhaustion, tag
	// mismatch, wrong dictionary key width, or residual bits where clean
	// consumption was expected.
	ErrDeserializationError = errors.New("core: deserialization error")
	// ErrSelectorMismatch is returned when an observed 32-bit selector
	// prefix does not equal the expected input_id/output_id.
	ErrSelectorMismatch = errors.New("core: selector mismatch")
	// ErrMissingHeaderValue is returned when a header parameter has no
	// supplied value and no default.
	ErrMissingHeaderValue = errors.New("core: missing header value")
	// ErrAccountInactive is returned by the Get-Method Runner when the
	// target account is not in the active state.
	ErrAccountInactive = errors.New("core: account inactive")
	// ErrOutputTypeMismatch is returned when a VM output stack item cannot
	// be converted to the expected output Parameter's Value.
	ErrOutputTypeMismatch = errors.New("core: output type mismatch")
	// ErrSignatureError is returned on a signing or verification failure.
	ErrSignatureError = errors.New("core: signature error")
)

// VmError reports a non-zero VM exit code from a get-method invocation.
type VmError struct {
	ExitCode int
}

func (e *VmError) Error() string {
	return fmt.Sprintf("core: vm exited with code %d", e.ExitCode)
}
