package harness

import (
	"errors"
	"fmt"
)

// ErrNotSupported is returned synchronously when a capability-gated operation
// is invoked against an adapter that declared the capability false. It is an
// expected, catalogued failure for optional operations, and a programming
// error for core ones.
var ErrNotSupported = errors.New("operation not supported by adapter")

// NotSupportedError wraps ErrNotSupported with the adapter and operation.
type NotSupportedError struct {
	Adapter string
	Op      string
}

func (e *NotSupportedError) Error() string {
	return fmt.Sprintf("adapter %q does not support %s", e.Adapter, e.Op)
}

func (e *NotSupportedError) Unwrap() error { return ErrNotSupported }

// NotFoundError is returned by Registry.Get and Registry.Unregister for an
// unknown adapter id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("adapter not found: %s", e.ID)
}
