package journey

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidArgument marks malformed or missing capability input: an empty
	// key, a wrong argument type, a rejected rule expression.
	ErrInvalidArgument = errors.New("journey: invalid argument")

	// ErrInvalidState marks a transition whose precondition is unmet, such as
	// unlocking a safe that is not locked.
	ErrInvalidState = errors.New("journey: invalid state")

	// ErrCapabilityNotFound is returned when no capability is registered under
	// the requested name.
	ErrCapabilityNotFound = errors.New("journey: capability not found")

	// ErrCapabilityExists is returned when registering a duplicate name.
	ErrCapabilityExists = errors.New("journey: capability already registered")
)

// CapabilityError annotates a failure with the capability that produced it.
type CapabilityError struct {
	Capability string
	Err        error
}

func (e *CapabilityError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := "<nil>"
	if e.Err != nil {
		msg = strings.TrimPrefix(e.Err.Error(), "journey: ")
	}
	return fmt.Sprintf("journey: capability %q: %s", e.Capability, msg)
}

func (e *CapabilityError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func wrapCapabilityError(name string, err error) error {
	if err == nil {
		return nil
	}
	var capErr *CapabilityError
	if errors.As(err, &capErr) {
		return err
	}
	return &CapabilityError{Capability: name, Err: err}
}
