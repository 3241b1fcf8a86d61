// Package bus provides register-addressed access to peripherals on an I2C bus.
package bus

import (
	"errors"
	"fmt"
)

// Bus reads and writes device registers addressed by 16-bit register numbers.
type Bus interface {
	// ReadRegister reads n bytes starting at reg.
	ReadRegister(reg uint16, n int) ([]byte, error)

	// WriteRegister writes data starting at reg.
	WriteRegister(reg uint16, data []byte) error
}

// Op identifies the kind of bus transaction that failed.
type Op string

const (
	OpRead  Op = "read"
	OpWrite Op = "write"
)

// Error is a failed bus transaction.
type Error struct {
	Op       Op
	Register uint16
	Err      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("bus: %s register 0x%04X: %v", e.Op, e.Register, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap returns err as a *Error for the given transaction. Errors that already
// carry a *Error are returned unchanged, and a nil err stays nil.
func Wrap(op Op, reg uint16, err error) error {
	if err == nil {
		return nil
	}
	var busErr *Error
	if errors.As(err, &busErr) {
		return err
	}
	return &Error{Op: op, Register: reg, Err: err}
}

// IsBusError reports whether err was caused by a failed bus transaction.
func IsBusError(err error) bool {
	var busErr *Error
	return errors.As(err, &busErr)
}

// registerAddress encodes reg as the big-endian two byte prefix that starts
// every transaction.
func registerAddress(reg uint16) []byte {
	return []byte{byte(reg >> 8), byte(reg & 0xFF)}
}
