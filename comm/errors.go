package comm

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCommand = errors.New("invalid command")
	ErrRejected       = errors.New("command rejected")
	ErrInvalidState   = errors.New("invalid state")
)

// InvalidCommandError carries a byte pair that does not decode to a State.
type InvalidCommandError struct {
	Command Command
}

func (e *InvalidCommandError) Error() string {
	return fmt.Sprintf("invalid command: %q (0x%02x 0x%02x)", e.Command[:], e.Command[0], e.Command[1])
}

func (e *InvalidCommandError) Is(target error) bool {
	return target == ErrInvalidCommand
}

// RejectedError is returned by Client.Set when the device answers with
// anything but Ack.
type RejectedError struct {
	Response byte
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("command rejected: device answered %q", e.Response)
}

func (e *RejectedError) Is(target error) bool {
	return target == ErrRejected
}
