package errors

import (
	"fmt"
	"runtime/debug"
)

// UnreachableError reports that a code path which must never execute was
// reached. It indicates a bug in the analyzer, not a problem with the
// analyzed contracts, so callers panic with it rather than return it.
type UnreachableError struct {
	Stack []byte
}

// NewUnreachableError captures the current stack so the offending call
// site survives into crash reports.
func NewUnreachableError() *UnreachableError {
	return &UnreachableError{Stack: debug.Stack()}
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("internal error: unreachable code was reached\n\n%s", e.Stack)
}

// UnexpectedError reports a violated internal invariant together with the
// value that violated it. Like UnreachableError it is only ever panicked.
type UnexpectedError struct {
	Message string
	Stack   []byte
}

// NewUnexpectedError formats the invariant violation and captures the stack.
func NewUnexpectedError(format string, args ...any) *UnexpectedError {
	return &UnexpectedError{
		Message: fmt.Sprintf(format, args...),
		Stack:   debug.Stack(),
	}
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("internal error: %s\n\n%s", e.Message, e.Stack)
}
