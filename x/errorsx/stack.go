package errorsx

import (
	"github.com/pkg/errors"
)

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// WithStack annotates err with a stack trace unless it already carries one.
// Use this instead of errors.WithStack so stacks recorded close to the error
// origin are not replaced by shallower ones.
func WithStack(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := err.(stackTracer); ok {
		return err
	}

	return errors.WithStack(err)
}
