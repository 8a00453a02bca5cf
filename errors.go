package seam

import (
	"errors"
	"fmt"
)

// BuildError is the single error kind reported by composition. It carries a
// human-readable message describing the first precondition or substitution
// failure encountered; there is no partial result alongside it.
//
// Failures raised inside the pipeline that are not already BuildErrors are
// wrapped with a generic "failed to build query" message preserving the
// original error as the cause.
type BuildError struct {
	msg  string
	wrap error
}

func (e *BuildError) Error() string {
	if e.wrap != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.wrap)
	}
	return e.msg
}

func (e *BuildError) Unwrap() error {
	return e.wrap
}

// IsBuildErr returns true if err is or wraps a *BuildError.
func IsBuildErr(err error) bool {
	var be *BuildError
	return errors.As(err, &be)
}

// buildErrf constructs a BuildError with a formatted message.
func buildErrf(format string, args ...any) *BuildError {
	return &BuildError{msg: fmt.Sprintf(format, args...)}
}

// asBuildErr returns err unchanged when it already is a BuildError, otherwise
// wraps it so callers always see a single error kind.
func asBuildErr(err error) error {
	if err == nil {
		return nil
	}
	var be *BuildError
	if errors.As(err, &be) {
		return err
	}
	return &BuildError{msg: "failed to build query", wrap: err}
}
