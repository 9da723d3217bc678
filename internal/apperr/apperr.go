// Package apperr defines the error kinds a conversion run can fail with and
// the process exit codes they map to.
//
// Packages wrap one of the sentinels with context:
//
//	return fmt.Errorf("failed to decode image: %w: %v", apperr.ErrDecode, err)
//
// and callers classify with errors.Is or ExitCode.
package apperr

import "errors"

var (
	// ErrDecode reports input that is not a valid or recognized image.
	ErrDecode = errors.New("decode error")

	// ErrIO reports an input or output stream that could not be opened,
	// read, written or closed.
	ErrIO = errors.New("i/o error")

	// ErrInvalidArgument reports a configuration value outside its domain,
	// such as a negative scale or an unknown resizer name.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Exit codes returned by the picart command.
const (
	ExitOK              = 0
	ExitFailure         = 1
	ExitInvalidArgument = 2
	ExitDecode          = 3
	ExitIO              = 4
)

// ExitCode maps err to a process exit code. A nil error is ExitOK; errors of
// no known kind are ExitFailure.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrInvalidArgument):
		return ExitInvalidArgument
	case errors.Is(err, ErrDecode):
		return ExitDecode
	case errors.Is(err, ErrIO):
		return ExitIO
	default:
		return ExitFailure
	}
}
