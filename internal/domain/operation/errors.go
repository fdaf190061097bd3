package operation

import "errors"

var (
	// ErrInvalidParameter marks malformed or out-of-range numeric/time input,
	// detected before any path allocation or execution.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidDuration marks a zero or negative duration in size-targeted
	// bitrate math.
	ErrInvalidDuration = errors.New("invalid duration")

	// ErrCommandUnresolvable marks free text that matched no known intent or
	// was missing required details.
	ErrCommandUnresolvable = errors.New("command unresolvable")

	// ErrDurationUnavailable marks a duration probe failure.
	ErrDurationUnavailable = errors.New("duration unavailable")

	// ErrExecutionFailed marks a nonzero exit from the external tool.
	ErrExecutionFailed = errors.New("execution failed")

	// ErrBusy is returned when another operation already holds the
	// single-operation admission gate.
	ErrBusy = errors.New("another operation is in progress")
)
