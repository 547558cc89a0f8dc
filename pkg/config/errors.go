package config

import "errors"

// The command maps both of these to exit code 2. Wrapped errors carry the
// offending flag, file or variable; match with errors.Is.
var (
	// ErrInvalidConfig covers input that was supplied but cannot be used:
	// unknown section names, malformed -chart values, conflicting -v/-s,
	// unreadable or unparsable YAML, .env and payload files, and
	// PORTFOLIO_REPORT_* values of the wrong type.
	ErrInvalidConfig = errors.New("portfolio-report: invalid input")

	// ErrMissingRequired means no payload or output path was given.
	ErrMissingRequired = errors.New("portfolio-report: payload or output not specified")
)
