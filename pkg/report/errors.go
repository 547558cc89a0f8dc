package report

import (
	"errors"
	"fmt"
)

var (
	// ErrBuild matches every fatal build failure. A caller holding an error
	// that matches ErrBuild knows no document was produced.
	ErrBuild = errors.New("report: build failed")

	// ErrConfig indicates the report configuration cannot be used.
	ErrConfig = errors.New("report: invalid config")
)

// Stage names the part of the build that failed.
type Stage string

const (
	StageLayout   Stage = "layout"
	StageOutput   Stage = "output"
	StageValidate Stage = "validate"
)

// BuildError is the fatal error returned by Build. Chart failures are never
// reported through it.
type BuildError struct {
	Stage Stage
	Err   error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("report: %s failed: %v", e.Stage, e.Err)
}

// Unwrap exposes both ErrBuild and the underlying cause to errors.Is/As.
func (e *BuildError) Unwrap() []error {
	return []error{ErrBuild, e.Err}
}

func buildError(stage Stage, err error) *BuildError {
	return &BuildError{Stage: stage, Err: err}
}
