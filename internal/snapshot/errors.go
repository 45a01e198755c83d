package snapshot

import (
	"errors"
	"fmt"
)

var (
	// ErrPrerequisite indicates the snapshot file was never produced: the
	// simulator has not been run in visualization mode yet.
	ErrPrerequisite = errors.New("snapshot: prerequisite missing")

	// ErrShapeMismatch indicates a line that does not hold grid*grid spins.
	ErrShapeMismatch = errors.New("snapshot: line does not match lattice shape")

	// ErrNoFrames indicates a snapshot file without any lines.
	ErrNoFrames = errors.New("snapshot: no frames")
)

// PrerequisiteError is returned when the input file does not exist. It is
// kept apart from parse failures so callers can tell "stage not run" from
// "data corrupt".
type PrerequisiteError struct {
	Path string
	Err  error
}

func (e *PrerequisiteError) Error() string {
	return fmt.Sprintf("%s not found: run the simulator with snapshot output (--viz) first", e.Path)
}

func (e *PrerequisiteError) Unwrap() error {
	return e.Err
}

func (e *PrerequisiteError) Is(target error) bool {
	return target == ErrPrerequisite
}

// ShapeError reports the first line whose token count is wrong.
type ShapeError struct {
	Path string
	Line int
	Got  int
	Want int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s:%d: got %d spins, want %d", e.Path, e.Line, e.Got, e.Want)
}

func (e *ShapeError) Is(target error) bool {
	return target == ErrShapeMismatch
}

// ParseError reports a token that is not an integer.
type ParseError struct {
	Path  string
	Line  int
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: bad spin %q: %v", e.Path, e.Line, e.Token, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
