package fss

import (
	"errors"
	"fmt"
)

var (
	// ErrTableNotFound indicates the observable table for one size is absent.
	ErrTableNotFound = errors.New("fss: observable table not found")

	// ErrPaletteExhausted indicates more lattice sizes than palette colours.
	ErrPaletteExhausted = errors.New("fss: palette exhausted")

	// ErrNoTables indicates a strict run found no table for any size.
	ErrNoTables = errors.New("fss: no observable tables found")

	// ErrInvalidParams indicates non-positive exponents or sizes.
	ErrInvalidParams = errors.New("fss: invalid scaling parameters")
)

// MissingTableError names the file that was looked for and where.
type MissingTableError struct {
	L    int
	File string
	Dir  string
	Err  error
}

func (e *MissingTableError) Error() string {
	return fmt.Sprintf("%s not found in %s", e.File, e.Dir)
}

func (e *MissingTableError) Unwrap() error {
	return e.Err
}

func (e *MissingTableError) Is(target error) bool {
	return target == ErrTableNotFound
}
