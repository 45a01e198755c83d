package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/san-kum/isingviz/internal/fss"
)

const DefaultPattern = "ising_L%d.csv"

// Column names the simulator writes for temperature and susceptibility.
const (
	ColumnT   = "T"
	ColumnChi = "Chi"
)

var (
	ErrMissingColumn        = errors.New("storage: required column missing")
	ErrDuplicateTemperature = errors.New("storage: duplicate temperature")
	ErrEmptyTable           = errors.New("storage: table has no header")
	ErrNonFinite            = errors.New("storage: value is NaN or infinite")
)

// ParseError locates a fatal problem inside a table file.
type ParseError struct {
	Path   string
	Line   int
	Column string
	Err    error
}

func (e *ParseError) Error() string {
	loc := e.Path
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", e.Path, e.Line)
	}
	if e.Column == "" {
		return fmt.Sprintf("%s: %v", loc, e.Err)
	}
	return fmt.Sprintf("%s: column %s: %v", loc, e.Column, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Store resolves observable tables inside one directory by a naming pattern
// keyed on the lattice size.
type Store struct {
	baseDir string
	pattern string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, pattern: DefaultPattern}
}

// WithPattern sets the fmt pattern used to name tables, e.g. "ising_L%d.csv".
func (s *Store) WithPattern(pattern string) *Store {
	s.pattern = pattern
	return s
}

func (s *Store) FileName(L int) string {
	return fmt.Sprintf(s.pattern, L)
}

func (s *Store) TablePath(L int) string {
	return filepath.Join(s.baseDir, s.FileName(L))
}

// Dir is the absolute directory tables are searched in, falling back to the
// configured path when it cannot be resolved.
func (s *Store) Dir() string {
	abs, err := filepath.Abs(s.baseDir)
	if err != nil {
		return s.baseDir
	}
	return abs
}

// LoadTable implements fss.TableLoader. A missing file yields an
// *fss.MissingTableError; anything wrong inside the file is a *ParseError.
func (s *Store) LoadTable(L int) (*fss.Record, error) {
	path := s.TablePath(L)
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &fss.MissingTableError{L: L, File: s.FileName(L), Dir: s.Dir(), Err: err}
		}
		return nil, err
	}
	defer file.Close()

	return ParseTable(file, L, path)
}

// ParseTable reads a CSV table with a header row. Only the T and Chi columns
// are used. Rows are returned sorted ascending by T.
func ParseTable(r io.Reader, L int, source string) (*fss.Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Path: source, Line: 1, Err: ErrEmptyTable}
		}
		return nil, &ParseError{Path: source, Line: 1, Err: err}
	}

	tIdx, chiIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case ColumnT:
			tIdx = i
		case ColumnChi:
			chiIdx = i
		}
	}
	if tIdx < 0 {
		return nil, &ParseError{Path: source, Line: 1, Column: ColumnT, Err: ErrMissingColumn}
	}
	if chiIdx < 0 {
		return nil, &ParseError{Path: source, Line: 1, Column: ColumnChi, Err: ErrMissingColumn}
	}

	rec := &fss.Record{L: L, Source: source}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			line := 0
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				line = perr.Line
			}
			return nil, &ParseError{Path: source, Line: line, Err: err}
		}
		line, _ := cr.FieldPos(0)

		t, err := parseFinite(row[tIdx])
		if err != nil {
			return nil, &ParseError{Path: source, Line: line, Column: ColumnT, Err: err}
		}
		chi, err := parseFinite(row[chiIdx])
		if err != nil {
			return nil, &ParseError{Path: source, Line: line, Column: ColumnChi, Err: err}
		}
		rec.Samples = append(rec.Samples, fss.Sample{T: t, Chi: chi})
	}

	slices.SortStableFunc(rec.Samples, func(a, b fss.Sample) int {
		switch {
		case a.T < b.T:
			return -1
		case a.T > b.T:
			return 1
		}
		return 0
	})
	for i := 1; i < len(rec.Samples); i++ {
		if rec.Samples[i].T == rec.Samples[i-1].T {
			return nil, &ParseError{
				Path:   source,
				Column: ColumnT,
				Err:    fmt.Errorf("%w: T=%g", ErrDuplicateTemperature, rec.Samples[i].T),
			}
		}
	}
	return rec, nil
}

// parseFinite is strconv.ParseFloat without NaN and ±Inf.
func parseFinite(cell string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrNonFinite, strings.TrimSpace(cell))
	}
	return v, nil
}
