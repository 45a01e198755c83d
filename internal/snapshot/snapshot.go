// Package snapshot reads lattice-state dumps written by the simulator.
//
// Each line of a dump is one time step: grid*grid whitespace-separated
// integer spins in row-major order. Lines become [Frame]s and are kept in
// file order inside a [Sequence].
package snapshot

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

// maxLine bounds a single snapshot line. A 1000x1000 lattice of "-1 " tokens
// needs about 3 MB.
const maxLine = 16 << 20

// Frame is one square lattice. Spins are stored row-major.
type Frame struct {
	Size  int
	Spins []int
}

func (f Frame) At(row, col int) int {
	return f.Spins[row*f.Size+col]
}

// Rows returns the frame reshaped into Size rows.
func (f Frame) Rows() [][]int {
	rows := make([][]int, f.Size)
	for r := range rows {
		rows[r] = f.Spins[r*f.Size : (r+1)*f.Size]
	}
	return rows
}

// Magnetization is the mean spin of the frame.
func (f Frame) Magnetization() float64 {
	if len(f.Spins) == 0 {
		return 0
	}
	sum := 0
	for _, s := range f.Spins {
		sum += s
	}
	return float64(sum) / float64(len(f.Spins))
}

// Sequence is the ordered list of frames of one run.
type Sequence struct {
	Grid   int
	Frames []Frame
}

func (s *Sequence) Len() int {
	return len(s.Frames)
}

// Load reads the snapshot file at path. A missing file is a
// *PrerequisiteError; a wrong token count on any line is a *ShapeError.
// Nothing is returned alongside an error.
func Load(path string, grid int) (*Sequence, error) {
	if grid <= 0 {
		return nil, fmt.Errorf("snapshot: grid size must be positive, got %d", grid)
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &PrerequisiteError{Path: path, Err: err}
		}
		return nil, err
	}
	defer file.Close()

	return Read(file, path, grid)
}

// Read parses snapshot lines from r. source only labels errors.
func Read(r io.Reader, source string, grid int) (*Sequence, error) {
	want := grid * grid
	seq := &Sequence{Grid: grid}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	line := 0
	for sc.Scan() {
		line++
		tokens := strings.Fields(sc.Text())
		if len(tokens) != want {
			return nil, &ShapeError{Path: source, Line: line, Got: len(tokens), Want: want}
		}

		spins := make([]int, want)
		for i, tok := range tokens {
			v, err := strconv.Atoi(tok)
			if err != nil {
				return nil, &ParseError{Path: source, Line: line, Token: tok, Err: err}
			}
			spins[i] = v
		}
		seq.Frames = append(seq.Frames, Frame{Size: grid, Spins: spins})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s:%d: %w", source, line+1, err)
	}
	if len(seq.Frames) == 0 {
		return nil, fmt.Errorf("%s: %w", source, ErrNoFrames)
	}
	return seq, nil
}
