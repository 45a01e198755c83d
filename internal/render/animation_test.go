package render

import (
	"bytes"
	"image/gif"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/isingviz/internal/snapshot"
)

func threeFrames(t *testing.T) *snapshot.Sequence {
	t.Helper()
	body := strings.Join([]string{
		"1 1 1 1",
		"-1 -1 -1 -1",
		"1 -1 -1 -1",
	}, "\n")
	seq, err := snapshot.Read(strings.NewReader(body), "mem", 2)
	require.NoError(t, err)
	return seq
}

func TestAnimationOptions_Delay(t *testing.T) {
	assert.Equal(t, 5, DefaultAnimationOptions().Delay())

	o := DefaultAnimationOptions()
	o.FPS = 0
	assert.Equal(t, 0, o.Delay())
}

func TestAnimator_FrameMapping(t *testing.T) {
	opts := DefaultAnimationOptions()
	opts.CellSize = 3
	a := NewAnimator(opts, nil)

	f := snapshot.Frame{Size: 2, Spins: []int{1, -1, -1, 1}}
	img := a.Frame(f, 0)

	require.Equal(t, 6, img.Bounds().Dx())
	assert.Equal(t, indexUp, img.ColorIndexAt(0, 0))
	assert.Equal(t, indexUp, img.ColorIndexAt(2, 2))
	assert.Equal(t, indexDown, img.ColorIndexAt(3, 0))
	assert.Equal(t, indexDown, img.ColorIndexAt(0, 3))
	assert.Equal(t, indexUp, img.ColorIndexAt(5, 5))

	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Zero(t, r+g+b, "up spins are black by default")
}

func TestAnimator_EncodeGIF_PreservesOrder(t *testing.T) {
	a := NewAnimator(DefaultAnimationOptions(), nil)

	var buf bytes.Buffer
	require.NoError(t, a.EncodeGIF(&buf, threeFrames(t)))

	anim, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	require.Len(t, anim.Image, 3)
	assert.Equal(t, []int{5, 5, 5}, anim.Delay)
	assert.Equal(t, 0, anim.LoopCount)

	// frame 0 all up, frame 1 all down, frame 2 only the top-left cell up
	assert.Equal(t, indexUp, anim.Image[0].ColorIndexAt(3, 3))
	assert.Equal(t, indexDown, anim.Image[1].ColorIndexAt(0, 0))
	assert.Equal(t, indexUp, anim.Image[2].ColorIndexAt(0, 0))
	assert.Equal(t, indexDown, anim.Image[2].ColorIndexAt(3, 3))
}

func TestAnimator_Caption(t *testing.T) {
	opts := DefaultAnimationOptions()
	opts.CellSize = 40
	opts.Caption = true
	a := NewAnimator(opts, nil)

	img := a.Frame(snapshot.Frame{Size: 2, Spins: []int{-1, -1, -1, -1}}, 7)
	found := false
	for _, px := range img.Pix {
		if px == indexCaption {
			found = true
			break
		}
	}
	assert.True(t, found, "caption pixels expected")
}

func TestAnimator_SaveGIF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "domain_growth.gif")
	a := NewAnimator(DefaultAnimationOptions(), nil)

	require.NoError(t, a.Save(path, threeFrames(t)))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	require.NoError(t, err)
	assert.Len(t, anim.Image, 3)
}

func TestAnimator_SaveAVI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "domain_growth.avi")
	opts := DefaultAnimationOptions()
	opts.Format = FormatAVI
	opts.CellSize = 8

	require.NoError(t, NewAnimator(opts, nil).Save(path, threeFrames(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 12)
	assert.Equal(t, "RIFF", string(data[:4]))
	assert.Equal(t, "AVI ", string(data[8:12]))
}

func TestAnimator_SaveEmptyLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "domain_growth.gif")

	err := NewAnimator(DefaultAnimationOptions(), nil).Save(path, &snapshot.Sequence{Grid: 2})
	assert.ErrorIs(t, err, ErrEmptySequence)

	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestAnimator_UnknownFormat(t *testing.T) {
	dir := t.TempDir()
	opts := DefaultAnimationOptions()
	opts.Format = "webm"

	err := NewAnimator(opts, nil).Save(filepath.Join(dir, "x.webm"), threeFrames(t))
	assert.Error(t, err)

	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestWriteAtomic_FailureRemovesTemp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.gif")

	err := writeAtomic(path, func(w io.Writer) error {
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}
