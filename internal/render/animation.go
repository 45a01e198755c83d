package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"io"
	"io/fs"
	"log/slog"

	"github.com/google/renameio/v2"
	"github.com/icza/mjpeg"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/san-kum/isingviz/internal/snapshot"
)

type Format string

const (
	FormatGIF Format = "gif"
	FormatAVI Format = "avi"
)

// palette indices of an animation frame
const (
	indexDown uint8 = iota
	indexUp
	indexCaption
)

var ErrEmptySequence = errors.New("render: sequence has no frames")

type AnimationOptions struct {
	FPS      int
	CellSize int
	Up       string
	Down     string
	Caption  bool
	Format   Format
}

func DefaultAnimationOptions() AnimationOptions {
	return AnimationOptions{
		FPS:      20,
		CellSize: 2,
		Up:       "#000000",
		Down:     "#ffffff",
		Format:   FormatGIF,
	}
}

// Delay is the per-frame delay in the 1/100 s units GIF uses.
func (o AnimationOptions) Delay() int {
	if o.FPS <= 0 {
		return 0
	}
	return 100 / o.FPS
}

// Animator maps spin frames to images with a two-tone palette: positive
// spins take the Up colour, everything else Down.
type Animator struct {
	opts    AnimationOptions
	palette color.Palette
	logger  *slog.Logger
}

func NewAnimator(opts AnimationOptions, logger *slog.Logger) *Animator {
	if opts.CellSize < 1 {
		opts.CellSize = 1
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Animator{
		opts: opts,
		palette: color.Palette{
			drawing.ColorFromHex(opts.Down),
			drawing.ColorFromHex(opts.Up),
			color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
		},
		logger: logger.With(slog.String("component", "animator")),
	}
}

// Frame renders frame number i of a sequence.
func (a *Animator) Frame(f snapshot.Frame, i int) *image.Paletted {
	cs := a.opts.CellSize
	img := image.NewPaletted(image.Rect(0, 0, f.Size*cs, f.Size*cs), a.palette)
	for row := 0; row < f.Size; row++ {
		for col := 0; col < f.Size; col++ {
			idx := indexDown
			if f.At(row, col) > 0 {
				idx = indexUp
			}
			for py := row * cs; py < (row+1)*cs; py++ {
				off := img.PixOffset(col*cs, py)
				for px := 0; px < cs; px++ {
					img.Pix[off+px] = idx
				}
			}
		}
	}
	if a.opts.Caption {
		label := fmt.Sprintf("t=%d m=%+.2f", i, f.Magnetization())
		drawLabel(img, 2, 2, label, a.palette[indexCaption], 1)
	}
	return img
}

// EncodeGIF writes every frame of seq, in order, as a looping GIF.
func (a *Animator) EncodeGIF(w io.Writer, seq *snapshot.Sequence) error {
	if seq.Len() == 0 {
		return ErrEmptySequence
	}
	anim := gif.GIF{LoopCount: 0}
	for i, f := range seq.Frames {
		anim.Image = append(anim.Image, a.Frame(f, i))
		anim.Delay = append(anim.Delay, a.opts.Delay())
	}
	return gif.EncodeAll(w, &anim)
}

// Save writes seq to path in the configured format. A failure at any frame
// leaves nothing at path.
func (a *Animator) Save(path string, seq *snapshot.Sequence) error {
	if seq.Len() == 0 {
		return ErrEmptySequence
	}
	var err error
	switch a.opts.Format {
	case FormatGIF, "":
		err = writeAtomic(path, func(w io.Writer) error {
			return a.EncodeGIF(w, seq)
		})
	case FormatAVI:
		err = a.saveAVI(path, seq)
	default:
		return fmt.Errorf("render: unknown animation format %q", a.opts.Format)
	}
	if err != nil {
		return err
	}
	a.logger.Info("animation written",
		slog.String("path", path),
		slog.Int("frames", seq.Len()),
		slog.Int("fps", a.opts.FPS))
	return nil
}

func (a *Animator) saveAVI(path string, seq *snapshot.Sequence) error {
	side := int32(seq.Grid * a.opts.CellSize)
	return withPendingFile(path, func(pf *renameio.PendingFile) error {
		// mjpeg reopens the pending file by name and writes through its own
		// handle; pf keeps the inode and its mode.
		aw, err := mjpeg.New(pf.Name(), side, side, int32(a.opts.FPS))
		if err != nil {
			return fmt.Errorf("open avi writer: %w", err)
		}
		var buf bytes.Buffer
		for i, f := range seq.Frames {
			buf.Reset()
			if err := jpeg.Encode(&buf, a.Frame(f, i), &jpeg.Options{Quality: 95}); err != nil {
				aw.Close()
				return fmt.Errorf("encode frame %d: %w", i, err)
			}
			if err := aw.AddFrame(buf.Bytes()); err != nil {
				aw.Close()
				return fmt.Errorf("write frame %d: %w", i, err)
			}
		}
		if err := aw.Close(); err != nil && !errors.Is(err, fs.ErrClosed) {
			return err
		}
		return nil
	})
}
