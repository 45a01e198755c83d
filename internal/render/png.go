package render

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/png"
	"io"
	"math"
)

// ihdrEnd is the offset just past the PNG signature and the IHDR chunk,
// which image/png always writes first with a 13 byte body.
const ihdrEnd = 8 + 4 + 4 + 13 + 4

const inchesPerMetre = 1 / 0.0254

// encodePNG writes img as PNG with a pHYs chunk recording dpi, so viewers
// and typesetters size the figure in inches correctly.
func encodePNG(w io.Writer, img image.Image, dpi float64) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	data := buf.Bytes()
	if dpi <= 0 {
		_, err := w.Write(data)
		return err
	}
	for _, part := range [][]byte{data[:ihdrEnd], physChunk(dpi), data[ihdrEnd:]} {
		if _, err := w.Write(part); err != nil {
			return err
		}
	}
	return nil
}

// physChunk is a pHYs chunk in pixels per metre.
func physChunk(dpi float64) []byte {
	ppm := uint32(math.Round(dpi * inchesPerMetre))

	chunk := make([]byte, 4+4+9+4)
	binary.BigEndian.PutUint32(chunk[0:4], 9)
	copy(chunk[4:8], "pHYs")
	binary.BigEndian.PutUint32(chunk[8:12], ppm)
	binary.BigEndian.PutUint32(chunk[12:16], ppm)
	chunk[16] = 1 // unit: metre
	binary.BigEndian.PutUint32(chunk[17:21], crc32.ChecksumIEEE(chunk[4:17]))
	return chunk
}
