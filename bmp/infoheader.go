package bmp

import (
	"fmt"
	"io"
)

// InfoHeaderSize is the width of the classic BITMAPINFOHEADER in bytes.
const InfoHeaderSize = 40

// InfoHeader describes image geometry and pixel format. It immediately
// follows the FileHeader and holds no reference to it.
type InfoHeader struct {
	HeaderSize      uint32       // Declared size of this header
	Width           uint32       // Image width in pixels
	Height          uint32       // Image height in pixels, see TopDown
	Planes          uint16       // Color planes, expected to be 1
	BitsPerPixel    BitsPerPixel // Pixel depth
	Compression     Compression  // Pixel array encoding
	ImageSize       uint32       // Size of the pixel array, may be 0 for uncompressed images
	HorizontalRes   uint32       // Pixels per meter
	VerticalRes     uint32       // Pixels per meter
	ColorsUsed      uint32       // Palette entries used, 0 means the depth default
	ImportantColors uint32       // 0 means all colors are important
}

// ParseInfoHeader decodes the info header from the first 40 bytes of b.
// Unknown bit depths and compression codes are reported as errors.
func ParseInfoHeader(b []byte) (InfoHeader, error) {
	var h InfoHeader
	if len(b) < InfoHeaderSize {
		return h, fmt.Errorf("%w: info header needs %d bytes, got %d", ErrTruncatedInput, InfoHeaderSize, len(b))
	}

	c := newCursor(b[:InfoHeaderSize])
	h.HeaderSize = c.uint32()
	h.Width = c.uint32()
	h.Height = c.uint32()
	h.Planes = c.uint16()
	rawBits := c.uint16()
	rawCompression := c.uint32()
	h.ImageSize = c.uint32()
	h.HorizontalRes = c.uint32()
	h.VerticalRes = c.uint32()
	h.ColorsUsed = c.uint32()
	h.ImportantColors = c.uint32()
	if c.err != nil {
		return InfoHeader{}, c.err
	}

	var err error
	if h.BitsPerPixel, err = ParseBitsPerPixel(rawBits); err != nil {
		return InfoHeader{}, err
	}
	if h.Compression, err = ParseCompression(rawCompression); err != nil {
		return InfoHeader{}, err
	}
	return h, nil
}

// TopDown reports whether the pixel rows are stored top to bottom, which the
// format signals with a negative height.
func (h InfoHeader) TopDown() bool {
	return int32(h.Height) < 0
}

// Rows returns the number of pixel rows regardless of row order.
func (h InfoHeader) Rows() uint32 {
	if h.TopDown() {
		return uint32(-int64(int32(h.Height)))
	}
	return h.Height
}

// Bytes encodes the header into its 40-byte wire form. A header parsed from a
// 32-bit file encodes its depth as 24.
func (h InfoHeader) Bytes() []byte {
	e := newEncoder(InfoHeaderSize)
	e.uint32(h.HeaderSize)
	e.uint32(h.Width)
	e.uint32(h.Height)
	e.uint16(h.Planes)
	e.uint16(uint16(h.BitsPerPixel))
	e.uint32(uint32(h.Compression))
	e.uint32(h.ImageSize)
	e.uint32(h.HorizontalRes)
	e.uint32(h.VerticalRes)
	e.uint32(h.ColorsUsed)
	e.uint32(h.ImportantColors)
	return e.buf
}

// Write writes the encoded header to w.
func (h InfoHeader) Write(w io.Writer) error {
	_, err := w.Write(h.Bytes())
	if err != nil {
		return fmt.Errorf("error writing info header: %w", err)
	}
	return nil
}
