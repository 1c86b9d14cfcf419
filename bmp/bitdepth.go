package bmp

import "fmt"

// BitsPerPixel is the closed set of pixel depths the decoder understands.
// The constant values are the bit counts themselves.
type BitsPerPixel uint16

const (
	Monochrome BitsPerPixel = 1
	Palette4   BitsPerPixel = 4
	Palette8   BitsPerPixel = 8
	Palette16  BitsPerPixel = 16
	// Bits24 also covers 32-bit files; the alpha byte is not distinguished.
	Bits24 BitsPerPixel = 24
)

// ParseBitsPerPixel maps a raw biBitCount value onto BitsPerPixel.
func ParseBitsPerPixel(raw uint16) (BitsPerPixel, error) {
	switch raw {
	case 1:
		return Monochrome, nil
	case 4:
		return Palette4, nil
	case 8:
		return Palette8, nil
	case 16:
		return Palette16, nil
	case 24, 32:
		return Bits24, nil
	}
	return 0, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, raw)
}

// PaletteSize is the number of color table entries implied by the depth when
// the header does not say otherwise. Depths above 8 bits have no palette.
func (b BitsPerPixel) PaletteSize() int {
	switch b {
	case Monochrome, Palette4, Palette8:
		return 1 << uint(b)
	}
	return 0
}

func (b BitsPerPixel) String() string {
	switch b {
	case Monochrome:
		return "monochrome"
	case Palette4:
		return "4-bit palette"
	case Palette8:
		return "8-bit palette"
	case Palette16:
		return "16-bit"
	case Bits24:
		return "24-bit"
	}
	return fmt.Sprintf("BitsPerPixel(%d)", uint16(b))
}

// bitCountOffset is where biBitCount sits in the combined 54-byte headers.
const bitCountOffset = FileHeaderSize + 14

// RawBitsPerPixel returns the bit count stored in a headers buffer as is, so
// a 32-bit file reports 32 where InfoHeader.BitsPerPixel reports Bits24.
// buf starts at the file header, as passed to Parse.
func RawBitsPerPixel(buf []byte) (uint16, error) {
	c := newCursor(buf)
	c.take(bitCountOffset)
	raw := c.uint16()
	if c.err != nil {
		return 0, c.err
	}
	return raw, nil
}
