package bmp

import "fmt"

// Compression is the closed set of pixel-array encodings (biCompression).
type Compression uint32

const (
	CompressionNone      Compression = 0 // BI_RGB
	CompressionRLE8      Compression = 1 // BI_RLE8
	CompressionRLE4      Compression = 2 // BI_RLE4
	CompressionBitfields Compression = 3 // BI_BITFIELDS
)

// ParseCompression maps a raw biCompression value onto Compression.
func ParseCompression(raw uint32) (Compression, error) {
	switch c := Compression(raw); c {
	case CompressionNone, CompressionRLE8, CompressionRLE4, CompressionBitfields:
		return c, nil
	}
	return 0, fmt.Errorf("%w: %d", ErrUnsupportedCompression, raw)
}

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionRLE8:
		return "RLE8"
	case CompressionRLE4:
		return "RLE4"
	case CompressionBitfields:
		return "bitfields"
	}
	return fmt.Sprintf("Compression(%d)", uint32(c))
}
