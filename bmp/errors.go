package bmp

import "errors"

// Errors returned by the parsers. They are wrapped with context, so match
// them with errors.Is.
var (
	ErrInvalidSignature       = errors.New("bmp: invalid signature, not a BMP file")
	ErrTruncatedInput         = errors.New("bmp: truncated input")
	ErrUnsupportedBitDepth    = errors.New("bmp: unsupported bit depth")
	ErrUnsupportedCompression = errors.New("bmp: unsupported compression")
)
