package bmp

import (
	"fmt"
	"io"
)

// FileHeaderSize is the width of the BITMAPFILEHEADER in bytes.
const FileHeaderSize = 14

// Signature is the magic pair every BMP file starts with.
var Signature = [2]byte{'B', 'M'}

// FileHeader is the 14-byte preamble of a BMP file.
type FileHeader struct {
	Signature  [2]byte // "BM"
	FileSize   uint32  // Total file size as declared by the file
	Reserved   uint32  // Application defined
	DataOffset uint32  // Offset from the start of the file to the pixel array
}

// ParseFileHeader decodes the file header from the first 14 bytes of b.
// The signature is checked before any other field is read. Bytes past the
// header are ignored.
func ParseFileHeader(b []byte) (FileHeader, error) {
	var h FileHeader
	if len(b) < FileHeaderSize {
		return h, fmt.Errorf("%w: file header needs %d bytes, got %d", ErrTruncatedInput, FileHeaderSize, len(b))
	}
	if b[0] != Signature[0] || b[1] != Signature[1] {
		return h, fmt.Errorf("%w: got %#02x %#02x", ErrInvalidSignature, b[0], b[1])
	}

	c := newCursor(b[:FileHeaderSize])
	copy(h.Signature[:], c.take(2))
	h.FileSize = c.uint32()
	h.Reserved = c.uint32()
	h.DataOffset = c.uint32()
	if c.err != nil {
		return FileHeader{}, c.err
	}
	return h, nil
}

// Bytes encodes the header back into its 14-byte wire form.
func (h FileHeader) Bytes() []byte {
	e := newEncoder(FileHeaderSize)
	e.bytes(h.Signature[:])
	e.uint32(h.FileSize)
	e.uint32(h.Reserved)
	e.uint32(h.DataOffset)
	return e.buf
}

// Write writes the encoded header to w.
func (h FileHeader) Write(w io.Writer) error {
	_, err := w.Write(h.Bytes())
	if err != nil {
		return fmt.Errorf("error writing file header: %w", err)
	}
	return nil
}
