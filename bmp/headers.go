package bmp

import (
	"errors"
	"fmt"
	"io"
)

// HeadersSize is the number of leading bytes covered by both headers.
const HeadersSize = FileHeaderSize + InfoHeaderSize

// Headers holds the two header records decoded from one buffer.
type Headers struct {
	File FileHeader
	Info InfoHeader
}

// Parse decodes both headers from the start of buf. The file header is parsed
// first and a bad signature stops parsing before the info header is touched.
func Parse(buf []byte) (*Headers, error) {
	file, err := ParseFileHeader(buf)
	if err != nil {
		return nil, err
	}
	info, err := ParseInfoHeader(buf[FileHeaderSize:])
	if err != nil {
		return nil, err
	}
	return &Headers{File: file, Info: info}, nil
}

// Decode reads the first 54 bytes from r and parses them. A stream that ends
// early is reported as ErrTruncatedInput.
func Decode(r io.Reader) (*Headers, error) {
	buf := make([]byte, HeadersSize)
	n, err := io.ReadFull(r, buf)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			// A short file that is not a BMP at all reports the signature first.
			if n >= len(Signature) && (buf[0] != Signature[0] || buf[1] != Signature[1]) {
				return nil, fmt.Errorf("%w: got %#02x %#02x", ErrInvalidSignature, buf[0], buf[1])
			}
			return nil, fmt.Errorf("%w: read %d of %d header bytes", ErrTruncatedInput, n, HeadersSize)
		}
		return nil, fmt.Errorf("error reading headers: %w", err)
	}
	return Parse(buf)
}

// Bytes encodes both headers into their 54-byte wire form.
func (h *Headers) Bytes() []byte {
	buf := make([]byte, 0, HeadersSize)
	buf = append(buf, h.File.Bytes()...)
	return append(buf, h.Info.Bytes()...)
}

// Write writes both encoded headers to w.
func (h *Headers) Write(w io.Writer) error {
	if err := h.File.Write(w); err != nil {
		return err
	}
	return h.Info.Write(w)
}
