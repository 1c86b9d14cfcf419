// Package bmp decodes the fixed-layout headers at the start of a BMP file:
// the 14-byte file header and the 40-byte BITMAPINFOHEADER that follows it.
//
// Parsing is a pure function of the supplied bytes. Nothing is retained after
// a call returns and no package state is shared, so independent buffers can be
// parsed concurrently.
//
// # Bit depth
//
// InfoHeader.BitsPerPixel is a closed set in which 32-bit files fold into
// Bits24. Tools that need the stored bit count, for row sizes or display,
// read it with RawBitsPerPixel.
package bmp
