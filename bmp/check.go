package bmp

import "fmt"

// Check reports header values that parse cleanly but look inconsistent.
// None of the findings stop a decode; callers decide whether to surface them.
// actualSize is the real length of the file, or negative when unknown.
func Check(h *Headers, actualSize int64) []string {
	var warnings []string
	warn := func(format string, args ...interface{}) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	if h.Info.Planes != 1 {
		warn("planes is %d, expected 1", h.Info.Planes)
	}
	if h.Info.HeaderSize != InfoHeaderSize {
		warn("info header declares %d bytes, only the first %d were decoded", h.Info.HeaderSize, InfoHeaderSize)
	}
	if h.File.DataOffset < HeadersSize {
		warn("data offset %d points inside the headers", h.File.DataOffset)
	}
	if h.File.FileSize != 0 && h.File.DataOffset > h.File.FileSize {
		warn("data offset %d is past the declared file size %d", h.File.DataOffset, h.File.FileSize)
	}
	if actualSize >= 0 && int64(h.File.FileSize) != actualSize {
		warn("declared file size %d does not match actual size %d", h.File.FileSize, actualSize)
	}

	switch h.Info.Compression {
	case CompressionRLE8:
		if h.Info.BitsPerPixel != Palette8 {
			warn("RLE8 compression with %s pixels", h.Info.BitsPerPixel)
		}
	case CompressionRLE4:
		if h.Info.BitsPerPixel != Palette4 {
			warn("RLE4 compression with %s pixels", h.Info.BitsPerPixel)
		}
	case CompressionBitfields:
		if h.Info.BitsPerPixel != Palette16 && h.Info.BitsPerPixel != Bits24 {
			warn("bitfields compression with %s pixels", h.Info.BitsPerPixel)
		}
	}

	if palette := h.Info.BitsPerPixel.PaletteSize(); palette > 0 && h.Info.ColorsUsed > uint32(palette) {
		warn("colors used %d exceeds the %d entries a %s image can index", h.Info.ColorsUsed, palette, h.Info.BitsPerPixel)
	}
	return warnings
}
