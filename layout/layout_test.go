package layout

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"bmpheaders/bmp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLayout(t *testing.T) {
	f, err := Default()
	require.NoError(t, err)
	require.NoError(t, f.Validate())

	assert.Equal(t, "BMP", f.Name)
	require.Len(t, f.Structs, 2)
	assert.Equal(t, "FileHeader", f.Structs[0].Name)
	assert.Equal(t, bmp.FileHeaderSize, f.Structs[0].Size)
	assert.Equal(t, "InfoHeader", f.Structs[1].Name)
	assert.Equal(t, bmp.InfoHeaderSize, f.Structs[1].Size)
}

func TestOffsets(t *testing.T) {
	f, err := Default()
	require.NoError(t, err)

	offsets, err := f.Offsets("InfoHeader")
	require.NoError(t, err)

	var got, widths []int
	for _, o := range offsets {
		got = append(got, o.Offset)
		widths = append(widths, o.Width)
	}
	assert.Equal(t, []int{0, 4, 8, 12, 14, 16, 20, 24, 28, 32, 36}, got)
	assert.Equal(t, []int{4, 4, 4, 2, 2, 4, 4, 4, 4, 4, 4}, widths)

	_, err = f.Offsets("ColorTable")
	assert.Error(t, err)
}

// TestLayoutMatchesDecoder reads each field of an encoded header at the
// layout offset and compares it with the decoded value.
func TestLayoutMatchesDecoder(t *testing.T) {
	f, err := Default()
	require.NoError(t, err)

	h := &bmp.Headers{
		File: bmp.FileHeader{Signature: bmp.Signature, FileSize: 0x01020304, Reserved: 0x0A0B0C0D, DataOffset: 54},
		Info: bmp.InfoHeader{
			HeaderSize: 40, Width: 640, Height: 480, Planes: 1,
			BitsPerPixel: bmp.Palette8, Compression: bmp.CompressionRLE8,
			ImageSize: 0x1234, HorizontalRes: 2835, VerticalRes: 3780,
			ColorsUsed: 200, ImportantColors: 17,
		},
	}
	raw := h.Bytes()

	params, err := Params(h.File, h.Info)
	require.NoError(t, err)

	base := 0
	for _, s := range f.Structs {
		offsets, err := f.Offsets(s.Name)
		require.NoError(t, err)
		for _, o := range offsets {
			b := raw[base+o.Offset : base+o.Offset+o.Width]
			var want interface{}
			switch o.Width {
			case 2:
				if o.Field.Type == "[]byte" {
					want = string(b)
				} else {
					want = float64(binary.LittleEndian.Uint16(b))
				}
			case 4:
				want = float64(binary.LittleEndian.Uint32(b))
			default:
				t.Fatalf("unexpected width %d for %s", o.Width, o.Field.Name)
			}
			assert.Equal(t, want, params[o.Field.Name], "field %s.%s", s.Name, o.Field.Name)
		}
		base += s.Size
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yml")
	yamlData := `
name: Tiny
structs:
  - name: Header
    size: 6
    fields:
      - name: Magic
        type: string
        length: "2"
      - name: Count
        type: uint32
derived:
  - name: Double
    expression: Count * 2
`
	require.NoError(t, os.WriteFile(path, []byte(yamlData), 0644))

	f, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, f.Validate())

	values, err := f.Evaluate(map[string]interface{}{"Count": 21.0})
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.Equal(t, "Double", values[0].Name)
	assert.Equal(t, 42.0, values[0].Value)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)

	_, err = Parse([]byte("structs: [name: {"))
	assert.Error(t, err)

	_, err = Parse([]byte("structs: 12"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		format  FileFormat
		wantErr bool
	}{
		{
			name:   "valid",
			format: FileFormat{Name: "ok", Structs: []Struct{{Name: "A", Size: 3, Fields: []Field{{Name: "X", Type: "uint16"}, {Name: "Y", Type: "uint8"}}}}},
		},
		{
			name:   "fixed type with length only warns",
			format: FileFormat{Name: "warn", Structs: []Struct{{Name: "A", Fields: []Field{{Name: "X", Type: "uint32", Length: "4"}}}}},
		},
		{
			name:    "no structs",
			format:  FileFormat{Name: "empty"},
			wantErr: true,
		},
		{
			name:    "size mismatch",
			format:  FileFormat{Name: "size", Structs: []Struct{{Name: "A", Size: 5, Fields: []Field{{Name: "X", Type: "uint32"}}}}},
			wantErr: true,
		},
		{
			name:    "missing type",
			format:  FileFormat{Name: "type", Structs: []Struct{{Name: "A", Fields: []Field{{Name: "X"}}}}},
			wantErr: true,
		},
		{
			name:    "unknown type",
			format:  FileFormat{Name: "type", Structs: []Struct{{Name: "A", Fields: []Field{{Name: "X", Type: "complex128"}}}}},
			wantErr: true,
		},
		{
			name:    "byte slice without length",
			format:  FileFormat{Name: "len", Structs: []Struct{{Name: "A", Fields: []Field{{Name: "X", Type: "[]byte"}}}}},
			wantErr: true,
		},
		{
			name:    "expression length",
			format:  FileFormat{Name: "len", Structs: []Struct{{Name: "A", Fields: []Field{{Name: "X", Type: "[]byte", Length: "Width*3"}}}}},
			wantErr: true,
		},
		{
			name:    "duplicate field",
			format:  FileFormat{Name: "dup", Structs: []Struct{{Name: "A", Fields: []Field{{Name: "X", Type: "uint8"}, {Name: "X", Type: "uint8"}}}}},
			wantErr: true,
		},
		{
			name:    "duplicate struct",
			format:  FileFormat{Name: "dup", Structs: []Struct{{Name: "A", Fields: []Field{{Name: "X", Type: "uint8"}}}, {Name: "A", Fields: []Field{{Name: "Y", Type: "uint8"}}}}},
			wantErr: true,
		},
		{
			name: "bad expression",
			format: FileFormat{
				Name:    "expr",
				Structs: []Struct{{Name: "A", Fields: []Field{{Name: "X", Type: "uint8"}}}},
				Derived: []Derived{{Name: "D", Expression: "X * ("}},
			},
			wantErr: true,
		},
		{
			name: "empty expression",
			format: FileFormat{
				Name:    "expr",
				Structs: []Struct{{Name: "A", Fields: []Field{{Name: "X", Type: "uint8"}}}},
				Derived: []Derived{{Name: "D"}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.format.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFieldWidth(t *testing.T) {
	w, err := (&Field{Name: "S", Type: "string", Length: "4"}).Width()
	require.NoError(t, err)
	assert.Equal(t, 4, w)

	_, err = (&Field{Name: "S", Type: "string", Length: "four"}).Width()
	assert.Error(t, err)

	_, err = (&Field{Name: "S", Type: "[]byte"}).Width()
	assert.Error(t, err)
}

func TestMatchFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f *FileFormat)
		wantErr string
	}{
		{
			name: "relabelled descriptions and extra derived value",
			mutate: func(f *FileFormat) {
				f.Name = "Annotated BMP"
				f.Structs[1].Fields[1].Description = "Pixels per row"
				f.Derived = append(f.Derived, Derived{Name: "Pixels", Expression: "Width * 2"})
			},
		},
		{
			name:    "renamed field",
			mutate:  func(f *FileFormat) { f.Structs[0].Fields[0].Name = "Magic" },
			wantErr: "'Magic' at offset 0 width 2, expected 'Signature'",
		},
		{
			name: "reordered fields",
			mutate: func(f *FileFormat) {
				fields := f.Structs[1].Fields
				fields[1], fields[2] = fields[2], fields[1]
			},
			wantErr: "'Height' at offset 4",
		},
		{
			name:    "resized field",
			mutate:  func(f *FileFormat) { f.Structs[1].Fields[3].Type = "uint32" },
			wantErr: "'Planes' at offset 12 width 4",
		},
		{
			name:    "missing field",
			mutate:  func(f *FileFormat) { f.Structs[0].Fields = f.Structs[0].Fields[:3] },
			wantErr: "has 3 fields, expected 4",
		},
		{
			name:    "renamed struct",
			mutate:  func(f *FileFormat) { f.Structs[1].Name = "CoreHeader" },
			wantErr: "struct 1 is 'CoreHeader'",
		},
		{
			name:    "missing struct",
			mutate:  func(f *FileFormat) { f.Structs = f.Structs[:1] },
			wantErr: "has 1 structs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := Default()
			require.NoError(t, err)
			f, err := Default()
			require.NoError(t, err)
			tt.mutate(f)

			err = f.MatchFields(ref)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
