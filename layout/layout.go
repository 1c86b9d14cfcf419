// Package layout describes binary header layouts in YAML and evaluates
// quantities derived from decoded header values.
package layout

import (
	_ "embed"
	"fmt"
	"io/ioutil"
	"log"
	"strconv"

	"gopkg.in/yaml.v2"
)

//go:embed bmp.yml
var defaultLayout []byte

type FileFormat struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Structs     []Struct  `yaml:"structs"`
	Derived     []Derived `yaml:"derived,omitempty"`
}

type Struct struct {
	Name string `yaml:"name"`
	// Size is the declared width in bytes; Validate checks it against the fields.
	Size   int     `yaml:"size"`
	Fields []Field `yaml:"fields"`
}

type Field struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
	// Length is only meaningful for string and []byte fields.
	Length string `yaml:"length,omitempty"`
}

// Derived is a named govaluate expression over header field values.
type Derived struct {
	Name        string `yaml:"name"`
	Expression  string `yaml:"expression"`
	Description string `yaml:"description"`
}

// FieldOffset places a field inside its struct.
type FieldOffset struct {
	Field  Field
	Offset int
	Width  int
}

var fixedWidths = map[string]int{
	"uint8": 1, "int8": 1,
	"uint16": 2, "int16": 2,
	"uint32": 4, "int32": 4, "float32": 4,
	"uint64": 8, "int64": 8, "float64": 8,
}

// Default returns the built-in BMP header layout.
func Default() (*FileFormat, error) {
	return Parse(defaultLayout)
}

// Load reads a layout from a YAML file.
func Load(path string) (*FileFormat, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading layout file %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("error loading layout from %s: %w", path, err)
	}
	return f, nil
}

// Parse unmarshals a YAML layout.
func Parse(data []byte) (*FileFormat, error) {
	var f FileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		if yamlErr, ok := err.(*yaml.TypeError); ok {
			for _, msg := range yamlErr.Errors {
				log.Printf("YAML unmarshal error: %s", msg)
			}
		}
		return nil, fmt.Errorf("error unmarshaling layout YAML: %w", err)
	}
	return &f, nil
}

// Struct looks up a struct by name.
func (f *FileFormat) Struct(name string) (*Struct, bool) {
	for i := range f.Structs {
		if f.Structs[i].Name == name {
			return &f.Structs[i], true
		}
	}
	return nil, false
}

// Offsets lays out the fields of the named struct back to back.
func (f *FileFormat) Offsets(structName string) ([]FieldOffset, error) {
	s, ok := f.Struct(structName)
	if !ok {
		return nil, fmt.Errorf("struct %s not found in layout %s", structName, f.Name)
	}
	offsets := make([]FieldOffset, 0, len(s.Fields))
	offset := 0
	for _, field := range s.Fields {
		width, err := field.Width()
		if err != nil {
			return nil, fmt.Errorf("struct %s: %w", structName, err)
		}
		offsets = append(offsets, FieldOffset{Field: field, Offset: offset, Width: width})
		offset += width
	}
	return offsets, nil
}

// Width returns the number of bytes the field occupies.
func (f *Field) Width() (int, error) {
	if w, ok := fixedWidths[f.Type]; ok {
		return w, nil
	}
	switch f.Type {
	case "string", "[]byte":
		length, err := f.GetLength()
		if err != nil {
			return 0, err
		}
		if length <= 0 {
			return 0, fmt.Errorf("field %s of type %s needs a positive length", f.Name, f.Type)
		}
		return length, nil
	}
	return 0, fmt.Errorf("field %s has unsupported type %q", f.Name, f.Type)
}

func (f *Field) GetLength() (int, error) {
	if f.Length == "" {
		return 0, nil
	}
	length, err := strconv.Atoi(f.Length)
	if err != nil {
		return 0, fmt.Errorf("invalid length for field %s: %w", f.Name, err)
	}
	return length, nil
}
