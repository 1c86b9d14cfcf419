package layout

import (
	"fmt"
	"log"
	"strconv"
	"strings"
)

// Validate checks the layout for problems that would make offsets or derived
// values wrong. Critical problems are logged and counted into the returned
// error; harmless oddities are only logged as warnings.
func (f *FileFormat) Validate() error {
	validationErrors := 0
	fail := func(format string, args ...interface{}) {
		log.Printf("ERROR: Validation error in layout '%s': "+format, append([]interface{}{f.Name}, args...)...)
		validationErrors++
	}

	if len(f.Structs) == 0 {
		fail("no structs defined")
	}

	seenStructs := make(map[string]bool)
	for _, s := range f.Structs {
		if seenStructs[s.Name] {
			fail("struct '%s' is defined more than once", s.Name)
		}
		seenStructs[s.Name] = true

		seenFields := make(map[string]bool)
		total := 0
		for i := range s.Fields {
			field := &s.Fields[i]

			if strings.TrimSpace(field.Name) == "" {
				fail("struct '%s': field %d has no name", s.Name, i)
				continue
			}
			if seenFields[field.Name] {
				fail("struct '%s': field '%s' is defined more than once", s.Name, field.Name)
			}
			seenFields[field.Name] = true

			if strings.TrimSpace(field.Type) == "" {
				fail("struct '%s': field '%s' is missing a 'type'", s.Name, field.Name)
				continue
			}

			switch field.Type {
			case "string", "[]byte":
				length, err := strconv.Atoi(field.Length)
				if err != nil || length <= 0 {
					fail("struct '%s': field '%s' of type '%s' requires a positive integer 'length', got '%s'", s.Name, field.Name, field.Type, field.Length)
					continue
				}
			default:
				if _, ok := fixedWidths[field.Type]; !ok {
					fail("struct '%s': field '%s' has unsupported type '%s'", s.Name, field.Name, field.Type)
					continue
				}
				if field.Length != "" {
					log.Printf("Warning: struct '%s': field '%s' of fixed-size type '%s' has an unnecessary 'length: %s'. It will be ignored.", s.Name, field.Name, field.Type, field.Length)
				}
			}

			width, err := field.Width()
			if err != nil {
				fail("struct '%s': %v", s.Name, err)
				continue
			}
			total += width
		}

		if s.Size != 0 && s.Size != total {
			fail("struct '%s' declares size %d but its fields cover %d bytes", s.Name, s.Size, total)
		}
	}

	seenDerived := make(map[string]bool)
	for i := range f.Derived {
		d := &f.Derived[i]
		if seenDerived[d.Name] {
			fail("derived value '%s' is defined more than once", d.Name)
		}
		seenDerived[d.Name] = true
		if strings.TrimSpace(d.Expression) == "" {
			fail("derived value '%s' has an empty expression", d.Name)
			continue
		}
		if _, err := d.Compile(); err != nil {
			fail("%v", err)
		}
	}

	if validationErrors > 0 {
		return fmt.Errorf("found %d critical validation error(s) in layout %s", validationErrors, f.Name)
	}
	return nil
}

// MatchFields checks that f places the same fields, by name, offset and
// width, as ref. Descriptions and derived values may differ. Decoded values
// are looked up by field name, so a layout that renames, reorders or resizes
// a field would label the wrong bytes.
func (f *FileFormat) MatchFields(ref *FileFormat) error {
	if len(f.Structs) != len(ref.Structs) {
		return fmt.Errorf("layout %s has %d structs, %s has %d", f.Name, len(f.Structs), ref.Name, len(ref.Structs))
	}
	for i, want := range ref.Structs {
		got := f.Structs[i]
		if got.Name != want.Name {
			return fmt.Errorf("layout %s: struct %d is '%s', expected '%s'", f.Name, i, got.Name, want.Name)
		}
		gotOffsets, err := f.Offsets(got.Name)
		if err != nil {
			return err
		}
		wantOffsets, err := ref.Offsets(want.Name)
		if err != nil {
			return err
		}
		if len(gotOffsets) != len(wantOffsets) {
			return fmt.Errorf("layout %s: struct '%s' has %d fields, expected %d", f.Name, got.Name, len(gotOffsets), len(wantOffsets))
		}
		for j, w := range wantOffsets {
			g := gotOffsets[j]
			if g.Field.Name != w.Field.Name || g.Offset != w.Offset || g.Width != w.Width {
				return fmt.Errorf("layout %s: struct '%s' field %d is '%s' at offset %d width %d, expected '%s' at offset %d width %d",
					f.Name, got.Name, j, g.Field.Name, g.Offset, g.Width, w.Field.Name, w.Offset, w.Width)
			}
		}
	}
	return nil
}
