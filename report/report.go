// Package report turns decoded headers into printable tables and YAML documents.
package report

import (
	"fmt"
	"io"
	"strconv"

	"bmpheaders/bmp"
	"bmpheaders/layout"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v2"
)

// FieldRow is one header field placed at its absolute file offset.
type FieldRow struct {
	Struct      string `yaml:"struct"`
	Name        string `yaml:"name"`
	Offset      int    `yaml:"offset"`
	Width       int    `yaml:"width"`
	Value       string `yaml:"value"`
	Description string `yaml:"description,omitempty"`
}

// FileReport is everything the inspect command knows about one file.
type FileReport struct {
	Path     string                `yaml:"path"`
	Fields   []FieldRow            `yaml:"fields,omitempty"`
	Derived  []layout.DerivedValue `yaml:"derived,omitempty"`
	Warnings []string              `yaml:"warnings,omitempty"`
	Error    string                `yaml:"error,omitempty"`
}

// Options selects the optional report sections.
type Options struct {
	Derived  bool
	Warnings bool
	// ActualSize is the real file length, negative when unknown.
	ActualSize int64
	// RawBitsPerPixel is the bit count as stored in the file, see
	// bmp.RawBitsPerPixel. Zero means the decoded depth is used.
	RawBitsPerPixel uint16
}

// New builds the report for one decoded file.
func New(path string, h *bmp.Headers, f *layout.FileFormat, opts Options) (*FileReport, error) {
	params, err := layout.Params(h.File, h.Info)
	if err != nil {
		return nil, err
	}
	if opts.RawBitsPerPixel != 0 {
		params["BitsPerPixel"] = float64(opts.RawBitsPerPixel)
	}
	rows, err := Rows(f, params, annotations(h, opts.RawBitsPerPixel))
	if err != nil {
		return nil, err
	}

	r := &FileReport{Path: path, Fields: rows}
	if opts.Derived {
		if r.Derived, err = f.Evaluate(params); err != nil {
			return nil, err
		}
	}
	if opts.Warnings {
		r.Warnings = bmp.Check(h, opts.ActualSize)
	}
	return r, nil
}

// Failed builds the report for a file that could not be decoded.
func Failed(path string, err error) *FileReport {
	return &FileReport{Path: path, Error: err.Error()}
}

// annotations adds readable names next to enumerated raw values.
func annotations(h *bmp.Headers, rawBits uint16) map[string]string {
	notes := map[string]string{
		"BitsPerPixel": h.Info.BitsPerPixel.String(),
		"Compression":  h.Info.Compression.String(),
	}
	if rawBits != 0 && rawBits != uint16(h.Info.BitsPerPixel) {
		notes["BitsPerPixel"] += ", alpha folded"
	}
	if h.Info.TopDown() {
		notes["Height"] = fmt.Sprintf("top-down, %d rows", h.Info.Rows())
	}
	return notes
}

// Rows lists every field of every layout struct with its value from params.
// Offsets are absolute: each struct starts where the previous one ended.
func Rows(f *layout.FileFormat, params map[string]interface{}, notes map[string]string) ([]FieldRow, error) {
	var rows []FieldRow
	base := 0
	for _, s := range f.Structs {
		offsets, err := f.Offsets(s.Name)
		if err != nil {
			return nil, err
		}
		end := 0
		for _, o := range offsets {
			value, ok := params[o.Field.Name]
			if !ok {
				return nil, fmt.Errorf("no value for field %s.%s", s.Name, o.Field.Name)
			}
			text := formatValue(value)
			if note, ok := notes[o.Field.Name]; ok {
				text = fmt.Sprintf("%s (%s)", text, note)
			}
			rows = append(rows, FieldRow{
				Struct:      s.Name,
				Name:        o.Field.Name,
				Offset:      base + o.Offset,
				Width:       o.Width,
				Value:       text,
				Description: o.Field.Description,
			})
			end = o.Offset + o.Width
		}
		base += end
	}
	return rows, nil
}

func formatValue(v interface{}) string {
	switch v := v.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return strconv.Quote(v)
	}
	return fmt.Sprint(v)
}

// PrintTable writes the report as aligned tables followed by any warnings.
func PrintTable(w io.Writer, r *FileReport) error {
	fmt.Fprintf(w, "== %s ==\n", r.Path)
	if r.Error != "" {
		fmt.Fprintf(w, "ERROR: %s\n\n", r.Error)
		return nil
	}

	table := newTable(w, "Offset", "Width", "Field", "Value", "Description")
	for _, row := range r.Fields {
		table.Append([]string{
			strconv.Itoa(row.Offset),
			strconv.Itoa(row.Width),
			row.Struct + "." + row.Name,
			row.Value,
			row.Description,
		})
	}
	table.Render()

	if len(r.Derived) > 0 {
		fmt.Fprintln(w)
		table = newTable(w, "Derived", "Value", "Description")
		for _, d := range r.Derived {
			table.Append([]string{d.Name, formatValue(d.Value), d.Description})
		}
		table.Render()
	}

	for _, warning := range r.Warnings {
		fmt.Fprintf(w, "Warning: %s\n", warning)
	}
	fmt.Fprintln(w)
	return nil
}

// PrintYAML writes all reports as one YAML document.
func PrintYAML(w io.Writer, reports []*FileReport) error {
	data, err := yaml.Marshal(reports)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func newTable(w io.Writer, headers ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)
	return table
}

// PrintLayout writes the field table of a layout without any values.
func PrintLayout(w io.Writer, f *layout.FileFormat) error {
	fmt.Fprintf(w, "%s: %s\n\n", f.Name, f.Description)

	table := newTable(w, "Offset", "Width", "Field", "Type", "Description")
	base := 0
	for _, s := range f.Structs {
		offsets, err := f.Offsets(s.Name)
		if err != nil {
			return err
		}
		end := 0
		for _, o := range offsets {
			table.Append([]string{
				strconv.Itoa(base + o.Offset),
				strconv.Itoa(o.Width),
				s.Name + "." + o.Field.Name,
				o.Field.Type,
				o.Field.Description,
			})
			end = o.Offset + o.Width
		}
		base += end
	}
	table.Render()

	if len(f.Derived) > 0 {
		fmt.Fprintln(w)
		table = newTable(w, "Derived", "Expression", "Description")
		for _, d := range f.Derived {
			table.Append([]string{d.Name, d.Expression, d.Description})
		}
		table.Render()
	}
	return nil
}
