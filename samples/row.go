// Package samples reads filament sample rows from CSV input.
package samples

import (
	"strings"

	"github.com/gmlewis/filament-swatches/errs"
)

// Field is a column position within a sample row.
type Field int

// Sample row columns. The first five are required.
const (
	Brand Field = iota
	Type
	Color
	TempHotend
	TempBed
	BrandSize
	TypeSize
	ColorSize
)

const (
	// NumRequired is the number of leading fields every row must supply.
	NumRequired = 5
	// NumFields is the number of known fields, including the optional
	// label sizes.
	NumFields = 8

	commentPrefix = "#"
)

var fieldNames = [NumFields]string{
	"BRAND",
	"TYPE",
	"COLOR",
	"TEMP_HOTEND",
	"TEMP_BED",
	"BRAND_SIZE",
	"TYPE_SIZE",
	"COLOR_SIZE",
}

// String returns the OpenSCAD variable name bound to the field.
func (f Field) String() string {
	if f < 0 || int(f) >= NumFields {
		return "UNKNOWN"
	}
	return fieldNames[f]
}

// Required reports whether every row must supply the field.
func (f Field) Required() bool {
	return f >= Brand && f < NumRequired
}

// Row is one filament sample read from the input.
type Row struct {
	Line   int      // 1-based line in the input
	Fields []string // trailing columns may be absent
}

// NewRow returns a row with the given fields.
func NewRow(line int, fields ...string) Row {
	return Row{Line: line, Fields: fields}
}

// Skip reports whether the row is empty or a comment.
func (r Row) Skip() bool {
	if len(r.Fields) == 0 {
		return true
	}
	first := r.Fields[0]
	return strings.HasPrefix(first, commentPrefix) || strings.TrimSpace(first) == ""
}

// Required returns a required field with surrounding space removed,
// failing when it is missing or empty.
func (r Row) Required(f Field) (string, error) {
	if f < 0 || int(f) >= len(r.Fields) {
		return "", errs.NewMalformedRowError(r.Line, f.String(), "missing")
	}
	v := strings.TrimSpace(r.Fields[f])
	if v == "" {
		return "", errs.NewMalformedRowError(r.Line, f.String(), "empty")
	}
	return v, nil
}

// Optional returns an optional field. ok is false when the column is
// absent or empty.
func (r Row) Optional(f Field) (v string, ok bool) {
	if f < 0 || int(f) >= len(r.Fields) {
		return "", false
	}
	v = strings.TrimSpace(r.Fields[f])
	return v, v != ""
}

// Name joins every field of the row, trimmed, with underscores.
func (r Row) Name() string {
	fields := make([]string, len(r.Fields))
	for i, v := range r.Fields {
		fields[i] = strings.TrimSpace(v)
	}
	return strings.Join(fields, "_")
}

func (r Row) String() string {
	return strings.Join(r.Fields, ",")
}
