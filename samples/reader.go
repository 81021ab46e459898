package samples

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/gmlewis/filament-swatches/errs"
)

// Reader streams sample rows from CSV input. Comment and empty rows are
// skipped. Quotes follow RFC 4180 and a field may not span lines. A
// Reader cannot be rewound.
type Reader struct {
	// SkipHeader drops a leading "brand" or "manufacturer" header row.
	SkipHeader bool

	r       *csv.Reader
	started bool
	skipped int
}

// NewReader returns a Reader that reads rows from r.
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.Comment = '#'
	return &Reader{r: cr}
}

// Next returns the next row to render, or io.EOF once the input is
// exhausted.
func (r *Reader) Next() (Row, error) {
	for {
		record, err := r.r.Read()
		if err == io.EOF {
			return Row{}, io.EOF
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return Row{}, errs.NewRowSyntaxError(pe.StartLine, err)
			}
			return Row{}, err
		}
		line, _ := r.r.FieldPos(0)
		for i, field := range record {
			if strings.ContainsAny(field, "\r\n") {
				return Row{}, errs.NewMalformedRowError(line, Field(i).String(), "line break in field")
			}
		}
		row := NewRow(line, record...)
		if row.Skip() {
			r.skipped++
			continue
		}
		first := !r.started
		r.started = true
		if first && r.SkipHeader && isHeader(row) {
			r.skipped++
			continue
		}
		return row, nil
	}
}

// Skipped returns the number of rows with an empty first field or a
// leading header passed over so far. Lines starting with "#" are
// dropped while parsing and are not counted.
func (r *Reader) Skipped() int {
	return r.skipped
}

// ReadAll returns every remaining row.
func (r *Reader) ReadAll() ([]Row, error) {
	var rows []Row
	for {
		row, err := r.Next()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}

func isHeader(row Row) bool {
	h := strings.ToLower(strings.TrimSpace(row.Fields[0]))
	return h == "brand" || h == "manufacturer"
}

// File is a Reader over an opened input file.
type File struct {
	*Reader
	f *os.File
}

// Open opens filename for reading.
func Open(filename string) (*File, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errs.NewNotFoundError(filename, err)
	}
	return &File{Reader: NewReader(f), f: f}, nil
}

// Close closes the underlying file.
func (f *File) Close() error {
	return f.f.Close()
}
