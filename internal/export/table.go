// Package export renders tabular datasets as CSV or PDF.
package export

import (
	"errors"
	"fmt"
	"io"
)

// ErrEmptyTable is returned when a table without rows is written.
var ErrEmptyTable = errors.New("export: table has no rows")

// Field is one named cell of a row.
type Field struct {
	Key   string
	Value string
}

// Row is an ordered list of fields.
type Row []Field

// Get returns the value stored under key, or "" when the row has no such field.
func (r Row) Get(key string) string {
	for _, f := range r {
		if f.Key == key {
			return f.Value
		}
	}
	return ""
}

// Keys returns the field names in row order.
func (r Row) Keys() []string {
	keys := make([]string, len(r))
	for i, f := range r {
		keys[i] = f.Key
	}
	return keys
}

// Table is a titled list of rows. The first row's keys define the columns.
type Table struct {
	Title string
	Rows  []Row
}

// Headers returns the column names taken from the first row.
func (t Table) Headers() []string {
	if len(t.Rows) == 0 {
		return nil
	}
	return t.Rows[0].Keys()
}

// Cells returns every row projected onto the header columns.
func (t Table) Cells() [][]string {
	headers := t.Headers()
	cells := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		cells[i] = make([]string, len(headers))
		for j, h := range headers {
			cells[i][j] = row.Get(h)
		}
	}
	return cells
}

// Format is an output encoding.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// ParseFormat converts s into a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatCSV, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "text/csv; charset=utf-8"
}

// Write renders t to w in the given format.
func Write(w io.Writer, format Format, t Table) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, t)
	case FormatPDF:
		return WritePDF(w, t)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}
