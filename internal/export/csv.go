package export

import (
	"fmt"
	"io"
	"strings"
)

// WriteCSV writes the header line followed by one line per row. Values are
// joined with commas verbatim: no quoting or escaping is applied, and lines
// are separated by "\n" with no trailing newline.
func WriteCSV(w io.Writer, t Table) error {
	if len(t.Rows) == 0 {
		return ErrEmptyTable
	}

	lines := make([]string, 0, len(t.Rows)+1)
	lines = append(lines, strings.Join(t.Headers(), ","))
	for _, cells := range t.Cells() {
		lines = append(lines, strings.Join(cells, ","))
	}

	if _, err := io.WriteString(w, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
