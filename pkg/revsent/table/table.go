package table

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cognicore/revsent/pkg/revsent/internalerr"
)

// utf8BOM is stripped from the first header cell when present.
const utf8BOM = "\ufeff"

// Table is an in-memory CSV table: a header row plus data rows.
// Every row has exactly len(Header) fields.
type Table struct {
	Header []string
	Rows   [][]string
}

// Load reads a CSV file with a header row.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Read parses CSV from r. The first record is the header.
// Rows shorter than the header are padded with empty cells; rows longer
// than the header are rejected. Stray quotes inside unquoted fields are
// kept as literal text.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty table: %w", internalerr.ErrInvalidInput)
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = trimBOM(header[0])
	}

	rows := records[1:]
	for i, row := range rows {
		switch {
		case len(row) > len(header):
			return nil, fmt.Errorf("row %d: expected %d fields, saw %d: %w",
				i+1, len(header), len(row), internalerr.ErrInvalidInput)
		case len(row) < len(header):
			padded := make([]string, len(header))
			copy(padded, row)
			rows[i] = padded
		}
	}

	return &Table{
		Header: header,
		Rows:   rows,
	}, nil
}

func trimBOM(s string) string {
	if len(s) >= len(utf8BOM) && s[:len(utf8BOM)] == utf8BOM {
		return s[len(utf8BOM):]
	}
	return s
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, h := range t.Header {
		if h == name {
			return i, true
		}
	}
	return -1, false
}

// Column returns a copy of the named column's values in row order.
func (t *Table) Column(name string) ([]string, error) {
	idx, ok := t.ColumnIndex(name)
	if !ok {
		return nil, fmt.Errorf("column %q: %w", name, internalerr.ErrMissingColumn)
	}
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[idx]
	}
	return values, nil
}

// SetColumn overwrites the named column in place.
func (t *Table) SetColumn(name string, values []string) error {
	idx, ok := t.ColumnIndex(name)
	if !ok {
		return fmt.Errorf("column %q: %w", name, internalerr.ErrMissingColumn)
	}
	if len(values) != len(t.Rows) {
		return fmt.Errorf("column %q has %d values for %d rows: %w", name, len(values), len(t.Rows), internalerr.ErrInvalidInput)
	}
	for i, row := range t.Rows {
		row[idx] = values[i]
	}
	return nil
}

// AppendColumn adds a new column at the end of every row.
// Appending a name that already exists overwrites that column instead,
// matching assignment to an existing data-frame column.
func (t *Table) AppendColumn(name string, values []string) error {
	if _, ok := t.ColumnIndex(name); ok {
		return t.SetColumn(name, values)
	}
	if len(values) != len(t.Rows) {
		return fmt.Errorf("column %q has %d values for %d rows: %w", name, len(values), len(t.Rows), internalerr.ErrInvalidInput)
	}
	t.Header = append(t.Header, name)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], values[i])
	}
	return nil
}

// Drop returns a new table without the named columns.
// Every name must exist.
func (t *Table) Drop(names ...string) (*Table, error) {
	drop := make(map[int]struct{}, len(names))
	for _, name := range names {
		idx, ok := t.ColumnIndex(name)
		if !ok {
			return nil, fmt.Errorf("drop %q: %w", name, internalerr.ErrMissingColumn)
		}
		drop[idx] = struct{}{}
	}

	keep := make([]int, 0, len(t.Header)-len(drop))
	for i := range t.Header {
		if _, ok := drop[i]; !ok {
			keep = append(keep, i)
		}
	}

	out := &Table{
		Header: make([]string, len(keep)),
		Rows:   make([][]string, len(t.Rows)),
	}
	for j, i := range keep {
		out.Header[j] = t.Header[i]
	}
	for r, row := range t.Rows {
		nr := make([]string, len(keep))
		for j, i := range keep {
			nr[j] = row[i]
		}
		out.Rows[r] = nr
	}
	return out, nil
}

// WriteTo writes the header and rows as comma-separated CSV.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write(t.Header); err != nil {
		return 0, err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return 0, err
	}
	return buf.WriteTo(w)
}

// Write stores the table at path. The data goes to a temporary file in the
// same directory first and is renamed into place once fully written, so a
// failed write never leaves a truncated file at path.
func (t *Table) Write(path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := t.WriteTo(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
