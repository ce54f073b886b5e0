// Package dataset provides the row-oriented table the pipeline reads
// from and writes to. Cells are strings; derived flag columns are
// attached as formatted integers.
package dataset

import (
	"errors"
	"fmt"
)

// ErrMissingColumn is returned when a named column is absent from the
// table schema.
var ErrMissingColumn = errors.New("missing column")

// Table is a named-column row container.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// New creates an empty table with the given column schema.
func New(columns []string) *Table {
	t := &Table{
		columns: append([]string(nil), columns...),
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		t.index[c] = i
	}
	return t
}

// Columns returns the column names in schema order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// HasColumn reports whether the schema contains the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Append adds a row. Short rows are padded so every row matches the
// schema width.
func (t *Table) Append(row []string) {
	if len(row) < len(t.columns) {
		padded := make([]string, len(t.columns))
		copy(padded, row)
		row = padded
	}
	t.rows = append(t.rows, row[:len(t.columns)])
}

// Cell returns the value at (row, column).
func (t *Table) Cell(row int, column string) (string, error) {
	i, ok := t.index[column]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMissingColumn, column)
	}
	if row < 0 || row >= len(t.rows) {
		return "", fmt.Errorf("row %d out of range", row)
	}
	return t.rows[row][i], nil
}

// AddColumn appends a derived column. The value slice must cover every
// row.
func (t *Table) AddColumn(name string, values []string) error {
	if _, dup := t.index[name]; dup {
		return fmt.Errorf("column %q already exists", name)
	}
	if len(values) != len(t.rows) {
		return fmt.Errorf("column %q has %d values for %d rows", name, len(values), len(t.rows))
	}
	t.index[name] = len(t.columns)
	t.columns = append(t.columns, name)
	for i := range t.rows {
		t.rows[i] = append(t.rows[i], values[i])
	}
	return nil
}

// Row returns the raw cell slice of one row.
func (t *Table) Row(i int) []string {
	return t.rows[i]
}
