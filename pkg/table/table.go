// Package table holds the provider's tabular data as ordered columns of text
// and the column rename step applied before rows are read by name.
package table

import (
	"fmt"
	"sort"
)

// Table is an ordered set of rows sharing named columns. Cells are kept as
// the provider's text.
type Table struct {
	Columns []string
	Rows    [][]string
}

// MissingColumnError reports a column a caller needed that the table lacks.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("table has no column %q", e.Column)
}

// Index returns the position of the named column, or -1.
func (t Table) Index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Value returns the cell at row r and column c. Short rows read as empty.
func (t Table) Value(r, c int) string {
	row := t.Rows[r]
	if c < 0 || c >= len(row) {
		return ""
	}
	return row[c]
}

// Rename returns a copy of t with columns renamed according to renames (old
// name to new name). Every old name must be present.
func (t Table) Rename(renames map[string]string) (Table, error) {
	olds := make([]string, 0, len(renames))
	for old := range renames {
		olds = append(olds, old)
	}
	sort.Strings(olds)

	cols := make([]string, len(t.Columns))
	copy(cols, t.Columns)
	for _, old := range olds {
		i := t.Index(old)
		if i < 0 {
			return Table{}, &MissingColumnError{Column: old}
		}
		cols[i] = renames[old]
	}

	return Table{Columns: cols, Rows: t.Rows}, nil
}
