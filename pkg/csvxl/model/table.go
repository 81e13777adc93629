// Package model defines the tabular value types shared across csvxl.
package model

// Row maps column name to cell value.
//
// Values are limited to string, int64, float64, bool, or nil for an empty
// cell. Every row of a Table carries an entry for every column of that
// table; an empty cell is stored as an explicit nil.
type Row map[string]interface{}

// Clone returns a copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table represents one sheet worth of tabular data.
type Table struct {
	// Name is the sheet name the table belongs to.
	Name string
	// Columns is the ordered list of column names. Names are unique
	// within a table.
	Columns []string
	// Rows contains the data rows in order.
	Rows []Row
}

// NewTable creates an empty table with the given name and columns.
func NewTable(name string, columns []string) *Table {
	return &Table{
		Name:    name,
		Columns: append([]string{}, columns...),
	}
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := NewTable(t.Name, t.Columns)
	out.Rows = make([]Row, len(t.Rows))
	for i, row := range t.Rows {
		out.Rows[i] = row.Clone()
	}
	return out
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	for _, col := range t.Columns {
		if col == name {
			return true
		}
	}
	return false
}

// AddColumn appends a column and back-fills every existing row with nil.
// Adding a column the table already has is a no-op.
func (t *Table) AddColumn(name string) {
	if t.HasColumn(name) {
		return
	}
	t.Columns = append(t.Columns, name)
	for _, row := range t.Rows {
		row[name] = nil
	}
}

// AppendRow copies r into the table, filling columns r lacks with nil and
// dropping entries for columns the table does not have.
func (t *Table) AppendRow(r Row) {
	row := make(Row, len(t.Columns))
	for _, col := range t.Columns {
		row[col] = r[col]
	}
	t.Rows = append(t.Rows, row)
}
