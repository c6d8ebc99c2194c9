package dataset

import "sort"

// Row is one record keyed by column name. A row lacking a key yields Missing.
type Row map[string]Value

// Get returns the cell for column, or Missing when the row has no such key
func (r Row) Get(column string) Value {
	if v, ok := r[column]; ok {
		return v
	}
	return Missing()
}

// Dataset is an in-memory table: an ordered header list plus rows.
// Headers carry the key order of the first row since Go maps are unordered.
type Dataset struct {
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`
}

// New builds a dataset from headers and rows
func New(headers []string, rows []Row) Dataset {
	return Dataset{Headers: headers, Rows: rows}
}

// IsEmpty reports whether the dataset has no rows
func (d Dataset) IsEmpty() bool {
	return len(d.Rows) == 0
}

// Len returns the number of rows
func (d Dataset) Len() int {
	return len(d.Rows)
}

// ColumnNames returns the header list. Datasets built without headers fall back
// to the sorted key set of the first row.
func (d Dataset) ColumnNames() []string {
	if len(d.Headers) > 0 {
		return d.Headers
	}
	if len(d.Rows) == 0 {
		return nil
	}
	names := make([]string, 0, len(d.Rows[0]))
	for k := range d.Rows[0] {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Column collects the cells of one column across every row, Missing where absent
func (d Dataset) Column(name string) []Value {
	values := make([]Value, len(d.Rows))
	for i, row := range d.Rows {
		values[i] = row.Get(name)
	}
	return values
}

// Head returns a dataset holding at most the first n rows. The rows are shared.
func (d Dataset) Head(n int) Dataset {
	if n < 0 {
		n = 0
	}
	if n > len(d.Rows) {
		n = len(d.Rows)
	}
	return Dataset{Headers: d.Headers, Rows: d.Rows[:n]}
}
