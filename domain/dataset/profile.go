package dataset

// ColumnKind is the inferred semantic type of a column
type ColumnKind string

const (
	ColumnNumeric     ColumnKind = "numeric"
	ColumnCategorical ColumnKind = "categorical"
)

// NumericStats summarises the coercible values of a numeric column
type NumericStats struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
}

// CategoricalStats summarises a categorical column
type CategoricalStats struct {
	UniqueCount int `json:"uniqueCount"`
}

// ColumnProfile is the inferred kind of one column plus the stats matching that kind.
// Exactly one of Numeric and Categorical is set.
type ColumnProfile struct {
	Name         string            `json:"name"`
	Kind         ColumnKind        `json:"type"`
	MissingCount int               `json:"missingCount"`
	Numeric      *NumericStats     `json:"numeric,omitempty"`
	Categorical  *CategoricalStats `json:"categorical,omitempty"`
}

// IsNumeric reports whether the column was classified numeric
func (p ColumnProfile) IsNumeric() bool {
	return p.Kind == ColumnNumeric
}

// Report is the dataset-level overview produced by the analyzer
type Report struct {
	RowCount    int             `json:"rowCount"`
	ColumnCount int             `json:"columnCount"`
	Columns     []ColumnProfile `json:"columns"`
}

// NumericCount returns how many columns were classified numeric
func (r *Report) NumericCount() int {
	n := 0
	for _, c := range r.Columns {
		if c.IsNumeric() {
			n++
		}
	}
	return n
}

// TextCount returns how many columns were classified categorical
func (r *Report) TextCount() int {
	return len(r.Columns) - r.NumericCount()
}

// Column looks up a profile by column name
func (r *Report) Column(name string) (ColumnProfile, bool) {
	for _, c := range r.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnProfile{}, false
}
