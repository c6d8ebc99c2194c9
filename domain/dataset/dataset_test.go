package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return New([]string{"city", "sales"}, []Row{
		{"city": NewText("Oslo"), "sales": NewNumber(10)},
		{"city": NewText("Bergen")},
		{"city": NewText("Oslo"), "sales": NewText("7")},
	})
}

func TestDataset_Column(t *testing.T) {
	ds := sampleDataset()

	sales := ds.Column("sales")
	require.Len(t, sales, 3)
	assert.Equal(t, NewNumber(10), sales[0])
	assert.True(t, sales[1].IsMissing())
	assert.Equal(t, NewText("7"), sales[2])

	unknown := ds.Column("nope")
	assert.Len(t, unknown, 3)
	for _, v := range unknown {
		assert.True(t, v.IsMissing())
	}
}

func TestDataset_ColumnNames(t *testing.T) {
	assert.Equal(t, []string{"city", "sales"}, sampleDataset().ColumnNames())

	headerless := Dataset{Rows: []Row{{"b": NewNumber(1), "a": NewNumber(2)}}}
	assert.Equal(t, []string{"a", "b"}, headerless.ColumnNames())

	assert.Nil(t, Dataset{}.ColumnNames())
}

func TestDataset_Head(t *testing.T) {
	ds := sampleDataset()

	assert.Equal(t, 2, ds.Head(2).Len())
	assert.Equal(t, 3, ds.Head(8).Len())
	assert.Equal(t, 0, ds.Head(-1).Len())
	assert.Equal(t, ds.Headers, ds.Head(1).Headers)
	assert.Equal(t, 3, ds.Len(), "head must not shrink the source")
}

func TestParseJSONRows(t *testing.T) {
	ds, err := ParseJSONRows([]byte(`[
		{"zeta": "a", "alpha": 1},
		{"zeta": "b", "alpha": "2", "extra": true}
	]`))
	require.NoError(t, err)

	assert.Equal(t, []string{"zeta", "alpha"}, ds.Headers)
	require.Equal(t, 2, ds.Len())
	assert.Equal(t, NewText("2"), ds.Rows[1].Get("alpha"))
	assert.Equal(t, NewBool(true), ds.Rows[1].Get("extra"))
	assert.True(t, ds.Rows[0].Get("extra").IsMissing())
}

func TestParseJSONRows_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not an array", `{"a":1}`},
		{"array of scalars", `[1,2]`},
		{"nested value", `[{"a":[1]}]`},
		{"malformed", `[{"a":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSONRows([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestParseJSONRows_Empty(t *testing.T) {
	ds, err := ParseJSONRows([]byte(`[]`))
	require.NoError(t, err)
	assert.True(t, ds.IsEmpty())
}

func TestStoredDataset_Summary(t *testing.T) {
	stored := NewStoredDataset("sales.csv", sampleDataset())

	assert.False(t, stored.ID.IsEmpty())
	assert.Equal(t, 3, stored.RowCount)
	assert.Equal(t, 2, stored.ColumnCount)

	summary := stored.Summary()
	assert.Equal(t, stored.ID, summary.ID)
	assert.Equal(t, []string{"city", "sales"}, summary.Headers)
	assert.Equal(t, "sales.csv", stored.GetDisplayName())
}
