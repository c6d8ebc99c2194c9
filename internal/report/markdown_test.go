package report

import (
	"strings"
	"testing"

	"chartlab/domain/dataset"

	"github.com/stretchr/testify/assert"
)

func sampleReport() *dataset.Report {
	return &dataset.Report{
		RowCount:    4,
		ColumnCount: 2,
		Columns: []dataset.ColumnProfile{
			{
				Name:    "price",
				Kind:    dataset.ColumnNumeric,
				Numeric: &dataset.NumericStats{Min: 1, Max: 10.5, Avg: 2.675},
			},
			{
				Name:        "city|region",
				Kind:        dataset.ColumnCategorical,
				Categorical: &dataset.CategoricalStats{UniqueCount: 3},
			},
		},
	}
}

func TestMarkdownFormatter_Format(t *testing.T) {
	out := string(NewMarkdownFormatter().Format(sampleReport()))

	assert.True(t, strings.HasPrefix(out, "# Data Analysis\n"))
	assert.Contains(t, out, "- **Rows:** 4\n")
	assert.Contains(t, out, "- **Columns:** 2\n")
	assert.Contains(t, out, "- **Numeric columns:** 1\n")
	assert.Contains(t, out, "- **Text columns:** 1\n")
	assert.Contains(t, out, "| price | numeric | Min: 1.00, Max: 10.50, Avg: 2.67 |")
	assert.Contains(t, out, `| city\|region | text | 3 unique values |`)
}

func TestMarkdownFormatter_NilReport(t *testing.T) {
	f := &MarkdownFormatter{Title: "sales.csv"}
	out := string(f.Format(nil))

	assert.Contains(t, out, "# sales.csv")
	assert.Contains(t, out, "No data to analyze")
}

func TestMarkdownFormatter_HTML(t *testing.T) {
	out := string(NewMarkdownFormatter().HTML(sampleReport()))

	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<td>price</td>")
	assert.Contains(t, out, "<strong>Rows:</strong> 4")
}

func TestMarkdownFormatter_EscapesUserText(t *testing.T) {
	report := &dataset.Report{
		RowCount:    1,
		ColumnCount: 2,
		Columns: []dataset.ColumnProfile{
			{
				Name:        "<img src=x onerror=alert(1)>",
				Kind:        dataset.ColumnCategorical,
				Categorical: &dataset.CategoricalStats{UniqueCount: 1},
			},
			{
				Name:    "order_id",
				Kind:    dataset.ColumnNumeric,
				Numeric: &dataset.NumericStats{Min: 1, Max: 1, Avg: 1},
			},
		},
	}
	f := &MarkdownFormatter{Title: "Data Analysis: <script>alert(1)</script>.csv"}

	md := string(f.Format(report))
	assert.Contains(t, md, `| \<img src=x onerror=alert(1)\> | text |`)
	assert.Contains(t, md, `| order\_id | numeric |`)
	assert.Contains(t, md, `# Data Analysis: \<script\>alert(1)\</script\>.csv`)

	out := string(f.HTML(report))
	assert.NotContains(t, out, "<img")
	assert.NotContains(t, out, "<script")
	assert.Contains(t, out, "&lt;img src=x onerror=alert(1)&gt;")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "<td>order_id</td>")
}

func TestToHTML_DropsRawHTML(t *testing.T) {
	out := string(ToHTML([]byte("before <b onclick=\"x()\">bold</b> after\n")))

	assert.NotContains(t, out, "onclick")
	assert.Contains(t, out, "before")
	assert.Contains(t, out, "after")
}
