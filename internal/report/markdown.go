// Package report renders a dataset analysis for people: Markdown for the CLI
// and API, HTML through gomarkdown for browsers.
package report

import (
	"fmt"
	"strings"

	"chartlab/domain/dataset"
	"chartlab/internal/format"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// MarkdownFormatter outputs a dataset Report as Markdown
type MarkdownFormatter struct {
	// Title heads the document; defaults to "Data Analysis"
	Title string
}

// NewMarkdownFormatter creates a formatter with the default title
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{Title: "Data Analysis"}
}

// Format renders the report. A nil report renders a short notice.
func (f *MarkdownFormatter) Format(report *dataset.Report) []byte {
	var b strings.Builder

	title := f.Title
	if title == "" {
		title = "Data Analysis"
	}
	b.WriteString("# " + escapeText(title) + "\n\n")

	if report == nil {
		b.WriteString("*No data to analyze.*\n")
		return []byte(b.String())
	}

	b.WriteString("## Summary\n\n")
	b.WriteString(fmt.Sprintf("- **Rows:** %d\n", report.RowCount))
	b.WriteString(fmt.Sprintf("- **Columns:** %d\n", report.ColumnCount))
	b.WriteString(fmt.Sprintf("- **Numeric columns:** %d\n", report.NumericCount()))
	b.WriteString(fmt.Sprintf("- **Text columns:** %d\n", report.TextCount()))

	b.WriteString("\n## Columns\n\n")
	b.WriteString("| Column | Type | Statistics |\n")
	b.WriteString("|---|---|---|\n")
	for _, col := range report.Columns {
		b.WriteString(fmt.Sprintf("| %s | %s | %s |\n", escapeText(col.Name), typeLabel(col), statsCell(col)))
	}

	return []byte(b.String())
}

// HTML renders the report as an HTML fragment
func (f *MarkdownFormatter) HTML(report *dataset.Report) []byte {
	return ToHTML(f.Format(report))
}

// ToHTML converts Markdown to HTML with tables enabled. Raw HTML in the
// source is dropped.
func ToHTML(md []byte) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse(md)

	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.SkipHTML})
	return markdown.Render(doc, renderer)
}

// typeLabel uses the wording shown to users: numeric or text
func typeLabel(col dataset.ColumnProfile) string {
	if col.IsNumeric() {
		return "numeric"
	}
	return "text"
}

func statsCell(col dataset.ColumnProfile) string {
	if col.Numeric != nil {
		return fmt.Sprintf("Min: %s, Max: %s, Avg: %s",
			format.Fixed(col.Numeric.Min, 2),
			format.Fixed(col.Numeric.Max, 2),
			format.Fixed(col.Numeric.Avg, 2))
	}
	if col.Categorical != nil {
		return fmt.Sprintf("%d unique values", col.Categorical.UniqueCount)
	}
	return ""
}

// markdownEscaper backslash-escapes the characters that would turn user
// supplied names into markup, links, emphasis or table cell breaks
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"&", `\&`,
	"|", `\|`,
)

func escapeText(s string) string {
	return markdownEscaper.Replace(s)
}
