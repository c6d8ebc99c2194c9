package chart

import (
	"fmt"
	"strings"

	"chartlab/domain/dataset"
)

// Kind is the chart type requested by the chart-configuration collaborator
type Kind string

const (
	KindBar       Kind = "bar"
	KindLine      Kind = "line"
	KindArea      Kind = "area"
	KindPie       Kind = "pie"
	KindScatter   Kind = "scatter"
	KindHistogram Kind = "histogram"
	KindTreemap   Kind = "treemap"
)

// DefaultColor is the accent used when a spec carries no color
const DefaultColor = "#22d3ee"

// Kinds lists every supported chart kind in menu order
func Kinds() []Kind {
	return []Kind{KindBar, KindLine, KindArea, KindPie, KindScatter, KindHistogram, KindTreemap}
}

// ParseKind resolves a kind name case-insensitively
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.IsValid() {
		return k, fmt.Errorf("unknown chart type %q", s)
	}
	return k, nil
}

// IsValid reports whether k is one of the supported kinds
func (k Kind) IsValid() bool {
	for _, known := range Kinds() {
		if k == known {
			return true
		}
	}
	return false
}

// IsSeries reports whether k plots one (x, y) point per row
func (k Kind) IsSeries() bool {
	switch k {
	case KindBar, KindLine, KindArea, KindScatter:
		return true
	}
	return false
}

// Title returns the capitalised kind name
func (k Kind) Title() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

// Spec is the chart configuration. YColumn is optional for pie charts.
type Spec struct {
	Type    Kind   `json:"type" validate:"required"`
	XColumn string `json:"xColumn" validate:"required"`
	YColumn string `json:"yColumn,omitempty" validate:"required_unless=Type pie"`
	Title   string `json:"title,omitempty" validate:"max=200"`
	Color   string `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

// Normalize fills the defaults the chart editor applies before rendering:
// pie charts group on x only, an empty title becomes "<Kind> Chart" and an
// empty color becomes DefaultColor.
func (s Spec) Normalize() Spec {
	if s.Type == KindPie && s.YColumn == "" {
		s.YColumn = s.XColumn
	}
	if strings.TrimSpace(s.Title) == "" {
		s.Title = s.Type.Title() + " Chart"
	}
	if s.Color == "" {
		s.Color = DefaultColor
	}
	return s
}

// Caption returns the axis footer shown under a rendered chart
func (s Spec) Caption() string {
	if s.Type == KindPie {
		return "Category: " + s.XColumn
	}
	return fmt.Sprintf("X: %s | Y: %s", s.XColumn, s.YColumn)
}

// Shape names the record layout a renderer expects
type Shape string

const (
	ShapeCategoryCount Shape = "category_count"
	ShapeSeriesPoint   Shape = "series_point"
	ShapeHistogramBin  Shape = "histogram_bin"
	ShapeTreemapNode   Shape = "treemap_node"
)

// Record is one renderer-ready element. The set of implementations is closed.
type Record interface {
	Shape() Shape
	isRecord()
}

// CategoryCount is a pie slice or a grouped-count bar
type CategoryCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// SeriesPoint is one plotted point; X keeps the raw cell
type SeriesPoint struct {
	X dataset.Value `json:"x"`
	Y float64       `json:"y"`
}

// HistogramBin is a fixed-width bucket labelled "<lo>-<hi>"
type HistogramBin struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// TreemapNode is one rectangle of a treemap
type TreemapNode struct {
	Name string  `json:"name"`
	Size float64 `json:"size"`
}

func (CategoryCount) Shape() Shape { return ShapeCategoryCount }
func (SeriesPoint) Shape() Shape   { return ShapeSeriesPoint }
func (HistogramBin) Shape() Shape  { return ShapeHistogramBin }
func (TreemapNode) Shape() Shape   { return ShapeTreemapNode }

func (CategoryCount) isRecord() {}
func (SeriesPoint) isRecord()   {}
func (HistogramBin) isRecord()  {}
func (TreemapNode) isRecord()   {}
