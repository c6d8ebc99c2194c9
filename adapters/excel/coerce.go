package excel

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"chartlab/domain/dataset"
)

// numericCell matches plain decimals with an optional exponent. Thousands
// separators, currency symbols and percentages stay text.
var numericCell = regexp.MustCompile(`^\s*-?(\d+\.?|\.\d+|\d+\.\d+)([eE][-+]?\d+)?\s*$`)

// TypeCell turns a raw cell into a typed value: blank cells are missing,
// plain numbers become numbers, true/false (any case) become booleans and
// everything else stays text.
func TypeCell(raw string) dataset.Value {
	cell := strings.TrimSpace(raw)
	if cell == "" {
		return dataset.Missing()
	}

	if strings.EqualFold(cell, "true") {
		return dataset.NewBool(true)
	}
	if strings.EqualFold(cell, "false") {
		return dataset.NewBool(false)
	}

	if numericCell.MatchString(cell) {
		if f, err := strconv.ParseFloat(cell, 64); err == nil && !math.IsInf(f, 0) {
			return dataset.NewNumber(f)
		}
	}

	return dataset.NewText(cell)
}

// normalizeHeaders trims header names, strips a leading byte order mark,
// names blank headers after their position and suffixes duplicates with _1, _2, ...
func normalizeHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	used := make(map[string]bool, len(raw))

	for i, h := range raw {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		name := strings.TrimSpace(h)
		if name == "" {
			name = "Column " + strconv.Itoa(i+1)
		}

		candidate := name
		for n := 1; used[candidate]; n++ {
			candidate = name + "_" + strconv.Itoa(n)
		}
		used[candidate] = true
		headers[i] = candidate
	}
	return headers
}
