package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValueType defines the storage type of a cell
type ValueType string

const (
	ValueTypeMissing ValueType = "missing"
	ValueTypeNumber  ValueType = "number"
	ValueTypeText    ValueType = "text"
	ValueTypeBoolean ValueType = "boolean"
)

// Value is a single table cell. It is resolved once at the boundary (upload
// parsing or JSON decoding) and is comparable, so it can be used as a map key
// when counting distinct raw values.
type Value struct {
	typ  ValueType
	num  float64
	text string
	flag bool
}

// NewNumber creates a numeric value
func NewNumber(n float64) Value {
	return Value{typ: ValueTypeNumber, num: n}
}

// NewText creates a text value. The empty string stays text; use Missing for absent cells.
func NewText(s string) Value {
	return Value{typ: ValueTypeText, text: s}
}

// NewBool creates a boolean value
func NewBool(b bool) Value {
	return Value{typ: ValueTypeBoolean, flag: b}
}

// Missing returns the absent value. It equals the zero Value.
func Missing() Value {
	return Value{}
}

// Of converts a loosely typed Go scalar into a Value.
func Of(raw interface{}) Value {
	switch v := raw.(type) {
	case nil:
		return Missing()
	case Value:
		return v
	case string:
		return NewText(v)
	case bool:
		return NewBool(v)
	case float64:
		return NewNumber(v)
	case float32:
		return NewNumber(float64(v))
	case int:
		return NewNumber(float64(v))
	case int64:
		return NewNumber(float64(v))
	case int32:
		return NewNumber(float64(v))
	case uint:
		return NewNumber(float64(v))
	case uint64:
		return NewNumber(float64(v))
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return NewNumber(f)
		}
		return NewText(v.String())
	default:
		return NewText(fmt.Sprintf("%v", v))
	}
}

// Type returns the tag of the value. The zero Value is missing.
func (v Value) Type() ValueType {
	if v.typ == "" {
		return ValueTypeMissing
	}
	return v.typ
}

// IsMissing reports whether the cell is absent or null
func (v Value) IsMissing() bool {
	return v.Type() == ValueTypeMissing
}

// IsEmpty reports whether the cell is missing or an empty string
func (v Value) IsEmpty() bool {
	return v.IsMissing() || (v.typ == ValueTypeText && v.text == "")
}

// Float coerces the value to a finite number. Numbers must be finite; text must
// parse as a number once surrounding whitespace is removed. Everything else,
// including booleans and blank text, is not numeric-coercible.
func (v Value) Float() (float64, bool) {
	switch v.typ {
	case ValueTypeNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return 0, false
		}
		return v.num, true
	case ValueTypeText:
		s := strings.TrimSpace(v.text)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// AsText returns the raw text payload, or "" for non-text values
func (v Value) AsText() string {
	if v.typ == ValueTypeText {
		return v.text
	}
	return ""
}

// String returns the display form used for grouping keys and labels.
func (v Value) String() string {
	switch v.typ {
	case ValueTypeNumber:
		return formatNumber(v.num)
	case ValueTypeText:
		return v.text
	case ValueTypeBoolean:
		return strconv.FormatBool(v.flag)
	}
	return ""
}

// Interface returns the value as a plain Go scalar (nil for missing)
func (v Value) Interface() interface{} {
	switch v.typ {
	case ValueTypeNumber:
		return v.num
	case ValueTypeText:
		return v.text
	case ValueTypeBoolean:
		return v.flag
	}
	return nil
}

// MarshalJSON writes the cell as a bare JSON scalar
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.typ {
	case ValueTypeNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return []byte("null"), nil
		}
		return []byte(strconv.FormatFloat(v.num, 'g', -1, 64)), nil
	case ValueTypeText:
		return json.Marshal(v.text)
	case ValueTypeBoolean:
		return []byte(strconv.FormatBool(v.flag)), nil
	}
	return []byte("null"), nil
}

// UnmarshalJSON reads a bare JSON scalar. Objects and arrays are rejected.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*v = Missing()
		return nil
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = NewText(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return err
		}
		*v = NewBool(b)
	case '{', '[':
		return fmt.Errorf("cell value must be a scalar, got %s", trimmed)
	default:
		f, err := strconv.ParseFloat(string(trimmed), 64)
		if err != nil {
			return fmt.Errorf("invalid numeric cell %s: %w", trimmed, err)
		}
		*v = NewNumber(f)
	}
	return nil
}

// formatNumber renders a number the way a spreadsheet user would type it:
// integers without a fractional part, other values with the shortest exact digits.
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
