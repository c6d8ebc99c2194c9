package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ParseJSONRows decodes a JSON array of flat objects into a Dataset.
// Headers follow the key order of the first object.
func ParseJSONRows(data []byte) (Dataset, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Dataset{}, fmt.Errorf("rows must be a JSON array of objects: %w", err)
	}
	return FromRawRows(raw)
}

// FromRawRows decodes already split row objects. Used by request bodies that
// embed rows inside a larger document.
func FromRawRows(raw []json.RawMessage) (Dataset, error) {
	ds := Dataset{Rows: make([]Row, 0, len(raw))}
	for i, msg := range raw {
		var row Row
		if err := json.Unmarshal(msg, &row); err != nil {
			return Dataset{}, fmt.Errorf("row %d: %w", i, err)
		}
		if row == nil {
			return Dataset{}, fmt.Errorf("row %d: expected an object", i)
		}
		if i == 0 {
			keys, err := objectKeys(msg)
			if err != nil {
				return Dataset{}, fmt.Errorf("row %d: %w", i, err)
			}
			ds.Headers = keys
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds, nil
}

// objectKeys walks the top level of a JSON object and returns its keys in order
func objectKeys(msg json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(msg))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected an object")
	}

	var keys []string
	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}
