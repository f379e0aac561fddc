package netlist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Document is a decoded, untyped JSON document. Values keep the shape they
// had in the source text: numbers stay json.Number and nothing is defaulted.
type Document struct {
	root   any
	fields map[string]json.RawMessage
}

// Decode parses text into a Document. Any syntax error, including trailing
// data after the first value, is reported as ErrMalformedJSON.
func Decode(text string) (*Document, error) {
	if !json.Valid([]byte(text)) {
		return nil, ErrMalformedJSON
	}

	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedJSON, err)
	}

	doc := &Document{root: root}
	if _, ok := root.(map[string]any); ok {
		if err := json.Unmarshal([]byte(text), &doc.fields); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedJSON, err)
		}
	}
	return doc, nil
}

// IsNull reports whether the document is absent or the JSON literal null.
func (d *Document) IsNull() bool {
	return d == nil || d.root == nil
}

// Field returns the top-level value stored under key. It reports false when
// the document is not an object or has no such key.
func (d *Document) Field(key string) (any, bool) {
	if d.IsNull() {
		return nil, false
	}
	obj, ok := d.root.(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := obj[key]
	return v, ok
}

// String returns the top-level string under key, or "" for any other value.
func (d *Document) String(key string) string {
	v, _ := d.Field(key)
	s, _ := v.(string)
	return s
}

// Raw returns the exact source bytes of the top-level value under key.
func (d *Document) Raw(key string) json.RawMessage {
	if d == nil || d.fields == nil {
		return nil
	}
	return d.fields[key]
}

// LengthOrZero returns the length of v when it is a JSON array and 0 for
// anything else, including absent values.
func LengthOrZero(v any) int {
	if seq, ok := v.([]any); ok {
		return len(seq)
	}
	return 0
}

// displayValue renders a decoded value for a preview cell. Absent values
// render as an empty cell.
func displayValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(val); err != nil {
			return fmt.Sprint(val)
		}
		return strings.TrimSpace(buf.String())
	}
}
