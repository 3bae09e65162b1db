// Package jsonutil provides shared utilities for JSON parsing patterns:
// error handling, opaque values, and order-preserving pretty-printing.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UnmarshalWithContext unmarshals JSON data into v and wraps any error
// with the provided context message.
func UnmarshalWithContext(data []byte, v any, context string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return nil
}

// UnmarshalArrayAllowEmpty unmarshals JSON data into a slice.
// An empty array yields an empty, non-nil slice.
func UnmarshalArrayAllowEmpty[T any](data []byte, context string) ([]T, error) {
	var entries []T
	if err := UnmarshalWithContext(data, &entries, context); err != nil {
		return nil, err
	}
	if entries == nil {
		// "null" decodes to a nil slice; callers treat both as "no items".
		entries = []T{}
	}
	return entries, nil
}

// RawValue validates data as a single JSON value and returns it with
// surrounding whitespace trimmed. A JSON null yields a nil value; an empty
// body or trailing data is an error.
func RawValue(data []byte, context string) (json.RawMessage, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: empty body", context)
	}
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w", context, err)
	}
	if bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	return bytes.Clone(raw), nil
}

// Pretty re-indents a JSON value with two spaces, keeping its key order and
// number text. The same input always produces the same output. HTML
// characters are left unescaped.
func Pretty(raw []byte) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(raw), "", "  "); err != nil {
		return "", fmt.Errorf("pretty print: %w", err)
	}
	return buf.String(), nil
}
