// Package propertyapi is the HTTP client for the remote Property API.
//
// The API exposes three read-only endpoints: a summary document, the list of
// properties and a single property detail keyed by zpid. Summary and detail
// are opaque documents passed through for display; only list items are typed,
// since the client reads their id and address.
package propertyapi

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Document is a JSON value exactly as the API sent it. Key order and number
// text are preserved for display. A nil Document means no value, which is
// also what a JSON null body decodes to.
type Document json.RawMessage

// MarshalJSON returns the document bytes, or null for a nil Document.
func (d Document) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("null"), nil
	}
	return d, nil
}

// Decode unmarshals the document into v.
func (d Document) Decode(v any) error {
	return json.Unmarshal(d, v)
}

// ZPID identifies a property. The API sends a number, but any scalar is
// accepted so one odd item cannot fail the whole list.
type ZPID string

// UnmarshalJSON keeps numbers as their literal text and unquotes strings.
func (z *ZPID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*z = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*z = ZPID(s)
	default:
		*z = ZPID(b)
	}
	return nil
}

// MarshalJSON writes numeric ids as JSON numbers and anything else as a
// string.
func (z ZPID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseFloat(string(z), 64); err == nil && json.Valid([]byte(z)) {
		return []byte(z), nil
	}
	return json.Marshal(string(z))
}

// Property is one entry of the list response.
type Property struct {
	ZPID          ZPID   `json:"zpid"`
	StreetAddress string `json:"street_address"`
	// Address is where older API revisions put the display address.
	Address string `json:"address,omitempty"`
}

// DisplayAddress returns the address shown in the property list.
func (p Property) DisplayAddress() string {
	if p.StreetAddress != "" {
		return p.StreetAddress
	}
	return p.Address
}

// Key returns the zpid as a lookup key string.
func (p Property) Key() string {
	return string(p.ZPID)
}
