// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FlexText is a request field that accepts a JSON string or a JSON number and
// keeps the raw text. Numeric form fields arrive both ways depending on the
// client; parsing and coercion are left to the caller.
//
// Example:
//
//	{"dosage": 250}    -> FlexText("250")
//	{"dosage": "250"}  -> FlexText("250")
//	{"dosage": null}   -> FlexText("")
type FlexText string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*f = ""
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected a number or a string, got %s", b)
	}
	*f = FlexText(n.String())
	return nil
}

// String returns the raw text.
func (f FlexText) String() string { return string(f) }
