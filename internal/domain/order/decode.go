package order

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// The storefront (and older rows in our own store) deliver some array fields
// either natively or as a JSON-encoded string, e.g.
//
//	"payment_gateway_names": ["visa"]
//	"payment_gateway_names": "[\"visa\"]"
//
// These helpers fold both encodings into one canonical slice. A decode
// failure is returned to the caller, which logs it and treats the field as
// absent: a malformed field is a data-quality event, not a mapping gap.

// DecodeStringList decodes a string array that may be string-encoded.
// Null and empty input decode to nil.
func DecodeStringList(data []byte) ([]string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	if data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return nil, fmt.Errorf("order: decoding string-encoded list: %w", err)
		}
		data = []byte(inner)
	}
	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("order: decoding string list: %w", err)
	}
	return out, nil
}

// DecodeShippingLines decodes a shipping-line array that may be
// string-encoded. Null and empty input decode to nil.
func DecodeShippingLines(data []byte) ([]ShippingLine, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	if data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return nil, fmt.Errorf("order: decoding string-encoded shipping lines: %w", err)
		}
		data = []byte(inner)
	}
	var out []ShippingLine
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("order: decoding shipping lines: %w", err)
	}
	return out, nil
}
