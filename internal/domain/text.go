package domain

import (
	"encoding/json"
	"strings"
)

// OptionalString is a spreadsheet cell that may be absent.
// A zero value is a missing cell; Valid with blank Value is treated the same way.
type OptionalString struct {
	Value string
	Valid bool
}

// Text wraps a present cell value.
func Text(s string) OptionalString {
	return OptionalString{Value: s, Valid: true}
}

// Missing returns an absent cell.
func Missing() OptionalString {
	return OptionalString{}
}

// IsBlank reports whether the cell is missing or holds only whitespace.
func (o OptionalString) IsBlank() bool {
	return !o.Valid || strings.TrimSpace(o.Value) == ""
}

// String returns the cell value, or "" when missing.
func (o OptionalString) String() string {
	if !o.Valid {
		return ""
	}
	return o.Value
}

// MarshalJSON encodes a missing cell as null.
func (o OptionalString) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// UnmarshalJSON decodes null as a missing cell.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = OptionalString{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*o = Text(s)
	return nil
}
