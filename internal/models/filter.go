package models

import (
	"slices"
	"strings"
)

// FilterSelection holds the allowed values per filterable field.
// A field with no values is unrestricted; it never means "match nothing".
// Selections are copy-on-write: mutating helpers return a new selection.
type FilterSelection map[Field][]string

// Values returns the allowed values for a field in the order they were added.
func (s FilterSelection) Values(f Field) []string {
	return slices.Clone(s[f])
}

// Has reports whether value is an allowed value for the field.
func (s FilterSelection) Has(f Field, value string) bool {
	return slices.Contains(s[f], value)
}

// Restricts reports whether the field has at least one allowed value.
func (s FilterSelection) Restricts(f Field) bool {
	return len(s[f]) > 0
}

// IsEmpty returns true if no field is restricted.
func (s FilterSelection) IsEmpty() bool {
	for _, vals := range s {
		if len(vals) > 0 {
			return false
		}
	}
	return true
}

// Clone returns a deep copy.
func (s FilterSelection) Clone() FilterSelection {
	out := make(FilterSelection, len(s))
	for f, vals := range s {
		if len(vals) > 0 {
			out[f] = slices.Clone(vals)
		}
	}
	return out
}

// With returns a copy of s where the field allows exactly values.
func (s FilterSelection) With(f Field, values ...string) FilterSelection {
	out := s.Clone()
	if len(values) == 0 {
		delete(out, f)
		return out
	}
	out[f] = slices.Clone(values)
	return out
}

// Toggle returns a copy of s with value added to or removed from the field.
func (s FilterSelection) Toggle(f Field, value string) FilterSelection {
	out := s.Clone()
	vals := out[f]
	if i := slices.Index(vals, value); i >= 0 {
		vals = slices.Delete(vals, i, i+1)
	} else {
		vals = append(vals, value)
	}
	if len(vals) == 0 {
		delete(out, f)
	} else {
		out[f] = vals
	}
	return out
}

// Clear returns a copy of s with the field unrestricted.
func (s FilterSelection) Clear(f Field) FilterSelection {
	return s.With(f)
}

// String renders the selection as "Driver=A,B; Product=Gravel", or "all" when empty.
func (s FilterSelection) String() string {
	var parts []string
	for _, f := range FilterableFields {
		if vals := s[f]; len(vals) > 0 {
			parts = append(parts, f.String()+"="+strings.Join(vals, ","))
		}
	}
	if len(parts) == 0 {
		return "all"
	}
	return strings.Join(parts, "; ")
}
