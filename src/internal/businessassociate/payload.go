// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package businessassociate

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Fields accumulates the fields of an outbound write payload.
//
// Only fields that pass the omission rule of the setter used are stored, and
// they are encoded in insertion order. Absent fields are left out of the JSON
// object entirely rather than sent as null.
type Fields struct{ m *orderedmap.OrderedMap[string, any] }

// NewFields returns an empty payload builder.
func NewFields() *Fields {
	return &Fields{m: orderedmap.New[string, any]()}
}

// Set stores value under key unconditionally.
func (f *Fields) Set(key string, value any) *Fields {
	f.m.Set(key, value)
	return f
}

// SetString stores *value under key when value is non-nil.
func (f *Fields) SetString(key string, value *string) *Fields {
	if value != nil {
		f.m.Set(key, *value)
	}
	return f
}

// SetNonEmpty stores value under key when it is not the empty string.
func (f *Fields) SetNonEmpty(key, value string) *Fields {
	if value != "" {
		f.m.Set(key, value)
	}
	return f
}

// SetInt stores *value under key when value is non-nil.
func (f *Fields) SetInt(key string, value *int) *Fields {
	if value != nil {
		f.m.Set(key, *value)
	}
	return f
}

// Get returns the value stored under key.
func (f *Fields) Get(key string) (any, bool) { return f.m.Get(key) }

// Len reports the number of stored fields.
func (f *Fields) Len() int { return f.m.Len() }

// keys returns the stored keys in insertion order.
func (f *Fields) keys() []string {
	keys := make([]string, 0, f.m.Len())
	for pair := f.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// MarshalJSON encodes the stored fields as a JSON object in insertion order.
func (f *Fields) MarshalJSON() ([]byte, error) { return f.m.MarshalJSON() }
