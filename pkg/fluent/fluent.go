// Package fluent provides a read-only key/value record and dotted-path lookups
// used to bind form and table grids to arbitrary row data.
package fluent

import (
	"sort"

	json "github.com/goccy/go-json"
)

// Record is implemented by row values that expose their attributes by key.
// Models that are not plain maps or structs can satisfy it to take part in
// dotted-path resolution.
type Record interface {
	Get(key string) (any, bool)
}

// Fluent wraps an attribute map. The zero value is an empty record.
type Fluent struct {
	attributes map[string]any
}

var _ Record = Fluent{}

// New copies attrs into a Fluent record.
func New(attrs map[string]any) Fluent {
	out := make(map[string]any, len(attrs))
	for key, value := range attrs {
		out[key] = value
	}
	return Fluent{attributes: out}
}

// Get returns the top-level attribute stored under key.
func (f Fluent) Get(key string) (any, bool) {
	if f.attributes == nil {
		return nil, false
	}
	value, ok := f.attributes[key]
	return value, ok
}

// Value resolves a dotted path, returning fallback when it is missing.
func (f Fluent) Value(path string, fallback any) any {
	if value, ok := DataGet(f, path); ok && value != nil {
		return value
	}
	return fallback
}

// Keys returns the attribute keys in sorted order.
func (f Fluent) Keys() []string {
	keys := make([]string, 0, len(f.attributes))
	for key := range f.attributes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Attributes returns a shallow copy of the underlying map.
func (f Fluent) Attributes() map[string]any {
	out := make(map[string]any, len(f.attributes))
	for key, value := range f.attributes {
		out[key] = value
	}
	return out
}

// Len reports the number of top-level attributes.
func (f Fluent) Len() int {
	return len(f.attributes)
}

// MarshalJSON exposes the attributes so records survive template context
// conversion.
func (f Fluent) MarshalJSON() ([]byte, error) {
	if f.attributes == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(f.attributes)
}
