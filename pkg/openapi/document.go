package openapi

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Document is a raw OpenAPI payload together with where it came from.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument copies raw into a Document.
func NewDocument(src Source, raw []byte) (Document, error) {
	switch {
	case src == nil:
		return Document{}, errors.New("openapi: document source is nil")
	case len(raw) == 0:
		return Document{}, fmt.Errorf("openapi: %s is empty", src.Location())
	}
	return Document{source: src, raw: slices.Clone(raw)}, nil
}

// MustNewDocument is NewDocument for fixtures.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

func (d Document) Source() Source { return d.source }

// Raw returns a copy of the payload.
func (d Document) Raw() []byte { return slices.Clone(d.raw) }

func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Operation is what a form needs from an OpenAPI operation: where it
// submits, how, and the request body it sends.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	Description string
	RequestBody Schema
}

// NewOperation upper-cases method and checks the identifying fields.
func NewOperation(id, method, path string, body Schema) (Operation, error) {
	op := Operation{
		ID:          strings.TrimSpace(id),
		Method:      strings.ToUpper(strings.TrimSpace(method)),
		Path:        strings.TrimSpace(path),
		RequestBody: body,
	}
	var missing []string
	if op.ID == "" {
		missing = append(missing, "id")
	}
	if op.Method == "" {
		missing = append(missing, "method")
	}
	if op.Path == "" {
		missing = append(missing, "path")
	}
	if len(missing) > 0 {
		return Operation{}, fmt.Errorf("openapi: operation %s required", strings.Join(missing, ", "))
	}
	return op, nil
}

// MustNewOperation is NewOperation for fixtures.
func MustNewOperation(id, method, path string, body Schema) Operation {
	op, err := NewOperation(id, method, path, body)
	if err != nil {
		panic(err)
	}
	return op
}

// Schema is the slice of JSON Schema a form control can express.
type Schema struct {
	Ref         string
	Type        string
	Format      string
	Title       string
	Description string
	Required    []string
	Properties  map[string]Schema
	Items       *Schema
	Enum        []any
	Default     any
	ReadOnly    bool
	MinLength   *int
	MaxLength   *int
	Minimum     *float64
	Maximum     *float64
	Pattern     string
}

// PropertyNames lists property names in lexical order, which is the order
// controls are added in.
func (s Schema) PropertyNames() []string {
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s Schema) IsRequired(name string) bool {
	return slices.Contains(s.Required, name)
}

// Unresolved reports a schema that is only a $ref, which happens when the
// parser runs without reference resolution.
func (s Schema) Unresolved() bool {
	return s.Ref != "" && s.Type == "" && len(s.Properties) == 0
}
