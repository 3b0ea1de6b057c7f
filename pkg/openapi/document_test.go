package openapi

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSchema_PropertyHelpers(t *testing.T) {
	schema := Schema{
		Type:     "object",
		Required: []string{"email"},
		Properties: map[string]Schema{
			"name":  {Type: "string"},
			"email": {Type: "string", Format: "email"},
			"age":   {Type: "integer"},
		},
	}

	if diff := cmp.Diff([]string{"age", "email", "name"}, schema.PropertyNames()); diff != "" {
		t.Fatalf("property names mismatch (-want +got):\n%s", diff)
	}
	if !schema.IsRequired("email") || schema.IsRequired("name") {
		t.Fatalf("required lookup mismatch")
	}
	if schema.Unresolved() || !(Schema{Ref: "#/components/schemas/User"}).Unresolved() {
		t.Fatalf("unresolved detection mismatch")
	}
}

func TestNewOperation(t *testing.T) {
	op, err := NewOperation(" createUser ", "post", "/users", Schema{Type: "object"})
	if err != nil {
		t.Fatalf("new operation: %v", err)
	}
	if op.Method != "POST" || op.ID != "createUser" {
		t.Fatalf("operation not normalised: %+v", op)
	}

	_, err = NewOperation("", "", "/users", Schema{})
	if err == nil || !strings.Contains(err.Error(), "id, method") {
		t.Fatalf("expected missing fields error, got %v", err)
	}
}

func TestNewDocument_CopiesPayload(t *testing.T) {
	raw := []byte(`{"openapi":"3.0.0"}`)
	doc, err := NewDocument(SourceFromFile("spec.json"), raw)
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	raw[0] = 'x'
	if doc.Raw()[0] != '{' {
		t.Fatalf("document should keep its own copy of the payload")
	}
	if doc.Location() != "spec.json" || doc.Source().Kind() != SourceKindFile {
		t.Fatalf("unexpected source %v", doc.Source())
	}
	if _, err := NewDocument(nil, raw); err == nil {
		t.Fatalf("expected error for nil source")
	}
	if _, err := NewDocument(SourceFromURL("https://example.com/api.yaml"), nil); err == nil {
		t.Fatalf("expected error for empty payload")
	}
}

func TestNewLoaderOptions(t *testing.T) {
	opts := NewLoaderOptions()
	if opts.AllowHTTP || opts.MaxDocument != DefaultMaxDocumentSize {
		t.Fatalf("unexpected defaults %+v", opts)
	}
	opts = NewLoaderOptions(WithHTTPFallback(0), WithMaxDocumentSize(10), nil)
	if !opts.AllowHTTP || opts.MaxDocument != 10 {
		t.Fatalf("options not applied %+v", opts)
	}
}
