package parser

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"

	pkgopenapi "github.com/goliatone/go-htmlgrid/pkg/openapi"
)

func TestConvertSchemaHandlesRecursiveReferences(t *testing.T) {
	const document = `{
  "openapi": "3.0.0",
  "info": { "title": "Cycle", "version": "1.0.0" },
  "paths": {},
  "components": {
    "schemas": {
      "PublishingHouse": {
        "type": "object",
        "properties": {
          "headquarters": { "$ref": "#/components/schemas/Headquarters" }
        }
      },
      "Headquarters": {
        "type": "object",
        "properties": {
          "publisher": { "$ref": "#/components/schemas/PublishingHouse" }
        }
      }
    }
  }
}`

	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData([]byte(document))
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}

	publishing := doc.Components.Schemas["PublishingHouse"]
	if publishing == nil {
		t.Fatalf("schema PublishingHouse not found")
	}
	converted := convertSchema(publishing, map[*openapi3.Schema]bool{})
	headquarters, ok := converted.Properties["headquarters"]
	if !ok {
		t.Fatalf("expected headquarters property on PublishingHouse schema")
	}
	if headquarters.Ref == "" {
		t.Fatalf("expected headquarters property to retain its reference")
	}
	publisher, ok := headquarters.Properties["publisher"]
	if !ok {
		t.Fatalf("expected publisher property on Headquarters schema")
	}
	if publisher.Ref == "" || len(publisher.Properties) != 0 {
		t.Fatalf("expected the cycle to be cut at publisher, got %+v", publisher)
	}
}

func TestOperationsMergesAllOfSchemas(t *testing.T) {
	t.Parallel()

	const document = `{
  "openapi": "3.0.0",
  "info": { "title": "AllOf", "version": "1.0.0" },
  "paths": {
    "/users": {
      "post": {
        "operationId": "createUser",
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {
                "allOf": [
                  {"$ref": "#/components/schemas/BaseUser"},
                  {
                    "type": "object",
                    "required": ["email"],
                    "properties": {
                      "email": {"type": "string", "format": "email"}
                    }
                  }
                ]
              }
            }
          }
        },
        "responses": {
          "200": {"description": "ok"}
        }
      }
    },
    "/users/{id}": {
      "delete": {
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "integer"}}],
        "responses": {
          "204": {"description": "gone"}
        }
      }
    }
  },
  "components": {
    "schemas": {
      "BaseUser": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "name": {"type": "string", "maxLength": 40},
          "age": {"type": "integer", "minimum": 1}
        }
      }
    }
  }
}`

	doc, err := pkgopenapi.NewDocument(pkgopenapi.SourceFromFile("inline.json"), []byte(document))
	if err != nil {
		t.Fatalf("construct document: %v", err)
	}

	parser := New(pkgopenapi.NewParserOptions())
	operations, err := parser.Operations(context.Background(), doc)
	if err != nil {
		t.Fatalf("parse operations: %v", err)
	}

	ids := make([]string, 0, len(operations))
	for id := range operations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if diff := cmp.Diff([]string{"createUser", "delete:/users/{id}"}, ids); diff != "" {
		t.Fatalf("operation ids mismatch (-want +got):\n%s", diff)
	}

	op := operations["createUser"]
	if op.Method != "POST" || op.Path != "/users" {
		t.Fatalf("unexpected method/path %s %s", op.Method, op.Path)
	}

	req := op.RequestBody
	if req.Type != "object" {
		t.Fatalf("request schema type = %q, want object", req.Type)
	}
	if diff := cmp.Diff([]string{"age", "email", "name"}, req.PropertyNames()); diff != "" {
		t.Fatalf("property names mismatch (-want +got):\n%s", diff)
	}
	required := append([]string(nil), req.Required...)
	sort.Strings(required)
	if diff := cmp.Diff([]string{"email", "name"}, required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
	if maxLen := req.Properties["name"].MaxLength; maxLen == nil || *maxLen != 40 {
		t.Fatalf("expected maxLength 40 on name, got %v", maxLen)
	}
	if minVal := req.Properties["age"].Minimum; minVal == nil || *minVal != 1 {
		t.Fatalf("expected minimum 1 on age, got %v", minVal)
	}
}

func TestOperationsRejectsEmptyDocuments(t *testing.T) {
	const document = `{"openapi": "3.0.0", "info": {"title": "Empty", "version": "1.0.0"}, "paths": {}}`

	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFile("empty.json"), []byte(document))
	parser := New(pkgopenapi.NewParserOptions())
	if _, err := parser.Operations(context.Background(), doc); err == nil {
		t.Fatalf("expected error for document without paths")
	}

	partial := New(pkgopenapi.NewParserOptions(pkgopenapi.WithPartialDocuments(true)))
	ops, err := partial.Operations(context.Background(), doc)
	if err != nil {
		t.Fatalf("partial documents should be accepted: %v", err)
	}
	if len(ops) != 0 {
		t.Fatalf("expected no operations, got %d", len(ops))
	}
}

func TestOperationsRejectsDuplicateIDs(t *testing.T) {
	const document = `{
  "openapi": "3.0.0",
  "info": {"title": "Dup", "version": "1.0.0"},
  "paths": {
    "/a": {"get": {"operationId": "list", "responses": {"200": {"description": "ok"}}}},
    "/b": {"get": {"operationId": "list", "responses": {"200": {"description": "ok"}}}}
  }
}`
	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFile("dup.json"), []byte(document))
	// Validation already rejects duplicate ids, so parse without it.
	parser := New(pkgopenapi.NewParserOptions(pkgopenapi.WithReferenceResolution(false)))
	_, err := parser.Operations(context.Background(), doc)
	if err == nil || !strings.Contains(err.Error(), `"list"`) {
		t.Fatalf("expected duplicate id error, got %v", err)
	}
}
