// Package testsupport holds fixtures shared by package tests.
package testsupport

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"testing"

	pkgopenapi "github.com/goliatone/go-htmlgrid/pkg/openapi"
)

// LoadDocument reads an OpenAPI fixture from disk.
func LoadDocument(t *testing.T, path string) pkgopenapi.Document {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read document %s: %v", path, err)
	}
	doc, err := pkgopenapi.NewDocument(pkgopenapi.SourceFromFile(path), data)
	if err != nil {
		t.Fatalf("document %s: %v", path, err)
	}
	return doc
}

// MustReadGoldenString returns the contents of a golden file.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden %s: %v", path, err)
	}
	return string(data)
}

// CaptureTemplateOutput runs render against a buffer and returns both the
// returned string and what was written.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()
	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out, buf.String()
}

// StaticTranslator resolves keys from a fixed map and fails on anything else.
type StaticTranslator map[string]string

func (s StaticTranslator) Translate(_ string, key string, _ ...any) (string, error) {
	if msg, ok := s[key]; ok {
		return msg, nil
	}
	return "", fmt.Errorf("testsupport: no translation for %q", key)
}
