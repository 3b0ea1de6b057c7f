package translation

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultCatalog_BuiltInLabels(t *testing.T) {
	catalog := DefaultCatalog()

	got, err := catalog.Translate("en", "htmlgrid::label.submit")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if got != "Submit" {
		t.Fatalf("expected Submit, got %q", got)
	}
}

func TestCatalog_FallbackLocaleAndPlaceholders(t *testing.T) {
	catalog := NewCatalog("en")
	catalog.Add("en", map[string]string{"greeting": "Hello :name"})
	catalog.Add("es", map[string]string{"bye": "Adios"})

	got, err := catalog.Translate("es", "greeting", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if got != "Hello Ada" {
		t.Fatalf("expected fallback locale message, got %q", got)
	}

	if _, err := catalog.Translate("es", "unknown"); !errors.Is(err, ErrMissingKey) {
		t.Fatalf("expected ErrMissingKey, got %v", err)
	}
}

func TestCatalog_LoadFSFlattensNestedKeys(t *testing.T) {
	fsys := fstest.MapFS{
		"lang/fr.yaml":   {Data: []byte("users:\n  title: Utilisateurs\n  count: 3\n")},
		"lang/de.json":   {Data: []byte(`{"users":{"title":"Benutzer"}}`)},
		"lang/notes.txt": {Data: []byte("ignored")},
	}
	catalog := NewCatalog("")
	if err := catalog.LoadFS(fsys); err != nil {
		t.Fatalf("load: %v", err)
	}

	if diff := cmp.Diff([]string{"de", "fr"}, catalog.Locales()); diff != "" {
		t.Fatalf("locales mismatch (-want +got):\n%s", diff)
	}
	if got, _ := catalog.Translate("fr", "users.count"); got != "3" {
		t.Fatalf("expected flattened scalar, got %q", got)
	}
	if got, _ := catalog.Translate("de", "users.title"); got != "Benutzer" {
		t.Fatalf("expected json catalog entry, got %q", got)
	}
}

type failingTranslator struct{}

func (failingTranslator) Translate(string, string, ...any) (string, error) {
	return "", errors.New("boom")
}

func TestGet_FallsBackToKey(t *testing.T) {
	if got := Get(nil, "en", "label.save", nil); got != "label.save" {
		t.Fatalf("nil translator should return key, got %q", got)
	}
	if got := Get(failingTranslator{}, "en", "label.save", nil); got != "label.save" {
		t.Fatalf("failing translator should return key, got %q", got)
	}
	if got := Get(DefaultCatalog(), "en", "  ", nil); got != "" {
		t.Fatalf("blank key should translate to empty string, got %q", got)
	}

	custom := func(_ string, key string, _ []any, err error) string {
		if errors.Is(err, ErrMissingTranslator) {
			return "[" + key + "]"
		}
		return key
	}
	if got := Get(nil, "en", "x", custom); got != "[x]" {
		t.Fatalf("custom handler not used, got %q", got)
	}
}
