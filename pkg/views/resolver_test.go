package views

import (
	"errors"
	"io/fs"
	"testing"

	theme "github.com/goliatone/go-theme"
)

type stubSelector struct {
	selection *theme.Selection
	err       error
	calls     int
}

func (s *stubSelector) Select(_, _ string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls++
	return s.selection, s.err
}

type stubFinder map[string]bool

func (f stubFinder) Exists(name string) bool { return f[name] }

func acmeSelection() *theme.Selection {
	return &theme.Selection{
		Theme:   "acme",
		Variant: "dark",
		Manifest: &theme.Manifest{
			Name:    "acme",
			Version: "1.0.0",
			Templates: map[string]string{
				FormHorizontal:  "themes/acme/form",
				TableHorizontal: "themes/acme/table",
			},
			Variants: map[string]theme.Variant{
				"dark": {
					Templates: map[string]string{
						TableHorizontal: "themes/acme/dark/table",
					},
				},
			},
		},
	}
}

func TestFormLayout(t *testing.T) {
	cases := map[string]string{
		"horizontal":  FormHorizontal,
		"vertical":    FormVertical,
		"custom.view": "custom.view",
	}
	for input, want := range cases {
		if got := FormLayout(input); got != want {
			t.Fatalf("FormLayout(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestTableLayout(t *testing.T) {
	if got := TableLayout("horizontal"); got != TableHorizontal {
		t.Fatalf("TableLayout(horizontal) = %q", got)
	}
	if got := TableLayout("admin/users"); got != "admin/users" {
		t.Fatalf("custom table view should be verbatim, got %q", got)
	}
}

func TestResolver_WithoutThemeReturnsView(t *testing.T) {
	if got := NewResolver().Resolve(FormVertical); got != FormVertical {
		t.Fatalf("expected passthrough, got %q", got)
	}
}

func TestResolver_ThemeOverrides(t *testing.T) {
	selector := &stubSelector{selection: acmeSelection()}
	r := NewResolver(WithThemeSelector(selector, "acme", "dark"))

	if got := r.Resolve(TableHorizontal); got != "themes/acme/dark/table" {
		t.Fatalf("variant override expected, got %q", got)
	}
	if got := r.Resolve(FormHorizontal); got != "themes/acme/form" {
		t.Fatalf("manifest override expected, got %q", got)
	}
	if got := r.Resolve(FormVertical); got != FormVertical {
		t.Fatalf("views without overrides resolve to themselves, got %q", got)
	}
}

func TestResolver_MissingOverrideFallsBack(t *testing.T) {
	selector := &stubSelector{selection: acmeSelection()}
	r := NewResolver(
		WithThemeSelector(selector, "acme", "dark"),
		WithViewFinder(stubFinder{"themes/acme/form": true}),
	)

	if got := r.Resolve(TableHorizontal); got != TableHorizontal {
		t.Fatalf("override missing from engine should fall back, got %q", got)
	}
	if got := r.Resolve(FormHorizontal); got != "themes/acme/form" {
		t.Fatalf("existing override should be used, got %q", got)
	}
}

func TestResolver_SelectorError(t *testing.T) {
	selector := &stubSelector{err: errors.New("unknown theme")}
	r := NewResolver(WithThemeSelector(selector, "nope", ""))
	if got := r.Resolve(FormHorizontal); got != FormHorizontal {
		t.Fatalf("selector errors should fall back to the view, got %q", got)
	}
	if selector.calls != 1 {
		t.Fatalf("expected selector to be consulted once, got %d", selector.calls)
	}
}

func TestFS_ContainsBuiltInViews(t *testing.T) {
	for _, view := range []string{FormHorizontal, FormVertical, TableHorizontal} {
		if _, err := fs.Stat(FS(), view+".tpl"); err != nil {
			t.Fatalf("built-in view %s missing: %v", view, err)
		}
	}
}
