package htmlgrid_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	htmlgrid "github.com/goliatone/go-htmlgrid"
	"github.com/goliatone/go-htmlgrid/pkg/form"
	"github.com/goliatone/go-htmlgrid/pkg/html"
	"github.com/goliatone/go-htmlgrid/pkg/pagination"
	"github.com/goliatone/go-htmlgrid/pkg/table"
	"github.com/goliatone/go-htmlgrid/pkg/testsupport"
	"github.com/goliatone/go-htmlgrid/pkg/views"
)

type fixedSelector struct {
	selection *theme.Selection
}

func (s fixedSelector) Select(_, _ string, _ ...theme.QueryOption) (*theme.Selection, error) {
	return s.selection, nil
}

func mustServices(t *testing.T, opts ...htmlgrid.Option) *htmlgrid.Services {
	t.Helper()
	services, err := htmlgrid.New(opts...)
	if err != nil {
		t.Fatalf("htmlgrid.New: %v", err)
	}
	return services
}

func assertContains(t *testing.T, markup string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(markup, fragment) {
			t.Fatalf("markup missing %q:\n%s", fragment, markup)
		}
	}
}

func TestOperationForm(t *testing.T) {
	services := mustServices(t, htmlgrid.WithSessionStore(html.StaticSession("fixed")))
	doc := testsupport.LoadDocument(t, filepath.Join("internal", "openapi", "testdata", "users.yaml"))

	row := map[string]any{"name": "Ann", "email": "ann@example.com", "active": true}
	builder, err := services.OperationForm(context.Background(), nil, doc, "createUser", row)
	if err != nil {
		t.Fatalf("OperationForm: %v", err)
	}
	if _, err := builder.Grid().Find("email"); err != nil {
		t.Fatalf("schema control missing: %v", err)
	}

	out, err := builder.Render(context.Background())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertContains(t, string(out),
		`<form action="/users" class="form-horizontal" method="POST">`,
		`<input name="_token" type="hidden" value="fixed">`,
		`<legend>Create a user</legend>`,
		`<input class="form-control" id="name" maxlength="80" name="name" required type="text" value="Ann">`,
		`<input checked="checked" id="active" name="active" type="checkbox" value="1">`,
		`<textarea class="form-control" cols="50" id="bio" name="bio" rows="10"></textarea>`,
		`<p class="help-block">A few words about yourself.</p>`,
		`<button class="btn btn-primary" type="submit">Submit</button>`,
	)
	if strings.Contains(string(out), `name="id"`) {
		t.Fatalf("read-only id should not render")
	}

	_, err = services.OperationForm(context.Background(), nil, doc, "deleteUser", nil)
	if !errors.Is(err, htmlgrid.ErrUnknownOperation) {
		t.Fatalf("expected ErrUnknownOperation, got %v", err)
	}
}

func TestServices_Locale(t *testing.T) {
	services := mustServices(t, htmlgrid.WithDefaultLocale("es"))

	req := httptest.NewRequest("GET", "/", nil)
	if got := services.Locale(req); got != "es" {
		t.Fatalf("missing header should use the default locale, got %q", got)
	}
	req.Header.Set("Accept-Language", "fr-CH, fr;q=0.9, en;q=0.8")
	if got := services.Locale(req); got != "fr" {
		t.Fatalf("locale = %q, want fr", got)
	}
	if got := services.Locale(nil); got != "es" {
		t.Fatalf("nil request locale = %q", got)
	}
}

func TestServices_TablesUseRequestQuery(t *testing.T) {
	services := mustServices(t)
	req := httptest.NewRequest("GET", "/users?page=2&sort=name", nil)

	rows := make([]any, 0, 30)
	for i := 0; i < 30; i++ {
		rows = append(rows, map[string]any{"n": i})
	}
	page := pagination.FromSlice(rows, 10, 2, pagination.WithPath("/users"))

	out, err := services.Tables(req).Make(func(grid *table.Grid) {
		grid.With(page, true)
		grid.Column("n", nil)
	}).Render(context.Background())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertContains(t, string(out),
		`<td>10</td>`,
		`href="/users?page=3&amp;sort=name" rel="next"`,
	)
}

func TestServices_ThemeOverridesView(t *testing.T) {
	selector := fixedSelector{selection: &theme.Selection{
		Theme: "compact",
		Manifest: &theme.Manifest{
			Name:      "compact",
			Templates: map[string]string{views.FormHorizontal: views.FormVertical},
		},
	}}
	services := mustServices(t, htmlgrid.WithThemeSelector(selector, "compact", ""))

	out, err := services.Forms(nil).Make(func(grid *form.Grid) {
		grid.Fieldset("", func(fs *form.Fieldset) { fs.Control("text", "q", nil) })
	}).Render(context.Background())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(out), "col-md-3") {
		t.Fatalf("theme should have swapped in the vertical view:\n%s", out)
	}
	assertContains(t, string(out), `<label class="control-label" for="q">Q</label>`)
}

func TestServices_TemplateDirAndConfigFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "form"), 0o755); err != nil {
		t.Fatal(err)
	}
	override := `<form{{ attributes|attributes }}>custom {{ submit }}</form>`
	if err := os.WriteFile(filepath.Join(dir, "form", "horizontal.tpl"), []byte(override), 0o600); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(dir, "htmlgrid.yaml")
	if err := os.WriteFile(cfgPath, []byte("form:\n  submit: Send\n  token: false\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	services := mustServices(t, htmlgrid.WithTemplateDir(dir), htmlgrid.WithConfigFile(cfgPath))
	if services.Config.Form.Token {
		t.Fatalf("config file should disable the token")
	}
	out, err := services.Forms(nil).Make(nil).Render(context.Background())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got, want := string(out), `<form class="form-horizontal" method="POST">custom Send</form>`; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
