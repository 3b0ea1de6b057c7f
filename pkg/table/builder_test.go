package table

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goliatone/go-htmlgrid/pkg/html"
	"github.com/goliatone/go-htmlgrid/pkg/pagination"
	"github.com/goliatone/go-htmlgrid/pkg/render/template/gotemplate"
	"github.com/goliatone/go-htmlgrid/pkg/translation"
	"github.com/goliatone/go-htmlgrid/pkg/views"
)

func newTestFactory(t *testing.T) *Factory {
	t.Helper()
	engine, err := gotemplate.New(gotemplate.WithFS(views.FS()))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	return NewFactory(engine, WithTranslator(translation.DefaultCatalog(), "en"))
}

func people(n int) []any {
	names := []string{"Ann", "Bob", "Cid", "Dee", "Eve"}
	out := make([]any, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, person{Name: names[i%len(names)], Email: strings.ToLower(names[i%len(names)]) + "@example.com"})
	}
	return out
}

func usersTable(data any, paginate bool) func(*Grid) {
	return func(grid *Grid) {
		grid.With(data, paginate)
		grid.SetAttributes(html.Attributes{"id": "users"})
		grid.Column("name", nil)
		grid.Column("email", func(c *Column) {
			c.Headers = html.Attributes{"class": "col-email"}
		})
	}
}

func TestBuilder_PaginationOnlyWhenEnabled(t *testing.T) {
	req := httptest.NewRequest("GET", "/users?page=3&q=ann", nil)
	factory := newTestFactory(t).ForRequest(req)
	page := pagination.FromSlice(people(12), 5, 3, pagination.WithPath("/users"))

	off := factory.Make(usersTable(page, false)).Pagination()
	if off != "" {
		t.Fatalf("pagination should be empty when disabled, got %q", off)
	}

	on := string(factory.Make(usersTable(page, true)).Pagination())
	if on == "" {
		t.Fatalf("pagination should render when enabled")
	}
	if !strings.Contains(on, `href="/users?page=2&amp;q=ann"`) {
		t.Fatalf("links should keep the filter query:\n%s", on)
	}
	if strings.Contains(on, "page=3&amp;") || strings.Count(on, "page=") != strings.Count(on, "href=") {
		t.Fatalf("stale page parameter leaked into links:\n%s", on)
	}

	if got := factory.Make(usersTable(people(3), true)).Pagination(); got != "" {
		t.Fatalf("plain slices have no pagination, got %q", got)
	}
}

func TestBuilder_Render(t *testing.T) {
	req := httptest.NewRequest("GET", "/users?q=x", nil)
	factory := newTestFactory(t).ForRequest(req)
	page := pagination.FromSlice(people(7), 5, 1, pagination.WithPath("/users"))

	builder := factory.Make(usersTable(page, true))
	builder.Extend(func(grid *Grid) {
		grid.SetRowAttributes(html.Attributes{"class": "user"})
	})

	out, err := builder.Render(context.Background())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	markup := string(out)
	for _, want := range []string{
		`<table class="table" id="users">`,
		`<th>Name</th><th class="col-email">Email</th>`,
		`<tr class="user"><td>Ann</td><td>ann@example.com</td></tr>`,
		`<ul class="pagination">`,
		`href="/users?page=2&amp;q=x" rel="next"`,
	} {
		if !strings.Contains(markup, want) {
			t.Fatalf("markup missing %q:\n%s", want, markup)
		}
	}
	if got := strings.Count(markup, `<tr class="user">`); got != 5 {
		t.Fatalf("expected 5 rows on the first page, got %d", got)
	}
}

func TestBuilder_RenderEmpty(t *testing.T) {
	factory := newTestFactory(t)
	out, err := factory.Make(usersTable(nil, false)).Render(context.Background())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), `<tr class="norecords"><td colspan="2">No records</td></tr>`) {
		t.Fatalf("empty message missing:\n%s", out)
	}
}

func TestBuilder_RenderDoesNotMutateGrid(t *testing.T) {
	factory := newTestFactory(t)
	builder := factory.Make(usersTable(people(2), false))
	before := builder.Grid().Attributes()

	if _, err := builder.Render(context.Background()); err != nil {
		t.Fatalf("render: %v", err)
	}
	after := builder.Grid().Attributes()
	if len(before) != len(after) || len(builder.Grid().Columns()) != 2 {
		t.Fatalf("render mutated the grid")
	}
}

func TestBuilder_RenderMissingView(t *testing.T) {
	factory := newTestFactory(t)
	_, err := factory.Make(func(grid *Grid) { grid.Layout("nope/table") }).Render(context.Background())
	if err == nil || !strings.Contains(err.Error(), "nope/table") {
		t.Fatalf("expected missing view error, got %v", err)
	}
}
