package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	htmlgrid "github.com/goliatone/go-htmlgrid"
	"github.com/goliatone/go-htmlgrid/pkg/config"
	"github.com/goliatone/go-htmlgrid/pkg/html"
)

const testToken = "test-token"

func newTestServer(t *testing.T) (*Server, *Store) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	cfg := config.Default()
	cfg.Table.PerPage = 5

	services, err := htmlgrid.New(
		htmlgrid.WithConfig(cfg),
		htmlgrid.WithSessionStore(html.StaticSession(testToken)),
		htmlgrid.WithLogger(logger),
	)
	if err != nil {
		t.Fatalf("htmlgrid.New: %v", err)
	}
	store := NewStore(SeedUsers()...)
	return New(services, store), store
}

func do(t *testing.T, srv *Server, method, target string, form url.Values) (*http.Response, string) {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	res := rec.Result()
	data, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return res, string(data)
}

func TestIndex_PaginatesUsers(t *testing.T) {
	srv, _ := newTestServer(t)
	res, body := do(t, srv, http.MethodGet, "/users?page=2&sort=name", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", res.StatusCode)
	}
	for _, want := range []string{
		`<table class="table table-striped" id="users">`,
		`<td>Finn Roth</td>`,
		`<a href="/users/6/edit"`,
		`<tr class="inactive">`,
		`href="/users?page=3&amp;sort=name" rel="next"`,
		`Showing 6 to 10 of 12`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q:\n%s", want, body)
		}
	}
	if strings.Contains(body, "<td>Ann Lee</td>") {
		t.Fatalf("first page rows should not render on page 2")
	}
}

func TestEdit_RendersResourceForm(t *testing.T) {
	srv, _ := newTestServer(t)
	res, body := do(t, srv, http.MethodGet, "/users/1/edit", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", res.StatusCode)
	}
	for _, want := range []string{
		`<form action="/users/1" class="form-horizontal" method="POST">`,
		`<input name="_method" type="hidden" value="PUT">`,
		`<input name="_token" type="hidden" value="test-token">`,
		`value="Ann Lee"`,
		`<option selected="selected" value="admin">Administrator</option>`,
		`<legend>Profile</legend>`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q:\n%s", want, body)
		}
	}

	if res, _ := do(t, srv, http.MethodGet, "/users/99/edit", nil); res.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown user should 404, got %d", res.StatusCode)
	}
}

func TestCreate_RendersPostForm(t *testing.T) {
	srv, _ := newTestServer(t)
	_, body := do(t, srv, http.MethodGet, "/users/create", nil)
	if !strings.Contains(body, `<form action="/users" class="form-horizontal" method="POST">`) {
		t.Fatalf("create form should post to /users:\n%s", body)
	}
	if strings.Contains(body, `name="_method"`) {
		t.Fatalf("create form should not override the method")
	}
}

func TestUpdate_ThroughMethodOverride(t *testing.T) {
	srv, store := newTestServer(t)
	form := url.Values{
		"_method": {"PUT"},
		"_token":  {testToken},
		"name":    {"Ann Lee-Park"},
		"email":   {"ann@example.org"},
		"role":    {"editor"},
	}
	res, _ := do(t, srv, http.MethodPost, "/users/1", form)
	if res.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d", res.StatusCode)
	}
	user, _ := store.Find(1)
	if user.Name != "Ann Lee-Park" || user.Role != "editor" || user.Active {
		t.Fatalf("user not updated: %+v", user)
	}
}

func TestStore_ValidationAndToken(t *testing.T) {
	srv, store := newTestServer(t)
	before := len(store.List())

	res, body := do(t, srv, http.MethodPost, "/users", url.Values{"_token": {testToken}, "email": {"nope"}, "role": {"viewer"}})
	if res.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", res.StatusCode)
	}
	for _, want := range []string{"The name field is required.", "The e-mail must be a valid address.", `value="nope"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q:\n%s", want, body)
		}
	}

	res, _ = do(t, srv, http.MethodPost, "/users", url.Values{"_token": {"forged"}, "name": {"Zed"}, "email": {"z@example.com"}, "role": {"viewer"}})
	if res.StatusCode != http.StatusForbidden {
		t.Fatalf("forged token should be rejected, got %d", res.StatusCode)
	}

	res, _ = do(t, srv, http.MethodPost, "/users", url.Values{"_token": {testToken}, "name": {"Zed"}, "email": {"z@example.com"}, "role": {"viewer"}, "active": {"1"}})
	if res.StatusCode != http.StatusSeeOther || len(store.List()) != before+1 {
		t.Fatalf("valid submission should create a user, status %d", res.StatusCode)
	}
}
