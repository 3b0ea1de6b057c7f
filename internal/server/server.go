// Package server is a small chi application rendering users through the
// form and table grids: a paginated listing plus create and edit forms.
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	htmlgrid "github.com/goliatone/go-htmlgrid"
	"github.com/goliatone/go-htmlgrid/pkg/form"
	"github.com/goliatone/go-htmlgrid/pkg/html"
	"github.com/goliatone/go-htmlgrid/pkg/pagination"
	"github.com/goliatone/go-htmlgrid/pkg/table"
)

const layout = `<!doctype html>
<html lang="{{ locale }}">
<head><meta charset="utf-8"><title>{{ title }}</title></head>
<body>
<h1>{{ title }}</h1>
{{ body|safe }}
</body>
</html>
`

// Server serves the demo routes.
type Server struct {
	services *htmlgrid.Services
	store    *Store
	router   *chi.Mux
	logger   logrus.FieldLogger
}

// New creates a Server backed by store.
func New(services *htmlgrid.Services, store *Store) *Server {
	s := &Server{
		services: services,
		store:    store,
		router:   chi.NewRouter(),
		logger:   services.Logger,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler exposes the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(methodOverride)
}

func (s *Server) setupRoutes() {
	s.router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/users", http.StatusFound)
	})
	s.router.Route("/users", func(r chi.Router) {
		r.Get("/", s.handleIndex)
		r.Post("/", s.handleStore)
		r.Get("/create", s.handleCreate)
		r.Get("/{id}/edit", s.handleEdit)
		r.Put("/{id}", s.handleUpdate)
	})
}

// Start listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", addr).Info("server: listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	tables := s.services.Tables(r)
	perPage := tables.Config().PerPage
	pageNumber, _ := strconv.Atoi(r.URL.Query().Get(pagination.DefaultPageName))

	users := s.store.List()
	rows := make([]any, 0, len(users))
	for _, user := range users {
		rows = append(rows, user)
	}
	page := pagination.FromSlice(rows, perPage, pageNumber,
		pagination.WithPath("/users"),
		pagination.WithTranslator(s.services.Translator, s.services.Locale(r)),
	)

	builder := tables.Make(func(grid *table.Grid) {
		grid.SetName("users")
		grid.With(page, true)
		grid.SetAttributes(html.Attributes{"class": "table table-striped", "id": "users"})
		grid.RowAttributesFunc(func(row any) html.Attributes {
			if !row.(User).Active {
				return html.Attributes{"class": "inactive"}
			}
			return nil
		})
		grid.Column("id", func(c *table.Column) { c.Label = "#" })
		grid.Column("name", nil)
		grid.Column("email", func(c *table.Column) { c.Label = "E-mail" })
		grid.Column("role", nil)
		grid.Column("action", func(c *table.Column) {
			c.Label = ""
			c.Escape = false
			c.Value = func(row any) any {
				return fmt.Sprintf(`<a href="/users/%d/edit">Edit</a>`, row.(User).ID)
			}
		})
	})

	body, err := builder.Render(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.page(w, r, http.StatusOK, "Users", body+template.HTML("<p>"+page.Summary()+"</p>"))
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	s.renderForm(w, r, http.StatusOK, "Create user", &User{Role: "viewer", Active: true}, nil)
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	user, ok := s.findUser(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.renderForm(w, r, http.StatusOK, "Edit user", &user, nil)
}

func (s *Server) handleStore(w http.ResponseWriter, r *http.Request) {
	s.save(w, r, &User{})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := s.findUser(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.save(w, r, &user)
}

func (s *Server) save(w http.ResponseWriter, r *http.Request, user *User) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if s.services.Config.Form.Token && !s.services.Helper.VerifyToken(r.PostForm.Get(s.services.Helper.TokenName())) {
		http.Error(w, "invalid form token", http.StatusForbidden)
		return
	}

	user.Name = strings.TrimSpace(r.PostForm.Get("name"))
	user.Email = strings.TrimSpace(r.PostForm.Get("email"))
	user.Role = r.PostForm.Get("role")
	user.Bio = r.PostForm.Get("bio")
	user.Active = r.PostForm.Get("active") != ""

	errs := validate(user)
	if len(errs) > 0 {
		title := "Create user"
		if user.Exists() {
			title = "Edit user"
		}
		s.renderForm(w, r, http.StatusUnprocessableEntity, title, user, errs)
		return
	}

	saved := s.store.Save(*user)
	s.logger.WithField("user", saved.ID).Info("server: user saved")
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

func (s *Server) renderForm(w http.ResponseWriter, r *http.Request, status int, title string, user *User, errs map[string][]string) {
	builder := s.services.Forms(r).Make(func(grid *form.Grid) {
		grid.Resource(userPresenter{base: "/"}, "users", user, nil)
	}).WithErrors(errs)

	body, err := builder.Render(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.page(w, r, status, title, body)
}

func (s *Server) page(w http.ResponseWriter, r *http.Request, status int, title string, body template.HTML) {
	out, err := s.services.Engine.RenderString(layout, map[string]any{
		"title":  title,
		"locale": s.services.Locale(r),
		"body":   string(body),
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(out))
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.WithError(err).WithFields(logrus.Fields{
		"path":       r.URL.Path,
		"request_id": middleware.GetReqID(r.Context()),
	}).Error("server: render failed")
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (s *Server) findUser(r *http.Request) (User, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return User{}, false
	}
	return s.store.Find(id)
}

func validate(user *User) map[string][]string {
	errs := map[string][]string{}
	if user.Name == "" {
		errs["name"] = append(errs["name"], "The name field is required.")
	}
	if !strings.Contains(user.Email, "@") {
		errs["email"] = append(errs["email"], "The e-mail must be a valid address.")
	}
	switch user.Role {
	case "admin", "editor", "viewer":
	default:
		errs["role"] = append(errs["role"], "Pick one of the listed roles.")
	}
	return errs
}
