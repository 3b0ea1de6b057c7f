// Package htmlgrid wires the form and table grid builders to their shared
// services: configuration, translator, template engine, markup helper and
// view resolver.
//
//	services, err := htmlgrid.New(htmlgrid.WithConfigFile("htmlgrid.yaml"))
//	...
//	markup, err := services.Forms(r).Make(func(grid *form.Grid) {
//		grid.Resource(presenter, "/users", user, nil)
//	}).Render(r.Context())
package htmlgrid

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"

	"github.com/goliatone/go-htmlgrid/pkg/config"
	"github.com/goliatone/go-htmlgrid/pkg/form"
	"github.com/goliatone/go-htmlgrid/pkg/html"
	pkgopenapi "github.com/goliatone/go-htmlgrid/pkg/openapi"
	rendertemplate "github.com/goliatone/go-htmlgrid/pkg/render/template"
	"github.com/goliatone/go-htmlgrid/pkg/render/template/gotemplate"
	"github.com/goliatone/go-htmlgrid/pkg/table"
	"github.com/goliatone/go-htmlgrid/pkg/translation"
	"github.com/goliatone/go-htmlgrid/pkg/views"
)

// Option configures New.
type Option func(*options)

type options struct {
	config      config.Config
	configFile  string
	translator  translation.Translator
	session     html.SessionStore
	renderer    rendertemplate.TemplateRenderer
	templateDir string
	selector    theme.ThemeSelector
	themeName   string
	variant     string
	locale      string
	logger      logrus.FieldLogger
}

// WithConfig sets the configuration directly.
func WithConfig(cfg config.Config) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// WithConfigFile loads configuration from a YAML or JSON file. A missing
// file leaves the defaults in place.
func WithConfigFile(path string) Option {
	return func(o *options) {
		o.configFile = strings.TrimSpace(path)
	}
}

// WithTranslator replaces the built-in translation catalog.
func WithTranslator(t translation.Translator) Option {
	return func(o *options) {
		o.translator = t
	}
}

// WithSessionStore sets the CSRF token source.
func WithSessionStore(store html.SessionStore) Option {
	return func(o *options) {
		o.session = store
	}
}

// WithTemplateRenderer replaces the pongo2 engine. The renderer must be able
// to resolve the built-in view names or the grids must select other views.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(o *options) {
		o.renderer = renderer
	}
}

// WithTemplateDir lets views on disk override the embedded ones.
func WithTemplateDir(dir string) Option {
	return func(o *options) {
		o.templateDir = strings.TrimSpace(dir)
	}
}

// WithThemeSelector resolves view overrides through a go-theme selection.
func WithThemeSelector(selector theme.ThemeSelector, themeName, variant string) Option {
	return func(o *options) {
		o.selector = selector
		o.themeName = themeName
		o.variant = variant
	}
}

// WithDefaultLocale sets the locale used when a request does not state one.
func WithDefaultLocale(locale string) Option {
	return func(o *options) {
		if trimmed := strings.TrimSpace(locale); trimmed != "" {
			o.locale = trimmed
		}
	}
}

// WithLogger sets the logger shared by every service.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Services holds the shared, concurrency safe collaborators. Grids are
// created per request through Forms and Tables.
type Services struct {
	Config     config.Config
	Translator translation.Translator
	Engine     rendertemplate.TemplateRenderer
	Helper     *html.Builder
	Views      *views.Resolver
	Logger     logrus.FieldLogger

	locale string
	forms  *form.Factory
	tables *table.Factory
}

// New builds the services. Without options it renders the embedded views
// with the English catalog and an in-memory session.
func New(opts ...Option) (*Services, error) {
	o := &options{
		config: config.Default(),
		locale: "en",
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(o)
	}

	cfg := o.config
	if o.configFile != "" {
		loaded, err := config.LoadFile(o.configFile)
		if err != nil {
			return nil, fmt.Errorf("htmlgrid: %w", err)
		}
		cfg = loaded
	}

	translator := o.translator
	if translator == nil {
		translator = translation.DefaultCatalog()
	}
	session := o.session
	if session == nil {
		session = html.NewMemorySession()
	}

	renderer := o.renderer
	if renderer == nil {
		engineOpts := []gotemplate.Option{gotemplate.WithFS(views.FS())}
		if o.templateDir != "" {
			engineOpts = append(engineOpts, gotemplate.WithBaseDir(o.templateDir))
		}
		engine, err := gotemplate.New(engineOpts...)
		if err != nil {
			return nil, fmt.Errorf("htmlgrid: %w", err)
		}
		renderer = engine
	}

	resolverOpts := []views.Option{views.WithLogger(o.logger)}
	if o.selector != nil {
		resolverOpts = append(resolverOpts, views.WithThemeSelector(o.selector, o.themeName, o.variant))
	}
	if finder, ok := renderer.(rendertemplate.ViewFinder); ok {
		resolverOpts = append(resolverOpts, views.WithViewFinder(finder))
	}
	resolver := views.NewResolver(resolverOpts...)

	helper := html.NewBuilder(html.WithSessionStore(session))

	s := &Services{
		Config:     cfg,
		Translator: translator,
		Engine:     renderer,
		Helper:     helper,
		Views:      resolver,
		Logger:     o.logger,
		locale:     o.locale,
	}
	s.forms = form.NewFactory(renderer,
		form.WithConfig(cfg.Form),
		form.WithTranslator(translator, o.locale),
		form.WithHelper(helper),
		form.WithResolver(resolver),
		form.WithLogger(o.logger),
	)
	s.tables = table.NewFactory(renderer,
		table.WithConfig(cfg.Table),
		table.WithTranslator(translator, o.locale),
		table.WithResolver(resolver),
		table.WithLogger(o.logger),
	)

	o.logger.WithFields(logrus.Fields{
		"layout":    cfg.Form.Layout,
		"presenter": cfg.Form.Presenter,
		"table":     cfg.Table.View,
	}).Debug("htmlgrid: services ready")
	return s, nil
}

// Forms returns the form factory for r, translating for the request locale.
// A nil request uses the default locale.
func (s *Services) Forms(r *http.Request) *form.Factory {
	return s.forms.WithLocale(s.Locale(r))
}

// Tables returns the table factory bound to the query and locale of r.
func (s *Services) Tables(r *http.Request) *table.Factory {
	return s.tables.ForRequest(r).WithLocale(s.Locale(r))
}

// Locale picks the base language of the request's preferred Accept-Language
// tag, falling back to the default locale.
func (s *Services) Locale(r *http.Request) string {
	if r == nil {
		return s.locale
	}
	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return s.locale
	}
	base, confidence := tags[0].Base()
	if confidence == language.No {
		return s.locale
	}
	return base.String()
}

// OperationForm loads the request body schema of operationID from doc and
// returns a form builder submitting to the operation's path and method, with
// one control per schema property. row, when not nil, provides the values.
func (s *Services) OperationForm(ctx context.Context, r *http.Request, doc pkgopenapi.Document, operationID string, row any) (*form.Builder, error) {
	operations, err := NewParser().Operations(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("htmlgrid: parse %s: %w", doc.Location(), err)
	}
	op, ok := operations[operationID]
	if !ok {
		return nil, fmt.Errorf("htmlgrid: %w: operation %q", ErrUnknownOperation, operationID)
	}

	return s.Forms(r).Make(func(grid *form.Grid) {
		grid.SetName(op.ID)
		grid.Setup(form.HandlesFunc{}, op.Path, row, html.Attributes{"method": op.Method})
		grid.Fieldset("", form.SchemaFields(op))
	}), nil
}

// ErrUnknownOperation is returned by OperationForm when the document does not
// declare the requested operation.
var ErrUnknownOperation = errors.New("unknown operation")
