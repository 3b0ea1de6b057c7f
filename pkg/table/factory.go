package table

import (
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-htmlgrid/pkg/config"
	rendertemplate "github.com/goliatone/go-htmlgrid/pkg/render/template"
	"github.com/goliatone/go-htmlgrid/pkg/translation"
	"github.com/goliatone/go-htmlgrid/pkg/views"
)

// Option configures a Factory.
type Option func(*Factory)

// WithConfig sets the defaults applied to every new grid.
func WithConfig(cfg config.TableConfig) Option {
	return func(f *Factory) {
		f.config = cfg
	}
}

// WithTranslator sets the translator and locale used for the empty message.
func WithTranslator(t translation.Translator, locale string) Option {
	return func(f *Factory) {
		f.translator = t
		f.locale = locale
	}
}

// WithResolver sets the view resolver consulted before rendering.
func WithResolver(resolver *views.Resolver) Option {
	return func(f *Factory) {
		if resolver != nil {
			f.resolver = resolver
		}
	}
}

// WithLogger sets the logger used by the factory and its builders.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(f *Factory) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// Factory hands out Builders wired to shared services and, once bound with
// ForRequest, to the query of the current request.
type Factory struct {
	config     config.TableConfig
	query      url.Values
	renderer   rendertemplate.TemplateRenderer
	resolver   *views.Resolver
	translator translation.Translator
	locale     string
	logger     logrus.FieldLogger
}

// NewFactory creates a Factory rendering through renderer.
func NewFactory(renderer rendertemplate.TemplateRenderer, options ...Option) *Factory {
	f := &Factory{
		config:   config.Default().Table,
		query:    url.Values{},
		renderer: renderer,
		resolver: views.NewResolver(),
		logger:   logrus.StandardLogger(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	return f
}

// ForRequest returns a copy of the factory reading query values from r.
func (f *Factory) ForRequest(r *http.Request) *Factory {
	clone := *f
	clone.query = url.Values{}
	if r != nil && r.URL != nil {
		clone.query = r.URL.Query()
	}
	return &clone
}

// WithLocale returns a copy of the factory translating for locale.
func (f *Factory) WithLocale(locale string) *Factory {
	clone := *f
	clone.locale = locale
	return &clone
}

// Config returns the defaults applied to new grids.
func (f *Factory) Config() config.TableConfig {
	return f.config
}

// Make returns a Builder around a fresh grid configured by callback.
func (f *Factory) Make(callback func(*Grid)) *Builder {
	builder := &Builder{
		grid:       New(f.config),
		query:      f.query,
		renderer:   f.renderer,
		resolver:   f.resolver,
		translator: f.translator,
		locale:     f.locale,
		logger:     f.logger,
	}
	f.logger.WithField("view", f.config.View).Debug("table: make grid")
	return builder.Extend(callback)
}
