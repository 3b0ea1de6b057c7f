package form

import (
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-htmlgrid/pkg/config"
	"github.com/goliatone/go-htmlgrid/pkg/html"
	rendertemplate "github.com/goliatone/go-htmlgrid/pkg/render/template"
	"github.com/goliatone/go-htmlgrid/pkg/translation"
	"github.com/goliatone/go-htmlgrid/pkg/views"
)

// Option configures a Factory.
type Option func(*Factory)

// WithConfig sets the defaults applied to every new grid.
func WithConfig(cfg config.FormConfig) Option {
	return func(f *Factory) {
		f.config = cfg
	}
}

// WithTranslator sets the translator and locale used for labels.
func WithTranslator(t translation.Translator, locale string) Option {
	return func(f *Factory) {
		f.translator = t
		f.locale = locale
	}
}

// WithHelper replaces the control markup helper.
func WithHelper(helper Helper) Option {
	return func(f *Factory) {
		if helper != nil {
			f.helper = helper
		}
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

// Factory hands out Builders wired to shared services.
type Factory struct {
	config     config.FormConfig
	renderer   rendertemplate.TemplateRenderer
	resolver   *views.Resolver
	translator translation.Translator
	locale     string
	helper     Helper
	logger     logrus.FieldLogger
}

// NewFactory creates a Factory rendering through renderer.
func NewFactory(renderer rendertemplate.TemplateRenderer, options ...Option) *Factory {
	f := &Factory{
		config:   config.Default().Form,
		renderer: renderer,
		resolver: views.NewResolver(),
		helper:   html.NewBuilder(),
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

// WithLocale returns a copy of the factory translating for locale.
func (f *Factory) WithLocale(locale string) *Factory {
	clone := *f
	clone.locale = locale
	return &clone
}

// Make returns a Builder around a fresh grid configured by callback.
func (f *Factory) Make(callback func(*Grid)) *Builder {
	builder := &Builder{
		grid:       New(f.config, f.helper),
		renderer:   f.renderer,
		resolver:   f.resolver,
		translator: f.translator,
		locale:     f.locale,
		helper:     f.helper,
		logger:     f.logger,
	}
	f.logger.WithField("layout", f.config.Layout).Debug("form: make grid")
	return builder.Extend(callback)
}

// Helper exposes the markup helper for controls built outside a grid.
func (f *Factory) Helper() Helper {
	return f.helper
}
