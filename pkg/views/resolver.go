package views

import (
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/sirupsen/logrus"

	rendertemplate "github.com/goliatone/go-htmlgrid/pkg/render/template"
)

// Option configures a Resolver.
type Option func(*Resolver)

// WithThemeSelector consults selector for template overrides. Manifest and
// variant templates are keyed by view name ("form/horizontal").
func WithThemeSelector(selector theme.ThemeSelector, themeName, variant string) Option {
	return func(r *Resolver) {
		r.selector = selector
		r.themeName = strings.TrimSpace(themeName)
		r.variant = strings.TrimSpace(variant)
	}
}

// WithViewFinder drops theme overrides the engine cannot find.
func WithViewFinder(finder rendertemplate.ViewFinder) Option {
	return func(r *Resolver) {
		r.finder = finder
	}
}

// WithLogger sets the logger used to report theme lookup failures.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Resolver maps the view selected on a grid to the view actually rendered.
type Resolver struct {
	selector  theme.ThemeSelector
	themeName string
	variant   string
	finder    rendertemplate.ViewFinder
	logger    logrus.FieldLogger
}

// NewResolver constructs a Resolver. Without a theme selector views resolve to
// themselves.
func NewResolver(options ...Option) *Resolver {
	r := &Resolver{logger: logrus.StandardLogger()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Resolve returns the themed override for view when one is declared (variant
// templates first, then the manifest), otherwise view itself.
func (r *Resolver) Resolve(view string) string {
	if r == nil || r.selector == nil || view == "" {
		return view
	}

	selection, err := r.selector.Select(r.themeName, r.variant)
	if err != nil || selection == nil || selection.Manifest == nil {
		if err != nil {
			r.logger.WithError(err).WithField("view", view).Debug("views: theme selection failed")
		}
		return view
	}

	override := ""
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		override = variant.Templates[view]
	}
	if override == "" {
		override = selection.Manifest.Templates[view]
	}
	override = strings.TrimSpace(override)
	if override == "" {
		return view
	}
	if r.finder != nil && !r.finder.Exists(override) {
		r.logger.WithFields(logrus.Fields{"view": view, "override": override}).Debug("views: theme override not found")
		return view
	}
	return override
}
