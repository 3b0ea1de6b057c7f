package form

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-htmlgrid/pkg/html"
	rendertemplate "github.com/goliatone/go-htmlgrid/pkg/render/template"
	"github.com/goliatone/go-htmlgrid/pkg/translation"
	"github.com/goliatone/go-htmlgrid/pkg/views"
)

// MethodField is the hidden input carrying the real verb of PUT, PATCH and
// DELETE forms, which browsers submit as POST.
const MethodField = "_method"

// Builder renders a configured Grid. Obtain one from Factory.Make.
type Builder struct {
	grid       *Grid
	renderer   rendertemplate.TemplateRenderer
	resolver   *views.Resolver
	translator translation.Translator
	locale     string
	helper     Helper
	errors     map[string][]string
	logger     logrus.FieldLogger
}

// Grid exposes the grid being built.
func (b *Builder) Grid() *Grid {
	return b.grid
}

// Extend applies callback to the grid. A nil callback is ignored.
func (b *Builder) Extend(callback func(*Grid)) *Builder {
	if callback != nil {
		callback(b.grid)
	}
	return b
}

// WithErrors attaches validation messages keyed by control name. The first
// message of each control is rendered next to it.
func (b *Builder) WithErrors(errs map[string][]string) *Builder {
	b.errors = errs
	return b
}

// Context assembles the view data without rendering it.
func (b *Builder) Context() map[string]any {
	grid := b.grid
	row := grid.Data()

	attrs, override := formAttributes(grid)

	hiddens := grid.Hiddens()
	if grid.Token {
		if token := b.helper.Token(); token != "" {
			hiddens[b.helper.TokenName()] = token
		}
	}
	if override != "" {
		hiddens[MethodField] = b.helper.Hidden(MethodField, override, nil)
	}

	fieldsets := make([]map[string]any, 0, len(grid.fieldsets))
	for _, fieldset := range grid.fieldsets {
		controls := make([]map[string]any, 0, len(fieldset.controls))
		for _, field := range fieldset.controls {
			controls = append(controls, map[string]any{
				"id":     field.ID,
				"name":   field.Name,
				"type":   field.Type,
				"label":  field.Label,
				"help":   string(html.Sanitize(field.Help)),
				"error":  b.firstError(field.Name),
				"markup": string(field.Render(b.helper, row, controlDefaults(grid.Presenter, field))),
			})
		}
		fieldsets = append(fieldsets, map[string]any{
			"name":       fieldset.Name(),
			"legend":     fieldset.Legend,
			"attributes": fieldset.Attributes.Clone(),
			"controls":   controls,
		})
	}

	return map[string]any{
		"grid": map[string]any{
			"name":  grid.Name(),
			"view":  grid.View(),
			"token": grid.Token,
		},
		"attributes": html.Decorate(attrs, formDefaults(grid.Presenter, grid.View())),
		"fieldsets":  fieldsets,
		"hiddens":    sortedMarkup(hiddens),
		"submit":     translation.Get(b.translator, b.locale, grid.Submit, nil),
		"format":     translation.Get(b.translator, b.locale, grid.Format, nil),
	}
}

// Render renders the grid with its view, resolved through the theme when
// one is configured.
func (b *Builder) Render(ctx context.Context) (template.HTML, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if b.renderer == nil {
		return "", errors.New("form: template renderer is not configured")
	}
	view := b.grid.View()
	if view == "" {
		return "", errors.New("form: grid has no view")
	}
	view = b.resolver.Resolve(view)

	b.logger.WithFields(logrus.Fields{
		"grid":      b.grid.Name(),
		"view":      view,
		"fieldsets": len(b.grid.fieldsets),
	}).Debug("form: render")

	out, err := b.renderer.RenderTemplate(view, b.Context())
	if err != nil {
		return "", fmt.Errorf("form: render %q: %w", view, err)
	}
	return template.HTML(out), nil
}

func (b *Builder) firstError(name string) string {
	if messages := b.errors[name]; len(messages) > 0 {
		return messages[0]
	}
	return ""
}

// formAttributes turns the grid attributes into <form> attributes: "url"
// becomes "action" and verbs browsers cannot submit become POST. The
// overridden verb is returned so it can travel in the _method field.
func formAttributes(grid *Grid) (html.Attributes, string) {
	attrs := grid.Attributes()
	if url, ok := attrs["url"]; ok {
		delete(attrs, "url")
		attrs["action"] = url
	}

	method := strings.ToUpper(strings.TrimSpace(attrs["method"]))
	override := ""
	switch method {
	case "":
		method = "POST"
	case "GET", "POST":
	default:
		override = method
		method = "POST"
	}
	attrs["method"] = method
	return attrs, override
}

func sortedMarkup(hiddens map[string]template.HTML) []string {
	names := make([]string, 0, len(hiddens))
	for name := range hiddens {
		if strings.TrimSpace(name) != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, string(hiddens[name]))
	}
	return out
}
