package form

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/goliatone/go-htmlgrid/pkg/config"
	"github.com/goliatone/go-htmlgrid/pkg/fluent"
	"github.com/goliatone/go-htmlgrid/pkg/html"
	"github.com/goliatone/go-htmlgrid/pkg/views"
)

// Grid describes a form prior to rendering. It is built per request and is
// not safe for concurrent use.
type Grid struct {
	// Token emits the CSRF hidden input when rendering.
	Token bool
	// Submit is the translation key (or literal) of the submit button label.
	Submit string
	// Format is the translation key (or literal) rendered when the grid has
	// no fieldsets.
	Format string
	// Presenter selects the control decoration ("bootstrap3", "plain").
	Presenter string

	name       string
	view       string
	row        any
	attributes html.Attributes
	hiddens    map[string]template.HTML
	fieldsets  []*Fieldset
	keyMap     map[string]*Fieldset
	collisions []string
	helper     Helper
}

// New creates a grid seeded from cfg. A nil helper defaults to a
// *html.Builder without a session store.
func New(cfg config.FormConfig, helper Helper) *Grid {
	if helper == nil {
		helper = html.NewBuilder()
	}
	g := &Grid{
		Token:      cfg.Token,
		Submit:     cfg.Submit,
		Format:     cfg.Format,
		Presenter:  cfg.Presenter,
		attributes: html.Attributes{},
		hiddens:    map[string]template.HTML{},
		keyMap:     map[string]*Fieldset{},
		helper:     helper,
	}
	g.Layout(cfg.Layout)
	return g
}

// Name returns the grid name.
func (g *Grid) Name() string { return g.name }

// SetName names the grid.
func (g *Grid) SetName(name string) *Grid {
	g.name = strings.TrimSpace(name)
	return g
}

// Layout selects the view. "horizontal" and "vertical" map to the built-in
// views, anything else is used as the view path as is.
func (g *Grid) Layout(name string) *Grid {
	g.view = views.FormLayout(strings.TrimSpace(name))
	return g
}

// View returns the selected view.
func (g *Grid) View() string { return g.view }

// With binds the data row. Maps are wrapped in a fluent.Fluent; anything else
// (records, structs, models) is stored as is.
func (g *Grid) With(row any) *Grid {
	if attrs, ok := row.(map[string]any); ok {
		row = fluent.New(attrs)
	}
	g.row = row
	return g
}

// Row is an alias of With.
func (g *Grid) Row(row any) *Grid {
	return g.With(row)
}

// Data returns the bound row, nil when none is bound.
func (g *Grid) Data() any { return g.row }

// Attributes returns a copy of the form attributes, including "url" and
// "method" once Setup ran.
func (g *Grid) Attributes() html.Attributes {
	return g.attributes.Clone()
}

// SetAttributes merges attrs into the form attributes.
func (g *Grid) SetAttributes(attrs html.Attributes) *Grid {
	g.attributes = html.Merge(g.attributes, attrs)
	return g
}

// Fieldset appends a fieldset configured by callback and registers it under
// the slug of name, or "fieldset-<index>" when name is blank. A name whose
// slug is already taken replaces the earlier lookup entry while both
// fieldsets keep rendering; see Collisions.
func (g *Grid) Fieldset(name string, callback func(*Fieldset)) []*Fieldset {
	fieldset := newFieldset(name)
	if callback != nil {
		callback(fieldset)
	}

	key := fmt.Sprintf("fieldset-%d", len(g.fieldsets))
	if fieldset.Name() != "" {
		key = Slug(fieldset.Name())
	}
	if _, taken := g.keyMap[key]; taken {
		g.collisions = append(g.collisions, key)
	}
	g.keyMap[key] = fieldset
	g.fieldsets = append(g.fieldsets, fieldset)
	return g.Fieldsets()
}

// Fieldsets returns the fieldsets in declaration order.
func (g *Grid) Fieldsets() []*Fieldset {
	return append([]*Fieldset(nil), g.fieldsets...)
}

// Collisions lists the lookup keys that were registered more than once, in
// the order the duplicates were declared.
func (g *Grid) Collisions() []string {
	return append([]string(nil), g.collisions...)
}

// Hidden adds a hidden input whose value is read from the bound row at the
// dotted path name ("" when missing). callback may adjust the field before it
// is rendered; later calls with the same name replace earlier ones.
func (g *Grid) Hidden(name string, callback func(*Field)) {
	field := &Field{
		Name:       name,
		Type:       TypeHidden,
		Value:      fluent.StringValue(g.row, name),
		Attributes: html.Attributes{},
	}
	if callback != nil {
		callback(field)
	}
	g.hiddens[name] = g.helper.Hidden(field.Name, fluent.ToString(field.Value), field.Attributes)
}

// Hiddens returns a copy of the rendered hidden inputs keyed by name.
func (g *Grid) Hiddens() map[string]template.HTML {
	out := make(map[string]template.HTML, len(g.hiddens))
	for name, markup := range g.hiddens {
		out[name] = markup
	}
	return out
}

// Find locates a control by "fieldset.control". A bare name is looked up in
// the first unnamed fieldset, "fieldset-0".
func (g *Grid) Find(name string) (*Field, error) {
	fieldsetKey, control := "fieldset-0", name
	if before, after, ok := strings.Cut(name, "."); ok {
		fieldsetKey, control = before, after
	}

	fieldset, ok := g.keyMap[fieldsetKey]
	if !ok {
		return nil, &UnavailableError{Name: name}
	}
	field, ok := fieldset.Of(control)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return field, nil
}

// Resource configures the grid for model: an existing model submits to
// "<url>/<key>" with PUT, a new one to url with POST.
func (g *Grid) Resource(listener Presenter, url string, model Model, attrs html.Attributes) *Grid {
	method := "POST"
	if model != nil && model.Exists() {
		url = fmt.Sprintf("%s/%v", url, model.Key())
		method = "PUT"
	}

	merged := attrs.Clone()
	merged["method"] = method
	return g.Setup(listener, url, model, merged)
}

// Setup resolves url through the listener, stores url and method (POST
// unless attrs sets one) in the form attributes, binds model as the row and
// finally hands the grid to listener.SetupForm.
func (g *Grid) Setup(listener Presenter, url string, model any, attrs html.Attributes) *Grid {
	merged := attrs.Clone()
	method := strings.ToUpper(strings.TrimSpace(merged["method"]))
	if method == "" {
		method = "POST"
	}
	if listener != nil {
		url = listener.Handles(url)
	}
	merged["url"] = url
	merged["method"] = method

	g.With(model)
	g.SetAttributes(merged)
	if listener != nil {
		listener.SetupForm(g)
	}
	return g
}
