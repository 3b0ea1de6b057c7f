package table

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-htmlgrid/pkg/pagination"
	rendertemplate "github.com/goliatone/go-htmlgrid/pkg/render/template"
	"github.com/goliatone/go-htmlgrid/pkg/translation"
	"github.com/goliatone/go-htmlgrid/pkg/views"
)

// Builder renders a configured Grid. Obtain one from Factory.Make.
type Builder struct {
	grid       *Grid
	query      url.Values
	renderer   rendertemplate.TemplateRenderer
	resolver   *views.Resolver
	translator translation.Translator
	locale     string
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

// Pagination renders the links of a paginated grid. The request query is
// carried over without its page parameter so links do not repeat it.
func (b *Builder) Pagination() template.HTML {
	if !b.grid.Paginate {
		return ""
	}
	paginator, ok := b.grid.Model().(pagination.Paginator)
	if !ok {
		return ""
	}

	query := url.Values{}
	for key, values := range b.query {
		query[key] = append([]string(nil), values...)
	}
	query.Del(pagination.DefaultPageName)

	return paginator.Appends(query).Links()
}

// Context assembles the view data without rendering it.
func (b *Builder) Context() map[string]any {
	grid := b.grid

	columns := make([]map[string]any, 0, len(grid.columns))
	for _, column := range grid.columns {
		columns = append(columns, map[string]any{
			"id":      column.ID,
			"label":   column.Label,
			"headers": column.Headers.Clone(),
		})
	}

	sourceRows := grid.Rows()
	rows := make([]map[string]any, 0, len(sourceRows))
	for _, row := range sourceRows {
		cells := make([]map[string]any, 0, len(grid.columns))
		for _, column := range grid.columns {
			cells = append(cells, map[string]any{
				"id":         column.ID,
				"value":      string(column.Cell(row)),
				"attributes": column.CellAttributes(row),
			})
		}
		rows = append(rows, map[string]any{
			"attributes": grid.RowAttributes(row),
			"cells":      cells,
		})
	}

	return map[string]any{
		"attributes": map[string]any{
			"row":   grid.StaticRowAttributes(),
			"table": grid.Attributes(),
		},
		"columns": columns,
		"empty":   translation.Get(b.translator, b.locale, grid.Empty, nil),
		"grid": map[string]any{
			"name":     grid.Name(),
			"view":     grid.View(),
			"paginate": grid.Paginate,
		},
		"pagination": string(b.Pagination()),
		"rows":       rows,
	}
}

// Render renders the grid with its view. The grid is not modified.
func (b *Builder) Render(ctx context.Context) (template.HTML, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if b.renderer == nil {
		return "", errors.New("table: template renderer is not configured")
	}
	view := b.grid.View()
	if view == "" {
		return "", errors.New("table: grid has no view")
	}
	view = b.resolver.Resolve(view)

	b.logger.WithFields(logrus.Fields{
		"grid":     b.grid.Name(),
		"view":     view,
		"columns":  len(b.grid.columns),
		"paginate": b.grid.Paginate,
	}).Debug("table: render")

	out, err := b.renderer.RenderTemplate(view, b.Context())
	if err != nil {
		return "", fmt.Errorf("table: render %q: %w", view, err)
	}
	return template.HTML(out), nil
}
