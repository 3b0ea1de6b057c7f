package table

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/goliatone/go-htmlgrid/pkg/config"
	"github.com/goliatone/go-htmlgrid/pkg/html"
	"github.com/goliatone/go-htmlgrid/pkg/pagination"
	"github.com/goliatone/go-htmlgrid/pkg/views"
)

// ErrNotFound is returned by Grid.Find for unknown column ids.
var ErrNotFound = errors.New("table: column not found")

// Grid describes a table prior to rendering.
type Grid struct {
	// Paginate renders pagination links when the bound data is a Paginator.
	Paginate bool
	// Empty is the translation key (or literal) shown when there are no rows.
	Empty string

	name          string
	view          string
	data          any
	attributes    html.Attributes
	rowAttributes html.Attributes
	rowFunc       func(row any) html.Attributes
	columns       []*Column
	keyMap        map[string]*Column
}

// New creates a grid seeded from cfg.
func New(cfg config.TableConfig) *Grid {
	g := &Grid{
		Paginate:      cfg.Paginate,
		Empty:         cfg.Empty,
		attributes:    html.Attributes{"class": "table"},
		rowAttributes: html.Attributes{},
		keyMap:        map[string]*Column{},
	}
	g.Layout(cfg.View)
	return g
}

// Name returns the grid name.
func (g *Grid) Name() string { return g.name }

// SetName names the grid.
func (g *Grid) SetName(name string) *Grid {
	g.name = strings.TrimSpace(name)
	return g
}

// Layout selects the view; "horizontal" maps to the built-in table view.
func (g *Grid) Layout(name string) *Grid {
	g.view = views.TableLayout(strings.TrimSpace(name))
	return g
}

// View returns the selected view.
func (g *Grid) View() string { return g.view }

// With binds the rows, either a slice or a pagination.Paginator, and sets
// whether pagination links are rendered.
func (g *Grid) With(data any, paginate bool) *Grid {
	g.data = data
	g.Paginate = paginate
	return g
}

// Model returns the bound data as passed to With.
func (g *Grid) Model() any { return g.data }

// Rows returns the bound rows. Paginators yield their current page; a
// non-slice value is treated as a single row.
func (g *Grid) Rows() []any {
	switch data := g.data.(type) {
	case nil:
		return nil
	case pagination.Paginator:
		return data.Items()
	case []any:
		return data
	}

	rv := reflect.ValueOf(g.data)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{g.data}
	}
	rows := make([]any, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		rows = append(rows, rv.Index(i).Interface())
	}
	return rows
}

// Column appends a column configured by callback. Redeclaring an id keeps
// both columns; Find returns the latest.
func (g *Grid) Column(id string, callback func(*Column)) *Column {
	column := newColumn(id)
	if callback != nil {
		callback(column)
	}
	g.columns = append(g.columns, column)
	g.keyMap[column.ID] = column
	return column
}

// Columns returns the columns in declaration order.
func (g *Grid) Columns() []*Column {
	return append([]*Column(nil), g.columns...)
}

// Find returns the column registered under id.
func (g *Grid) Find(id string) (*Column, error) {
	column, ok := g.keyMap[strings.TrimSpace(id)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return column, nil
}

// Attributes returns a copy of the <table> attributes.
func (g *Grid) Attributes() html.Attributes {
	return g.attributes.Clone()
}

// SetAttributes merges attrs into the <table> attributes.
func (g *Grid) SetAttributes(attrs html.Attributes) *Grid {
	g.attributes = html.Merge(g.attributes, attrs)
	return g
}

// SetRowAttributes merges static attributes applied to every <tr>.
func (g *Grid) SetRowAttributes(attrs html.Attributes) *Grid {
	g.rowAttributes = html.Merge(g.rowAttributes, attrs)
	return g
}

// RowAttributesFunc computes extra <tr> attributes per row.
func (g *Grid) RowAttributesFunc(fn func(row any) html.Attributes) *Grid {
	g.rowFunc = fn
	return g
}

// RowAttributes returns the <tr> attributes for row: the static ones,
// decorated with the per-row callback result.
func (g *Grid) RowAttributes(row any) html.Attributes {
	if g.rowFunc == nil {
		return g.rowAttributes.Clone()
	}
	return html.Decorate(g.rowFunc(row), g.rowAttributes)
}

// StaticRowAttributes returns a copy of the attributes shared by every row.
func (g *Grid) StaticRowAttributes() html.Attributes {
	return g.rowAttributes.Clone()
}
