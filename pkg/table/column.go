package table

import (
	stdhtml "html"
	"html/template"
	"strings"

	"github.com/goliatone/go-htmlgrid/pkg/fluent"
	"github.com/goliatone/go-htmlgrid/pkg/html"
)

// Column is a table column. Cells are read from the row at ID unless Value
// is set.
type Column struct {
	ID      string
	Label   string
	Headers html.Attributes
	// Escape HTML-escapes the cell value. When false the value is treated as
	// markup and sanitised instead.
	Escape bool

	Value      func(row any) any
	Attributes func(row any) html.Attributes
}

func newColumn(id string) *Column {
	id = strings.TrimSpace(id)
	return &Column{
		ID:      id,
		Label:   humanize(id),
		Headers: html.Attributes{},
		Escape:  true,
	}
}

// Cell renders the column's value for row.
func (c *Column) Cell(row any) template.HTML {
	var value any
	if c.Value != nil {
		value = c.Value(row)
	} else {
		value, _ = fluent.DataGet(row, c.ID)
	}

	text := fluent.ToString(value)
	if c.Escape {
		return template.HTML(stdhtml.EscapeString(text))
	}
	return html.Sanitize(text)
}

// CellAttributes returns the <td> attributes for row.
func (c *Column) CellAttributes(row any) html.Attributes {
	if c.Attributes == nil {
		return html.Attributes{}
	}
	return c.Attributes(row).Clone()
}

func humanize(id string) string {
	if idx := strings.LastIndex(id, "."); idx >= 0 {
		id = id[idx+1:]
	}
	id = strings.Join(strings.Fields(strings.NewReplacer("_", " ", "-", " ").Replace(id)), " ")
	if id == "" {
		return ""
	}
	return strings.ToUpper(id[:1]) + id[1:]
}
