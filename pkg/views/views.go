// Package views ships the built-in form and table views and resolves view
// names, optionally through a go-theme selection that overrides them.
package views

import (
	"embed"
	"io/fs"
)

//go:embed templates/form/*.tpl templates/table/*.tpl
var embeddedTemplates embed.FS

// Built-in view names, relative to FS().
const (
	FormHorizontal  = "form/horizontal"
	FormVertical    = "form/vertical"
	TableHorizontal = "table/horizontal"
)

// FS exposes the built-in views rooted at the templates directory.
func FS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// FormLayout maps the symbolic layouts "horizontal" and "vertical" to their
// built-in views. Any other name is returned unchanged and treated as a
// literal view path.
func FormLayout(name string) string {
	switch name {
	case "horizontal":
		return FormHorizontal
	case "vertical":
		return FormVertical
	}
	return name
}

// TableLayout maps "horizontal" to the built-in table view. Any other name is
// returned unchanged.
func TableLayout(name string) string {
	if name == "horizontal" {
		return TableHorizontal
	}
	return name
}
