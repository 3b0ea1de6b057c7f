package template

import (
	"io"
)

// TemplateRenderer is the seam builders rely on. Render accepts either a view
// name or inline template content; RenderTemplate always resolves a view.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}

// ViewFinder is implemented by engines that can report whether a view exists
// without rendering it.
type ViewFinder interface {
	Exists(name string) bool
}
