// Package template defines the template engine contract grid builders render
// through. The gotemplate sub-package provides the default pongo2 backed
// implementation.
package template
