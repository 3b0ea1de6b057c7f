package form

import (
	"github.com/goliatone/go-htmlgrid/pkg/config"
	"github.com/goliatone/go-htmlgrid/pkg/html"
	"github.com/goliatone/go-htmlgrid/pkg/views"
)

// controlDefaults returns the attributes a presenter applies to every
// control of the field's type.
func controlDefaults(presenter string, field *Field) html.Attributes {
	attrs := html.Attributes{}
	if presenter != config.PresenterBootstrap3 {
		return attrs
	}
	switch field.Type {
	case TypeCheckbox, TypeRadio, TypeFile, TypeHidden:
	default:
		attrs["class"] = "form-control"
	}
	return attrs
}

// formDefaults returns the attributes a presenter applies to the <form>.
func formDefaults(presenter, view string) html.Attributes {
	attrs := html.Attributes{}
	if presenter == config.PresenterBootstrap3 && view == views.FormHorizontal {
		attrs["class"] = "form-horizontal"
	}
	return attrs
}
