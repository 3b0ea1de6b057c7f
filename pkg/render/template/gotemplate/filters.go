package gotemplate

import (
	"fmt"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-htmlgrid/pkg/html"
)

func registerDefaultFilters() {
	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", filterTrim)
	}
	if !pongo2.FilterExists("attributes") {
		_ = pongo2.RegisterFilter("attributes", filterAttributes)
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterAttributes renders a map as escaped HTML attributes:
// <table{{ attributes.table|attributes }}>.
func filterAttributes(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	raw, ok := in.Interface().(map[string]any)
	if !ok || len(raw) == 0 {
		return pongo2.AsSafeValue(""), nil
	}
	attrs := make(html.Attributes, len(raw))
	for key, value := range raw {
		if value == nil {
			continue
		}
		attrs[key] = fmt.Sprint(value)
	}
	return pongo2.AsSafeValue(attrs.String()), nil
}
