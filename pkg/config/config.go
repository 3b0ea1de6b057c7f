// Package config holds the typed defaults applied to freshly created form and
// table grids. It replaces property-by-property merging with explicit
// sections that callers load from YAML/JSON or build in code.
package config

import "strings"

const (
	// LayoutHorizontal and LayoutVertical are the symbolic form layouts.
	LayoutHorizontal = "horizontal"
	LayoutVertical   = "vertical"

	// PresenterBootstrap3 selects the bootstrap 3 control decorations.
	PresenterBootstrap3 = "bootstrap3"
	// PresenterPlain emits controls without framework specific classes.
	PresenterPlain = "plain"
)

// Config groups every section consumed by the grid factories.
type Config struct {
	Form  FormConfig  `json:"form" yaml:"form"`
	Table TableConfig `json:"table" yaml:"table"`
}

// FormConfig mirrors the form section: default layout, submit label, the
// message used when no record is bound, the control presenter and whether a
// CSRF token hidden input is emitted.
type FormConfig struct {
	Layout    string `json:"layout" yaml:"layout"`
	Submit    string `json:"submit" yaml:"submit"`
	Format    string `json:"format" yaml:"format"`
	Presenter string `json:"presenter" yaml:"presenter"`
	Token     bool   `json:"token" yaml:"token"`
}

// TableConfig mirrors the table section.
type TableConfig struct {
	View     string `json:"view" yaml:"view"`
	Empty    string `json:"empty" yaml:"empty"`
	Paginate bool   `json:"paginate" yaml:"paginate"`
	PerPage  int    `json:"per_page" yaml:"per_page"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Form: FormConfig{
			Layout:    LayoutHorizontal,
			Submit:    "htmlgrid::label.submit",
			Format:    "htmlgrid::label.no-record",
			Presenter: PresenterBootstrap3,
			Token:     true,
		},
		Table: TableConfig{
			View:     "table/horizontal",
			Empty:    "htmlgrid::label.no-record",
			Paginate: false,
			PerPage:  15,
		},
	}
}

func pick(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}
