package form

import (
	"strings"

	"github.com/goliatone/go-htmlgrid/pkg/html"
)

// Fieldset is a named group of controls rendered inside <fieldset>.
type Fieldset struct {
	name       string
	Legend     string
	Attributes html.Attributes

	controls []*Field
	keyMap   map[string]*Field
}

func newFieldset(name string) *Fieldset {
	name = strings.TrimSpace(name)
	return &Fieldset{
		name:       name,
		Legend:     name,
		Attributes: html.Attributes{},
		keyMap:     map[string]*Field{},
	}
}

// Name returns the name the fieldset was declared with, "" when unnamed.
func (f *Fieldset) Name() string {
	return f.name
}

// Control appends a control of type typ and applies callback to it. Declaring
// the same name twice keeps both controls; Of returns the latest.
func (f *Fieldset) Control(typ, name string, callback func(*Field)) *Field {
	field := newField(typ, name)
	if callback != nil {
		callback(field)
	}
	f.controls = append(f.controls, field)
	f.keyMap[field.Name] = field
	return field
}

// Of returns the control registered under name.
func (f *Fieldset) Of(name string) (*Field, bool) {
	field, ok := f.keyMap[strings.TrimSpace(name)]
	return field, ok
}

// Controls returns the controls in declaration order.
func (f *Fieldset) Controls() []*Field {
	return append([]*Field(nil), f.controls...)
}
