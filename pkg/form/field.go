package form

import (
	"html/template"
	"strings"

	"github.com/goliatone/go-htmlgrid/pkg/fluent"
	"github.com/goliatone/go-htmlgrid/pkg/html"
)

// Control types understood by Field. Bare input types ("email") are
// normalised to their "input:" form.
const (
	TypeText     = "input:text"
	TypeEmail    = "input:email"
	TypePassword = "input:password"
	TypeNumber   = "input:number"
	TypeFile     = "input:file"
	TypeTextarea = "textarea"
	TypeSelect   = "select"
	TypeCheckbox = "checkbox"
	TypeRadio    = "radio"
	TypeHidden   = "hidden"
)

// Field is a single form control. It stays mutable until the builder
// materialises it into markup.
type Field struct {
	ID         string
	Name       string
	Type       string
	Label      string
	Help       string
	Value      any
	Options    []html.Choice
	Checked    bool
	Attributes html.Attributes

	// ValueFunc computes the value from the bound row at render time.
	ValueFunc func(row any, field *Field) any
	// Markup replaces the helper generated control entirely.
	Markup func(row any, field *Field, helper Helper) template.HTML
}

func newField(typ, name string) *Field {
	name = strings.TrimSpace(name)
	return &Field{
		ID:         name,
		Name:       name,
		Type:       normalizeType(typ),
		Label:      humanize(name),
		Attributes: html.Attributes{},
	}
}

// Resolve returns the control value: ValueFunc, then an explicit Value, then
// the bound row at Name.
func (f *Field) Resolve(row any) any {
	if f.ValueFunc != nil {
		return f.ValueFunc(row, f)
	}
	if f.Value != nil {
		return f.Value
	}
	value, _ := fluent.DataGet(row, f.Name)
	return value
}

// Render materialises the control with the given helper and default
// attributes. Explicit attributes win over defaults except for "class",
// which is combined.
func (f *Field) Render(helper Helper, row any, defaults html.Attributes) template.HTML {
	if f.Markup != nil {
		return f.Markup(row, f, helper)
	}

	attrs := html.Decorate(f.Attributes, defaults)
	if _, ok := attrs["id"]; !ok && f.ID != "" {
		attrs["id"] = f.ID
	}
	value := f.Resolve(row)

	switch f.Type {
	case TypePassword:
		return helper.Password(f.Name, attrs)
	case TypeFile:
		return helper.File(f.Name, attrs)
	case TypeTextarea:
		return helper.Textarea(f.Name, fluent.ToString(value), attrs)
	case TypeSelect:
		return helper.Select(f.Name, f.Options, selectedValues(value), attrs)
	case TypeCheckbox, TypeRadio:
		checkValue := fluent.ToString(f.Value)
		checked := f.Checked || isChecked(f.Type, checkValue, row, f.Name)
		if f.Type == TypeCheckbox {
			return helper.Checkbox(f.Name, checkValue, checked, attrs)
		}
		return helper.Radio(f.Name, checkValue, checked, attrs)
	case TypeHidden:
		return helper.Hidden(f.Name, fluent.ToString(value), attrs)
	}

	inputType := strings.TrimPrefix(f.Type, "input:")
	return helper.Input(inputType, f.Name, fluent.ToString(value), attrs)
}

func normalizeType(typ string) string {
	typ = strings.ToLower(strings.TrimSpace(typ))
	switch typ {
	case "":
		return TypeText
	case TypeTextarea, TypeSelect, TypeCheckbox, TypeRadio, TypeHidden:
		return typ
	}
	if strings.HasPrefix(typ, "input:") {
		return typ
	}
	return "input:" + typ
}

func selectedValues(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fluent.ToString(item))
		}
		return out
	}
	return []string{fluent.ToString(value)}
}

// isChecked derives the checked state from the bound row: a checkbox is
// checked by a true value or one matching its own value, a radio only by a
// matching value.
func isChecked(typ, value string, row any, name string) bool {
	current, ok := fluent.DataGet(row, name)
	if !ok || current == nil {
		return false
	}
	if flag, isBool := current.(bool); isBool {
		return typ == TypeCheckbox && flag
	}
	if value == "" {
		value = "1"
	}
	return fluent.ToString(current) == value
}

// humanize turns "first_name" or "user.first-name" into "First name".
func humanize(name string) string {
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
