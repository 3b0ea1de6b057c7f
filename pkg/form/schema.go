package form

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-htmlgrid/pkg/fluent"
	"github.com/goliatone/go-htmlgrid/pkg/html"
	"github.com/goliatone/go-htmlgrid/pkg/openapi"
)

// textareaThreshold is the maxLength above which strings render as textarea.
const textareaThreshold = 255

// SchemaFields returns a fieldset callback adding one control per property
// of the operation's request body, in name order. Read-only properties are
// skipped.
func SchemaFields(op openapi.Operation) func(*Fieldset) {
	return func(fieldset *Fieldset) {
		if fieldset.Legend == "" {
			fieldset.Legend = op.Summary
		}
		body := op.RequestBody
		for _, name := range body.PropertyNames() {
			prop := body.Properties[name]
			if prop.ReadOnly {
				continue
			}
			fieldset.Control(controlType(prop), name, func(field *Field) {
				applySchema(field, prop, body.IsRequired(name))
			})
		}
	}
}

func controlType(s openapi.Schema) string {
	if len(s.Enum) > 0 {
		return TypeSelect
	}
	switch s.Type {
	case "boolean":
		return TypeCheckbox
	case "integer", "number":
		return TypeNumber
	case "array":
		if s.Items != nil && len(s.Items.Enum) > 0 {
			return TypeSelect
		}
	case "string":
		switch s.Format {
		case "email":
			return TypeEmail
		case "password":
			return TypePassword
		case "binary":
			return TypeFile
		case "date", "date-time", "uri", "url":
			return "input:" + inputFormat(s.Format)
		}
		if s.MaxLength != nil && *s.MaxLength > textareaThreshold {
			return TypeTextarea
		}
	}
	return TypeText
}

func inputFormat(format string) string {
	switch format {
	case "date-time":
		return "datetime-local"
	case "uri":
		return "url"
	}
	return format
}

func applySchema(field *Field, s openapi.Schema, required bool) {
	if title := strings.TrimSpace(s.Title); title != "" {
		field.Label = title
	}
	field.Help = s.Description
	if required {
		field.Attributes["required"] = ""
	}
	if s.MinLength != nil {
		field.Attributes["minlength"] = strconv.Itoa(*s.MinLength)
	}
	if s.MaxLength != nil && field.Type != TypeTextarea {
		field.Attributes["maxlength"] = strconv.Itoa(*s.MaxLength)
	}
	if s.Minimum != nil {
		field.Attributes["min"] = strconv.FormatFloat(*s.Minimum, 'f', -1, 64)
	}
	if s.Maximum != nil {
		field.Attributes["max"] = strconv.FormatFloat(*s.Maximum, 'f', -1, 64)
	}
	if s.Pattern != "" {
		field.Attributes["pattern"] = s.Pattern
	}

	enum := s.Enum
	if s.Type == "array" && s.Items != nil {
		enum = s.Items.Enum
		field.Attributes["multiple"] = ""
	}
	for _, value := range enum {
		label := fluent.ToString(value)
		field.Options = append(field.Options, html.Choice{Value: label, Label: label})
	}

	if s.Default != nil && field.Type != TypeCheckbox {
		defaultValue := s.Default
		field.ValueFunc = func(row any, f *Field) any {
			if value, ok := fluent.DataGet(row, f.Name); ok && value != nil {
				return value
			}
			return defaultValue
		}
	}
}
