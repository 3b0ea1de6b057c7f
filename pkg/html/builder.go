// Package html generates the raw form control markup grids are made of:
// hidden inputs, text inputs, selects, checkboxes and the CSRF token field.
// Output is returned as template.HTML so template engines emit it verbatim.
package html

import (
	"crypto/subtle"
	stdhtml "html"
	"html/template"
	"strings"
)

// DefaultTokenName is the input name used for the CSRF token field.
const DefaultTokenName = "_token"

// Choice is a single <option> in a select control.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Option configures a Builder.
type Option func(*Builder)

// WithSessionStore sets the token source used by Token.
func WithSessionStore(store SessionStore) Option {
	return func(b *Builder) {
		if store != nil {
			b.session = store
		}
	}
}

// WithTokenName overrides the CSRF input name.
func WithTokenName(name string) Option {
	return func(b *Builder) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			b.tokenName = trimmed
		}
	}
}

// Builder renders form controls. It is stateless apart from its session
// store and safe for concurrent use.
type Builder struct {
	session   SessionStore
	tokenName string
}

// NewBuilder constructs a Builder. Without a session store Token renders
// nothing.
func NewBuilder(options ...Option) *Builder {
	b := &Builder{tokenName: DefaultTokenName}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	return b
}

// TokenName reports the CSRF input name.
func (b *Builder) TokenName() string {
	return b.tokenName
}

// Token renders the CSRF hidden input, or "" when no session is configured.
func (b *Builder) Token() template.HTML {
	if b.session == nil {
		return ""
	}
	return b.Hidden(b.tokenName, b.session.Token(), nil)
}

// VerifyToken reports whether token matches the session token. Without a
// session nothing verifies.
func (b *Builder) VerifyToken(token string) bool {
	if b.session == nil {
		return false
	}
	expected := b.session.Token()
	return expected != "" && subtle.ConstantTimeCompare([]byte(expected), []byte(token)) == 1
}

// Hidden renders <input type="hidden">.
func (b *Builder) Hidden(name, value string, attrs Attributes) template.HTML {
	return b.Input("hidden", name, value, attrs)
}

// Input renders an <input> of the given type. The value attribute is omitted
// when value is empty.
func (b *Builder) Input(typ, name, value string, attrs Attributes) template.HTML {
	merged := attrs.Clone()
	merged["type"] = typ
	if name != "" {
		merged["name"] = name
	}
	if value != "" {
		merged["value"] = value
	} else {
		delete(merged, "value")
	}
	return template.HTML("<input" + merged.String() + ">")
}

// Password renders a password input; values are never echoed back.
func (b *Builder) Password(name string, attrs Attributes) template.HTML {
	return b.Input("password", name, "", attrs)
}

// File renders a file input.
func (b *Builder) File(name string, attrs Attributes) template.HTML {
	return b.Input("file", name, "", attrs)
}

// Textarea renders a <textarea>.
func (b *Builder) Textarea(name, value string, attrs Attributes) template.HTML {
	merged := attrs.Clone()
	merged["name"] = name
	if _, ok := merged["rows"]; !ok {
		merged["rows"] = "10"
	}
	if _, ok := merged["cols"]; !ok {
		merged["cols"] = "50"
	}
	return template.HTML("<textarea" + merged.String() + ">" + stdhtml.EscapeString(value) + "</textarea>")
}

// Select renders a <select>. Every choice whose value appears in selected is
// marked selected.
func (b *Builder) Select(name string, choices []Choice, selected []string, attrs Attributes) template.HTML {
	merged := attrs.Clone()
	merged["name"] = name

	chosen := make(map[string]struct{}, len(selected))
	for _, value := range selected {
		chosen[value] = struct{}{}
	}

	var out strings.Builder
	out.WriteString("<select")
	out.WriteString(merged.String())
	out.WriteString(">")
	for _, choice := range choices {
		optionAttrs := Attributes{"value": choice.Value}
		if _, ok := chosen[choice.Value]; ok {
			optionAttrs["selected"] = "selected"
		}
		label := choice.Label
		if label == "" {
			label = choice.Value
		}
		out.WriteString("<option")
		out.WriteString(optionAttrs.String())
		out.WriteString(">")
		out.WriteString(stdhtml.EscapeString(label))
		out.WriteString("</option>")
	}
	out.WriteString("</select>")
	return template.HTML(out.String())
}

// Checkbox renders a checkbox input.
func (b *Builder) Checkbox(name, value string, checked bool, attrs Attributes) template.HTML {
	return b.checkable("checkbox", name, value, checked, attrs)
}

// Radio renders a radio input.
func (b *Builder) Radio(name, value string, checked bool, attrs Attributes) template.HTML {
	return b.checkable("radio", name, value, checked, attrs)
}

func (b *Builder) checkable(typ, name, value string, checked bool, attrs Attributes) template.HTML {
	merged := attrs.Clone()
	if checked {
		merged["checked"] = "checked"
	} else {
		delete(merged, "checked")
	}
	if value == "" {
		value = "1"
	}
	return b.Input(typ, name, value, merged)
}

// Label renders a <label for=name>.
func (b *Builder) Label(name, text string, attrs Attributes) template.HTML {
	merged := attrs.Clone()
	merged["for"] = name
	return template.HTML("<label" + merged.String() + ">" + stdhtml.EscapeString(text) + "</label>")
}
