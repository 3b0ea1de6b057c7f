package html

import (
	stdhtml "html"
	"sort"
	"strings"
)

// Attributes holds HTML attributes. An empty value renders as a bare boolean
// attribute ("required", "disabled").
type Attributes map[string]string

// Clone returns a copy safe to mutate.
func (a Attributes) Clone() Attributes {
	out := make(Attributes, len(a))
	for key, value := range a {
		out[key] = value
	}
	return out
}

// String renders the attributes sorted by name with a leading space, ready to
// be appended to a tag name.
func (a Attributes) String() string {
	if len(a) == 0 {
		return ""
	}
	keys := make([]string, 0, len(a))
	for key := range a {
		if strings.TrimSpace(key) == "" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		b.WriteByte(' ')
		b.WriteString(stdhtml.EscapeString(key))
		if value := a[key]; value != "" {
			b.WriteString(`="`)
			b.WriteString(stdhtml.EscapeString(value))
			b.WriteByte('"')
		}
	}
	return b.String()
}

// Merge overlays override onto base; later values win.
func Merge(base Attributes, overrides ...Attributes) Attributes {
	out := base.Clone()
	for _, override := range overrides {
		for key, value := range override {
			out[key] = value
		}
	}
	return out
}

// Decorate applies defaults under attrs. The "class" attribute is combined
// instead of replaced so presenters can add framework classes without losing
// caller supplied ones.
func Decorate(attrs, defaults Attributes) Attributes {
	out := defaults.Clone()
	for key, value := range attrs {
		if key == "class" {
			out[key] = joinClasses(defaults[key], value)
			continue
		}
		out[key] = value
	}
	return out
}

func joinClasses(values ...string) string {
	seen := make(map[string]struct{})
	var classes []string
	for _, value := range values {
		for _, class := range strings.Fields(value) {
			if _, ok := seen[class]; ok {
				continue
			}
			seen[class] = struct{}{}
			classes = append(classes, class)
		}
	}
	return strings.Join(classes, " ")
}
