// Package translation resolves the labels and messages grids render (submit
// button, empty message, pagination links) through a pluggable Translator.
package translation

import (
	"errors"
	"sort"
	"strings"
)

// ErrMissingTranslator is reported to MissingHandler when no translator is
// configured.
var ErrMissingTranslator = errors.New("translation: translator not configured")

// ErrMissingKey is returned by Catalog when a key has no entry for the locale.
var ErrMissingKey = errors.New("translation: key not found")

// Translator resolves a key for a locale. Implementations may use params for
// placeholder substitution.
type Translator interface {
	Translate(locale, key string, params ...any) (string, error)
}

// MissingHandler decides the string returned when a translation fails.
type MissingHandler func(locale, key string, params []any, err error) string

// KeyFallback returns the key itself, so unknown keys surface verbatim in the
// rendered markup.
func KeyFallback(_ string, key string, _ []any, _ error) string {
	return key
}

// Get translates key, falling back through onMissing (or KeyFallback) when
// the translator is nil, errors, or returns a blank string. Blank keys
// translate to "".
func Get(t Translator, locale, key string, onMissing MissingHandler, params ...any) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	if onMissing == nil {
		onMissing = KeyFallback
	}
	if t == nil {
		return onMissing(locale, key, params, ErrMissingTranslator)
	}
	msg, err := t.Translate(locale, key, params...)
	if err != nil || strings.TrimSpace(msg) == "" {
		return onMissing(locale, key, params, err)
	}
	return msg
}

// Replace substitutes ":name" placeholders using the first map[string]any
// found in params. Longer names are replaced first so ":total" is not
// clobbered by ":to".
func Replace(message string, params []any) string {
	for _, param := range params {
		values, ok := param.(map[string]any)
		if !ok {
			continue
		}
		names := make([]string, 0, len(values))
		for name := range values {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			if len(names[i]) != len(names[j]) {
				return len(names[i]) > len(names[j])
			}
			return names[i] < names[j]
		})
		for _, name := range names {
			message = strings.ReplaceAll(message, ":"+name, toString(values[name]))
		}
		break
	}
	return message
}
