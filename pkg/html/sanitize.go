package html

import (
	"html/template"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	markupPolicyOnce sync.Once
	markupPolicy     *bluemonday.Policy
)

// Sanitize strips unsafe markup from raw using a user generated content
// policy, so table cells and help texts can carry links and emphasis.
func Sanitize(raw string) template.HTML {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return template.HTML(markupSanitizer().Sanitize(trimmed))
}

func markupSanitizer() *bluemonday.Policy {
	markupPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("class").Globally()
		policy.AllowElements("span", "small", "mark")
		markupPolicy = policy
	})
	return markupPolicy
}
