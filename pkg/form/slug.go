package form

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Slug lowercases name, folds accents and joins the remaining letter and
// digit runs with dashes: "Account Details" becomes "account-details".
func Slug(name string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range norm.NFKD.String(name) {
		switch {
		case unicode.Is(unicode.Mn, r):
			continue
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(unicode.ToLower(r))
		default:
			pendingDash = true
		}
	}
	return b.String()
}
