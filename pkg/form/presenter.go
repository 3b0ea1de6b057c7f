package form

import (
	"html/template"

	"github.com/goliatone/go-htmlgrid/pkg/html"
)

// Presenter is the listener driving Setup and Resource: it resolves URLs and
// populates the grid through SetupForm.
type Presenter interface {
	Handles(url string) string
	SetupForm(grid *Grid)
}

// Model is a persisted record. Exists reports whether it has been stored;
// Key is its identifier.
type Model interface {
	Exists() bool
	Key() any
}

// Helper generates raw control markup. *html.Builder is the default
// implementation.
type Helper interface {
	Token() template.HTML
	TokenName() string
	Hidden(name, value string, attrs html.Attributes) template.HTML
	Input(typ, name, value string, attrs html.Attributes) template.HTML
	Password(name string, attrs html.Attributes) template.HTML
	File(name string, attrs html.Attributes) template.HTML
	Textarea(name, value string, attrs html.Attributes) template.HTML
	Select(name string, choices []html.Choice, selected []string, attrs html.Attributes) template.HTML
	Checkbox(name, value string, checked bool, attrs html.Attributes) template.HTML
	Radio(name, value string, checked bool, attrs html.Attributes) template.HTML
	Label(name, text string, attrs html.Attributes) template.HTML
}

var _ Helper = (*html.Builder)(nil)

// HandlesFunc adapts a URL resolver and a setup callback into a Presenter.
type HandlesFunc struct {
	Resolve func(url string) string
	Setup   func(grid *Grid)
}

// Handles implements Presenter. A nil Resolve returns url unchanged.
func (h HandlesFunc) Handles(url string) string {
	if h.Resolve == nil {
		return url
	}
	return h.Resolve(url)
}

// SetupForm implements Presenter.
func (h HandlesFunc) SetupForm(grid *Grid) {
	if h.Setup != nil {
		h.Setup(grid)
	}
}
