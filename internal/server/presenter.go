package server

import (
	"strings"

	"github.com/goliatone/go-htmlgrid/pkg/form"
	"github.com/goliatone/go-htmlgrid/pkg/html"
)

var roleChoices = []html.Choice{
	{Value: "admin", Label: "Administrator"},
	{Value: "editor", Label: "Editor"},
	{Value: "viewer", Label: "Viewer"},
}

// userPresenter resolves URLs under base and declares the user form.
type userPresenter struct {
	base string
}

func (p userPresenter) Handles(url string) string {
	return strings.TrimRight(p.base, "/") + "/" + strings.TrimLeft(url, "/")
}

func (p userPresenter) SetupForm(grid *form.Grid) {
	grid.SetName("user")
	grid.Fieldset("Account", func(fs *form.Fieldset) {
		fs.Control("text", "name", func(f *form.Field) {
			f.Attributes["required"] = ""
		})
		fs.Control("email", "email", func(f *form.Field) {
			f.Label = "E-mail"
			f.Attributes["required"] = ""
		})
		fs.Control("select", "role", func(f *form.Field) {
			f.Options = roleChoices
		})
		fs.Control("checkbox", "active", nil)
	})
	grid.Fieldset("Profile", func(fs *form.Fieldset) {
		fs.Control("textarea", "bio", func(f *form.Field) {
			f.Help = "Shown on the team page. <em>Basic formatting</em> is kept."
			f.Attributes["rows"] = "4"
		})
	})
}
