// Package form builds HTML forms from a declarative Grid.
//
// A Grid owns fieldsets, hidden inputs, the bound data row and the form
// attributes. Callers obtain a configured Builder from a Factory, populate
// the grid through callbacks (directly or via a Presenter's SetupForm hook)
// and render it once through the template engine:
//
//	builder := factory.Make(func(grid *form.Grid) {
//		grid.Resource(presenter, "users", user, nil)
//	})
//	markup, err := builder.Render(ctx)
//
// Fieldsets are registered under a slug of their name so individual controls
// can be located with Grid.Find("account.email").
package form
