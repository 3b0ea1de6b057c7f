package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	htmlgrid "github.com/goliatone/go-htmlgrid"
	"github.com/goliatone/go-htmlgrid/pkg/form"
	pkgopenapi "github.com/goliatone/go-htmlgrid/pkg/openapi"
)

type formParams struct {
	schema      string
	operation   string
	layout      string
	data        string
	interactive bool
}

func newFormCommand(root *rootParams, logger *logrus.Logger, prompts prompter) *cobra.Command {
	params := &formParams{}

	cmd := &cobra.Command{
		Use:   "form",
		Short: "Render the request body of an OpenAPI operation as a form",
		Long: `Render an HTML form for an OpenAPI operation.

One control is emitted per request body property. Values can be prefilled
from a JSON object:

    $ gridctl form --schema api.yaml --operation updateUser --data user.json
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runForm(cmd, root, params, logger, prompts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&params.schema, "schema", "s", "", "OpenAPI document path or URL")
	flags.StringVar(&params.operation, "operation", "", "operation id to render")
	flags.StringVar(&params.layout, "layout", "", "form layout (horizontal, vertical or a view path)")
	flags.StringVar(&params.data, "data", "", "JSON file holding the bound row")
	flags.BoolVarP(&params.interactive, "interactive", "i", false, "prompt for layout, submit label and token")
	_ = cmd.MarkFlagRequired("schema")
	_ = cmd.MarkFlagRequired("operation")
	return cmd
}

func runForm(cmd *cobra.Command, root *rootParams, params *formParams, logger *logrus.Logger, prompts prompter) error {
	ctx := cmd.Context()

	services, err := root.services(logger)
	if err != nil {
		return err
	}

	src, loaderOpts := parseSource(params.schema)
	doc, err := htmlgrid.NewLoader(loaderOpts...).Load(ctx, src)
	if err != nil {
		return fmt.Errorf("load schema: %w", err)
	}

	row, err := readRow(params.data)
	if err != nil {
		return err
	}

	builder, err := services.OperationForm(ctx, nil, doc, params.operation, row)
	if err != nil {
		return err
	}

	grid := builder.Grid()
	if params.layout != "" {
		grid.Layout(params.layout)
	}
	if params.interactive {
		if err := askFormSettings(prompts, grid); err != nil {
			return err
		}
	}

	logger.WithFields(logrus.Fields{
		"operation": params.operation,
		"view":      grid.View(),
	}).Debug("gridctl: rendering form")

	markup, err := builder.Render(ctx)
	if err != nil {
		return err
	}
	return root.write(cmd, string(markup))
}

func askFormSettings(prompts prompter, grid *form.Grid) error {
	current := "horizontal"
	if strings.HasSuffix(grid.View(), "vertical") {
		current = "vertical"
	}
	layout, err := prompts.Select("Layout", []string{"horizontal", "vertical"}, current)
	if err != nil {
		return err
	}
	grid.Layout(layout)

	submit, err := prompts.Input("Submit label", grid.Submit)
	if err != nil {
		return err
	}
	if strings.TrimSpace(submit) != "" {
		grid.Submit = submit
	}

	token, err := prompts.Confirm("Include CSRF token?", grid.Token)
	if err != nil {
		return err
	}
	grid.Token = token
	return nil
}

func parseSource(raw string) (pkgopenapi.Source, []pkgopenapi.LoaderOption) {
	location := strings.TrimSpace(raw)
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return pkgopenapi.SourceFromURL(location), []pkgopenapi.LoaderOption{pkgopenapi.WithHTTPFallback(30 * time.Second)}
	}
	return pkgopenapi.SourceFromFile(location), nil
}

func readRow(path string) (map[string]any, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}
	row := map[string]any{}
	if err := json.Unmarshal(data, &row); err != nil {
		return nil, fmt.Errorf("decode data %s: %w", path, err)
	}
	return row, nil
}
