package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-htmlgrid/pkg/pagination"
	"github.com/goliatone/go-htmlgrid/pkg/table"
)

type tableParams struct {
	data     string
	columns  []string
	layout   string
	path     string
	perPage  int
	page     int
	paginate bool
}

func newTableCommand(root *rootParams, logger *logrus.Logger) *cobra.Command {
	params := &tableParams{}

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Render a JSON array of objects as a table",
		Long: `Render an HTML table from a JSON array of objects.

    $ gridctl table --data users.json --columns id,name,email --paginate --page 2
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTable(cmd, root, params, logger)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&params.data, "data", "d", "", "JSON file holding an array of rows")
	flags.StringSliceVar(&params.columns, "columns", nil, "columns to render, defaults to the keys of the first row")
	flags.StringVar(&params.layout, "layout", "", "table view (defaults to the configured view)")
	flags.StringVar(&params.path, "path", "", "base URL of pagination links")
	flags.IntVar(&params.perPage, "per-page", 0, "rows per page (defaults to the configured per_page)")
	flags.IntVar(&params.page, "page", 1, "page to render")
	flags.BoolVar(&params.paginate, "paginate", false, "render pagination links")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func runTable(cmd *cobra.Command, root *rootParams, params *tableParams, logger *logrus.Logger) error {
	services, err := root.services(logger)
	if err != nil {
		return err
	}

	rows, err := readRows(params.data)
	if err != nil {
		return err
	}
	columns := params.columns
	if len(columns) == 0 && len(rows) > 0 {
		columns = sortedKeys(rows[0])
	}

	tables := services.Tables(nil)
	perPage := params.perPage
	if perPage <= 0 {
		perPage = tables.Config().PerPage
	}
	page := pagination.FromSlice(rows, perPage, params.page,
		pagination.WithPath(params.path),
		pagination.WithTranslator(services.Translator, root.locale),
	)

	builder := tables.Make(func(grid *table.Grid) {
		if params.layout != "" {
			grid.Layout(params.layout)
		}
		grid.With(page, params.paginate)
		for _, id := range columns {
			grid.Column(strings.TrimSpace(id), nil)
		}
	})

	logger.WithFields(logrus.Fields{
		"rows":    len(rows),
		"columns": len(columns),
		"page":    page.CurrentPage(),
	}).Debug("gridctl: rendering table")

	markup, err := builder.Render(cmd.Context())
	if err != nil {
		return err
	}
	return root.write(cmd, string(markup))
}

func readRows(path string) ([]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("decode data %s: %w", path, err)
	}
	rows := make([]any, 0, len(decoded))
	for _, row := range decoded {
		rows = append(rows, row)
	}
	return rows, nil
}

func sortedKeys(row any) []string {
	record, ok := row.(map[string]any)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(record))
	for key := range record {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
