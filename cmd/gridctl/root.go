package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	htmlgrid "github.com/goliatone/go-htmlgrid"
)

type rootParams struct {
	configFile   string
	templateDir  string
	locale       string
	logLevel     string
	logFormat    string
	outputTarget string
}

func newRootCommand(logger *logrus.Logger, prompts prompter) *cobra.Command {
	params := &rootParams{}

	root := &cobra.Command{
		Use:           "gridctl",
		Short:         "Render htmlgrid forms and tables",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return configureLogger(logger, cmd.ErrOrStderr(), params.logLevel, params.logFormat)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&params.configFile, "config", "c", "", "YAML or JSON configuration file")
	flags.StringVar(&params.templateDir, "templates", "", "directory whose views override the built-in ones")
	flags.StringVar(&params.locale, "locale", "en", "locale used for labels")
	flags.StringVar(&params.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.StringVar(&params.logFormat, "log-format", "text", "log format (text, json)")
	flags.StringVarP(&params.outputTarget, "output", "o", "", "write output to file instead of stdout")

	root.AddCommand(
		newFormCommand(params, logger, prompts),
		newTableCommand(params, logger),
		newServeCommand(params, logger),
	)
	return root
}

func (p *rootParams) services(logger *logrus.Logger, extra ...htmlgrid.Option) (*htmlgrid.Services, error) {
	opts := []htmlgrid.Option{
		htmlgrid.WithLogger(logger),
		htmlgrid.WithDefaultLocale(p.locale),
	}
	if p.configFile != "" {
		opts = append(opts, htmlgrid.WithConfigFile(p.configFile))
	}
	if p.templateDir != "" {
		opts = append(opts, htmlgrid.WithTemplateDir(p.templateDir))
	}
	return htmlgrid.New(append(opts, extra...)...)
}

func (p *rootParams) write(cmd *cobra.Command, markup string) error {
	if p.outputTarget == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), markup)
		return err
	}
	if err := os.WriteFile(p.outputTarget, []byte(markup+"\n"), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", p.outputTarget, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "written to %s\n", p.outputTarget)
	return nil
}

func configureLogger(logger *logrus.Logger, out io.Writer, level, format string) error {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logger.SetLevel(parsed)
	logger.SetOutput(out)

	switch strings.ToLower(format) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	default:
		return fmt.Errorf("invalid --log-format %q", format)
	}
	return nil
}
