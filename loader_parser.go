package htmlgrid

import (
	"github.com/goliatone/go-htmlgrid/internal/openapi/loader"
	"github.com/goliatone/go-htmlgrid/internal/openapi/parser"
	pkgopenapi "github.com/goliatone/go-htmlgrid/pkg/openapi"
)

// NewLoader returns the built-in OpenAPI document loader.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	return loader.New(pkgopenapi.NewLoaderOptions(options...))
}

// NewParser returns the kin-openapi backed parser.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	return parser.New(pkgopenapi.NewParserOptions(options...))
}
