package openapi

import "context"

// Parser extracts the operations of a Document keyed by operationId.
type Parser interface {
	Operations(ctx context.Context, doc Document) (map[string]Operation, error)
}

// ParserOptions configures a Parser.
type ParserOptions struct {
	// ResolveReferences resolves $ref pointers, external ones included.
	ResolveReferences bool
	// AllowPartialDocuments accepts documents that declare no operations.
	AllowPartialDocuments bool
}

// ParserOption mutates ParserOptions.
type ParserOption func(*ParserOptions)

// WithReferenceResolution toggles $ref resolution (on by default).
func WithReferenceResolution(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.ResolveReferences = enabled
	}
}

// WithPartialDocuments toggles acceptance of documents without paths.
func WithPartialDocuments(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.AllowPartialDocuments = enabled
	}
}

// NewParserOptions resolves options.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{ResolveReferences: true}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
