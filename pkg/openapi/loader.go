package openapi

import (
	"context"
	"io/fs"
	"net/http"
	"time"
)

// DefaultMaxDocumentSize caps how many bytes a Loader reads from a URL.
const DefaultMaxDocumentSize int64 = 8 << 20

// Loader reads a Source into a Document.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// LoaderOptions configures a Loader. Remote sources are refused unless an
// HTTP client is given or HTTP is enabled.
type LoaderOptions struct {
	FileSystem  fs.FS
	HTTPClient  *http.Client
	AllowHTTP   bool
	Timeout     time.Duration
	MaxDocument int64
}

// LoaderOption mutates LoaderOptions.
type LoaderOption func(*LoaderOptions)

// WithFileSystem sets the fs.FS used for SourceFromFS locations.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient enables URL sources through client.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
		opts.AllowHTTP = client != nil || opts.AllowHTTP
	}
}

// WithHTTPFallback enables URL sources through a default client. A zero
// timeout leaves requests bounded by the context only.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTP = true
		opts.Timeout = timeout
	}
}

// WithMaxDocumentSize overrides DefaultMaxDocumentSize.
func WithMaxDocumentSize(size int64) LoaderOption {
	return func(opts *LoaderOptions) {
		if size > 0 {
			opts.MaxDocument = size
		}
	}
}

// NewLoaderOptions resolves options.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{MaxDocument: DefaultMaxDocumentSize}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
