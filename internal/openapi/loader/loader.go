// Package loader reads OpenAPI documents from disk, an fs.FS or a URL.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"

	pkgopenapi "github.com/goliatone/go-htmlgrid/pkg/openapi"
)

// ErrHTTPDisabled is returned for URL sources when HTTP was not enabled.
var ErrHTTPDisabled = errors.New("openapi loader: http sources are disabled")

// Loader implements pkgopenapi.Loader.
type Loader struct {
	files   fs.FS
	client  *http.Client
	maxSize int64
}

var _ pkgopenapi.Loader = (*Loader)(nil)

// New builds a Loader from resolved options.
func New(options pkgopenapi.LoaderOptions) *Loader {
	l := &Loader{files: options.FileSystem, maxSize: options.MaxDocument}
	if l.maxSize <= 0 {
		l.maxSize = pkgopenapi.DefaultMaxDocumentSize
	}
	if options.AllowHTTP || options.HTTPClient != nil {
		client := &http.Client{}
		if options.HTTPClient != nil {
			copied := *options.HTTPClient
			client = &copied
		}
		if client.Timeout == 0 {
			client.Timeout = options.Timeout
		}
		l.client = client
	}
	return l
}

// Load reads src. Context cancellation is honoured before any I/O starts and
// for the whole of an HTTP request.
func (l *Loader) Load(ctx context.Context, src pkgopenapi.Source) (pkgopenapi.Document, error) {
	if src == nil {
		return pkgopenapi.Document{}, errors.New("openapi loader: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return pkgopenapi.Document{}, err
	}
	name := src.Location()
	if name == "" || name == "." {
		return pkgopenapi.Document{}, fmt.Errorf("openapi loader: %s source has no location", src.Kind())
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case pkgopenapi.SourceKindFile:
		data, err = os.ReadFile(name)
	case pkgopenapi.SourceKindFS:
		if l.files == nil {
			return pkgopenapi.Document{}, errors.New("openapi loader: no filesystem configured")
		}
		data, err = fs.ReadFile(l.files, name)
	case pkgopenapi.SourceKindURL:
		data, err = l.fetch(ctx, name)
	default:
		err = fmt.Errorf("openapi loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("openapi loader: %s: %w", name, err)
	}
	return pkgopenapi.NewDocument(src, data)
}

func (l *Loader) fetch(ctx context.Context, raw string) ([]byte, error) {
	if l.client == nil {
		return nil, ErrHTTPDisabled
	}
	parsed, err := url.ParseRequestURI(raw)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, fmt.Errorf("invalid document URL %q", raw)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/yaml, application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, l.maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > l.maxSize {
		return nil, fmt.Errorf("document exceeds %d bytes", l.maxSize)
	}
	return data, nil
}
