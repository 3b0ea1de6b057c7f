// Package gotemplate renders views with pongo2, the Django flavoured
// template language the built-in grid views are written in.
package gotemplate

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-htmlgrid/pkg/render/template"
)

const viewExtension = ".tpl"

// Option configures New.
type Option func(*Engine)

// WithBaseDir adds a directory of views. Views on disk shadow every fs.FS
// source.
func WithBaseDir(dir string) Option {
	return func(e *Engine) {
		e.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS adds a bundle of views. Earlier bundles shadow later ones.
func WithFS(files fs.FS) Option {
	return func(e *Engine) {
		if files != nil {
			e.sources = append(e.sources, files)
		}
	}
}

// Engine is a template.TemplateRenderer over a pongo2 template set. Compiled
// views are cached for the life of the engine.
type Engine struct {
	baseDir string
	sources []fs.FS

	mu       sync.RWMutex
	set      *pongo2.TemplateSet
	compiled map[string]*pongo2.Template
}

var (
	_ template.TemplateRenderer = (*Engine)(nil)
	_ template.ViewFinder       = (*Engine)(nil)
)

// New builds an Engine; it needs a base dir, an fs.FS or both.
func New(options ...Option) (*Engine, error) {
	e := &Engine{compiled: make(map[string]*pongo2.Template)}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	if e.baseDir != "" {
		if _, err := os.Stat(e.baseDir); err != nil {
			return nil, fmt.Errorf("gotemplate: views dir: %w", err)
		}
		e.sources = append([]fs.FS{os.DirFS(e.baseDir)}, e.sources...)
	}
	if len(e.sources) == 0 {
		return nil, errors.New("gotemplate: no view source configured")
	}

	loaders := make([]pongo2.TemplateLoader, 0, len(e.sources))
	for _, files := range e.sources {
		loaders = append(loaders, pongo2.NewFSLoader(files))
	}
	e.set = pongo2.NewSet("htmlgrid", loaders...)
	e.set.Globals = pongo2.Context{}
	registerDefaultFilters()
	return e, nil
}

// Render renders inline content when name carries template tags and the
// named view otherwise.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if strings.Contains(name, "{{") || strings.Contains(name, "{%") {
		return e.RenderString(name, data, out...)
	}
	return e.RenderTemplate(name, data, out...)
}

// RenderTemplate renders a view by name; the .tpl extension is optional.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	path := viewPath(name)
	tpl, err := e.lookup(path)
	if err != nil {
		return "", err
	}
	return e.execute(path, tpl, data, out)
}

// RenderString compiles and renders content without caching it.
func (e *Engine) RenderString(content string, data any, out ...io.Writer) (string, error) {
	tpl, err := e.set.FromString(content)
	if err != nil {
		return "", fmt.Errorf("gotemplate: parse inline template: %w", err)
	}
	return e.execute("inline template", tpl, data, out)
}

// Exists reports whether any source holds the view.
func (e *Engine) Exists(name string) bool {
	path := viewPath(name)
	e.mu.RLock()
	_, ok := e.compiled[path]
	e.mu.RUnlock()
	if ok {
		return true
	}
	for _, files := range e.sources {
		if info, err := fs.Stat(files, path); err == nil && !info.IsDir() {
			return true
		}
	}
	return false
}

// RegisterFilter adds a pongo2 filter. Filters are global to the process, so
// a name can only be taken once.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return errors.New("gotemplate: filter needs a name and a function")
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("gotemplate: filter %q already registered", name)
	}
	return pongo2.RegisterFilter(name, func(in, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var arg any
		if param != nil {
			arg = param.Interface()
		}
		result, err := fn(in.Interface(), arg)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	})
}

// GlobalContext merges data into the values every view can see.
func (e *Engine) GlobalContext(data any) error {
	globals, err := toContext(data)
	if err != nil {
		return fmt.Errorf("gotemplate: global context: %w", err)
	}
	e.mu.Lock()
	e.set.Globals.Update(globals)
	e.mu.Unlock()
	return nil
}

func (e *Engine) lookup(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	tpl, ok := e.compiled[path]
	e.mu.RUnlock()
	if ok {
		return tpl, nil
	}

	tpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load view %q: %w", path, err)
	}
	e.mu.Lock()
	e.compiled[path] = tpl
	e.mu.Unlock()
	return tpl, nil
}

func (e *Engine) execute(label string, tpl *pongo2.Template, data any, out []io.Writer) (string, error) {
	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: %s: %w", label, err)
	}

	e.mu.RLock()
	rendered, err := tpl.Execute(ctx)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute %s: %w", label, err)
	}

	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return rendered, err
		}
	}
	return rendered, nil
}

func viewPath(name string) string {
	path := strings.TrimPrefix(strings.TrimSpace(name), "/")
	if !strings.HasSuffix(path, viewExtension) {
		path += viewExtension
	}
	return path
}
