package translation

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

//go:embed lang/*.yaml
var embeddedCatalogs embed.FS

// Catalog is an in-memory Translator keyed by locale. Nested maps in catalog
// files are flattened into dotted keys.
type Catalog struct {
	mu       sync.RWMutex
	fallback string
	messages map[string]map[string]string
}

var _ Translator = (*Catalog)(nil)

// NewCatalog creates an empty catalog. fallback is the locale consulted when
// the requested locale has no entry.
func NewCatalog(fallback string) *Catalog {
	return &Catalog{
		fallback: strings.TrimSpace(fallback),
		messages: make(map[string]map[string]string),
	}
}

// DefaultCatalog returns a catalog seeded with the built-in English labels.
func DefaultCatalog() *Catalog {
	catalog := NewCatalog("en")
	if err := catalog.LoadFS(embeddedCatalogs); err != nil {
		panic(err)
	}
	return catalog
}

// Add registers messages for locale, overriding existing keys.
func (c *Catalog) Add(locale string, messages map[string]string) {
	locale = strings.TrimSpace(locale)
	c.mu.Lock()
	defer c.mu.Unlock()

	bucket, ok := c.messages[locale]
	if !ok {
		bucket = make(map[string]string, len(messages))
		c.messages[locale] = bucket
	}
	for key, value := range messages {
		bucket[strings.TrimSpace(key)] = value
	}
}

// LoadFS walks fsys and loads every *.yaml, *.yml and *.json file. The file
// name without extension is the locale ("en.yaml" → "en").
func (c *Catalog) LoadFS(fsys fs.FS) error {
	if fsys == nil {
		return nil
	}
	return fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isCatalogFile(name) {
			return nil
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("translation: read %s: %w", name, err)
		}
		messages, err := parseCatalog(data, name)
		if err != nil {
			return err
		}
		base := path.Base(name)
		c.Add(strings.TrimSuffix(base, path.Ext(base)), messages)
		return nil
	})
}

// Translate implements Translator.
func (c *Catalog) Translate(locale, key string, params ...any) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, candidate := range []string{strings.TrimSpace(locale), c.fallback} {
		if bucket, ok := c.messages[candidate]; ok {
			if msg, ok := bucket[key]; ok {
				return Replace(msg, params), nil
			}
		}
	}
	return "", fmt.Errorf("%w: %s", ErrMissingKey, key)
}

// Locales lists the loaded locales.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

func isCatalogFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

func parseCatalog(data []byte, source string) (map[string]string, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		raw = nil
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("translation: parse %s: invalid JSON or YAML", source)
		}
	}
	out := make(map[string]string)
	flatten("", raw, out)
	return out, nil
}

func flatten(prefix string, in map[string]any, out map[string]string) {
	for key, value := range in {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch v := value.(type) {
		case map[string]any:
			flatten(full, v, out)
		default:
			out[full] = toString(v)
		}
	}
}

func toString(value any) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}
