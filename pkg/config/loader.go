package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

type fileConfig struct {
	Form  *formFile  `json:"form" yaml:"form"`
	Table *tableFile `json:"table" yaml:"table"`
}

type formFile struct {
	Layout    string `json:"layout" yaml:"layout"`
	Submit    string `json:"submit" yaml:"submit"`
	Format    string `json:"format" yaml:"format"`
	Presenter string `json:"presenter" yaml:"presenter"`
	Token     *bool  `json:"token" yaml:"token"`
}

type tableFile struct {
	View     string `json:"view" yaml:"view"`
	Empty    string `json:"empty" yaml:"empty"`
	Paginate *bool  `json:"paginate" yaml:"paginate"`
	PerPage  int    `json:"per_page" yaml:"per_page"`
}

// Parse decodes a JSON or YAML payload and applies it on top of Default.
// Keys that are absent keep their default value.
func Parse(data []byte, source string) (Config, error) {
	cfg := Default()
	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}

	var raw fileConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		raw = fileConfig{}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: invalid JSON or YAML: %w", source, err)
		}
	}

	if raw.Form != nil {
		cfg.Form.Layout = pick(raw.Form.Layout, cfg.Form.Layout)
		cfg.Form.Submit = pick(raw.Form.Submit, cfg.Form.Submit)
		cfg.Form.Format = pick(raw.Form.Format, cfg.Form.Format)
		cfg.Form.Presenter = pick(raw.Form.Presenter, cfg.Form.Presenter)
		if raw.Form.Token != nil {
			cfg.Form.Token = *raw.Form.Token
		}
	}
	if raw.Table != nil {
		cfg.Table.View = pick(raw.Table.View, cfg.Table.View)
		cfg.Table.Empty = pick(raw.Table.Empty, cfg.Table.Empty)
		if raw.Table.Paginate != nil {
			cfg.Table.Paginate = *raw.Table.Paginate
		}
		if raw.Table.PerPage < 0 {
			return Config{}, fmt.Errorf("config: %s: table.per_page must not be negative", source)
		}
		if raw.Table.PerPage > 0 {
			cfg.Table.PerPage = raw.Table.PerPage
		}
	}
	return cfg, nil
}

// LoadFile reads path. A missing file yields the defaults.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFS reads name from fsys. A missing file yields the defaults.
func LoadFS(fsys fs.FS, name string) (Config, error) {
	if fsys == nil {
		return Default(), nil
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", name, err)
	}
	return Parse(data, name)
}
