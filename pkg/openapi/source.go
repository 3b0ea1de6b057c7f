package openapi

import (
	"path/filepath"
	"strings"
)

// SourceKind tells a Loader how to read a Source.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

// Source names a document location.
type Source interface {
	Kind() SourceKind
	Location() string
}

type location struct {
	kind SourceKind
	path string
}

func (l location) Kind() SourceKind { return l.kind }
func (l location) Location() string { return l.path }
func (l location) String() string   { return string(l.kind) + ":" + l.path }

// SourceFromFile points at a document on disk.
func SourceFromFile(path string) Source {
	return location{kind: SourceKindFile, path: filepath.Clean(strings.TrimSpace(path))}
}

// SourceFromFS points at an entry of the loader's fs.FS.
func SourceFromFS(name string) Source {
	return location{kind: SourceKindFS, path: strings.TrimPrefix(strings.TrimSpace(name), "/")}
}

// SourceFromURL points at a remote document. The URL is validated when it
// is loaded.
func SourceFromURL(raw string) Source {
	return location{kind: SourceKindURL, path: strings.TrimSpace(raw)}
}
