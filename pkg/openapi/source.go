// Package openapi extracts the operation metadata that seeds a form
// lifecycle controller from an OpenAPI document: which operation the form
// submits to, whether it edits an existing resource, and which fields the
// request requires.
package openapi

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

// Source identifies where an OpenAPI document originates so the loader can
// fetch from files, fs.FS entries, or URLs without leaking implementations.
type Source interface {
	Kind() SourceKind
	Location() string
}

type fileSource struct {
	path string
}

func (s fileSource) Kind() SourceKind { return SourceKindFile }
func (s fileSource) Location() string { return s.path }

// FromFile returns a Source pointing at an on-disk document.
func FromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	name string
}

func (s fsSource) Kind() SourceKind { return SourceKindFS }
func (s fsSource) Location() string { return s.name }

// FromFS returns a Source identifying a document inside an fs.FS.
func FromFS(name string) Source {
	return fsSource{name: name}
}

type urlSource struct {
	raw string
}

func (s urlSource) Kind() SourceKind { return SourceKindURL }
func (s urlSource) Location() string { return s.raw }

// FromURL parses the supplied URL and returns a Source. It panics on an
// invalid URL to surface configuration mistakes early.
func FromURL(raw string) Source {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		panic(fmt.Sprintf("openapi: invalid source URL %q", raw))
	}
	return urlSource{raw: raw}
}
