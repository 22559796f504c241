package content

import (
	"bytes"
	"errors"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// Extensions lists the recognized document extensions in lookup order.
var Extensions = []string{".mdx", ".md"}

// yamlFormat parses "---" delimited frontmatter with yaml.v3 so nested
// mappings decode as map[string]any.
var yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// Load reads the document at path (slash separated, relative to the store
// root) and splits its metadata block from its body.
//
// A missing file fails with a *NotFoundError; an unreadable file or a
// metadata block that is not a mapping fails with a *ParseError. A document
// without a metadata block loads with an empty mapping.
func (s *Store) Load(name string) (RawDocument, error) {
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return RawDocument{}, &NotFoundError{Path: name}
		}
		return RawDocument{}, &ParseError{Path: name, Err: err}
	}
	return parseDocument(name, data)
}

func parseDocument(name string, data []byte) (RawDocument, error) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	if opensMetadata(data) && !closesMetadata(data) {
		return RawDocument{}, &ParseError{Path: name, Err: errUnterminated}
	}
	var meta map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta, yamlFormat)
	if err != nil {
		return RawDocument{}, &ParseError{Path: name, Err: err}
	}
	if meta == nil {
		meta = map[string]any{}
	}
	return RawDocument{Path: name, Meta: meta, Body: string(body)}, nil
}

var errUnterminated = errors.New("metadata block opened with --- is never closed")

// opensMetadata reports whether the first line of data is a "---" delimiter.
func opensMetadata(data []byte) bool {
	line, _, _ := bytes.Cut(data, []byte("\n"))
	return string(bytes.TrimSpace(line)) == "---"
}

// closesMetadata reports whether a "---" line follows the opening one.
func closesMetadata(data []byte) bool {
	_, rest, _ := bytes.Cut(data, []byte("\n"))
	for len(rest) > 0 {
		var line []byte
		line, rest, _ = bytes.Cut(rest, []byte("\n"))
		if string(bytes.TrimSpace(line)) == "---" {
			return true
		}
	}
	return false
}

// resolve finds the file for slug inside dir, trying each recognized
// extension in order.
func (s *Store) resolve(kind Kind, dir, slug string) (string, error) {
	if !validSlug(slug) {
		return "", &NotFoundError{Kind: kind, Slug: slug}
	}
	for _, ext := range Extensions {
		name := path.Join(dir, slug+ext)
		if _, err := fs.Stat(s.fsys, name); err == nil {
			return name, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", &ParseError{Path: name, Err: err}
		}
	}
	return "", &NotFoundError{Kind: kind, Slug: slug}
}

// listSlugs returns the sorted slugs of every recognized document in dir.
// Two files sharing a stem (a.md and a.mdx) would give two documents the same
// slug, which is rejected.
func (s *Store) listSlugs(kind Kind, dir string) ([]string, error) {
	entries, err := fs.ReadDir(s.fsys, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Kind: kind, Path: dir}
		}
		return nil, &ParseError{Path: dir, Err: err}
	}
	seen := make(map[string]string, len(entries))
	slugs := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		slug, ok := trimExtension(e.Name())
		if !ok {
			continue
		}
		if prev, dup := seen[slug]; dup {
			return nil, &ValidationError{
				Kind:   kind,
				Name:   slug,
				Reason: "duplicate slug: both " + prev + " and " + e.Name() + " exist",
			}
		}
		seen[slug] = e.Name()
		slugs = append(slugs, slug)
	}
	// fs.ReadDir returns entries sorted by filename, and stems of a sorted
	// list are not necessarily sorted ("a-b.md" < "a.md" but "a" < "a-b").
	slices.Sort(slugs)
	return slugs, nil
}

func trimExtension(filename string) (string, bool) {
	for _, ext := range Extensions {
		if strings.HasSuffix(filename, ext) {
			stem := strings.TrimSuffix(filename, ext)
			return stem, stem != ""
		}
	}
	return "", false
}

func validSlug(slug string) bool {
	if slug == "" || slug == "." || strings.Contains(slug, "..") {
		return false
	}
	return !strings.ContainsAny(slug, `/\`)
}
