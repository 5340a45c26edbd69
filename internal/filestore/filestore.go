// Package filestore persists the category dictionary as a single JSON
// document on disk: an object of category name to keyword array.
//
// Object key order carries the match precedence, so decoding walks the
// token stream instead of unmarshalling into a Go map.
package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"finboard/internal/dictionary"
)

type Repository struct {
	path string
}

var _ dictionary.Repository = (*Repository)(nil)

func New(path string) *Repository {
	return &Repository{path: path}
}

// Load reads the dictionary from disk. A missing file yields a fresh
// default dictionary; a malformed file does too, with a warning, so a
// corrupt store never takes the caller down.
func (r *Repository) Load(ctx context.Context) (*dictionary.Dictionary, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return dictionary.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read category store: %w", err)
	}

	cats, err := decodeOrdered(data)
	if err != nil {
		slog.WarnContext(ctx, "Malformed category store, starting fresh",
			"path", r.path, "error", err)
		return dictionary.New(), nil
	}
	return dictionary.FromCategories(cats), nil
}

// Save writes the whole dictionary, replacing prior content. The write goes
// through a temp file and rename so a crash mid-write cannot leave a
// half-written store behind.
func (r *Repository) Save(ctx context.Context, d *dictionary.Dictionary) error {
	data, err := encodeOrdered(d.Snapshot())
	if err != nil {
		return fmt.Errorf("encode category store: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".categories-*.json")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write category store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close category store: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("replace category store: %w", err)
	}
	return nil
}

// decodeOrdered parses {"name": ["kw", ...], ...} keeping key order.
func decodeOrdered(data []byte) ([]dictionary.Category, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected top-level object, got %v", tok)
	}

	var cats []dictionary.Category
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected category name, got %v", keyTok)
		}
		var keywords []string
		if err := dec.Decode(&keywords); err != nil {
			return nil, fmt.Errorf("category %q: %w", name, err)
		}
		cats = append(cats, dictionary.Category{Name: name, Keywords: keywords})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return cats, nil
}

// encodeOrdered writes the object with keys in dictionary order, one
// category per line for readable diffs.
func encodeOrdered(cats []dictionary.Category) ([]byte, error) {
	var buf []byte
	buf = append(buf, '{', '\n')
	for i, c := range cats {
		nameJSON, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		kws := c.Keywords
		if kws == nil {
			kws = []string{}
		}
		kwJSON, err := json.Marshal(kws)
		if err != nil {
			return nil, err
		}
		buf = append(buf, "  "...)
		buf = append(buf, nameJSON...)
		buf = append(buf, ": "...)
		buf = append(buf, kwJSON...)
		if i < len(cats)-1 {
			buf = append(buf, ',')
		}
		buf = append(buf, '\n')
	}
	buf = append(buf, '}', '\n')
	return buf, nil
}
