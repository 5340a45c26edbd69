// Package dictionary implements the persistent category to keyword mapping
// and the matching engine that assigns categories to transactions.
//
// Categories are kept as an ordered list, not a map: the order is the match
// precedence (see Categorize) and must survive a save/load round trip.
package dictionary

import (
	"errors"
	"strings"

	"finboard/internal/core"
)

var (
	ErrEmptyCategory   = errors.New("empty category name")
	ErrUnknownCategory = errors.New("unknown category")
	// ErrFallbackTarget is returned when a keyword is aimed at the
	// Uncategorized fallback, which never carries keywords.
	ErrFallbackTarget = errors.New("cannot add keywords to the fallback category")
)

// Category is a named spending bucket with its learned keywords. Keywords
// keep their original spelling; comparisons run on the normalized form.
type Category struct {
	Name     string
	Keywords []string
}

// Dictionary is the in-memory category store. The zero value is not usable;
// construct with New or a Repository's Load.
type Dictionary struct {
	categories []Category
	index      map[string]int // name -> position in categories
}

// New returns a dictionary holding only the Uncategorized fallback.
func New() *Dictionary {
	d := &Dictionary{index: make(map[string]int)}
	d.categories = append(d.categories, Category{Name: core.Uncategorized})
	d.index[core.Uncategorized] = 0
	return d
}

// Normalize is the single normalization applied to keywords and transaction
// details before comparison: trim surrounding whitespace, lowercase.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// AddCategory inserts a category with an empty keyword set. Adding an
// existing name is an idempotent no-op; an empty name is rejected.
func (d *Dictionary) AddCategory(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyCategory
	}
	if _, ok := d.index[name]; ok {
		return nil
	}
	d.index[name] = len(d.categories)
	d.categories = append(d.categories, Category{Name: name})
	return nil
}

// AddKeyword appends keyword to the named category and reports whether the
// dictionary changed. The keyword is trimmed; an empty or already-present
// keyword (case-insensitive) leaves the dictionary untouched. Unknown
// categories are rejected rather than silently created.
func (d *Dictionary) AddKeyword(category, keyword string) (bool, error) {
	if category == core.Uncategorized {
		return false, ErrFallbackTarget
	}
	pos, ok := d.index[category]
	if !ok {
		return false, ErrUnknownCategory
	}
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return false, nil
	}
	norm := Normalize(keyword)
	for _, existing := range d.categories[pos].Keywords {
		if Normalize(existing) == norm {
			return false, nil
		}
	}
	d.categories[pos].Keywords = append(d.categories[pos].Keywords, keyword)
	return true, nil
}

// Has reports whether the named category exists.
func (d *Dictionary) Has(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Names returns the category names in precedence order.
func (d *Dictionary) Names() []string {
	out := make([]string, len(d.categories))
	for i, c := range d.categories {
		out[i] = c.Name
	}
	return out
}

// Keywords returns a copy of the named category's keyword list.
func (d *Dictionary) Keywords(name string) []string {
	pos, ok := d.index[name]
	if !ok {
		return nil
	}
	return append([]string(nil), d.categories[pos].Keywords...)
}

// Snapshot returns a deep copy of the category list in precedence order.
// Categorization runs over a snapshot so edits applied mid-session cannot
// shift results under the caller.
func (d *Dictionary) Snapshot() []Category {
	out := make([]Category, len(d.categories))
	for i, c := range d.categories {
		out[i] = Category{
			Name:     c.Name,
			Keywords: append([]string(nil), c.Keywords...),
		}
	}
	return out
}

// FromCategories rebuilds a dictionary from a persisted category list,
// preserving order. The Uncategorized fallback is ensured at position zero
// when the persisted form lacks it. Duplicate names keep the first
// occurrence.
func FromCategories(cats []Category) *Dictionary {
	d := New()
	for _, c := range cats {
		if c.Name == core.Uncategorized {
			continue
		}
		if err := d.AddCategory(c.Name); err != nil {
			continue
		}
		pos := d.index[c.Name]
		if len(d.categories[pos].Keywords) > 0 {
			continue
		}
		for _, kw := range c.Keywords {
			// Route through AddKeyword so persisted duplicates collapse.
			_, _ = d.AddKeyword(c.Name, kw)
		}
	}
	return d
}
