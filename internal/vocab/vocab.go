// Package vocab holds the controlled vocabularies that drive flagging:
// per-field canonical categories with fixed bit values, and the alias
// tables that map normalized free text onto them. A Vocabulary is
// validated once at load and immutable afterwards, so it can be shared
// across any number of workers without locking.
package vocab

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Field identifies one of the three imaging-order text fields.
type Field string

const (
	FieldExam     Field = "exam"
	FieldOrgan    Field = "organ"
	FieldContrast Field = "contrast"
)

// Fields returns the closed field set in stable order.
func Fields() []Field {
	return []Field{FieldExam, FieldOrgan, FieldContrast}
}

// Valid reports whether f is one of the known fields.
func (f Field) Valid() bool {
	switch f {
	case FieldExam, FieldOrgan, FieldContrast:
		return true
	}
	return false
}

var (
	// ErrUnknownField is returned when a field outside {exam, organ,
	// contrast} is referenced.
	ErrUnknownField = errors.New("unknown field")

	// ErrUnknownCategory is returned when a bit is requested for a
	// category that was never registered, or when an alias targets an
	// unregistered category. Both are configuration errors and surface
	// during load, never while processing rows.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrDuplicateAlias is returned when two alias strings normalize to
	// the same lookup key within one field. Silent last-write-wins would
	// hide vocabulary mistakes, so the load is rejected instead.
	ErrDuplicateAlias = errors.New("duplicate alias")

	// ErrInvalidBit is returned when a category bit is neither zero nor
	// a power of two, or collides with another category's bit.
	ErrInvalidBit = errors.New("invalid bit value")
)

// Category is one canonical classification within a field. Bit is
// persisted configuration data: zero or a power of two, unique within
// the field, and never renumbered once released.
type Category struct {
	Name string
	Bit  uint64
}

// phrase is a registered alias prepared for boundary-aware matching.
type phrase struct {
	text       string
	tokens     []string
	categories []string
}

type fieldVocab struct {
	categories []Category
	order      map[string]int    // category name -> registration index
	bits       map[string]uint64 // category name -> bit
	exact      map[string][]string
	phrases    []phrase // sorted longest first
}

// Vocabulary is the immutable registry + alias table for all fields.
type Vocabulary struct {
	version     int
	fingerprint string
	fields      map[Field]*fieldVocab
}

// Version returns the configuration data version.
func (v *Vocabulary) Version() int { return v.version }

// Fingerprint returns a stable digest of the vocabulary contents,
// usable as a cache key component.
func (v *Vocabulary) Fingerprint() string { return v.fingerprint }

// Categories returns the registered categories of a field in
// registration order.
func (v *Vocabulary) Categories(field Field) []Category {
	fv := v.fields[field]
	if fv == nil {
		return nil
	}
	out := make([]Category, len(fv.categories))
	copy(out, fv.categories)
	return out
}

// BitFor returns the bit value of a registered category.
func (v *Vocabulary) BitFor(field Field, category string) (uint64, error) {
	fv := v.fields[field]
	if fv == nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	bit, ok := fv.bits[category]
	if !ok {
		return 0, fmt.Errorf("%w: %q in field %q", ErrUnknownCategory, category, field)
	}
	return bit, nil
}

// Decode returns the names of all categories whose bits are set in
// flag, in registration order. Categories carrying the explicit zero
// bit are not representable in a flag and are never reported.
func (v *Vocabulary) Decode(field Field, flag uint64) []string {
	fv := v.fields[field]
	if fv == nil {
		return nil
	}
	var names []string
	for _, c := range fv.categories {
		if c.Bit != 0 && flag&c.Bit == c.Bit {
			names = append(names, c.Name)
		}
	}
	return names
}

// CategoriesFor resolves normalized text to the categories it
// references. Every registered alias occurring as a whole-token
// contiguous phrase contributes; hits are unioned order-independently,
// overlapping or not, so "thoracic spine" flags both the thorax and
// the spine region. A full-string alias is simply a hit covering the
// whole text and gets no special treatment. The contrast field is the
// one exception: its compound phrases ("with or without") must beat
// the contained "with" and "without" aliases, so there an exact
// full-string match wins outright and longer phrases consume their
// token span before shorter ones are tried. No match yields an empty
// result, never an error.
func (v *Vocabulary) CategoriesFor(field Field, normalized string) []string {
	fv := v.fields[field]
	if fv == nil || normalized == "" {
		return nil
	}

	tokens := strings.Fields(normalized)
	if field == FieldContrast {
		if cats, ok := fv.exact[normalized]; ok {
			return fv.ordered(cats)
		}
		return fv.ordered(fv.matchLongestFirst(tokens))
	}
	return fv.ordered(fv.matchAll(tokens))
}

// matchAll unions every alias with at least one whole-token occurrence.
func (fv *fieldVocab) matchAll(tokens []string) []string {
	seen := make(map[string]bool)
	var hits []string
	for _, ph := range fv.phrases {
		n := len(ph.tokens)
		for i := 0; i+n <= len(tokens); i++ {
			if !matchAt(tokens, i, ph.tokens) {
				continue
			}
			for _, c := range ph.categories {
				if !seen[c] {
					seen[c] = true
					hits = append(hits, c)
				}
			}
			break
		}
	}
	return hits
}

// matchLongestFirst lets longer aliases consume their token span
// before shorter ones are tried, suppressing the contained hits.
func (fv *fieldVocab) matchLongestFirst(tokens []string) []string {
	consumed := make([]bool, len(tokens))
	seen := make(map[string]bool)
	var hits []string
	for _, ph := range fv.phrases {
		n := len(ph.tokens)
		for i := 0; i+n <= len(tokens); i++ {
			if spanTaken(consumed, i, n) || !matchAt(tokens, i, ph.tokens) {
				continue
			}
			for j := i; j < i+n; j++ {
				consumed[j] = true
			}
			for _, c := range ph.categories {
				if !seen[c] {
					seen[c] = true
					hits = append(hits, c)
				}
			}
			i += n - 1
		}
	}
	return hits
}

// ordered deduplicates names and sorts them by registration order.
func (fv *fieldVocab) ordered(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return fv.order[out[i]] < fv.order[out[j]]
	})
	return out
}

func spanTaken(consumed []bool, start, n int) bool {
	for i := start; i < start+n; i++ {
		if consumed[i] {
			return true
		}
	}
	return false
}

func matchAt(tokens []string, start int, want []string) bool {
	for i, w := range want {
		if tokens[start+i] != w {
			return false
		}
	}
	return true
}
