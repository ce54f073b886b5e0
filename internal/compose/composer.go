// Package compose turns raw field text into bitmask flags.
package compose

import (
	"radflag/internal/normalize"
	"radflag/internal/vocab"
)

// Composer resolves free text against an immutable vocabulary and
// OR-combines the bits of every matched category.
type Composer struct {
	vocab *vocab.Vocabulary
}

// New creates a composer over the given vocabulary.
func New(v *vocab.Vocabulary) *Composer {
	return &Composer{vocab: v}
}

// Vocabulary returns the vocabulary backing this composer.
func (c *Composer) Vocabulary() *vocab.Vocabulary {
	return c.vocab
}

// Compose maps raw field text to its bitmask flag. It is total: any
// input, including empty or malformed text, yields a flag; text that
// matches nothing degrades to 0 rather than failing, so one unreadable
// value never aborts a batch.
func (c *Composer) Compose(field vocab.Field, raw string) uint64 {
	text := normalize.Normalize(raw)
	if text == "" {
		return 0
	}

	var flag uint64
	for _, name := range c.vocab.CategoriesFor(field, text) {
		bit, err := c.vocab.BitFor(field, name)
		if err != nil {
			// Load-time validation guarantees alias targets are
			// registered; an unmatched name here cannot happen.
			continue
		}
		flag |= bit
	}
	return flag
}

// Decode expands a flag back into the category names whose bits it
// carries, in registration order.
func (c *Composer) Decode(field vocab.Field, flag uint64) []string {
	return c.vocab.Decode(field, flag)
}
