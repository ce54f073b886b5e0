package vocab

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"radflag/internal/normalize"
)

// Config is the versioned vocabulary configuration format. Bit values
// are part of the persisted data, never inferred from ordering, so the
// append-only/no-renumber guarantee survives edits and re-marshaling.
//
//	version: 1
//	fields:
//	  exam:
//	    categories:
//	      - name: ct
//	        bit: 1
//	    aliases:
//	      "ct scan": [ct]
type Config struct {
	Version int                   `yaml:"version"`
	Fields  map[Field]FieldConfig `yaml:"fields"`
}

// FieldConfig holds one field's category list and alias table.
type FieldConfig struct {
	Categories []CategoryConfig    `yaml:"categories"`
	Aliases    map[string][]string `yaml:"aliases"`
}

// CategoryConfig declares a canonical category with its fixed bit.
type CategoryConfig struct {
	Name string `yaml:"name"`
	Bit  uint64 `yaml:"bit"`
}

// Load reads and builds a vocabulary from a YAML file.
func Load(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}
	return Parse(data)
}

// Parse builds a vocabulary from YAML bytes.
func Parse(data []byte) (*Vocabulary, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse vocabulary: %w", err)
	}
	return Build(&cfg)
}

// Build validates a configuration eagerly and constructs the immutable
// Vocabulary. All configuration errors surface here, before any row is
// processed.
func Build(cfg *Config) (*Vocabulary, error) {
	v := &Vocabulary{
		version: cfg.Version,
		fields:  make(map[Field]*fieldVocab, len(cfg.Fields)),
	}

	for field, fc := range cfg.Fields {
		if !field.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
		fv, err := buildField(field, fc)
		if err != nil {
			return nil, err
		}
		v.fields[field] = fv
	}

	v.fingerprint = fingerprint(cfg)
	return v, nil
}

func buildField(field Field, fc FieldConfig) (*fieldVocab, error) {
	if len(fc.Categories) == 0 {
		return nil, fmt.Errorf("field %q: no categories registered", field)
	}

	fv := &fieldVocab{
		order: make(map[string]int, len(fc.Categories)),
		bits:  make(map[string]uint64, len(fc.Categories)),
		exact: make(map[string][]string, len(fc.Aliases)),
	}

	usedBits := make(map[uint64]string, len(fc.Categories))
	for i, cc := range fc.Categories {
		if cc.Name == "" {
			return nil, fmt.Errorf("field %q: category %d has empty name", field, i)
		}
		if _, dup := fv.bits[cc.Name]; dup {
			return nil, fmt.Errorf("field %q: category %q registered twice", field, cc.Name)
		}
		if cc.Bit&(cc.Bit-1) != 0 {
			return nil, fmt.Errorf("%w: field %q category %q bit %d is not a power of two",
				ErrInvalidBit, field, cc.Name, cc.Bit)
		}
		if holder, taken := usedBits[cc.Bit]; taken {
			return nil, fmt.Errorf("%w: field %q categories %q and %q share bit %d",
				ErrInvalidBit, field, holder, cc.Name, cc.Bit)
		}
		usedBits[cc.Bit] = cc.Name
		fv.categories = append(fv.categories, Category{Name: cc.Name, Bit: cc.Bit})
		fv.order[cc.Name] = i
		fv.bits[cc.Name] = cc.Bit
	}

	for raw, targets := range fc.Aliases {
		key := normalize.Normalize(raw)
		if key == "" {
			return nil, fmt.Errorf("field %q: alias %q normalizes to empty string", field, raw)
		}
		if _, dup := fv.exact[key]; dup {
			return nil, fmt.Errorf("%w: field %q alias %q (normalized %q)",
				ErrDuplicateAlias, field, raw, key)
		}
		if len(targets) == 0 {
			return nil, fmt.Errorf("field %q: alias %q has no categories", field, raw)
		}
		cats := make([]string, 0, len(targets))
		seen := make(map[string]bool, len(targets))
		for _, c := range targets {
			if _, ok := fv.bits[c]; !ok {
				return nil, fmt.Errorf("%w: field %q alias %q targets %q",
					ErrUnknownCategory, field, raw, c)
			}
			if !seen[c] {
				seen[c] = true
				cats = append(cats, c)
			}
		}
		fv.exact[key] = cats
		fv.phrases = append(fv.phrases, phrase{
			text:       key,
			tokens:     strings.Fields(key),
			categories: cats,
		})
	}

	// Longer phrases consume their span first; ties break alphabetically
	// so matching stays deterministic regardless of map iteration order.
	sort.Slice(fv.phrases, func(i, j int) bool {
		if len(fv.phrases[i].tokens) != len(fv.phrases[j].tokens) {
			return len(fv.phrases[i].tokens) > len(fv.phrases[j].tokens)
		}
		return fv.phrases[i].text < fv.phrases[j].text
	})

	return fv, nil
}

// fingerprint hashes a canonical rendering of the configuration.
func fingerprint(cfg *Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "v%d", cfg.Version)
	for _, field := range Fields() {
		fc, ok := cfg.Fields[field]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "|%s:", field)
		for _, c := range fc.Categories {
			fmt.Fprintf(&b, "%s=%d;", c.Name, c.Bit)
		}
		keys := make([]string, 0, len(fc.Aliases))
		for k := range fc.Aliases {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "%s->%s;", k, strings.Join(fc.Aliases[k], ","))
		}
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
