package vocab

import (
	"errors"
	"testing"

	"radflag/internal/normalize"
)

func testConfig() *Config {
	return &Config{
		Version: 1,
		Fields: map[Field]FieldConfig{
			FieldExam: {
				Categories: []CategoryConfig{
					{Name: "ct", Bit: 1},
					{Name: "mri", Bit: 2},
					{Name: "ultrasound", Bit: 4},
				},
				Aliases: map[string][]string{
					"ct":         {"ct"},
					"ct scan":    {"ct"},
					"mri":        {"mri"},
					"ultrasound": {"ultrasound"},
				},
			},
		},
	}
}

func TestBuildValid(t *testing.T) {
	v, err := Build(testConfig())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	bit, err := v.BitFor(FieldExam, "mri")
	if err != nil {
		t.Fatalf("BitFor(mri) failed: %v", err)
	}
	if bit != 2 {
		t.Errorf("BitFor(mri) = %d, want 2", bit)
	}
}

func TestBuildRejectsUnknownAliasTarget(t *testing.T) {
	cfg := testConfig()
	fc := cfg.Fields[FieldExam]
	fc.Aliases["pet scan"] = []string{"nuclear"}
	cfg.Fields[FieldExam] = fc

	_, err := Build(cfg)
	if !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestBuildRejectsDuplicateAlias(t *testing.T) {
	cfg := testConfig()
	fc := cfg.Fields[FieldExam]
	// Distinct raw strings that normalize to the same lookup key.
	fc.Aliases["x-ray"] = []string{"ct"}
	fc.Aliases["x ray"] = []string{"mri"}
	cfg.Fields[FieldExam] = fc

	_, err := Build(cfg)
	if !errors.Is(err, ErrDuplicateAlias) {
		t.Errorf("expected ErrDuplicateAlias, got %v", err)
	}
}

func TestBuildRejectsSharedBit(t *testing.T) {
	cfg := testConfig()
	fc := cfg.Fields[FieldExam]
	fc.Categories = append(fc.Categories, CategoryConfig{Name: "nuclear", Bit: 2})
	cfg.Fields[FieldExam] = fc

	_, err := Build(cfg)
	if !errors.Is(err, ErrInvalidBit) {
		t.Errorf("expected ErrInvalidBit for shared bit, got %v", err)
	}
}

func TestBuildRejectsNonPowerOfTwoBit(t *testing.T) {
	cfg := testConfig()
	fc := cfg.Fields[FieldExam]
	fc.Categories = append(fc.Categories, CategoryConfig{Name: "nuclear", Bit: 3})
	cfg.Fields[FieldExam] = fc

	_, err := Build(cfg)
	if !errors.Is(err, ErrInvalidBit) {
		t.Errorf("expected ErrInvalidBit for bit 3, got %v", err)
	}
}

func TestBuildRejectsUnknownField(t *testing.T) {
	cfg := testConfig()
	cfg.Fields["modality"] = cfg.Fields[FieldExam]

	_, err := Build(cfg)
	if !errors.Is(err, ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
}

func TestBitForUnknownCategory(t *testing.T) {
	v, err := Build(testConfig())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if _, err := v.BitFor(FieldExam, "nuclear"); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("expected ErrUnknownCategory, got %v", err)
	}
	if _, err := v.BitFor(FieldOrgan, "head"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("expected ErrUnknownField for unconfigured field, got %v", err)
	}
}

func TestDefaultVocabularyBitsDistinct(t *testing.T) {
	v := Default()

	for _, field := range Fields() {
		cats := v.Categories(field)
		if len(cats) == 0 {
			t.Fatalf("field %q has no categories", field)
		}
		seen := make(map[uint64]string)
		for _, c := range cats {
			if c.Bit&(c.Bit-1) != 0 {
				t.Errorf("field %q category %q bit %d not a power of two", field, c.Name, c.Bit)
			}
			if holder, dup := seen[c.Bit]; dup {
				t.Errorf("field %q categories %q and %q share bit %d", field, holder, c.Name, c.Bit)
			}
			seen[c.Bit] = c.Name
		}
	}
}

func TestCategoriesForCompoundText(t *testing.T) {
	v, err := Build(testConfig())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	got := v.CategoriesFor(FieldExam, normalize.Normalize("CT and MRI"))
	if len(got) != 2 || got[0] != "ct" || got[1] != "mri" {
		t.Errorf("CategoriesFor(ct and mri) = %v, want [ct mri]", got)
	}
}

func TestCategoriesForOverlappingHitsUnion(t *testing.T) {
	v := Default()

	// "thoracic spine" is a spine alias, but "thoracic" on its own
	// references the thorax; both regions flag.
	got := v.CategoriesFor(FieldOrgan, normalize.Normalize("thoracic spine"))
	if len(got) != 2 || got[0] != "thorax" || got[1] != "spine" {
		t.Errorf("CategoriesFor(thoracic spine) = %v, want [thorax spine]", got)
	}

	// "lower extremities" keeps the generic "extremities" hits alive
	// alongside the more specific alias.
	got = v.CategoriesFor(FieldOrgan, normalize.Normalize("pain in lower extremities"))
	want := map[string]bool{"lower_extremities": true, "skeletal": true, "body": true}
	if len(got) != len(want) {
		t.Fatalf("CategoriesFor(pain in lower extremities) = %v, want %v", got, want)
	}
	for _, c := range got {
		if !want[c] {
			t.Errorf("unexpected category %q in %v", c, got)
		}
	}
}

func TestCategoriesForNoMatch(t *testing.T) {
	v := Default()
	if got := v.CategoriesFor(FieldExam, "xyz unrecognized modality"); len(got) != 0 {
		t.Errorf("expected no categories, got %v", got)
	}
	if got := v.CategoriesFor(FieldExam, ""); len(got) != 0 {
		t.Errorf("expected no categories for empty text, got %v", got)
	}
}

func TestCategoriesForCompoundContrastPrecedence(t *testing.T) {
	v := Default()

	// Exact full-string alias.
	got := v.CategoriesFor(FieldContrast, normalize.Normalize("with or without iv contrast"))
	if len(got) != 1 || got[0] != "with_or_without" {
		t.Errorf("exact compound = %v, want [with_or_without]", got)
	}

	// Substring path: the compound phrase must consume its span before
	// the independent "with"/"without" aliases fire.
	got = v.CategoriesFor(FieldContrast, normalize.Normalize("CT abdomen with or without IV contrast, routine"))
	if len(got) != 1 || got[0] != "with_or_without" {
		t.Errorf("embedded compound = %v, want [with_or_without]", got)
	}
}

func TestCategoriesForWholeTokenBoundaries(t *testing.T) {
	v := Default()

	// "without" contains "with" as a prefix but must not flag it.
	got := v.CategoriesFor(FieldContrast, normalize.Normalize("scheduled without delay"))
	if len(got) != 1 || got[0] != "without" {
		t.Errorf("CategoriesFor = %v, want [without]", got)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	v := Default()

	for _, field := range Fields() {
		for _, c := range v.Categories(field) {
			if c.Bit == 0 {
				continue // explicit zero bit is not representable in a flag
			}
			names := v.Decode(field, c.Bit)
			if len(names) != 1 || names[0] != c.Name {
				t.Errorf("Decode(%s, %d) = %v, want [%s]", field, c.Bit, names, c.Name)
			}
		}
	}

	// Combined flags decode to the full set.
	names := v.Decode(FieldExam, 1|2)
	if len(names) != 2 || names[0] != "ct" || names[1] != "mri" {
		t.Errorf("Decode(exam, 3) = %v, want [ct mri]", names)
	}
}

func TestParseYAML(t *testing.T) {
	doc := []byte(`
version: 1
fields:
  exam:
    categories:
      - name: ct
        bit: 1
      - name: mri
        bit: 2
    aliases:
      "ct scan": [ct]
      "mri": [mri]
`)
	v, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if v.Version() != 1 {
		t.Errorf("Version = %d, want 1", v.Version())
	}
	if got := v.CategoriesFor(FieldExam, "ct scan"); len(got) != 1 || got[0] != "ct" {
		t.Errorf("CategoriesFor(ct scan) = %v, want [ct]", got)
	}
}

func TestFingerprintStable(t *testing.T) {
	a, err := Build(DefaultConfig())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	b, err := Build(DefaultConfig())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if a.Fingerprint() == "" || a.Fingerprint() != b.Fingerprint() {
		t.Errorf("fingerprints differ: %q vs %q", a.Fingerprint(), b.Fingerprint())
	}
}
