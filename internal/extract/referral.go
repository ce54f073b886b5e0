// Package extract reduces referral narratives to the clinical phrases
// the flagging engine consumes.
package extract

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// recommendationRE pulls the phrase after a "Recommendation:" or
// "Exam:" label, up to the first period or line break.
var recommendationRE = regexp.MustCompile(`(?i)(?:recommendation|exam)\s*:\s*([^.\n]+)`)

// contrastKeywords mark where contrast wording starts in a referral.
var contrastKeywords = map[string]bool{
	"w":       true,
	"wo":      true,
	"with":    true,
	"without": true,
	"wo/w":    true,
}

// modalityModifiers extend an exam phrase beyond its first word
// ("ct angiography", "mri enterography", "bone scan").
var modalityModifiers = map[string]bool{
	"angiography":  true,
	"arthrography": true,
	"enterography": true,
	"fistulogram":  true,
	"urography":    true,
	"venography":   true,
	"quantitative": true,
	"scan":         true,
}

// CleanRecommendation extracts the recommended-exam phrase from a
// referral narrative. Labeled recommendations win; otherwise the text
// is flattened to one line with the trailing period dropped. Markup is
// stripped first so HTML-bearing EHR exports degrade to plain text
// instead of an unmatchable blob. Never fails; empty input yields "".
func CleanRecommendation(text string) string {
	if strings.ContainsRune(text, '<') {
		text = stripMarkup(text)
	}
	if m := recommendationRE.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	flat := strings.ReplaceAll(text, "\n", " ")
	return strings.TrimSuffix(strings.TrimSpace(flat), ".")
}

// Referral is a cleaned referral split into the three raw fields fed
// to the flagging pipeline.
type Referral struct {
	Exam     string
	BodyPart string
	Contrast string
}

// ParseReferral splits a cleaned referral phrase into exam, body part
// and contrast details. The exam runs through the first modality
// modifier; the contrast part starts at the first contrast keyword;
// whatever lies between is the body part. Unparseable input yields
// empty parts, never an error.
func ParseReferral(text string) Referral {
	words := strings.Fields(text)
	if len(words) == 0 {
		return Referral{}
	}
	for i, w := range words {
		words[i] = strings.TrimSuffix(w, ",")
	}

	examEnd := 0
	for i, w := range words {
		if modalityModifiers[strings.ToLower(w)] {
			examEnd = i
			break
		}
	}

	ref := Referral{Exam: strings.Join(words[:examEnd+1], " ")}
	rest := words[examEnd+1:]

	for i, w := range rest {
		if contrastKeywords[strings.ToLower(w)] {
			ref.BodyPart = strings.Join(rest[:i], " ")
			ref.Contrast = strings.Join(rest[i:], " ")
			return ref
		}
	}
	ref.BodyPart = strings.Join(rest, " ")
	return ref
}

// stripMarkup reduces HTML to its visible text, skipping script and
// style subtrees.
func stripMarkup(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return strings.TrimSpace(buf.String())
}
