// Package dictionary provides the static lookup tables behind the resolver:
// a phrase dictionary mapping Ottoman strings to Turkish equivalents and a
// glyph table mapping Arabic-script graphemes to Latin letters. Tables are
// loaded once at startup and immutable afterwards.
package dictionary

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// PhraseTable holds source-to-target phrase mappings. Sources may contain
// spaces; during scanning longer sources always win over shorter ones so a
// multi-word idiom is never pre-empted by a one-word entry inside it.
type PhraseTable struct {
	entries  map[string]string
	maxWords int
}

// NewPhraseTable builds a table from a ready-made mapping. The map is copied;
// callers keep no handle into the table's state.
func NewPhraseTable(entries map[string]string) *PhraseTable {
	t := &PhraseTable{entries: make(map[string]string, len(entries))}
	for src, target := range entries {
		t.insert(src, target)
	}
	return t
}

// insert stores an entry with its source in NFC form, matching the
// normalization the resolver applies to input text.
func (t *PhraseTable) insert(src, target string) {
	src = norm.NFC.String(src)
	t.entries[src] = target
	if n := len(strings.Fields(src)); n > t.maxWords {
		t.maxWords = n
	}
}

// Lookup returns the target for an exact source match. Matching is
// case-sensitive and script-aware: a Latin token never matches an
// Arabic-script key because only exact equality counts.
func (t *PhraseTable) Lookup(src string) (string, bool) {
	target, ok := t.entries[src]
	return target, ok
}

// MaxSourceWords returns the word count of the longest source entry,
// bounding the n-gram window a scanner needs to consider.
func (t *PhraseTable) MaxSourceWords() int {
	return t.maxWords
}

// Len returns the number of entries.
func (t *PhraseTable) Len() int {
	return len(t.entries)
}

// GlyphTable holds grapheme-to-Latin mappings. Sources are usually single
// runes but may span several (ligatures, positional forms); transliteration
// tries longer sources first.
type GlyphTable struct {
	rules        map[string]string
	maxSourceLen int // in runes
}

// NewGlyphTable builds a table from a ready-made mapping.
func NewGlyphTable(rules map[string]string) *GlyphTable {
	t := &GlyphTable{rules: make(map[string]string, len(rules))}
	for src, target := range rules {
		t.insert(src, target)
	}
	return t
}

func (t *GlyphTable) insert(src, target string) {
	src = norm.NFC.String(src)
	t.rules[src] = target
	if n := len([]rune(src)); n > t.maxSourceLen {
		t.maxSourceLen = n
	}
}

// Target returns the Latin replacement for a source grapheme.
func (t *GlyphTable) Target(src string) (string, bool) {
	target, ok := t.rules[src]
	return target, ok
}

// Len returns the number of rules.
func (t *GlyphTable) Len() int {
	return len(t.rules)
}

// Transliterate replaces each glyph of s using the table, longest source
// first. Unknown glyphs pass through unchanged; whitespace is preserved and
// not counted. Returns the result plus recognized and total glyph counts so
// the caller can scale confidence by the recognized ratio. This never fails.
func (t *GlyphTable) Transliterate(s string) (result string, recognized, total int) {
	runes := []rune(s)
	var b strings.Builder

	i := 0
	for i < len(runes) {
		if unicode.IsSpace(runes[i]) {
			b.WriteRune(runes[i])
			i++
			continue
		}

		window := t.maxSourceLen
		if rest := len(runes) - i; window > rest {
			window = rest
		}

		matched := false
		for n := window; n >= 1; n-- {
			src := string(runes[i : i+n])
			if target, ok := t.rules[src]; ok {
				b.WriteString(target)
				recognized += n
				total += n
				i += n
				matched = true
				break
			}
		}

		if !matched {
			b.WriteRune(runes[i])
			total++
			i++
		}
	}

	return b.String(), recognized, total
}
