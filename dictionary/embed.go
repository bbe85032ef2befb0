package dictionary

import "embed"

//go:embed data
var defaultData embed.FS

// Default returns the embedded starter tables. They cover the common glyph
// inventory plus a modest phrase list; production deployments point the
// loader at the full merged mapping files instead.
func Default() (*PhraseTable, *GlyphTable, error) {
	pf, err := defaultData.Open("data/phrases.tsv")
	if err != nil {
		return nil, nil, &ConfigurationError{Path: "data/phrases.tsv", Message: "opening embedded phrases", Cause: err}
	}
	defer pf.Close()

	phrases, err := ParsePhrases(pf, LoadOptions{})
	if err != nil {
		return nil, nil, err
	}

	gf, err := defaultData.Open("data/glyphs.tsv")
	if err != nil {
		return nil, nil, &ConfigurationError{Path: "data/glyphs.tsv", Message: "opening embedded glyphs", Cause: err}
	}
	defer gf.Close()

	glyphs, err := ParseGlyphs(gf, LoadOptions{})
	if err != nil {
		return nil, nil, err
	}

	return phrases, glyphs, nil
}
