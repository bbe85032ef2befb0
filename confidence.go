package ottolai

// ConfidencePolicy consolidates the per-tier confidence constants and their
// degradation rules into one auditable table. Scores are heuristic, not
// calibrated probabilities. A confidence of exactly 0 is reserved for total
// failure: the pipeline ran and recognized nothing.
type ConfidencePolicy struct {
	// ExactPhrase is the score for a full-input phrase dictionary hit.
	ExactPhrase float64
	// WordMapping is the score when every token resolved through the dictionary.
	WordMapping float64
	// WordMappingFloor bounds how far partial word mapping can degrade.
	WordMappingFloor float64
	// GlyphBase is the minimum score for glyph fallback with at least one
	// recognized glyph.
	GlyphBase float64
	// GlyphRange is added to GlyphBase scaled by the recognized-glyph ratio,
	// so fallback scores span [GlyphBase, GlyphBase+GlyphRange].
	GlyphRange float64
}

// DefaultConfidencePolicy returns the standard tier scores.
func DefaultConfidencePolicy() ConfidencePolicy {
	return ConfidencePolicy{
		ExactPhrase:      0.95,
		WordMapping:      0.9,
		WordMappingFloor: 0.3,
		GlyphBase:        0.1,
		GlyphRange:       0.4,
	}
}

// WordMappingScore returns the confidence for a word-mapping result where
// resolved of total tokens were found in the dictionary. Full resolution
// scores WordMapping; partial resolution degrades proportionally to the
// unresolved ratio, never below WordMappingFloor.
func (p ConfidencePolicy) WordMappingScore(resolved, total int) float64 {
	if total <= 0 || resolved <= 0 {
		return 0
	}
	if resolved >= total {
		return p.WordMapping
	}
	score := p.WordMapping * float64(resolved) / float64(total)
	if score < p.WordMappingFloor {
		return p.WordMappingFloor
	}
	return score
}

// GlyphScore returns the confidence for a glyph-fallback result where
// recognized of total glyphs had a mapping. Zero recognized glyphs yields
// exactly 0, the reserved total-failure score.
func (p ConfidencePolicy) GlyphScore(recognized, total int) float64 {
	if total <= 0 || recognized <= 0 {
		return 0
	}
	return p.GlyphBase + p.GlyphRange*float64(recognized)/float64(total)
}

// clampConfidence bounds model-reported confidence to [0,1].
func clampConfidence(c float64) float64 {
	switch {
	case c < 0:
		return 0
	case c > 1:
		return 1
	default:
		return c
	}
}
