package ottolai

import "testing"

func TestWordMappingScore(t *testing.T) {
	p := DefaultConfidencePolicy()

	tests := []struct {
		name     string
		resolved int
		total    int
		expected float64
	}{
		{"full resolution", 4, 4, 0.9},
		{"half resolved", 1, 2, 0.45},
		{"floor applies", 1, 10, 0.3},
		{"nothing resolved", 0, 5, 0},
		{"zero total", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.WordMappingScore(tt.resolved, tt.total); got != tt.expected {
				t.Errorf("WordMappingScore(%d, %d) = %v, want %v", tt.resolved, tt.total, got, tt.expected)
			}
		})
	}
}

func TestGlyphScore(t *testing.T) {
	p := DefaultConfidencePolicy()

	tests := []struct {
		name       string
		recognized int
		total      int
		expected   float64
	}{
		{"all recognized", 10, 10, 0.5},
		{"half recognized", 5, 10, 0.3},
		{"none recognized", 0, 10, 0},
		{"zero total", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.GlyphScore(tt.recognized, tt.total); got != tt.expected {
				t.Errorf("GlyphScore(%d, %d) = %v, want %v", tt.recognized, tt.total, got, tt.expected)
			}
		})
	}
}

func TestGlyphScoreNeverReachesWordMapping(t *testing.T) {
	p := DefaultConfidencePolicy()
	if max := p.GlyphScore(100, 100); max >= p.WordMapping {
		t.Errorf("glyph fallback ceiling %v must stay below word mapping %v", max, p.WordMapping)
	}
}

func TestClampConfidence(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.7, 0.7},
		{1, 1},
		{1.5, 1},
	}

	for _, tt := range tests {
		if got := clampConfidence(tt.input); got != tt.expected {
			t.Errorf("clampConfidence(%v) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}
