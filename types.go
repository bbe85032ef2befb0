package ottolai

import "time"

// Method identifies which resolution tier produced a translation.
type Method string

const (
	// MethodExactPhrase means the whole input matched a phrase dictionary entry.
	MethodExactPhrase Method = "EXACT_PHRASE"
	// MethodWordMapping means the input was mapped token by token against the
	// phrase dictionary, possibly with unresolved tokens left marked.
	MethodWordMapping Method = "WORD_MAPPING"
	// MethodModelInference means an external AI model produced the translation.
	MethodModelInference Method = "MODEL_INFERENCE"
	// MethodGlyphFallback means the input was transliterated glyph by glyph.
	MethodGlyphFallback Method = "GLYPH_FALLBACK"
	// MethodError means no tier recognized anything in the input.
	MethodError Method = "ERROR"
)

// FailurePlaceholder is returned as the translated text when every tier fails.
// It is deliberately distinct from the input so callers can tell "nothing was
// recognized" apart from "the input came back unchanged".
const FailurePlaceholder = "[çeviri yapılamadı]"

// TranslationResult is the immutable outcome of a single resolution.
// A fresh value is created per request and never persisted.
type TranslationResult struct {
	OriginalText     string    `json:"originalText"`
	TranslatedText   string    `json:"translatedText"`
	Confidence       float64   `json:"confidence"`
	Method           Method    `json:"methodUsed"`
	ProcessingTimeMs float64   `json:"processingTime"`
	Timestamp        time.Time `json:"timestamp"`
}

// ModelResult is the parsed output of an external model translation.
type ModelResult struct {
	TranslatedText string  // Model's Turkish rendition
	Confidence     float64 // Model-reported confidence in [0,1]
	ProcessingTime float64 // Seconds spent inside the model, as reported
}

// OCRResult is the parsed output of an external OCR invocation, consumed as-is.
type OCRResult struct {
	ExtractedText   string  // Source-script text found in the image
	Confidence      float64 // OCR-reported confidence in [0,1]
	RegionsDetected int     // Number of text regions the tool detected
	TranslatedText  string  // Optional translation the OCR tool already produced
}

// TextNode represents a translatable unit of structured content.
type TextNode struct {
	ID       string            // Unique identifier within the document
	Text     string            // Original text content (trimmed)
	Hash     string            // SHA-256 hash of Text
	NodeType string            // Content type: "html_text", etc.
	Metadata map[string]string // Additional info (parent tag, etc.)
}

// IgnoredTags contains HTML tags whose content should not be translated.
var IgnoredTags = map[string]bool{
	"script":   true,
	"style":    true,
	"code":     true,
	"pre":      true,
	"textarea": true,
	"noscript": true,
}

// ProcessedDocument is the result of resolving structured content node by node.
type ProcessedDocument struct {
	Content    string // Content with translations applied, markup preserved
	TotalNodes int    // Translatable nodes found
	Resolved   int    // Nodes resolved by a dictionary or model tier
	Fallbacks  int    // Nodes that ended in glyph fallback or error
}
