package ottolai

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/ZaguanLabs/ottolai/dictionary"
)

// ModelProvider is the interface for external model-based translators.
// Implementations must treat every failure as recoverable: the resolver
// never surfaces a provider error, it falls through to the next tier.
type ModelProvider interface {
	Translate(ctx context.Context, text string) (*ModelResult, error)
}

// TranslationCache is the interface for resolution caching.
type TranslationCache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// ContentProcessor is the interface for structured-content processing.
type ContentProcessor interface {
	Extract(content string) (interface{}, []TextNode, error)
	Apply(parsed interface{}, nodes []TextNode, translations map[string]string) (string, error)
	ContentType() string
}

// Resolver maps arbitrary input text to a TranslationResult through four
// tiers, in strict order, short-circuiting on first success:
//
//  1. exact phrase match against the dictionary
//  2. longest-match word mapping, unresolved tokens marked [like this]
//  3. external model inference, when tier 2 left anything unresolved
//  4. glyph-by-glyph transliteration, the guaranteed terminal case
//
// Resolve never returns an error: every tier has a defined worst case and a
// TranslationResult always comes back, possibly with confidence 0.
type Resolver struct {
	phrases           *dictionary.PhraseTable
	glyphs            *dictionary.GlyphTable
	model             ModelProvider
	cache             TranslationCache
	policy            ConfidencePolicy
	logger            *slog.Logger
	parallelThreshold int
}

// ResolverOption is a functional option for configuring the Resolver.
type ResolverOption func(*Resolver)

// WithModel sets the external model provider for tier 3.
// Without one, tier 3 is skipped entirely.
func WithModel(model ModelProvider) ResolverOption {
	return func(r *Resolver) {
		r.model = model
	}
}

// WithCache sets the resolution cache.
func WithCache(cache TranslationCache) ResolverOption {
	return func(r *Resolver) {
		r.cache = cache
	}
}

// WithConfidencePolicy overrides the default tier confidence table.
func WithConfidencePolicy(policy ConfidencePolicy) ResolverOption {
	return func(r *Resolver) {
		r.policy = policy
	}
}

// WithLogger sets a logger for tier-boundary diagnostics. Fallthrough from a
// failed model call is logged here, never surfaced to callers.
func WithLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithParallelThreshold sets the minimum node count for parallel document
// resolution.
func WithParallelThreshold(n int) ResolverOption {
	return func(r *Resolver) {
		r.parallelThreshold = n
	}
}

// NewResolver creates a Resolver over the given dictionaries. Either table
// may be nil: an empty phrase table yields the degraded glyph-only mode, an
// empty glyph table makes tier 4 pass everything through unrecognized.
func NewResolver(phrases *dictionary.PhraseTable, glyphs *dictionary.GlyphTable, opts ...ResolverOption) *Resolver {
	if phrases == nil {
		phrases = dictionary.NewPhraseTable(nil)
	}
	if glyphs == nil {
		glyphs = dictionary.NewGlyphTable(nil)
	}

	r := &Resolver{
		phrases:           phrases,
		glyphs:            glyphs,
		policy:            DefaultConfidencePolicy(),
		parallelThreshold: defaultParallelThreshold,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// cachedResolution is the compact payload stored in the cache.
type cachedResolution struct {
	Text       string  `json:"t"`
	Method     Method  `json:"m"`
	Confidence float64 `json:"c"`
}

// Resolve runs the cascade on text. Whitespace collapsing and NFC
// normalization happen exactly once, here, before tier 1.
func (r *Resolver) Resolve(ctx context.Context, text string) TranslationResult {
	start := time.Now()

	normalized := NormalizeText(text)
	if normalized == "" {
		return r.finish(text, start, FailurePlaceholder, MethodError, 0)
	}

	key := ResolveKey(normalized)
	if r.cache != nil {
		if raw, ok := r.cache.Get(key); ok {
			var cached cachedResolution
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return r.finish(text, start, cached.Text, cached.Method, cached.Confidence)
			}
		}
	}

	// Tier 1: exact phrase match.
	if target, ok := r.phrases.Lookup(normalized); ok {
		return r.store(key, r.finish(text, start, target, MethodExactPhrase, r.policy.ExactPhrase))
	}

	// Tier 2: longest-match word mapping.
	mapped := r.mapTokens(normalized)
	if mapped.total > 0 && mapped.resolved == mapped.total {
		return r.store(key, r.finish(text, start, mapped.text, MethodWordMapping, r.policy.WordMapping))
	}

	// Tier 3: model inference, only when tier 2 left unresolved tokens.
	if r.model != nil {
		res, err := r.model.Translate(ctx, normalized)
		switch {
		case err != nil:
			r.logWarn("model inference failed, falling through", "error", err)
		case res == nil || strings.TrimSpace(res.TranslatedText) == "":
			r.logWarn("model returned empty translation, falling through")
		default:
			return r.store(key, r.finish(text, start, res.TranslatedText, MethodModelInference, clampConfidence(res.Confidence)))
		}
	}

	// A partial word mapping is strictly more informative than raw
	// transliteration; return it once the model has had its chance.
	if mapped.resolved > 0 {
		score := r.policy.WordMappingScore(mapped.resolved, mapped.total)
		return r.store(key, r.finish(text, start, mapped.text, MethodWordMapping, score))
	}

	// Tier 4: glyph fallback. Never fails, but recognizing nothing is the
	// reserved confidence-0 case with a marked placeholder.
	translit, recognized, total := r.glyphs.Transliterate(normalized)
	if recognized == 0 {
		return r.finish(text, start, FailurePlaceholder, MethodError, 0)
	}
	score := r.policy.GlyphScore(recognized, total)
	return r.store(key, r.finish(text, start, translit, MethodGlyphFallback, score))
}

// tokenMapping is the outcome of the word-mapping tier.
type tokenMapping struct {
	text     string
	resolved int
	total    int
}

// mapTokens scans the token stream with a longest-match-first n-gram window
// so a multi-word dictionary entry beats the single-word entries inside it.
// Tokens without letters pass through and count as resolved; lexical tokens
// with no match are wrapped in brackets so partial results stay visible.
func (r *Resolver) mapTokens(normalized string) tokenMapping {
	tokens := Tokenize(normalized)
	out := make([]string, 0, len(tokens))

	m := tokenMapping{total: len(tokens)}
	window := r.phrases.MaxSourceWords()

	i := 0
	for i < len(tokens) {
		n := window
		if rest := len(tokens) - i; n > rest {
			n = rest
		}

		matched := false
		for ; n >= 1; n-- {
			candidate := strings.Join(tokens[i:i+n], " ")
			if target, ok := r.phrases.Lookup(candidate); ok {
				out = append(out, target)
				m.resolved += n
				i += n
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		token := tokens[i]
		if !IsLexical(token) {
			out = append(out, token)
			m.resolved++
		} else {
			out = append(out, "["+token+"]")
		}
		i++
	}

	m.text = strings.Join(out, " ")
	return m
}

// finish stamps a result. Results are immutable once returned.
func (r *Resolver) finish(original string, start time.Time, translated string, method Method, confidence float64) TranslationResult {
	return TranslationResult{
		OriginalText:     original,
		TranslatedText:   translated,
		Confidence:       confidence,
		Method:           method,
		ProcessingTimeMs: float64(time.Since(start).Microseconds()) / 1000.0,
		Timestamp:        time.Now().UTC(),
	}
}

// store writes a successful resolution to the cache. Set failures are
// ignored; the cache is an optimization, not a tier.
func (r *Resolver) store(key string, result TranslationResult) TranslationResult {
	if r.cache != nil && result.Method != MethodError {
		payload, err := json.Marshal(cachedResolution{
			Text:       result.TranslatedText,
			Method:     result.Method,
			Confidence: result.Confidence,
		})
		if err == nil {
			_ = r.cache.Set(key, string(payload))
		}
	}
	return result
}

func (r *Resolver) logWarn(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Warn(msg, args...)
	}
}

// ResolveDocument runs the cascade per text node of structured content,
// preserving the surrounding markup. Unlike Resolve, it can fail: the
// processor may be unable to parse the document at all.
func (r *Resolver) ResolveDocument(ctx context.Context, content string, proc ContentProcessor) (*ProcessedDocument, error) {
	parsed, nodes, err := proc.Extract(content)
	if err != nil {
		return nil, &ResolveError{Message: "extracting text nodes", Cause: err}
	}

	if len(nodes) == 0 {
		return &ProcessedDocument{Content: content}, nil
	}

	byHash := r.resolveNodes(ctx, nodes)

	doc := &ProcessedDocument{TotalNodes: len(nodes)}
	translations := make(map[string]string, len(byHash))
	seen := make(map[string]bool, len(byHash))
	for _, node := range nodes {
		res, ok := byHash[node.Hash]
		if !ok {
			continue
		}
		translations[node.Hash] = res.TranslatedText
		if seen[node.Hash] {
			continue
		}
		seen[node.Hash] = true
		switch res.Method {
		case MethodGlyphFallback, MethodError:
			doc.Fallbacks++
		default:
			doc.Resolved++
		}
	}

	out, err := proc.Apply(parsed, nodes, translations)
	if err != nil {
		return nil, &ResolveError{Message: "applying translations", Cause: err}
	}

	doc.Content = out
	return doc, nil
}
