// Package cache provides resolution caching implementations.
//
// The resolver stores compact JSON-encoded resolutions keyed by the SHA-256
// hash of the normalized input plus the language pair. Re-resolving the same
// text with unchanged dictionaries is deterministic, so cached entries never
// go stale except by TTL.
package cache

// TranslationCache is the interface for resolution caching.
type TranslationCache interface {
	// Get retrieves a cached resolution. Returns empty string and false if
	// not found or expired.
	Get(key string) (string, bool)

	// Set stores a resolution in the cache.
	Set(key string, value string) error
}
