package ottolai

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Language pair identifiers used in cache keys. The engine translates one
// fixed pair; keys still carry it so a shared cache can host other pairs.
const (
	SourceLang = "ota" // Ottoman Turkish, Arabic script
	TargetLang = "tr"  // Modern Turkish, Latin script
)

// HashText computes the SHA-256 hash of the trimmed text.
func HashText(text string) string {
	trimmed := strings.TrimSpace(text)
	hash := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(hash[:])
}

// ResolveKey derives the cache key for a normalized input text.
func ResolveKey(normalized string) string {
	return HashText(normalized) + ":" + SourceLang + ":" + TargetLang
}
