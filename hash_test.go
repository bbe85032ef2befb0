package ottolai

import (
	"strings"
	"testing"
)

func TestHashText(t *testing.T) {
	h1 := HashText("كتاب")
	h2 := HashText("كتاب")
	h3 := HashText("سوز")

	if h1 != h2 {
		t.Error("same text must hash identically")
	}
	if h1 == h3 {
		t.Error("different texts must hash differently")
	}
	if len(h1) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(h1))
	}
}

func TestHashTextTrims(t *testing.T) {
	if HashText("  كتاب  ") != HashText("كتاب") {
		t.Error("surrounding whitespace must not affect the hash")
	}
}

func TestResolveKey(t *testing.T) {
	key := ResolveKey("كتاب")

	if !strings.HasSuffix(key, ":ota:tr") {
		t.Errorf("key must carry the language pair, got %q", key)
	}
	if !strings.HasPrefix(key, HashText("كتاب")) {
		t.Errorf("key must start with the text hash, got %q", key)
	}
}
