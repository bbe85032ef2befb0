package dictionary

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParsePhrases(t *testing.T) {
	input := strings.Join([]string{
		"# Ottoman phrase dictionary",
		"",
		"كتاب\tkitap",
		"كتاب اوقومق\tkitap okumak",
		"line without a tab is skipped",
	}, "\n")

	table, err := ParsePhrases(strings.NewReader(input), LoadOptions{})
	if err != nil {
		t.Fatalf("ParsePhrases failed: %v", err)
	}

	if table.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", table.Len())
	}
	if target, ok := table.Lookup("كتاب اوقومق"); !ok || target != "kitap okumak" {
		t.Errorf("multi-word entry missing, got %q (ok=%v)", target, ok)
	}
}

func TestParsePhrasesBlankTarget(t *testing.T) {
	_, err := ParsePhrases(strings.NewReader("كتاب\t\n"), LoadOptions{})
	if err == nil {
		t.Fatal("expected error for blank phrase target")
	}

	var confErr *ConfigurationError
	if !errors.As(err, &confErr) {
		t.Fatalf("expected ConfigurationError, got %T", err)
	}
}

func TestParsePhrasesBlankKey(t *testing.T) {
	_, err := ParsePhrases(strings.NewReader("\tkitap\n"), LoadOptions{})
	if err == nil {
		t.Fatal("expected error for blank key")
	}
}

func TestParseGlyphsBlankTargetAllowed(t *testing.T) {
	input := "ا\ta\nع\t\n"

	table, err := ParseGlyphs(strings.NewReader(input), LoadOptions{})
	if err != nil {
		t.Fatalf("ParseGlyphs failed: %v", err)
	}

	if table.Len() != 2 {
		t.Fatalf("expected 2 rules, got %d", table.Len())
	}
	if target, ok := table.Target("ع"); !ok || target != "" {
		t.Errorf("blank glyph target should load, got %q (ok=%v)", target, ok)
	}
}

func TestParseDuplicateOverwrite(t *testing.T) {
	input := "كتاب\teski\nكتاب\tkitap\n"

	table, err := ParsePhrases(strings.NewReader(input), LoadOptions{Duplicates: DuplicateOverwrite})
	if err != nil {
		t.Fatalf("ParsePhrases failed: %v", err)
	}

	if target, _ := table.Lookup("كتاب"); target != "kitap" {
		t.Errorf("last occurrence should win, got %q", target)
	}
	if table.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", table.Len())
	}
}

func TestParseDuplicateReject(t *testing.T) {
	input := "كتاب\teski\nكتاب\tkitap\n"

	_, err := ParsePhrases(strings.NewReader(input), LoadOptions{Duplicates: DuplicateReject})
	if err == nil {
		t.Fatal("expected error under reject policy")
	}
	if !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("expected duplicate in message, got: %v", err)
	}
}

func TestLoadPhrasesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phrases.tsv")
	if err := os.WriteFile(path, []byte("كتاب\tkitap\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := LoadPhrases(path, LoadOptions{})
	if err != nil {
		t.Fatalf("LoadPhrases failed: %v", err)
	}
	if table.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", table.Len())
	}
}

func TestLoadPhrasesMissingFile(t *testing.T) {
	_, err := LoadPhrases(filepath.Join(t.TempDir(), "nope.tsv"), LoadOptions{})
	if err == nil {
		t.Fatal("expected error for missing file")
	}

	var confErr *ConfigurationError
	if !errors.As(err, &confErr) {
		t.Fatalf("expected ConfigurationError, got %T", err)
	}
	if confErr.Path == "" {
		t.Error("error should carry the path")
	}
}

func TestLoadGlyphsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glyphs.tsv")
	if err := os.WriteFile(path, []byte("ا\ta\nع\t\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := LoadGlyphs(path, LoadOptions{})
	if err != nil {
		t.Fatalf("LoadGlyphs failed: %v", err)
	}
	if table.Len() != 2 {
		t.Errorf("expected 2 rules, got %d", table.Len())
	}
}

func TestDefault(t *testing.T) {
	phrases, glyphs, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}

	if phrases.Len() == 0 {
		t.Error("embedded phrase dictionary should not be empty")
	}
	if glyphs.Len() == 0 {
		t.Error("embedded glyph table should not be empty")
	}

	if target, ok := phrases.Lookup("السلام عليكم"); !ok || target != "Selam aleyküm" {
		t.Errorf("expected embedded greeting entry, got %q (ok=%v)", target, ok)
	}
	if target, ok := glyphs.Target("ا"); !ok || target != "a" {
		t.Errorf("expected embedded alif rule, got %q (ok=%v)", target, ok)
	}
}
