package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DuplicatePolicy controls what happens when a source key appears twice.
// The observed source behavior is a silent overwrite; that is a plausible
// bug class rather than a feature, so the policy is explicit and logged.
type DuplicatePolicy int

const (
	// DuplicateOverwrite keeps the last occurrence and logs a warning.
	DuplicateOverwrite DuplicatePolicy = iota
	// DuplicateReject fails the load on the first duplicate key.
	DuplicateReject
)

// LoadOptions configures dictionary parsing.
type LoadOptions struct {
	Duplicates DuplicatePolicy
	Logger     *slog.Logger // nil disables duplicate warnings
}

// ConfigurationError indicates a dictionary source that is missing or
// unparseable. It is fatal at startup: the service either refuses to start
// or continues in glyph-only mode with a loud log entry.
type ConfigurationError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ConfigurationError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("dictionary configuration error: %s: %v", msg, e.Cause)
	}
	return fmt.Sprintf("dictionary configuration error: %s", msg)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// ParsePhrases reads tab-delimited source<TAB>target lines into a phrase
// table. Blank lines, #-comments, and lines without a tab are skipped.
// Blank keys and blank targets are load errors.
func ParsePhrases(r io.Reader, opts LoadOptions) (*PhraseTable, error) {
	t := &PhraseTable{entries: make(map[string]string)}
	err := parseLines(r, opts, "phrase", func(src, target string, line int) error {
		if target == "" {
			return &ConfigurationError{Message: fmt.Sprintf("line %d: blank target for %q", line, src)}
		}
		t.insert(src, target)
		return nil
	}, func(src string) bool {
		_, ok := t.entries[norm.NFC.String(src)]
		return ok
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ParseGlyphs reads tab-delimited glyph rules. Unlike phrases, a blank
// target is legal: some graphemes (ayn, hamza, sukun) map to nothing.
func ParseGlyphs(r io.Reader, opts LoadOptions) (*GlyphTable, error) {
	t := &GlyphTable{rules: make(map[string]string)}
	err := parseLines(r, opts, "glyph", func(src, target string, line int) error {
		t.insert(src, target)
		return nil
	}, func(src string) bool {
		_, ok := t.rules[norm.NFC.String(src)]
		return ok
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// parseLines runs the shared line discipline: comment/blank skipping, tab
// splitting, blank-key rejection, and the duplicate policy.
func parseLines(r io.Reader, opts LoadOptions, kind string, add func(src, target string, line int) error, exists func(src string) bool) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Text()
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		// Split the untrimmed line: a glyph rule may legitimately map to
		// nothing, leaving the line with a trailing tab.
		if !strings.Contains(raw, "\t") {
			continue
		}

		parts := strings.SplitN(raw, "\t", 2)
		src := strings.TrimSpace(parts[0])
		target := strings.TrimSpace(parts[1])

		if src == "" {
			return &ConfigurationError{Message: fmt.Sprintf("line %d: blank %s key", line, kind)}
		}

		if exists(src) {
			switch opts.Duplicates {
			case DuplicateReject:
				return &ConfigurationError{Message: fmt.Sprintf("line %d: duplicate %s key %q", line, kind, src)}
			default:
				if opts.Logger != nil {
					opts.Logger.Warn("duplicate dictionary key overwritten",
						"kind", kind, "key", src, "line", line)
				}
			}
		}

		if err := add(src, target, line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return &ConfigurationError{Message: "reading dictionary source", Cause: err}
	}
	return nil
}

// LoadPhrases parses a phrase dictionary file.
func LoadPhrases(path string, opts LoadOptions) (*PhraseTable, error) {
	f, err := os.Open(path) // #nosec G304 - dictionary path comes from configuration
	if err != nil {
		return nil, &ConfigurationError{Path: path, Message: "opening phrase dictionary", Cause: err}
	}
	defer f.Close()

	t, err := ParsePhrases(f, opts)
	if err != nil {
		if ce, ok := err.(*ConfigurationError); ok && ce.Path == "" {
			ce.Path = path
		}
		return nil, err
	}
	return t, nil
}

// LoadGlyphs parses a glyph table file.
func LoadGlyphs(path string, opts LoadOptions) (*GlyphTable, error) {
	f, err := os.Open(path) // #nosec G304 - dictionary path comes from configuration
	if err != nil {
		return nil, &ConfigurationError{Path: path, Message: "opening glyph table", Cause: err}
	}
	defer f.Close()

	t, err := ParseGlyphs(f, opts)
	if err != nil {
		if ce, ok := err.(*ConfigurationError); ok && ce.Path == "" {
			ce.Path = path
		}
		return nil, err
	}
	return t, nil
}
