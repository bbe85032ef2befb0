// Command ottolai translates Ottoman Turkish text to modern Turkish.
//
// One-shot mode resolves a text or HTML file (or stdin) and prints the
// result. Serve mode runs the HTTP API.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/ZaguanLabs/ottolai"
	"github.com/ZaguanLabs/ottolai/cache"
	"github.com/ZaguanLabs/ottolai/config"
	"github.com/ZaguanLabs/ottolai/dictionary"
	"github.com/ZaguanLabs/ottolai/processor"
	"github.com/ZaguanLabs/ottolai/provider"
	"github.com/ZaguanLabs/ottolai/server"
)

// Build-time variables (can be overridden with ldflags)
var (
	version   = ottolai.Version
	commit    = ottolai.GitCommit
	buildDate = ottolai.BuildDate
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("ottolai", flag.ContinueOnError)
	fs.SetOutput(stderr)

	// Flags
	serve := fs.Bool("serve", false, "Run the HTTP API server")
	phrasesPath := fs.String("phrases", "", "Phrase dictionary TSV (default: embedded)")
	glyphsPath := fs.String("glyphs", "", "Glyph dictionary TSV (default: embedded)")
	modelScript := fs.String("model-script", "", "Python translation script for tier 3")
	python := fs.String("python", "python3", "Python interpreter for subprocess adapters")
	rateLimit := fs.Int("rate-limit", 0, "Model requests per minute (0 = unlimited)")
	cacheTTL := fs.Int("cache-ttl", 3600, "Cache TTL in seconds (0 to disable)")
	importCache := fs.String("import-cache", "", "Preload cache from a JSON export")
	exportCache := fs.String("export-cache", "", "Write cache to a JSON export after resolving")
	output := fs.String("output", "", "Output file (default: stdout)")
	outputShort := fs.String("o", "", "Output file (short for --output)")
	jsonOutput := fs.Bool("json", false, "Output result as JSON")
	quiet := fs.Bool("quiet", false, "Suppress progress output")
	showVersion := fs.Bool("version", false, "Show version")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintf(stdout, "%s %s\n", ottolai.Name, version)
		if commit != "unknown" && commit != "" {
			fmt.Fprintf(stdout, "  commit:  %s\n", commit)
		}
		if buildDate != "unknown" && buildDate != "" {
			fmt.Fprintf(stdout, "  built:   %s\n", buildDate)
		}
		return nil
	}

	if *serve {
		return runServe(stderr)
	}

	// Handle -o alias for --output
	if *outputShort != "" && *output == "" {
		*output = *outputShort
	}

	// Get input
	var input string
	var inputName string

	if fs.NArg() == 0 {
		// Read from stdin
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		input = string(data)
		inputName = "stdin"
	} else {
		// Read from file - user-provided path is intentional for CLI
		inputPath := fs.Arg(0)
		data, err := os.ReadFile(inputPath) // #nosec G304 - CLI tool reads user-specified files
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}
		input = string(data)
		inputName = filepath.Base(inputPath)
	}

	// Load dictionaries
	phrases, glyphs, err := loadDictionaries(*phrasesPath, *glyphsPath)
	if err != nil {
		return err
	}

	// Build options
	opts := []ottolai.ResolverOption{}

	var memCache *cache.InMemoryCache
	if *cacheTTL > 0 || *importCache != "" || *exportCache != "" {
		memCache = cache.NewInMemoryCache(*cacheTTL)
		opts = append(opts, ottolai.WithCache(memCache))
	}

	if *importCache != "" {
		res, err := cache.NewImporter(memCache).ImportFromFile(*importCache)
		if err != nil {
			return fmt.Errorf("importing cache: %w", err)
		}
		if !*quiet {
			fmt.Fprintf(stderr, "Imported %d cached resolutions\n", res.Imported)
		}
	}

	if *modelScript != "" {
		var model ottolai.ModelProvider = provider.NewScriptModel(provider.ScriptConfig{
			ScriptPath: *modelScript,
			Python:     *python,
		})
		if *rateLimit > 0 {
			model = ottolai.NewRateLimitedModel(model, ottolai.RateLimitConfig{
				RequestsPerMinute: *rateLimit,
			})
		}
		opts = append(opts, ottolai.WithModel(model))
	}

	resolver := ottolai.NewResolver(phrases, glyphs, opts...)

	if !*quiet {
		fmt.Fprintf(stderr, "Resolving %s...\n", inputName)
	}

	start := time.Now()

	// HTML input goes through the document pipeline, everything else is
	// resolved as plain text.
	var writeResult func(io.Writer) error
	if strings.HasSuffix(strings.ToLower(inputName), ".html") {
		doc, err := resolver.ResolveDocument(context.Background(), input, processor.NewHTMLProcessor())
		if err != nil {
			return fmt.Errorf("resolving document: %w", err)
		}
		elapsed := time.Since(start)
		writeResult = func(w io.Writer) error {
			if *jsonOutput {
				return outputDocumentJSON(w, doc, elapsed)
			}
			_, err := fmt.Fprint(w, doc.Content)
			if err == nil && !*quiet {
				fmt.Fprintf(stderr, "\nDone in %v\n", elapsed.Round(time.Millisecond))
				fmt.Fprintf(stderr, "  Nodes found: %d\n", doc.TotalNodes)
				fmt.Fprintf(stderr, "  Resolved:    %d\n", doc.Resolved)
				fmt.Fprintf(stderr, "  Fallbacks:   %d\n", doc.Fallbacks)
			}
			return err
		}
	} else {
		result := resolver.Resolve(context.Background(), input)
		writeResult = func(w io.Writer) error {
			if *jsonOutput {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			_, err := fmt.Fprintln(w, result.TranslatedText)
			if err == nil && !*quiet {
				fmt.Fprintf(stderr, "\nMethod: %s (confidence %.2f)\n", result.Method, result.Confidence)
			}
			return err
		}
	}

	// Output
	var out io.Writer = stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := writeResult(out); err != nil {
		return err
	}

	if *exportCache != "" {
		meta := map[string]string{"source": inputName, "version": version}
		if err := cache.NewExporter(memCache).ExportToFile(*exportCache, meta); err != nil {
			return fmt.Errorf("exporting cache: %w", err)
		}
	}

	return nil
}

// loadDictionaries loads the phrase and glyph tables from the given paths,
// falling back to the embedded dictionaries for empty paths.
func loadDictionaries(phrasesPath, glyphsPath string) (*dictionary.PhraseTable, *dictionary.GlyphTable, error) {
	phrases, glyphs, err := dictionary.Default()
	if err != nil {
		return nil, nil, fmt.Errorf("loading embedded dictionaries: %w", err)
	}

	if phrasesPath != "" {
		phrases, err = dictionary.LoadPhrases(phrasesPath, dictionary.LoadOptions{})
		if err != nil {
			return nil, nil, fmt.Errorf("loading phrases: %w", err)
		}
	}
	if glyphsPath != "" {
		glyphs, err = dictionary.LoadGlyphs(glyphsPath, dictionary.LoadOptions{})
		if err != nil {
			return nil, nil, fmt.Errorf("loading glyphs: %w", err)
		}
	}

	return phrases, glyphs, nil
}

// runServe starts the HTTP API server from the environment/file config.
func runServe(stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Log, stderr)

	// Dictionaries: explicit paths beat the embedded defaults. A failed
	// phrase load degrades to glyph-only mode instead of refusing to start.
	phrases, glyphs, err := dictionary.Default()
	if err != nil {
		return fmt.Errorf("loading embedded dictionaries: %w", err)
	}

	glyphOnly := false
	loadOpts := dictionary.LoadOptions{Logger: logger}
	if cfg.Dict.Duplicates == "reject" {
		loadOpts.Duplicates = dictionary.DuplicateReject
	}

	if cfg.Dict.PhrasesPath != "" {
		if p, err := dictionary.LoadPhrases(cfg.Dict.PhrasesPath, loadOpts); err != nil {
			logger.Error("phrase dictionary failed to load, running glyph-only", "path", cfg.Dict.PhrasesPath, "error", err)
			phrases = nil
			glyphOnly = true
		} else {
			phrases = p
		}
	}
	if cfg.Dict.GlyphsPath != "" {
		g, err := dictionary.LoadGlyphs(cfg.Dict.GlyphsPath, loadOpts)
		if err != nil {
			return fmt.Errorf("loading glyphs: %w", err)
		}
		glyphs = g
	}

	opts := []ottolai.ResolverOption{ottolai.WithLogger(logger)}

	// Cache: Redis when configured, in-memory otherwise.
	if cfg.Cache.RedisURL != "" {
		rc, err := cache.NewRedisCache(cache.RedisConfig{URL: cfg.Cache.RedisURL, TTL: cfg.Cache.TTL})
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer rc.Close()
		opts = append(opts, ottolai.WithCache(rc))
	} else if cfg.Cache.TTL > 0 {
		opts = append(opts, ottolai.WithCache(cache.NewInMemoryCache(cfg.Cache.TTL)))
	}

	if cfg.Script.ModelScript != "" {
		opts = append(opts, ottolai.WithModel(provider.NewScriptModel(provider.ScriptConfig{
			ScriptPath: cfg.Script.ModelScript,
			Python:     cfg.Script.Python,
			Timeout:    time.Duration(cfg.Script.ModelTimeout) * time.Second,
			TempDir:    cfg.Script.TempDir,
		})))
	}

	var ocr provider.OCRProvider
	if cfg.Script.OCRScript != "" {
		ocr = provider.NewScriptOCR(provider.ScriptConfig{
			ScriptPath: cfg.Script.OCRScript,
			Python:     cfg.Script.Python,
			Timeout:    time.Duration(cfg.Script.OCRTimeout) * time.Second,
			TempDir:    cfg.Script.TempDir,
		})
	}

	srv := server.New(server.Config{
		Addr:           cfg.Server.Addr,
		Resolver:       ottolai.NewResolver(phrases, glyphs, opts...),
		OCR:            ocr,
		Logger:         logger,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
		GlyphOnly:      glyphOnly,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
	})

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// newLogger builds the slog logger described by the config.
func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}

// outputDocumentJSON writes a document result as JSON.
func outputDocumentJSON(w io.Writer, doc *ottolai.ProcessedDocument, elapsed time.Duration) error {
	out := struct {
		Content    string `json:"content"`
		TotalNodes int    `json:"total_nodes"`
		Resolved   int    `json:"resolved"`
		Fallbacks  int    `json:"fallbacks"`
		ElapsedMs  int64  `json:"elapsed_ms"`
	}{
		Content:    doc.Content,
		TotalNodes: doc.TotalNodes,
		Resolved:   doc.Resolved,
		Fallbacks:  doc.Fallbacks,
		ElapsedMs:  elapsed.Milliseconds(),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
