package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// ExportFormat is the JSON structure for cache exports. Exports let a warm
// cache survive restarts or seed another instance.
type ExportFormat struct {
	Version    string            `json:"version"`
	ExportedAt string            `json:"exported_at"`
	Entries    []ExportEntry     `json:"entries"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// ExportEntry is a single cached resolution in an export.
type ExportEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Exporter exports cache contents to JSON.
type Exporter struct {
	cache TranslationCache
}

// NewExporter creates a new cache exporter.
func NewExporter(cache TranslationCache) *Exporter {
	return &Exporter{cache: cache}
}

// Export exports the cache contents to JSON bytes.
func (e *Exporter) Export(metadata map[string]string) ([]byte, error) {
	entries, err := e.getAllEntries()
	if err != nil {
		return nil, err
	}

	export := ExportFormat{
		Version:    "1.0",
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Entries:    entries,
		Metadata:   metadata,
	}

	return json.MarshalIndent(export, "", "  ")
}

// ExportToFile exports the cache contents to a JSON file.
func (e *Exporter) ExportToFile(path string, metadata map[string]string) error {
	data, err := e.Export(metadata)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// getAllEntries retrieves all entries from the cache.
// Only InMemoryCache supports enumeration; Redis deployments should use
// redis-cli or RDB snapshots instead.
func (e *Exporter) getAllEntries() ([]ExportEntry, error) {
	switch c := e.cache.(type) {
	case *InMemoryCache:
		raw := c.Entries()
		entries := make([]ExportEntry, 0, len(raw))
		for key, value := range raw {
			entries = append(entries, ExportEntry{Key: key, Value: value})
		}
		return entries, nil
	default:
		return nil, fmt.Errorf("cache type %T does not support export", e.cache)
	}
}

// Importer imports cache contents from JSON.
type Importer struct {
	cache TranslationCache
}

// NewImporter creates a new cache importer.
func NewImporter(cache TranslationCache) *Importer {
	return &Importer{cache: cache}
}

// ImportResult summarizes an import operation.
type ImportResult struct {
	Version  string
	Metadata map[string]string
	Imported int
	Failed   int
}

// Import loads cache entries from JSON bytes.
func (i *Importer) Import(data []byte) (*ImportResult, error) {
	var export ExportFormat
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("invalid export format: %w", err)
	}

	result := &ImportResult{
		Version:  export.Version,
		Metadata: export.Metadata,
	}

	for _, entry := range export.Entries {
		if err := i.cache.Set(entry.Key, entry.Value); err != nil {
			result.Failed++
			continue
		}
		result.Imported++
	}

	return result, nil
}

// ImportFromFile loads cache entries from a JSON file.
func (i *Importer) ImportFromFile(path string) (*ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return i.Import(data)
}
