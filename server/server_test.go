package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ZaguanLabs/ottolai"
	"github.com/ZaguanLabs/ottolai/dictionary"
	"github.com/ZaguanLabs/ottolai/provider"
)

// pngBytes is a minimal payload http.DetectContentType sniffs as image/png.
var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)

func testResolver() *ottolai.Resolver {
	phrases := dictionary.NewPhraseTable(map[string]string{
		"السلام عليكم": "Selam aleyküm",
		"كتاب":         "kitap",
	})
	glyphs := dictionary.NewGlyphTable(map[string]string{
		"ا": "a", "ل": "l", "س": "s", "م": "m",
	})
	return ottolai.NewResolver(phrases, glyphs)
}

func testServer(t *testing.T, opts ...func(*Config)) *Server {
	t.Helper()
	cfg := Config{
		Resolver: testResolver(),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return New(cfg)
}

func postJSON(t *testing.T, s *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func postMultipart(t *testing.T, s *Server, fields map[string]string, image []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if image != nil {
		fw, err := mw.CreateFormFile("image", "scan.png")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write(image); err != nil {
			t.Fatal(err)
		}
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/ocr-translate", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestTranslate(t *testing.T) {
	s := testServer(t)

	rec := postJSON(t, s, "/api/translate", translateRequest{Text: "السلام عليكم"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result ottolai.TranslationResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if result.TranslatedText != "Selam aleyküm" {
		t.Errorf("unexpected translation: %q", result.TranslatedText)
	}
	if result.Method != ottolai.MethodExactPhrase {
		t.Errorf("expected EXACT_PHRASE, got %s", result.Method)
	}
}

func TestTranslateEmptyText(t *testing.T) {
	s := testServer(t)

	rec := postJSON(t, s, "/api/translate", translateRequest{Text: "   "})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestTranslateInvalidJSON(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/translate", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestTranslateMethodNotAllowed(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/translate", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}

func TestOCRTranslateWithImage(t *testing.T) {
	ocr := &provider.MockOCR{
		Result: &ottolai.OCRResult{
			ExtractedText:   "كتاب",
			Confidence:      0.85,
			RegionsDetected: 3,
		},
	}
	s := testServer(t, func(c *Config) { c.OCR = ocr })

	rec := postMultipart(t, s, nil, pngBytes)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp ocrTranslateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.ExtractedText != "كتاب" {
		t.Errorf("unexpected extracted text: %q", resp.ExtractedText)
	}
	if resp.TranslatedText != "kitap" {
		t.Errorf("unexpected translation: %q", resp.TranslatedText)
	}
	if resp.OCRConfidence != 0.85 {
		t.Errorf("unexpected OCR confidence: %v", resp.OCRConfidence)
	}
	if resp.RegionsDetected != 3 {
		t.Errorf("unexpected region count: %d", resp.RegionsDetected)
	}
	if ocr.CallCount != 1 {
		t.Errorf("expected 1 OCR call, got %d", ocr.CallCount)
	}
}

func TestOCRTranslateWithTextField(t *testing.T) {
	ocr := &provider.MockOCR{}
	s := testServer(t, func(c *Config) { c.OCR = ocr })

	rec := postMultipart(t, s, map[string]string{"text": "كتاب"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp ocrTranslateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.TranslatedText != "kitap" {
		t.Errorf("unexpected translation: %q", resp.TranslatedText)
	}
	if ocr.CallCount != 0 {
		t.Errorf("OCR should not run when text is provided, got %d calls", ocr.CallCount)
	}
}

func TestOCRTranslateUnsupportedImageType(t *testing.T) {
	s := testServer(t, func(c *Config) { c.OCR = &provider.MockOCR{} })

	rec := postMultipart(t, s, nil, []byte("just some plain text bytes, long enough to sniff"))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for non-image upload, got %d", rec.Code)
	}
}

func TestOCRTranslateMissingInput(t *testing.T) {
	s := testServer(t, func(c *Config) { c.OCR = &provider.MockOCR{} })

	rec := postMultipart(t, s, nil, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty form, got %d", rec.Code)
	}
}

func TestOCRTranslateAdapterFailure(t *testing.T) {
	ocr := &provider.MockOCR{Err: &ottolai.AdapterError{Adapter: "ocr", Message: "script crashed"}}
	s := testServer(t, func(c *Config) { c.OCR = ocr })

	rec := postMultipart(t, s, nil, pngBytes)
	if rec.Code != http.StatusBadGateway {
		t.Errorf("expected 502 for OCR failure, got %d", rec.Code)
	}
}

func TestOCRTranslateNoTextInImage(t *testing.T) {
	ocr := &provider.MockOCR{Result: &ottolai.OCRResult{ExtractedText: "  "}}
	s := testServer(t, func(c *Config) { c.OCR = ocr })

	rec := postMultipart(t, s, nil, pngBytes)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 for empty extraction, got %d", rec.Code)
	}
}

func TestOCRTranslateNotConfigured(t *testing.T) {
	s := testServer(t) // no OCR provider

	rec := postMultipart(t, s, nil, pngBytes)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 without OCR provider, got %d", rec.Code)
	}
}

func TestOCRTranslateUploadTooLarge(t *testing.T) {
	s := testServer(t, func(c *Config) {
		c.OCR = &provider.MockOCR{}
		c.MaxUploadBytes = 256
	})

	big := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 4096)...)
	rec := postMultipart(t, s, nil, big)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413 for oversized upload, got %d", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("expected status ok, got %q", resp.Status)
	}
	if resp.Mode != "full" {
		t.Errorf("expected mode full, got %q", resp.Mode)
	}
}

func TestHealthGlyphOnly(t *testing.T) {
	s := testServer(t, func(c *Config) { c.GlyphOnly = true })

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var resp healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.Mode != "glyph-only" {
		t.Errorf("expected mode glyph-only, got %q", resp.Mode)
	}
}
