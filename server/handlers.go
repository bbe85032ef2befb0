package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ZaguanLabs/ottolai"
)

// allowedImageTypes are the MIME types accepted by the OCR endpoint,
// as sniffed from the upload's leading bytes.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/bmp":  true,
	"image/webp": true,
}

// translateRequest is the body of POST /api/translate.
type translateRequest struct {
	Text string `json:"text"`
}

// handleTranslate resolves a single text through the cascade.
func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	result := s.resolver.Resolve(r.Context(), req.Text)
	writeJSON(w, http.StatusOK, result)
}

// ocrTranslateResponse is the body of a successful POST /api/ocr-translate.
type ocrTranslateResponse struct {
	ExtractedText         string         `json:"extractedText"`
	TranslatedText        string         `json:"translatedText"`
	OCRConfidence         float64        `json:"ocrConfidence"`
	TranslationConfidence float64        `json:"translationConfidence"`
	Method                ottolai.Method `json:"methodUsed"`
	RegionsDetected       int            `json:"textRegionsCount"`
	ProcessingTimeMs      float64        `json:"processingTime"`
	Timestamp             time.Time      `json:"timestamp"`
}

// handleOCRTranslate extracts Ottoman text from an uploaded image and runs it
// through the cascade. A pre-extracted "text" form field skips the OCR step,
// so clients can correct a bad extraction and re-translate.
func (s *Server) handleOCRTranslate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "upload exceeds size limit")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	extracted := strings.TrimSpace(r.FormValue("text"))
	var ocrConfidence float64
	var regions int

	if extracted == "" {
		file, _, err := r.FormFile("image")
		if err != nil {
			writeError(w, http.StatusBadRequest, "image file or text field is required")
			return
		}
		defer file.Close()

		image, err := io.ReadAll(file)
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read image")
			return
		}
		if len(image) == 0 {
			writeError(w, http.StatusBadRequest, "image is empty")
			return
		}

		if mime := http.DetectContentType(image); !allowedImageTypes[mime] {
			writeError(w, http.StatusBadRequest, "unsupported image type: "+mime)
			return
		}

		if s.ocr == nil {
			writeError(w, http.StatusServiceUnavailable, "OCR is not configured")
			return
		}

		ocrRes, err := s.ocr.ExtractText(r.Context(), image)
		if err != nil {
			s.logger.Error("OCR extraction failed", "error", err)
			writeError(w, http.StatusBadGateway, "text extraction failed")
			return
		}

		extracted = strings.TrimSpace(ocrRes.ExtractedText)
		ocrConfidence = ocrRes.Confidence
		regions = ocrRes.RegionsDetected

		if extracted == "" {
			writeError(w, http.StatusUnprocessableEntity, "no text found in image")
			return
		}
	}

	result := s.resolver.Resolve(r.Context(), extracted)

	writeJSON(w, http.StatusOK, ocrTranslateResponse{
		ExtractedText:         extracted,
		TranslatedText:        result.TranslatedText,
		OCRConfidence:         ocrConfidence,
		TranslationConfidence: result.Confidence,
		Method:                result.Method,
		RegionsDetected:       regions,
		ProcessingTimeMs:      result.ProcessingTimeMs,
		Timestamp:             result.Timestamp,
	})
}

// healthResponse is the body of GET /health.
type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Mode    string `json:"mode"`
}

// handleHealth reports liveness. A degraded dictionary load is reported as
// mode "glyph-only" but still status "ok": the service answers requests, just
// with transliteration-quality output.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	mode := "full"
	if s.glyphOnly {
		mode = "glyph-only"
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Version: ottolai.Version,
		Mode:    mode,
	})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ErrorResponse is a standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
