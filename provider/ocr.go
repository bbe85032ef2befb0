package provider

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/ZaguanLabs/ottolai"
)

// ScriptOCR invokes an out-of-process OCR tool on image bytes.
//
// Contract: the tool runs as `python <script> <image-file>` and emits a
// single JSON object on stdout:
//
//	{"success": true, "extracted_text": "...", "confidence": 0.8,
//	 "text_regions_count": 3, "translated_text": "..."}
//
// translated_text is optional; when the tool already carries its own mapping
// pass, the caller may reuse it instead of re-resolving.
type ScriptOCR struct {
	cfg ScriptConfig
}

// NewScriptOCR creates a subprocess OCR provider.
func NewScriptOCR(cfg ScriptConfig) *ScriptOCR {
	cfg.applyDefaults(DefaultOCRTimeout)
	return &ScriptOCR{cfg: cfg}
}

// ocrOutput mirrors the OCR tool's stdout record.
type ocrOutput struct {
	Success          bool    `json:"success"`
	ExtractedText    string  `json:"extracted_text"`
	Confidence       float64 `json:"confidence"`
	TextRegionsCount int     `json:"text_regions_count"`
	TranslatedText   string  `json:"translated_text"`
	Error            string  `json:"error"`
}

// ExtractText writes the image to a request-scoped exchange file, runs the
// OCR tool under the configured deadline, and parses its output.
func (o *ScriptOCR) ExtractText(ctx context.Context, image []byte) (*ottolai.OCRResult, error) {
	path := filepath.Join(o.cfg.TempDir, "ocr_"+uuid.NewString()+".img")
	if err := os.WriteFile(path, image, 0o600); err != nil {
		return nil, &ottolai.AdapterError{Adapter: "ocr", Message: "writing exchange file", Cause: err}
	}
	defer os.Remove(path)

	stdout, aerr := runScript(ctx, "ocr", o.cfg, path)
	if aerr != nil {
		return nil, aerr
	}

	var out ocrOutput
	if err := json.Unmarshal(stdout, &out); err != nil {
		return nil, &ottolai.AdapterError{Adapter: "ocr", Message: "unparseable tool output", Cause: err}
	}
	if !out.Success {
		msg := out.Error
		if msg == "" {
			msg = "tool reported failure"
		}
		return nil, &ottolai.AdapterError{Adapter: "ocr", Message: msg}
	}
	if strings.TrimSpace(out.ExtractedText) == "" {
		return nil, &ottolai.AdapterError{Adapter: "ocr", Message: "tool returned no text"}
	}

	return &ottolai.OCRResult{
		ExtractedText:   out.ExtractedText,
		Confidence:      out.Confidence,
		RegionsDetected: out.TextRegionsCount,
		TranslatedText:  out.TranslatedText,
	}, nil
}

var _ OCRProvider = (*ScriptOCR)(nil)
