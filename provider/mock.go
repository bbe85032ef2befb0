package provider

import (
	"context"

	"github.com/ZaguanLabs/ottolai"
)

// MockModel is a mock model provider for testing.
type MockModel struct {
	Translations map[string]string // Map of source text to translation
	Confidence   float64           // Confidence reported for every hit
	Err          error             // When set, every call fails with this error
	CallCount    int               // Number of times Translate was called
	LastText     string            // Last text received
}

// NewMockModel creates a mock model with default translations.
func NewMockModel() *MockModel {
	return &MockModel{
		Translations: map[string]string{
			"السلام عليكم": "Selam aleyküm",
			"كتاب":         "kitap",
		},
		Confidence: 0.9,
	}
}

// Translate returns the configured translation or error.
func (m *MockModel) Translate(ctx context.Context, text string) (*ottolai.ModelResult, error) {
	m.CallCount++
	m.LastText = text

	if m.Err != nil {
		return nil, m.Err
	}

	if translation, ok := m.Translations[text]; ok {
		return &ottolai.ModelResult{TranslatedText: translation, Confidence: m.Confidence}, nil
	}

	return nil, &ottolai.AdapterError{Adapter: "model", Message: "no mock translation configured"}
}

// Reset resets the call count and last text.
func (m *MockModel) Reset() {
	m.CallCount = 0
	m.LastText = ""
}

// MockOCR is a mock OCR provider for testing.
type MockOCR struct {
	Result    *ottolai.OCRResult // Returned on every call when Err is nil
	Err       error              // When set, every call fails with this error
	CallCount int
	LastSize  int // Byte length of the last image received
}

// ExtractText returns the configured result or error.
func (m *MockOCR) ExtractText(ctx context.Context, image []byte) (*ottolai.OCRResult, error) {
	m.CallCount++
	m.LastSize = len(image)

	if m.Err != nil {
		return nil, m.Err
	}
	if m.Result != nil {
		return m.Result, nil
	}
	return nil, &ottolai.AdapterError{Adapter: "ocr", Message: "no mock result configured"}
}

// Verify mocks implement the provider interfaces.
var (
	_ ModelProvider = (*MockModel)(nil)
	_ OCRProvider   = (*MockOCR)(nil)
)
