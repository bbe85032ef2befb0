// Package provider defines the model and OCR provider implementations.
//
// Providers are the pipeline's external collaborators. Each call is bounded
// by a timeout and every failure mode — non-zero exit, deadline expiry,
// malformed output, missing fields — is a recoverable *ottolai.AdapterError,
// never a fatal condition: the resolver falls through to its next tier.
package provider

import (
	"context"

	"github.com/ZaguanLabs/ottolai"
)

// ModelProvider is the interface for model-based translation backends.
// This is an alias to the main package interface for convenience.
type ModelProvider = ottolai.ModelProvider

// ModelResult is an alias to the main package type.
type ModelResult = ottolai.ModelResult

// OCRResult is an alias to the main package type.
type OCRResult = ottolai.OCRResult

// OCRProvider is the interface for OCR backends that extract source-script
// text from images.
type OCRProvider interface {
	ExtractText(ctx context.Context, image []byte) (*OCRResult, error)
}
