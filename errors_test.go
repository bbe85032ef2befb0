package ottolai

import (
	"errors"
	"strings"
	"testing"
)

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "text", Message: "is required"}
	if !strings.Contains(err.Error(), "text") {
		t.Errorf("expected field in message, got: %s", err.Error())
	}

	bare := &ValidationError{Message: "bad request"}
	if !strings.Contains(bare.Error(), "bad request") {
		t.Errorf("unexpected message: %s", bare.Error())
	}
}

func TestAdapterError(t *testing.T) {
	cause := errors.New("exit status 1")
	err := &AdapterError{Adapter: "model", Message: "script failed", Cause: cause}

	if !strings.Contains(err.Error(), "model") {
		t.Errorf("expected adapter name in message, got: %s", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("cause should unwrap")
	}

	timeout := &AdapterError{Adapter: "ocr", Message: "deadline exceeded", Timeout: true}
	if !timeout.Timeout {
		t.Error("timeout flag should be preserved")
	}
}

func TestProcessorError(t *testing.T) {
	cause := errors.New("bad markup")
	err := &ProcessorError{Message: "parse failed", ContentType: "html", Cause: cause}

	if !strings.Contains(err.Error(), "html") {
		t.Errorf("expected content type in message, got: %s", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("cause should unwrap")
	}
}

func TestResolveError(t *testing.T) {
	cause := &ProcessorError{Message: "parse failed", ContentType: "html"}
	err := &ResolveError{Message: "extracting text nodes", Cause: cause}

	var procErr *ProcessorError
	if !errors.As(err, &procErr) {
		t.Error("nested processor error should surface through As")
	}
}
