package ottolai

import "fmt"

// ValidationError indicates a request that failed input validation.
// It is surfaced to callers with a specific reason (HTTP 400 at the edge).
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// AdapterError indicates an external collaborator failure: non-zero exit,
// timeout, or unparseable output. It is always recoverable — the resolver
// logs it and falls through to the next tier, never surfacing it to callers.
type AdapterError struct {
	Adapter string // Which adapter failed ("model", "ocr")
	Message string
	Cause   error
	Timeout bool // Whether the failure was a deadline expiry
}

func (e *AdapterError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s adapter: %s: %v", e.Adapter, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s adapter: %s", e.Adapter, e.Message)
}

func (e *AdapterError) Unwrap() error {
	return e.Cause
}

// ProcessorError indicates a content processing failure (parse error, etc.).
type ProcessorError struct {
	Message     string
	Cause       error
	ContentType string
}

func (e *ProcessorError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("processor error (%s): %s: %v", e.ContentType, e.Message, e.Cause)
	}
	return fmt.Sprintf("processor error (%s): %s", e.ContentType, e.Message)
}

func (e *ProcessorError) Unwrap() error {
	return e.Cause
}

// ResolveError indicates the pipeline itself could not run at all.
// Resolve never returns one past its caller; it exists for ResolveDocument,
// where a processor can fail to parse the surrounding markup.
type ResolveError struct {
	Message string
	Cause   error
}

func (e *ResolveError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("resolve error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("resolve error: %s", e.Message)
}

func (e *ResolveError) Unwrap() error {
	return e.Cause
}
