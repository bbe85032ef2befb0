package provider

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/ZaguanLabs/ottolai"
)

// OpenAIModel is an in-process alternative to the subprocess model adapter,
// implementing ModelProvider against OpenAI's API. Swapping it in requires
// no resolver changes.
type OpenAIModel struct {
	client      *openai.Client
	model       string
	temperature float32
}

// OpenAIConfig holds configuration for the OpenAI model provider.
type OpenAIConfig struct {
	APIKey      string  // OpenAI API key (uses OPENAI_API_KEY env var if empty)
	Model       string  // Model to use (default: "gpt-4o-mini")
	Temperature float32 // Temperature for generation (default: 0.2)
	BaseURL     string  // Custom base URL (optional)
}

// NewOpenAIModel creates a new OpenAI model provider.
func NewOpenAIModel(cfg OpenAIConfig) *OpenAIModel {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.2
	}

	return &OpenAIModel{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
	}
}

const openaiSystemPrompt = `# Role
You are an expert in Ottoman Turkish. You read Arabic-script Ottoman text and render it in modern Turkish with the fluency of a native speaker.

# Task
Translate the provided Ottoman Turkish text into modern Turkish.

# Style Guide
- Preserve the meaning; do not paraphrase beyond what modernization requires.
- Keep proper names recognizable in their established Turkish forms.
- Preserve punctuation, converting Arabic punctuation to its Turkish equivalent.
- If a word is illegible or unknown, transliterate it rather than inventing a meaning.

# Format
Return a valid JSON object: {"turkish_text": "...", "confidence": 0.0}
confidence is your own estimate in [0,1] of how faithful the translation is.
Do NOT wrap the output in Markdown code blocks.`

// openaiOutput mirrors the JSON object the prompt requests.
type openaiOutput struct {
	TurkishText string  `json:"turkish_text"`
	Confidence  float64 `json:"confidence"`
}

// Translate translates a single Ottoman text using OpenAI.
func (p *OpenAIModel) Translate(ctx context.Context, text string) (*ottolai.ModelResult, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: openaiSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: p.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, &ottolai.AdapterError{Adapter: "model", Message: "OpenAI API call failed", Cause: err}
	}

	if len(resp.Choices) == 0 {
		return nil, &ottolai.AdapterError{Adapter: "model", Message: "no response from OpenAI"}
	}

	return parseOpenAIResponse(resp.Choices[0].Message.Content)
}

// parseOpenAIResponse parses the model's JSON object, tolerating stray
// Markdown fences some models still emit.
func parseOpenAIResponse(content string) (*ottolai.ModelResult, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var out openaiOutput
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return nil, &ottolai.AdapterError{Adapter: "model", Message: "unparseable OpenAI response", Cause: err}
	}
	if strings.TrimSpace(out.TurkishText) == "" {
		return nil, &ottolai.AdapterError{Adapter: "model", Message: "OpenAI response missing turkish_text"}
	}

	return &ottolai.ModelResult{
		TranslatedText: out.TurkishText,
		Confidence:     out.Confidence,
	}, nil
}

var _ ModelProvider = (*OpenAIModel)(nil)
