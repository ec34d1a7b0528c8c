package translation

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"codeberg.org/snonux/pdftranslate/internal/domain"
)

// DefaultGeminiModel is used when no model is configured
const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiTranslator translates through the Gemini API
type GeminiTranslator struct {
	client *genai.Client
	model  string
}

// NewGeminiTranslator creates a new Gemini translator
func NewGeminiTranslator(ctx context.Context, config *Config) (*GeminiTranslator, error) {
	if config.GeminiKey == "" {
		return nil, domain.NewConfigError("Gemini API key not found", nil)
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  config.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.GeminiBaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: config.GeminiBaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, domain.NewConfigError("failed to create Gemini client", err)
	}

	model := config.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	return &GeminiTranslator{client: client, model: model}, nil
}

// Translate sends the prompt as a single text part
func (t *GeminiTranslator) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	resp, err := t.client.Models.GenerateContent(ctx, t.model, genai.Text(BuildPrompt(text, targetLanguage)), nil)
	if err != nil {
		return "", domain.NewTranslationError("Gemini API error", "", err)
	}

	translated := strings.TrimSpace(resp.Text())
	if translated == "" {
		message := "no translation returned"
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			message = fmt.Sprintf("%s (blocked: %s)", message, resp.PromptFeedback.BlockReason)
		}
		return "", domain.NewTranslationError(message, "", nil)
	}
	return translated, nil
}

// Name returns the backend name
func (t *GeminiTranslator) Name() string {
	return fmt.Sprintf("gemini/%s", t.model)
}
