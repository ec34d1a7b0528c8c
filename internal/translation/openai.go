package translation

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/pdftranslate/internal/domain"
)

// OpenAITranslator translates through an OpenAI-compatible chat API
type OpenAITranslator struct {
	client *openai.Client
	model  string
}

// NewOpenAITranslator creates a new OpenAI translator
func NewOpenAITranslator(config *Config) (*OpenAITranslator, error) {
	if config.OpenAIKey == "" {
		return nil, domain.NewConfigError("OpenAI API key not found", nil)
	}

	clientConfig := openai.DefaultConfig(config.OpenAIKey)
	if config.OpenAIBaseURL != "" {
		clientConfig.BaseURL = config.OpenAIBaseURL
	}

	model := config.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	return &OpenAITranslator{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}, nil
}

// Translate sends the prompt as a single user message
func (t *OpenAITranslator) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(text, targetLanguage),
			},
		},
		Temperature: 0.3,
	}

	resp, err := t.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", domain.NewTranslationError("OpenAI API error", "", err)
	}

	if len(resp.Choices) == 0 {
		return "", domain.NewTranslationError("no translation returned", "", nil)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Name returns the backend name
func (t *OpenAITranslator) Name() string {
	return fmt.Sprintf("openai/%s", t.model)
}
