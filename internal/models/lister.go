package models

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"

	"codeberg.org/snonux/pdftranslate/internal/domain"
	"codeberg.org/snonux/pdftranslate/internal/translation"
)

// Lister handles listing available models for a translation backend
type Lister struct {
	config *translation.Config
	out    io.Writer
}

// NewLister creates a new model lister writing to out (stdout if nil)
func NewLister(config *translation.Config, out io.Writer) *Lister {
	if config == nil {
		config = translation.DefaultConfig()
	}
	if out == nil {
		out = os.Stdout
	}
	return &Lister{config: config, out: out}
}

// ListAvailableModels prints the models of the configured backend
func (l *Lister) ListAvailableModels(ctx context.Context) error {
	var (
		models       []string
		defaultModel string
		err          error
	)

	backend := strings.ToLower(l.config.Backend)
	switch backend {
	case "", translation.BackendOllama:
		backend = translation.BackendOllama
		models, err = l.ollamaModels(ctx)
		defaultModel = translation.DefaultOllamaModel
	case translation.BackendOpenAI:
		models, err = l.openAIModels(ctx)
		defaultModel = openai.GPT4oMini
	case translation.BackendGemini:
		models, err = l.geminiModels(ctx)
		defaultModel = translation.DefaultGeminiModel
	default:
		return domain.NewConfigError(fmt.Sprintf("unknown translation backend: %s", l.config.Backend), nil)
	}
	if err != nil {
		return err
	}

	sort.Strings(models)

	fmt.Fprintf(l.out, "Available %s models:\n", backend)
	if len(models) == 0 {
		fmt.Fprintln(l.out, "  No models found")
		return nil
	}
	for _, model := range models {
		if model == defaultModel || strings.TrimSuffix(model, ":latest") == defaultModel {
			fmt.Fprintf(l.out, "  %s (default)\n", model)
			continue
		}
		fmt.Fprintf(l.out, "  %s\n", model)
	}
	return nil
}

// ollamaModels runs "<command> list" and returns the model names
func (l *Lister) ollamaModels(ctx context.Context) ([]string, error) {
	command := l.config.Command
	if command == "" {
		command = "ollama"
	}
	runner := l.config.Runner
	if runner == nil {
		runner = translation.ExecRunner{}
	}

	stdout, stderr, err := runner.Run(ctx, strings.NewReader(""), command, "list")
	if err != nil {
		return nil, domain.NewTranslationError(
			fmt.Sprintf("failed to list models with %s", command), strings.TrimSpace(string(stderr)), err)
	}

	return parseOllamaList(stdout), nil
}

// parseOllamaList extracts the NAME column of "ollama list" output
func parseOllamaList(output []byte) []string {
	var models []string
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || fields[0] == "NAME" {
			continue
		}
		models = append(models, fields[0])
	}
	return models
}

// openAIModels returns the chat capable models of the OpenAI account
func (l *Lister) openAIModels(ctx context.Context) ([]string, error) {
	if l.config.OpenAIKey == "" {
		return nil, domain.NewConfigError("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .pdftranslate.yaml", nil)
	}

	clientConfig := openai.DefaultConfig(l.config.OpenAIKey)
	if l.config.OpenAIBaseURL != "" {
		clientConfig.BaseURL = l.config.OpenAIBaseURL
	}
	client := openai.NewClientWithConfig(clientConfig)

	list, err := client.ListModels(ctx)
	if err != nil {
		return nil, domain.NewNetworkError(clientConfig.BaseURL, 0, "failed to list models", err)
	}

	var models []string
	for _, model := range list.Models {
		if isChatModel(model.ID) {
			models = append(models, model.ID)
		}
	}
	return models, nil
}

// isChatModel filters out speech, image, embedding and moderation models
func isChatModel(id string) bool {
	for _, skip := range []string{"tts", "audio", "dall-e", "whisper", "embedding", "moderation", "image", "realtime", "transcribe"} {
		if strings.Contains(id, skip) {
			return false
		}
	}
	return strings.Contains(id, "gpt") || strings.Contains(id, "chat") ||
		strings.HasPrefix(id, "o1") || strings.HasPrefix(id, "o3") || strings.HasPrefix(id, "o4")
}

// geminiModels returns the model names exposed by the Gemini API
func (l *Lister) geminiModels(ctx context.Context) ([]string, error) {
	if l.config.GeminiKey == "" {
		return nil, domain.NewConfigError("Gemini API key not found. Set GEMINI_API_KEY environment variable or configure in .pdftranslate.yaml", nil)
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  l.config.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if l.config.GeminiBaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: l.config.GeminiBaseURL}
	}
	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, domain.NewConfigError("failed to create Gemini client", err)
	}

	var models []string
	for model, err := range client.Models.All(ctx) {
		if err != nil {
			return nil, domain.NewNetworkError("", 0, "failed to list models", err)
		}
		models = append(models, strings.TrimPrefix(model.Name, "models/"))
	}
	return models, nil
}
