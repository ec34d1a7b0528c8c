package translation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"codeberg.org/snonux/pdftranslate/internal/domain"
)

// Backend names accepted by NewTranslator
const (
	BackendOllama = "ollama"
	BackendOpenAI = "openai"
	BackendGemini = "gemini"
)

// Translator translates text into a target language
type Translator interface {
	// Translate returns text translated into targetLanguage
	Translate(ctx context.Context, text, targetLanguage string) (string, error)

	// Name returns the backend name
	Name() string
}

// Config holds configuration for all translation backends
type Config struct {
	Backend string        // "ollama", "openai" or "gemini"
	Model   string        // Model name; backend default when empty
	Timeout time.Duration // Per-paragraph timeout (0 = none)

	// External process settings
	Command string   // Executable to run (default: ollama)
	Args    []string // Arguments; defaults to "run <model>"
	Runner  Runner   // Process runner (default: ExecRunner)

	// HTTP backend settings
	OpenAIKey     string
	OpenAIBaseURL string // Optional OpenAI-compatible endpoint
	GeminiKey     string
	GeminiBaseURL string
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendOllama,
		Command: "ollama",
	}
}

// NewTranslator creates the translator selected by config.Backend
func NewTranslator(ctx context.Context, config *Config) (Translator, error) {
	if config == nil {
		config = DefaultConfig()
	}

	var (
		t   Translator
		err error
	)

	switch strings.ToLower(config.Backend) {
	case "", BackendOllama:
		t = NewOllamaTranslator(config)
	case BackendOpenAI:
		t, err = NewOpenAITranslator(config)
	case BackendGemini:
		t, err = NewGeminiTranslator(ctx, config)
	default:
		return nil, domain.NewConfigError(fmt.Sprintf("unknown translation backend: %s (supported: %s)",
			config.Backend, strings.Join(Backends(), ", ")), nil)
	}
	if err != nil {
		return nil, err
	}

	if config.Timeout > 0 {
		t = WithTimeout(t, config.Timeout)
	}
	return t, nil
}

// Backends lists the supported backend names
func Backends() []string {
	return []string{BackendOllama, BackendOpenAI, BackendGemini}
}

// IsOllamaBackend reports whether backend selects the external process
// translator, which is also the default
func IsOllamaBackend(backend string) bool {
	backend = strings.ToLower(backend)
	return backend == "" || backend == BackendOllama
}

// BuildPrompt builds the instruction sent to the language model
func BuildPrompt(text, targetLanguage string) string {
	return fmt.Sprintf("Translate the following English text to %s:\n\n%s", targetLanguage, text)
}

// ProgressFunc is called before each paragraph is translated
type ProgressFunc func(current, total int, record domain.ParagraphRecord)

// TranslateAll fills in the translation of every record, in order. It
// stops at the first failure; records translated so far keep their text.
func TranslateAll(ctx context.Context, t Translator, records []domain.ParagraphRecord, targetLanguage string, progress ProgressFunc) error {
	for i := range records {
		if progress != nil {
			progress(i, len(records), records[i])
		}

		translated, err := t.Translate(ctx, records[i].Original, targetLanguage)
		if err != nil {
			return fmt.Errorf("page %d paragraph %d: %w", records[i].Page, records[i].Index, err)
		}
		records[i].Translation = translated
	}
	return nil
}

// timeoutTranslator bounds every call of the wrapped translator
type timeoutTranslator struct {
	next    Translator
	timeout time.Duration
}

// WithTimeout wraps t so each Translate call is cancelled after timeout
func WithTimeout(t Translator, timeout time.Duration) Translator {
	return &timeoutTranslator{next: t, timeout: timeout}
}

func (t *timeoutTranslator) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	out, err := t.next.Translate(ctx, text, targetLanguage)
	if err != nil && ctx.Err() == context.DeadlineExceeded {
		return "", domain.NewTranslationError(
			fmt.Sprintf("%s did not answer within %s", t.next.Name(), t.timeout), "", err)
	}
	return out, err
}

func (t *timeoutTranslator) Name() string {
	return fmt.Sprintf("%s (timeout: %s)", t.next.Name(), t.timeout)
}
