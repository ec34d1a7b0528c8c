package cli

import (
	"time"

	"codeberg.org/snonux/pdftranslate/internal"
)

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile      string
	Output       string
	Language     string
	BatchFile    string
	Archive      bool
	ListModels   bool
	KeepDownload bool
	Progress     bool

	// Document flags
	PDFBackend string
	TempDir    string
	MaxSize    int64

	// Translation flags
	Backend       string
	Model         string
	Command       string
	Timeout       time.Duration
	OpenAIBaseURL string
	GeminiBaseURL string

	// Persistence flags
	SQLitePath string

	// Logging flags
	LogLevel  string
	LogFormat string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Output:     internal.DefaultOutputFile,
		Language:   internal.DefaultLanguage,
		PDFBackend: "fitz",
		MaxSize:    200 * 1024 * 1024, // 200MB
		Backend:    "ollama",
		Command:    "ollama",
		LogLevel:   "info",
		LogFormat:  "console",
	}
}
