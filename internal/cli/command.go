package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/pdftranslate/internal"
	"codeberg.org/snonux/pdftranslate/internal/extract"
	"codeberg.org/snonux/pdftranslate/internal/translation"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pdftranslate [url-or-path]",
		Short: "Paragraph-by-paragraph PDF translator",
		Long: `pdftranslate downloads a PDF, splits the text of every page into
paragraphs and translates each one with a language model. The result
is written as a JSON array of {page, index, original, translation}.

By default the prompt is piped into "ollama run llama3"; OpenAI and
Gemini can be used instead with --backend.

Examples:
  pdftranslate                                        # translate the default paper to Chinese
  pdftranslate https://arxiv.org/pdf/2106.14881.pdf -l German
  pdftranslate ./paper.pdf --backend openai -o paper.json
  pdftranslate --batch papers.txt                     # one source per line`,
		Args:          cobra.MaximumNArgs(1),
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.pdftranslate.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.Output, "output", "o", flags.Output, "Output JSON file")
	cmd.Flags().StringVarP(&flags.Language, "language", "l", flags.Language, "Target language name or ISO code (e.g. Chinese, de)")
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Translate every source listed in file (one per line, optional '= output.json')")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Move an existing output file to archive/ before writing")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available models for the selected backend")
	cmd.Flags().BoolVar(&flags.KeepDownload, "keep-download", false, "Keep the downloaded PDF in the temp directory")
	cmd.Flags().BoolVar(&flags.Progress, "progress", false, "Show a progress bar instead of per-paragraph log lines")

	// Document flags
	cmd.Flags().StringVar(&flags.PDFBackend, "pdf-backend", flags.PDFBackend,
		"PDF text extractor: "+strings.Join(extract.Backends(), ", ")+" (fitz uses MuPDF, pure needs no cgo)")
	cmd.Flags().StringVar(&flags.TempDir, "temp-dir", "", "Directory for downloaded PDFs (default: system temp dir)")
	cmd.Flags().Int64Var(&flags.MaxSize, "max-size", flags.MaxSize, "Maximum PDF download size in bytes (0 = unlimited)")

	// Translation flags
	cmd.Flags().StringVar(&flags.Backend, "backend", flags.Backend, "Translation backend: "+strings.Join(translation.Backends(), ", "))
	cmd.Flags().StringVarP(&flags.Model, "model", "m", "", "Model name (default: llama3, gpt-4o-mini or gemini-2.0-flash)")
	cmd.Flags().StringVar(&flags.Command, "command", flags.Command, "Executable used by the ollama backend")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", 0, "Per-paragraph translation timeout (0 = wait forever)")
	cmd.Flags().StringVar(&flags.OpenAIBaseURL, "openai-base-url", "", "OpenAI-compatible API base URL")
	cmd.Flags().StringVar(&flags.GeminiBaseURL, "gemini-base-url", "", "Gemini API base URL")

	// Persistence flags
	cmd.Flags().StringVar(&flags.SQLitePath, "sqlite", "", "Also store the paragraphs in this SQLite database")

	// Logging flags
	cmd.Flags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")
	cmd.Flags().StringVar(&flags.LogFormat, "log-format", flags.LogFormat, "Log format: console or json")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

// viperKeys maps config keys to flag names
var viperKeys = map[string]string{
	"output.file":                 "output",
	"output.sqlite":               "sqlite",
	"translation.language":        "language",
	"translation.backend":         "backend",
	"translation.model":           "model",
	"translation.command":         "command",
	"translation.timeout":         "timeout",
	"translation.openai_base_url": "openai-base-url",
	"translation.gemini_base_url": "gemini-base-url",
	"pdf.backend":                 "pdf-backend",
	"pdf.temp_dir":                "temp-dir",
	"pdf.max_size":                "max-size",
	"log.level":                   "log-level",
	"log.format":                  "log-format",
}

func bindFlagsToViper(cmd *cobra.Command) {
	for key, flag := range viperKeys {
		viper.BindPFlag(key, cmd.Flags().Lookup(flag))
	}
}

// ApplyConfig copies values from viper into flags. Flags given on the
// command line win over environment variables, which win over the
// config file.
func ApplyConfig(flags *Flags) {
	flags.Output = viper.GetString("output.file")
	flags.SQLitePath = viper.GetString("output.sqlite")
	flags.Language = viper.GetString("translation.language")
	flags.Backend = viper.GetString("translation.backend")
	flags.Model = viper.GetString("translation.model")
	flags.Command = viper.GetString("translation.command")
	flags.Timeout = viper.GetDuration("translation.timeout")
	flags.OpenAIBaseURL = viper.GetString("translation.openai_base_url")
	flags.GeminiBaseURL = viper.GetString("translation.gemini_base_url")
	flags.PDFBackend = viper.GetString("pdf.backend")
	flags.TempDir = viper.GetString("pdf.temp_dir")
	flags.MaxSize = viper.GetInt64("pdf.max_size")
	flags.LogLevel = viper.GetString("log.level")
	flags.LogFormat = viper.GetString("log.format")
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	// Load .env from the working directory if present
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".pdftranslate" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".pdftranslate")
	}

	// Environment variables, e.g. PDFTRANSLATE_TRANSLATION_BACKEND
	viper.SetEnvPrefix("PDFTRANSLATE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("translation.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	for _, env := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		if key := os.Getenv(env); key != "" {
			return key
		}
	}
	return viper.GetString("translation.gemini_key")
}
