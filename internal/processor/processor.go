package processor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"codeberg.org/snonux/pdftranslate/internal"
	"codeberg.org/snonux/pdftranslate/internal/batch"
	"codeberg.org/snonux/pdftranslate/internal/cli"
	"codeberg.org/snonux/pdftranslate/internal/domain"
	"codeberg.org/snonux/pdftranslate/internal/extract"
	"codeberg.org/snonux/pdftranslate/internal/fetch"
	"codeberg.org/snonux/pdftranslate/internal/output"
	"codeberg.org/snonux/pdftranslate/internal/progress"
	"codeberg.org/snonux/pdftranslate/internal/translation"
)

// Processor runs the fetch, extract, translate and write stages
type Processor struct {
	flags       *cli.Flags
	fetcher     *fetch.Fetcher
	extractor   *extract.Extractor
	translator  translation.Translator
	log         zerolog.Logger
	progressOut io.Writer
}

// Result summarizes one translated document
type Result struct {
	Source     string
	Output     string
	Archived   string // previous output moved aside, if any
	Paragraphs int
	Duration   time.Duration
}

// NewProcessor creates a processor with the backends selected by flags
func NewProcessor(ctx context.Context, flags *cli.Flags, log zerolog.Logger) (*Processor, error) {
	config := TranslationConfig(flags)

	translator, err := translation.NewTranslator(ctx, config)
	if err != nil {
		return nil, err
	}

	// Fail before downloading anything when the local model runner is missing
	if translation.IsOllamaBackend(config.Backend) {
		if err := translation.NewOllamaTranslator(config).IsAvailable(); err != nil {
			return nil, err
		}
	}

	fetcher := fetch.NewFetcher(http.DefaultClient, FetchOptions(flags))
	extractor := extract.NewExtractor(flags.PDFBackend, log)

	return NewProcessorWithDeps(flags, fetcher, extractor, translator, log), nil
}

// NewProcessorWithDeps creates a processor from already built stages
func NewProcessorWithDeps(flags *cli.Flags, fetcher *fetch.Fetcher, extractor *extract.Extractor, translator translation.Translator, log zerolog.Logger) *Processor {
	return &Processor{
		flags:       flags,
		fetcher:     fetcher,
		extractor:   extractor,
		translator:  translator,
		log:         log,
		progressOut: os.Stderr,
	}
}

// TranslationConfig builds the translation backend configuration from flags
func TranslationConfig(flags *cli.Flags) *translation.Config {
	config := translation.DefaultConfig()
	config.Backend = flags.Backend
	config.Model = flags.Model
	config.Timeout = flags.Timeout
	if flags.Command != "" {
		config.Command = flags.Command
	}
	config.OpenAIKey = cli.GetOpenAIKey()
	config.OpenAIBaseURL = flags.OpenAIBaseURL
	config.GeminiKey = cli.GetGeminiKey()
	config.GeminiBaseURL = flags.GeminiBaseURL
	return config
}

// FetchOptions builds the download options from flags
func FetchOptions(flags *cli.Flags) *fetch.Options {
	options := fetch.DefaultOptions()
	options.TempDir = flags.TempDir
	options.MaxSizeBytes = flags.MaxSize
	return options
}

// ProcessSource translates a single URL or local PDF into outputPath.
// Nothing is written unless every paragraph was translated.
func (p *Processor) ProcessSource(ctx context.Context, source, outputPath string) (*Result, error) {
	start := time.Now()

	language, err := translation.NormalizeLanguage(p.flags.Language)
	if err != nil {
		return nil, err
	}

	p.log.Info().Str("source", source).Str("language", language).Str("backend", p.translator.Name()).Msg("Processing document")

	path, downloaded, err := p.fetcher.Resolve(ctx, source)
	if err != nil {
		return nil, err
	}
	if downloaded {
		p.log.Info().Str("path", path).Msg("Downloaded PDF")
		if !p.flags.KeepDownload {
			defer p.removeDownload(path)
		}
	}

	records, err := p.extractor.Extract(path)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		p.log.Warn().Str("source", source).Msg("No text found in document")
	}

	if err := p.translate(ctx, records, language); err != nil {
		return nil, err
	}

	result := &Result{
		Source:     source,
		Output:     outputPath,
		Paragraphs: len(records),
	}

	// Every fallible step runs before the output is renamed into place
	staged, err := output.StageJSON(outputPath, records)
	if err != nil {
		return nil, err
	}

	if p.flags.SQLitePath != "" {
		if err := output.NewSQLiteExporter(p.flags.SQLitePath).Export(source, language, records); err != nil {
			staged.Discard()
			return nil, err
		}
		p.log.Info().Str("database", p.flags.SQLitePath).Msg("Exported translations to SQLite")
	}

	if p.flags.Archive {
		archived, err := output.Archive(outputPath)
		if err != nil {
			staged.Discard()
			return nil, err
		}
		if archived != "" {
			p.log.Info().Str("archive", archived).Msg("Archived previous output")
		}
		result.Archived = archived
	}

	if err := staged.Commit(); err != nil {
		p.restoreArchived(result.Archived, outputPath)
		return nil, err
	}
	p.log.Info().Str("output", outputPath).Int("paragraphs", len(records)).Msg("Wrote translations")

	result.Duration = time.Since(start)
	return result, nil
}

// translate runs every record through the translator, reporting progress
// either as log lines or as a progress bar
func (p *Processor) translate(ctx context.Context, records []domain.ParagraphRecord, language string) error {
	var bar *progress.Bar
	if p.flags.Progress && len(records) > 0 {
		bar = progress.New(len(records), "Translating", p.progressOut)
	}

	report := func(current, total int, record domain.ParagraphRecord) {
		if bar != nil {
			bar.Describe(fmt.Sprintf("Page %d paragraph %d", record.Page, record.Index))
			bar.Set(current)
			p.log.Debug().Int("page", record.Page).Int("paragraph", record.Index).Msg("Translating paragraph")
			return
		}
		p.log.Info().
			Int("page", record.Page).
			Int("paragraph", record.Index).
			Str("progress", fmt.Sprintf("%d/%d", current+1, total)).
			Msgf("Translating page %d paragraph %d", record.Page, record.Index)
	}

	if err := translation.TranslateAll(ctx, p.translator, records, language, report); err != nil {
		return err
	}

	if bar != nil {
		bar.Set(len(records))
		bar.Finish()
	}
	return nil
}

// restoreArchived moves an archived output back after a failed write
func (p *Processor) restoreArchived(archived, outputPath string) {
	if archived == "" {
		return
	}
	if err := os.Rename(archived, outputPath); err != nil {
		p.log.Warn().Err(err).Str("archive", archived).Msg("Failed to restore archived output")
	}
}

func (p *Processor) removeDownload(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		p.log.Warn().Err(err).Str("path", path).Msg("Failed to remove downloaded PDF")
	}
}

// ProcessBatch translates every source listed in the batch file. The
// first failing source aborts the batch.
func (p *Processor) ProcessBatch(ctx context.Context) ([]*Result, error) {
	entries, err := batch.ReadBatchFile(p.flags.BatchFile)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, domain.NewValidationError(fmt.Sprintf("batch file %s lists no sources", p.flags.BatchFile), nil)
	}

	outputs, err := p.batchOutputs(entries)
	if err != nil {
		return nil, err
	}

	results := make([]*Result, 0, len(entries))
	for i, entry := range entries {
		outputPath := outputs[i]

		p.log.Info().Msgf("Processing %d/%d: %s", i+1, len(entries), entry.Source)

		result, err := p.ProcessSource(ctx, entry.Source, outputPath)
		if err != nil {
			return results, fmt.Errorf("batch line %d (%s): %w", entry.Line, entry.Source, err)
		}
		results = append(results, result)
	}

	paragraphs := 0
	for _, result := range results {
		paragraphs += result.Paragraphs
	}
	p.log.Info().Int("documents", len(results)).Int("paragraphs", paragraphs).Msg("Batch complete")

	return results, nil
}

// batchOutputs resolves the output file of every entry and rejects two
// entries writing to the same file
func (p *Processor) batchOutputs(entries []batch.Entry) ([]string, error) {
	outputs := make([]string, len(entries))
	seen := make(map[string]int, len(entries))

	for i, entry := range entries {
		outputPath := entry.Output
		if outputPath == "" {
			outputPath = p.batchOutputPath(entry.Source)
		}

		key := filepath.Clean(outputPath)
		if line, ok := seen[key]; ok {
			return nil, domain.NewValidationError(fmt.Sprintf(
				"batch lines %d and %d both write %s; add '= output.json' to one of them", line, entry.Line, outputPath), nil)
		}
		seen[key] = entry.Line
		outputs[i] = outputPath
	}

	return outputs, nil
}

// batchOutputPath derives an output file for a batch entry without one,
// next to the configured output file
func (p *Processor) batchOutputPath(source string) string {
	name := source
	if u, err := url.Parse(source); err == nil && u.Path != "" {
		name = u.Path
	}
	name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if name == "" || name == "." || name == "/" {
		name = "document"
	}

	dir := filepath.Dir(p.flags.Output)
	return filepath.Join(dir, internal.SanitizeFilename(name)+"_translated.json")
}
