package extract

import (
	"strings"

	"github.com/rs/zerolog"

	"codeberg.org/snonux/pdftranslate/internal/domain"
)

// Extractor opens PDFs and produces paragraph records
type Extractor struct {
	backend string
	log     zerolog.Logger
}

// NewExtractor creates an extractor using the named backend
func NewExtractor(backend string, log zerolog.Logger) *Extractor {
	if backend == "" {
		backend = BackendFitz
	}
	return &Extractor{backend: backend, log: log}
}

// Extract opens the PDF at path and returns its paragraphs in page order
func (e *Extractor) Extract(path string) ([]domain.ParagraphRecord, error) {
	src, err := Open(path, e.backend)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	e.log.Debug().Str("path", path).Str("backend", e.backend).Int("pages", src.NumPage()).Msg("Opened PDF")

	records, err := Paragraphs(src)
	if err != nil {
		return nil, err
	}

	e.log.Info().Int("pages", src.NumPage()).Int("paragraphs", len(records)).Msg("Extracted paragraphs")
	return records, nil
}

// Paragraphs walks every page of src and splits its text into records
func Paragraphs(src PageSource) ([]domain.ParagraphRecord, error) {
	var records []domain.ParagraphRecord

	for page := 1; page <= src.NumPage(); page++ {
		text, err := src.PageText(page)
		if err != nil {
			return nil, err
		}

		for idx, para := range SplitParagraphs(text) {
			records = append(records, domain.NewParagraphRecord(page, idx, para))
		}
	}

	return records, nil
}

// SplitParagraphs splits text on newlines, trims each piece and drops the
// blank ones
func SplitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var paragraphs []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			paragraphs = append(paragraphs, line)
		}
	}
	return paragraphs
}
