package extract

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"

	"codeberg.org/snonux/pdftranslate/internal/domain"
)

// pureSource reads page text with the pure Go PDF reader
type pureSource struct {
	file   *os.File
	reader *pdf.Reader
	path   string
}

func openPure(path string) (src PageSource, err error) {
	// The reader panics on some malformed documents
	defer func() {
		if r := recover(); r != nil {
			src, err = nil, domain.NewDocumentError(path, "failed to open PDF", fmt.Errorf("%v", r))
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, domain.NewDocumentError(path, "failed to open PDF", err)
	}
	return &pureSource{file: f, reader: r, path: path}, nil
}

func (s *pureSource) NumPage() int {
	return s.reader.NumPage()
}

func (s *pureSource) PageText(n int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", domain.NewDocumentError(s.path,
				fmt.Sprintf("failed to extract text from page %d", n), fmt.Errorf("%v", r))
		}
	}()

	page := s.reader.Page(n)
	if page.V.IsNull() {
		return "", nil
	}

	text, err = page.GetPlainText(nil)
	if err != nil {
		return "", domain.NewDocumentError(s.path, fmt.Sprintf("failed to extract text from page %d", n), err)
	}
	return text, nil
}

func (s *pureSource) Close() error {
	return s.file.Close()
}
