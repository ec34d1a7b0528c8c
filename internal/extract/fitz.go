package extract

import (
	"fmt"

	"github.com/gen2brain/go-fitz"

	"codeberg.org/snonux/pdftranslate/internal/domain"
)

// fitzSource reads page text through MuPDF
type fitzSource struct {
	doc  *fitz.Document
	path string
}

func openFitz(path string) (PageSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, domain.NewDocumentError(path, "failed to open PDF", err)
	}
	return &fitzSource{doc: doc, path: path}, nil
}

func (s *fitzSource) NumPage() int {
	return s.doc.NumPage()
}

func (s *fitzSource) PageText(n int) (string, error) {
	text, err := s.doc.Text(n - 1)
	if err != nil {
		return "", domain.NewDocumentError(s.path, fmt.Sprintf("failed to extract text from page %d", n), err)
	}
	return text, nil
}

func (s *fitzSource) Close() error {
	return s.doc.Close()
}
