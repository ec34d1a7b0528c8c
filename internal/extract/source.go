package extract

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"codeberg.org/snonux/pdftranslate/internal/domain"
)

// Backend names accepted by Open
const (
	BackendFitz = "fitz"
	BackendPure = "pure"
)

// PageSource provides raw text for each page of a document
type PageSource interface {
	// NumPage returns the number of pages
	NumPage() int

	// PageText returns the text of page n (1-based)
	PageText(n int) (string, error)

	// Close releases the document
	Close() error
}

// Backends lists the available page source backends
func Backends() []string {
	return []string{BackendFitz, BackendPure}
}

// Open validates path and opens it with the named backend
func Open(path, backend string) (PageSource, error) {
	if err := checkPDFHeader(path); err != nil {
		return nil, err
	}

	switch strings.ToLower(backend) {
	case "", BackendFitz:
		return openFitz(path)
	case BackendPure:
		return openPure(path)
	default:
		return nil, domain.NewValidationError(fmt.Sprintf("unknown PDF backend: %s", backend), nil)
	}
}

// checkPDFHeader ensures path is readable and starts with the PDF magic bytes
func checkPDFHeader(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return domain.NewDocumentError(path, "cannot open document", err)
	}
	defer file.Close()

	header := make([]byte, 1024)
	n, err := io.ReadFull(file, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return domain.NewDocumentError(path, "cannot read document", err)
	}

	if !bytes.Contains(header[:n], []byte("%PDF-")) {
		return domain.NewDocumentError(path, "not a PDF file", nil)
	}

	return nil
}
