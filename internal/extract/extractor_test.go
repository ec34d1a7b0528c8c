package extract

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/pdftranslate/internal/domain"
	"codeberg.org/snonux/pdftranslate/internal/logging"
	"codeberg.org/snonux/pdftranslate/internal/testutil"
)

// memorySource serves page texts from memory
type memorySource struct {
	pages  []string
	failOn int
	closed bool
}

func (m *memorySource) NumPage() int { return len(m.pages) }

func (m *memorySource) PageText(n int) (string, error) {
	if n == m.failOn {
		return "", domain.NewDocumentError("mem", "broken page", nil)
	}
	return m.pages[n-1], nil
}

func (m *memorySource) Close() error {
	m.closed = true
	return nil
}

func TestSplitParagraphs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"blank line discarded", "Hello\n\nWorld\n", []string{"Hello", "World"}},
		{"empty", "", nil},
		{"only whitespace", "  \n\t\n \r\n", nil},
		{"trims", "  a  \n\tb\t", []string{"a", "b"}},
		{"crlf", "one\r\ntwo\r\n", []string{"one", "two"}},
		{"unicode", "数据\n  Ελληνικά ", []string{"数据", "Ελληνικά"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitParagraphs(tt.text))
		})
	}
}

func TestParagraphs_SinglePage(t *testing.T) {
	records, err := Paragraphs(&memorySource{pages: []string{"Hello\n\nWorld\n"}})
	require.NoError(t, err)

	assert.Equal(t, []domain.ParagraphRecord{
		{Page: 1, Index: 0, Original: "Hello"},
		{Page: 1, Index: 1, Original: "World"},
	}, records)
}

func TestParagraphs_PageAndIndexInvariants(t *testing.T) {
	src := &memorySource{pages: []string{
		"a\nb\nc",
		"   \n\n",
		"d\n\n e \n",
		"f",
	}}

	records, err := Paragraphs(src)
	require.NoError(t, err)
	require.Len(t, records, 6)

	nextIndex := map[int]int{}
	lastPage := 0
	for _, r := range records {
		assert.GreaterOrEqual(t, r.Page, 1)
		assert.LessOrEqual(t, r.Page, src.NumPage())
		assert.GreaterOrEqual(t, r.Page, lastPage, "pages must be ascending")
		assert.Equal(t, nextIndex[r.Page], r.Index, "indexes must be contiguous per page")
		assert.NotEmpty(t, strings.TrimSpace(r.Original))
		assert.Empty(t, r.Translation)
		nextIndex[r.Page]++
		lastPage = r.Page
	}

	assert.Zero(t, nextIndex[2], "whitespace-only page yields nothing")
}

func TestParagraphs_PageError(t *testing.T) {
	_, err := Paragraphs(&memorySource{pages: []string{"a", "b"}, failOn: 2})

	var docErr *domain.DocumentError
	assert.True(t, errors.As(err, &docErr))
}

func TestOpen_NotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.pdf")
	testutil.CreateTestFile(t, path, []byte("just some text"))

	for _, backend := range Backends() {
		t.Run(backend, func(t *testing.T) {
			_, err := Open(path, backend)
			var docErr *domain.DocumentError
			require.True(t, errors.As(err, &docErr))
			assert.Contains(t, err.Error(), "not a PDF")
		})
	}
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.pdf"), BackendPure)

	var docErr *domain.DocumentError
	require.True(t, errors.As(err, &docErr))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestOpen_UnknownBackend(t *testing.T) {
	path := testutil.WriteTestPDF(t, t.TempDir(), []string{"Hello"})

	_, err := Open(path, "poppler")
	var valErr *domain.ValidationError
	assert.True(t, errors.As(err, &valErr))
}

func TestExtract_Fitz(t *testing.T) {
	path := testutil.WriteTestPDF(t, t.TempDir(),
		[]string{"Hello", "", "World"},
		[]string{"Second page"},
	)

	records, err := NewExtractor(BackendFitz, logging.Nop()).Extract(path)
	require.NoError(t, err)

	assert.Equal(t, []domain.ParagraphRecord{
		{Page: 1, Index: 0, Original: "Hello"},
		{Page: 1, Index: 1, Original: "World"},
		{Page: 2, Index: 0, Original: "Second page"},
	}, records)
}

func TestExtract_Pure(t *testing.T) {
	path := testutil.WriteTestPDF(t, t.TempDir(), []string{"Hello"}, []string{"World"})

	records, err := NewExtractor(BackendPure, logging.Nop()).Extract(path)
	require.NoError(t, err)
	require.NotEmpty(t, records)

	var page1, page2 []string
	for _, r := range records {
		switch r.Page {
		case 1:
			page1 = append(page1, r.Original)
		case 2:
			page2 = append(page2, r.Original)
		default:
			t.Fatalf("unexpected page %d", r.Page)
		}
	}
	assert.Contains(t, strings.Join(page1, " "), "Hello")
	assert.Contains(t, strings.Join(page2, " "), "World")
}

func TestExtract_EmptyPage(t *testing.T) {
	path := testutil.WriteTestPDF(t, t.TempDir(), []string{})

	records, err := NewExtractor(BackendFitz, logging.Nop()).Extract(path)
	require.NoError(t, err)
	assert.Empty(t, records)
}
