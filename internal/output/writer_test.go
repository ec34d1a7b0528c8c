package output

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/pdftranslate/internal/domain"
	"codeberg.org/snonux/pdftranslate/internal/testutil"
)

func sampleRecords() []domain.ParagraphRecord {
	return []domain.ParagraphRecord{
		{Page: 1, Index: 0, Original: "Hello", Translation: "你好"},
		{Page: 1, Index: 1, Original: "World <b>&</b>", Translation: "世界"},
		{Page: 3, Index: 0, Original: "Last", Translation: ""},
	}
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "translated_output.json")
	records := sampleRecords()

	require.NoError(t, WriteJSON(path, records))

	got, err := ReadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestWriteJSON_Format(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteJSON(path, sampleRecords()[:1]))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	want := `[
  {
    "page": 1,
    "index": 0,
    "original": "Hello",
    "translation": "你好"
  }
]
`
	assert.Equal(t, want, string(content))
}

func TestWriteJSON_NoEscaping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteJSON(path, sampleRecords()))

	testutil.AssertFileContains(t, path, "世界")
	testutil.AssertFileContains(t, path, "World <b>&</b>")
}

func TestWriteJSON_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteJSON(path, nil))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(content))
}

func TestWriteJSON_Overwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	testutil.CreateTestFile(t, path, []byte(strings.Repeat("old content ", 1000)))

	require.NoError(t, WriteJSON(path, sampleRecords()[:1]))

	got, err := ReadJSON(path)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestWriteJSON_UnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.json")

	err := WriteJSON(path, sampleRecords())
	require.Error(t, err)

	var ioErr *domain.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, path, ioErr.Path)
	testutil.AssertFileNotExists(t, path)
}

func TestWriteJSON_PathIsDirectory(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out.json")
	require.NoError(t, os.Mkdir(target, 0755))

	err := WriteJSON(target, sampleRecords())
	assert.Equal(t, domain.KindIO, domain.KindOf(err))
}

func TestReadJSON_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadJSON(filepath.Join(dir, "missing.json"))
	assert.Equal(t, domain.KindIO, domain.KindOf(err))

	bad := filepath.Join(dir, "bad.json")
	testutil.CreateTestFile(t, bad, []byte("{not json"))
	_, err = ReadJSON(bad)
	assert.Equal(t, domain.KindIO, domain.KindOf(err))
}

func TestStageJSON_CommitAndDiscard(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	testutil.CreateTestFile(t, path, []byte("old"))

	staged, err := StageJSON(path, sampleRecords())
	require.NoError(t, err)
	assert.Equal(t, path, staged.Path())

	// The destination is untouched until Commit
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(content))

	staged.Discard()
	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(content))

	staged, err = StageJSON(path, sampleRecords())
	require.NoError(t, err)
	require.NoError(t, staged.Commit())

	got, err := ReadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), got)

	// No temporary files are left behind either way
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.json", entries[0].Name())
}
