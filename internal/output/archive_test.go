package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/pdftranslate/internal/testutil"
)

func TestArchive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "translated_output.json")
	testutil.CreateTestFile(t, path, []byte("[]"))

	archived, err := Archive(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "archive"), filepath.Dir(archived))
	assert.True(t, strings.HasPrefix(filepath.Base(archived), "translated_output-"))
	assert.Equal(t, ".json", filepath.Ext(archived))
	testutil.AssertFileNotExists(t, path)
	testutil.AssertFileExists(t, archived)
}

func TestArchive_TwiceInSameSecond(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	testutil.CreateTestFile(t, path, []byte("first"))
	first, err := Archive(path)
	require.NoError(t, err)

	testutil.CreateTestFile(t, path, []byte("second"))
	second, err := Archive(path)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	entries, err := os.ReadDir(filepath.Join(dir, "archive"))
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestArchive_NothingToArchive(t *testing.T) {
	archived, err := Archive(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Empty(t, archived)
}
