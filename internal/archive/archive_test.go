package archive

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/vocabtrans/internal/testutil"
)

func TestSnapshot(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "vocabulary.json")
	content := []byte(`[{"term":"año"}]`)
	testutil.CreateTestFile(t, path, content)

	archived, err := Snapshot(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tmpDir, "archive"), filepath.Dir(archived))
	base := filepath.Base(archived)
	assert.True(t, strings.HasPrefix(base, "vocabulary-"), "unexpected archive name %s", base)
	assert.True(t, strings.HasSuffix(base, ".json"), "unexpected archive name %s", base)

	// Timestamp part must parse
	stamp := strings.TrimSuffix(strings.TrimPrefix(base, "vocabulary-"), ".json")
	_, err = time.ParseInLocation("20060102-150405", stamp, time.Local)
	assert.NoError(t, err)

	testutil.AssertFileContent(t, archived, content)
	// The original stays in place
	testutil.AssertFileContent(t, path, content)
}

func TestSnapshot_SameSecond(t *testing.T) {
	path := testutil.CreateVocabularyFile(t, `[]`)

	first, err := Snapshot(path)
	require.NoError(t, err)
	second, err := Snapshot(path)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	testutil.AssertFileExists(t, first)
	testutil.AssertFileExists(t, second)
}

func TestSnapshot_Missing(t *testing.T) {
	_, err := Snapshot(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vocabulary file does not exist")
}

func TestSnapshot_Directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "vocabulary.json"), 0755))

	_, err := Snapshot(filepath.Join(dir, "vocabulary.json"))
	assert.Error(t, err)
}
