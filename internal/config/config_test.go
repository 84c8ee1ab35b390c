package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigRootOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("REFORMATTER_CONFIG_DIR", dir)
	assert.Equal(t, dir, GetConfigRoot())
}

func TestVocabularyFilePrecedence(t *testing.T) {
	root := t.TempDir()
	t.Setenv("REFORMATTER_CONFIG_DIR", root)
	t.Setenv("REFORMATTER_VOCAB", "")

	path, src := VocabularyFile("")
	assert.Empty(t, path)
	assert.Equal(t, SourceBuiltin, src)

	cfg := filepath.Join(root, VocabularyFileName)
	require.NoError(t, os.WriteFile(cfg, []byte("vocabularies: {}\n"), 0o644))
	path, src = VocabularyFile("")
	assert.Equal(t, cfg, path)
	assert.Equal(t, SourceConfig, src)

	t.Setenv("REFORMATTER_VOCAB", "/env/vocab.yaml")
	path, src = VocabularyFile("")
	assert.Equal(t, "/env/vocab.yaml", path)
	assert.Equal(t, SourceEnv, src)

	path, src = VocabularyFile("/flag/vocab.yaml")
	assert.Equal(t, "/flag/vocab.yaml", path)
	assert.Equal(t, SourceFlag, src)
}

func TestVocabularyFileIgnoresDirectory(t *testing.T) {
	root := t.TempDir()
	t.Setenv("REFORMATTER_CONFIG_DIR", root)
	t.Setenv("REFORMATTER_VOCAB", "")
	require.NoError(t, os.Mkdir(filepath.Join(root, VocabularyFileName), 0o755))

	path, src := VocabularyFile("")
	assert.Empty(t, path)
	assert.Equal(t, SourceBuiltin, src)
}
