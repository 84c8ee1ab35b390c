package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rferrors "github.com/provide-io/reformatter/pkg/errors"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("REFORMATTER_CONFIG_DIR", t.TempDir())
	t.Setenv("REFORMATTER_VOCAB", "")
	t.Setenv("REFORMATTER_LOG_LEVEL", "")
	t.Setenv("REFORMATTER_JSON_LOG", "")

	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeScript(t *testing.T, content string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	in := filepath.Join(dir, "script.force")
	require.NoError(t, os.WriteFile(in, []byte(content), 0o644))
	return in, filepath.Join(dir, "script.out")
}

func TestCLIConvert(t *testing.T) {
	in, out := writeScript(t, "Do it!\nThe Sacred Jedi Texts! \"hi\"\nMay The Force be with you.\n")

	code, _, stderr := runCLI(t, in, "force", "pseudo", out)
	require.Equal(t, 0, code, stderr)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "BeginMain\nPrint \"hi\"\nEndMain\n", string(got))
}

func TestCLIVideo(t *testing.T) {
	in, out := writeScript(t, "It's a trap!\n")

	code, _, stderr := runCLI(t, in, "force", "video", out)
	require.Equal(t, 0, code, stderr)
	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "\n", string(got))

	code, _, stderr = runCLI(t, "--delete-policy", "keep", in, "force", "video", out)
	require.Equal(t, 0, code, stderr)
	got, err = os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "It's a trap!\n", string(got))
}

func TestCLIWrongArgumentCount(t *testing.T) {
	for _, args := range [][]string{{}, {"a"}, {"a", "b", "c"}, {"a", "b", "c", "d", "e"}} {
		code, _, stderr := runCLI(t, args...)
		assert.Equal(t, rferrors.ExitUsage, code)
		assert.Contains(t, stderr, "Usage is:")
		assert.Contains(t, stderr, "Valid input formats are { force, pseudo }. Valid output formats are { force, pseudo, video }.")
	}
}

func TestCLIUnknownFlag(t *testing.T) {
	code, _, stderr := runCLI(t, "--bogus", "a", "b", "c", "d")
	assert.Equal(t, rferrors.ExitUsage, code)
	assert.Contains(t, stderr, "Usage is:")
}

func TestCLIInvalidMode(t *testing.T) {
	in, out := writeScript(t, "Do it!\n")

	code, _, stderr := runCLI(t, in, "klingon", "pseudo", out)
	assert.Equal(t, rferrors.ExitInvalidMode, code)
	assert.Contains(t, stderr, "Incorrect input type")

	code, _, stderr = runCLI(t, in, "force", "klingon", out)
	assert.Equal(t, rferrors.ExitInvalidMode, code)
	assert.Contains(t, stderr, "Incorrect output type")

	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestCLIIndexOutOfRange(t *testing.T) {
	dir := t.TempDir()
	vocabPath := filepath.Join(dir, "vocab.yaml")
	require.NoError(t, os.WriteFile(vocabPath, []byte("vocabularies:\n  long: [a, b, c]\n  short: [x]\n"), 0o644))
	in, out := writeScript(t, "c\n")

	code, _, stderr := runCLI(t, "--vocab", vocabPath, in, "long", "short", out)
	assert.Equal(t, rferrors.ExitOutOfRange, code)
	assert.Contains(t, stderr, "index 2")

	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestCLIMissingInput(t *testing.T) {
	dir := t.TempDir()
	code, _, _ := runCLI(t, filepath.Join(dir, "nope"), "force", "pseudo", filepath.Join(dir, "out"))
	assert.Equal(t, 1, code)
}

func TestCLIMode(t *testing.T) {
	in, out := writeScript(t, "Do it!\n")

	code, _, stderr := runCLI(t, "--mode", "0600", in, "force", "pseudo", out)
	require.Equal(t, 0, code, stderr)
	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	code, _, _ = runCLI(t, "--mode", "999", in, "force", "pseudo", out)
	assert.Equal(t, rferrors.ExitUsage, code)
}

func TestCLIList(t *testing.T) {
	code, stdout, _ := runCLI(t, "--list")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "force")
	assert.Contains(t, stdout, "42 tokens")
	assert.Contains(t, stdout, "pseudo")
	assert.Contains(t, stdout, "video")
}

func TestCLIVersion(t *testing.T) {
	code, stdout, _ := runCLI(t, "-V")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "reformatter "+version)
	assert.Contains(t, stdout, "Built: ")
}
