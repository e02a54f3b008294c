package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compresr/session-keeper/internal/session"
)

func TestSplitLines_DropsBlankLines(t *testing.T) {
	content := "{\"a\":1}\n\n   \n{\"b\":2}\r\n\t\n{\"c\":3}\n"

	lines := session.SplitLines(content)

	assert.Equal(t, []string{`{"a":1}`, "{\"b\":2}\r", `{"c":3}`}, lines)
}

func TestSplitLines_Empty(t *testing.T) {
	assert.Empty(t, session.SplitLines(""))
	assert.Empty(t, session.SplitLines("\n\n  \n"))
}

func TestJoinLines_TrailingNewline(t *testing.T) {
	assert.Equal(t, "a\nb\n", session.JoinLines([]string{"a", "b"}))
}

func TestRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.jsonl")
	content := "one\n\ntwo\nthree\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	f, err := session.Read(path)
	require.NoError(t, err)

	assert.Equal(t, path, f.Path)
	assert.Equal(t, int64(len(content)), f.SizeBytes)
	assert.Equal(t, 3, f.LineCount())
	assert.Equal(t, []string{"one", "two", "three"}, f.Lines)
	assert.False(t, f.LastModified.IsZero())
}

func TestRead_NotFound(t *testing.T) {
	_, err := session.Read(filepath.Join(t.TempDir(), "missing.jsonl"))
	require.Error(t, err)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestRead_Directory(t *testing.T) {
	_, err := session.Read(t.TempDir())
	require.Error(t, err)
	assert.NotErrorIs(t, err, session.ErrNotFound)
}

func TestIsSessionFile(t *testing.T) {
	assert.True(t, session.IsSessionFile("abc.jsonl"))
	assert.False(t, session.IsSessionFile("abc.json"))
	assert.False(t, session.IsSessionFile("abc.jsonl.backup"))
}
