package discovery_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compresr/session-keeper/internal/discovery"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0600))
}

func TestFinder_Find(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.jsonl"))
	touch(t, filepath.Join(dir, "a.jsonl"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, "a.jsonl.backup"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.jsonl"), 0750))

	f := discovery.New(map[string]string{"codex": dir})
	sessions, err := f.Find("codex")
	require.NoError(t, err)

	assert.Equal(t, []discovery.Session{
		{Path: filepath.Join(dir, "a.jsonl"), Tool: "codex"},
		{Path: filepath.Join(dir, "b.jsonl"), Tool: "codex"},
	}, sessions)
}

func TestFinder_Find_UnknownTool(t *testing.T) {
	f := discovery.New(map[string]string{"codex": t.TempDir()})

	sessions, err := f.Find("vim")
	assert.ErrorIs(t, err, discovery.ErrUnknownTool)
	assert.NotNil(t, sessions)
	assert.Empty(t, sessions)
}

func TestFinder_Find_MissingDirectory(t *testing.T) {
	f := discovery.New(map[string]string{"aider": filepath.Join(t.TempDir(), "nope")})

	sessions, err := f.Find("aider")
	assert.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestFinder_FindAll(t *testing.T) {
	root := t.TempDir()
	aider := filepath.Join(root, "aider")
	codex := filepath.Join(root, "codex")
	require.NoError(t, os.MkdirAll(aider, 0750))
	require.NoError(t, os.MkdirAll(codex, 0750))
	touch(t, filepath.Join(aider, "x.jsonl"))
	touch(t, filepath.Join(codex, "y.jsonl"))

	f := discovery.New(map[string]string{
		"codex":  codex,
		"aider":  aider,
		"cursor": filepath.Join(root, "missing"),
	})

	assert.Equal(t, []string{"aider", "codex", "cursor"}, f.Tools())
	assert.Equal(t, []discovery.Session{
		{Path: filepath.Join(aider, "x.jsonl"), Tool: "aider"},
		{Path: filepath.Join(codex, "y.jsonl"), Tool: "codex"},
	}, f.FindAll())
}

func TestFinder_HomeExpansion(t *testing.T) {
	home := t.TempDir()
	dir := filepath.Join(home, ".claude", "sessions")
	require.NoError(t, os.MkdirAll(dir, 0750))
	touch(t, filepath.Join(dir, "s.jsonl"))

	f := discovery.NewWithHome(map[string]string{"claude-code": "~/.claude/sessions"}, home)

	got, ok := f.Dir("claude-code")
	require.True(t, ok)
	assert.Equal(t, dir, got)

	sessions, err := f.Find("claude-code")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, filepath.Join(dir, "s.jsonl"), sessions[0].Path)
}

func TestExpandPath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"~", "/home/u"},
		{"~/x/y", filepath.Join("/home/u", "x", "y")},
		{"/abs/path", "/abs/path"},
		{"rel/~/path", "rel/~/path"},
		{"~other/x", "~other/x"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, discovery.ExpandPath(tt.in, "/home/u"))
		})
	}

	assert.Equal(t, "~/x", discovery.ExpandPath("~/x", ""))
}
