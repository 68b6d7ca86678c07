package fsscanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func collectAll(t *testing.T, ch <-chan string) []string {
	t.Helper()
	var out []string
	for p := range ch {
		out = append(out, p)
	}
	return out
}

func TestWalk_SkipsDenylistedDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "node_modules", "pkg"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "node_modules", "pkg", "mod.go"), []byte("package mod"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kept.go"), []byte("package kept"), 0o644))

	w := New()
	ch, err := w.Walk(context.Background(), dir, WalkOptions{})
	require.NoError(t, err)

	paths := collectAll(t, ch)
	require.Len(t, paths, 1)
	require.Equal(t, filepath.Join(dir, "kept.go"), paths[0])
}

func TestWalk_RespectsGitignore(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("ignored.go\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.go"), []byte("package x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kept.go"), []byte("package x"), 0o644))

	w := New()
	ch, err := w.Walk(context.Background(), dir, WalkOptions{UseGitignore: true})
	require.NoError(t, err)

	paths := collectAll(t, ch)
	require.Len(t, paths, 1)
	require.Equal(t, filepath.Join(dir, "kept.go"), paths[0])
}

func TestWalk_SkipsBinaryFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.bin"), []byte{0x00, 0x01, 0xFE, 0xFF}, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "text.go"), []byte("package x"), 0o644))

	w := New()
	ch, err := w.Walk(context.Background(), dir, WalkOptions{})
	require.NoError(t, err)

	paths := collectAll(t, ch)
	require.Len(t, paths, 1)
	require.Equal(t, filepath.Join(dir, "text.go"), paths[0])
}

func TestWalk_CancellationStopsEarly(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 50; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "f"+string(rune('a'+i%26))+".go"), []byte("package x"), 0o644))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := New()
	ch, err := w.Walk(ctx, dir, WalkOptions{})
	require.NoError(t, err)

	paths := collectAll(t, ch)
	require.Less(t, len(paths), 50)
}
