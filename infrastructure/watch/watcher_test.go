package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gerv/slic/application/license"
	"github.com/gerv/slic/domain"
	"github.com/gerv/slic/infrastructure/classifier"
	"github.com/gerv/slic/infrastructure/commentsyntax"
)

func TestWatcher_ReclassifiesChangedFile(t *testing.T) {
	syntax, err := commentsyntax.Default()
	require.NoError(t, err)
	tax, err := classifier.Default()
	require.NoError(t, err)
	orch := license.NewOrchestrator(syntax, tax, domain.NoopLogger{})
	agg := license.NewAggregator()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.go")
	require.NoError(t, os.WriteFile(path, []byte("package a\n"), 0o644))

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	changed := make(chan string, 1)
	w := New(orch, agg, domain.NoopLogger{})

	go func() {
		_ = w.Start(ctx, dir, func(p string, hits []domain.LicenseHit) {
			select {
			case changed <- p:
			default:
			}
		})
	}()

	time.Sleep(100 * time.Millisecond)

	mit := "// Permission is hereby granted, free of charge, to deal in the Software.\n" +
		"// THE SOFTWARE IS PROVIDED \"AS IS\", WITHOUT WARRANTY.\npackage a\n"
	require.NoError(t, os.WriteFile(path, []byte(mit), 0o644))

	select {
	case got := <-changed:
		require.Equal(t, path, got)
	case <-ctx.Done():
		t.Fatal("timed out waiting for debounced change callback")
	}
}
