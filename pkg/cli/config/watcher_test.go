package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/vizopts/pkg/cli/config"
)

func TestWatcher_ReportsChangedFiles(t *testing.T) {
	dir := t.TempDir()
	panelPath := filepath.Join(dir, "panel.toml")
	otherPath := filepath.Join(dir, "notes.txt")
	gt.NoError(t, os.WriteFile(panelPath, []byte(`title = "a"`), 0600)).Required()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	changes := make(chan []string, 1)
	w := config.NewWatcher([]string{panelPath}, config.WithDebounce(50*time.Millisecond))
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(_ context.Context, changed []string) {
			changes <- changed
		})
	}()

	// give the watcher time to register the directory
	time.Sleep(100 * time.Millisecond)
	gt.NoError(t, os.WriteFile(otherPath, []byte("ignored"), 0600)).Required()
	gt.NoError(t, os.WriteFile(panelPath, []byte(`title = "b"`), 0600)).Required()

	select {
	case changed := <-changes:
		gt.Array(t, changed).Length(1).Required()
		gt.Value(t, changed[0]).Equal(panelPath)
	case <-ctx.Done():
		t.Fatal("no change reported")
	}

	cancel()
	gt.NoError(t, <-done)
}
