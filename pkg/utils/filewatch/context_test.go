package filewatch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sklowrylaw/website/pkg/utils/filewatch"
)

func TestUntilModifyContext(t *testing.T) {
	t.Run("it cancels the context when the watched file is written", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "config.yaml")
		if err := os.WriteFile(target, []byte("port: 5000\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		ctx, cancel, err := filewatch.UntilModifyContext(context.Background(), target)
		if err != nil {
			t.Fatal(err)
		}
		defer cancel()

		if err := os.WriteFile(target, []byte("port: 5001\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		select {
		case <-ctx.Done():
			// ok
		case <-time.After(3 * time.Second):
			t.Error("context is not canceled after the file is modified")
		}
	})

	t.Run("it fails when the watched file does not exist", func(t *testing.T) {
		if _, _, err := filewatch.UntilModifyContext(
			context.Background(), filepath.Join(t.TempDir(), "no-such-file"),
		); err == nil {
			t.Error("watching a missing file does not fail")
		}
	})
}
