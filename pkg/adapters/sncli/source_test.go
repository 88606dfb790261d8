package sncli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeSncli writes a shell script standing in for the sncli binary.
func fakeSncli(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stub not available on windows")
	}
	path := filepath.Join(t.TempDir(), "sncli")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxRetries: attempts,
		BaseDelay:  time.Millisecond,
		MaxDelay:   5 * time.Millisecond,
	}
}

func TestSourceFetchAll(t *testing.T) {
	bin := fakeSncli(t, `cat <<'EOF'
+---+
| Title: Fetched Note |
| Key: k1 |
| Date: Fri, 01 Sep 2023 02:33:35 |
| Tags: publish |
+---+

Body.
EOF
`)

	src := NewSource(NewClient(bin, discard()), "publish", fastRetry(2), discard())
	notes, err := src.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(notes) != 1 || notes[0].ID != "k1" {
		t.Errorf("notes = %+v", notes)
	}
}

func TestSourceFetchAllExhaustsRetries(t *testing.T) {
	bin := fakeSncli(t, `echo "connection refused" >&2
exit 1
`)

	src := NewSource(NewClient(bin, discard()), "publish", fastRetry(3), discard())
	_, err := src.FetchAll(context.Background())
	if err == nil {
		t.Fatal("expected error after exhausted retries")
	}
	if !strings.Contains(err.Error(), "after 3 attempts") {
		t.Errorf("error does not report attempts: %v", err)
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("error does not carry sncli stderr: %v", err)
	}
}

func TestSourceFetchAllRejectsUntaggedNotes(t *testing.T) {
	// sncli can emit a partially synced dump where some notes are missing
	// the tag; the source must not accept it.
	bin := fakeSncli(t, `cat <<'EOF'
+---+
| Title: Stray Note |
| Key: k1 |
| Date: Fri, 01 Sep 2023 02:33:35 |
| Tags: other |
+---+

Body.
EOF
`)

	src := NewSource(NewClient(bin, discard()), "publish", fastRetry(2), discard())
	if _, err := src.FetchAll(context.Background()); err == nil {
		t.Fatal("expected validation error for an untagged note")
	}
}

func TestSourceFetchAllCancelled(t *testing.T) {
	bin := fakeSncli(t, "exit 1\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := NewSource(NewClient(bin, discard()), "publish", fastRetry(5), discard())
	if _, err := src.FetchAll(ctx); err == nil {
		t.Fatal("expected error when context is cancelled")
	}
}

func TestRetryConfigDefaults(t *testing.T) {
	cfg := RetryConfig{}.withDefaults()
	if cfg.MaxRetries != DefaultMaxRetries {
		t.Errorf("MaxRetries = %d", cfg.MaxRetries)
	}
	if cfg.BaseDelay != DefaultBaseDelay || cfg.MaxDelay != DefaultMaxDelay {
		t.Errorf("delays = %v/%v", cfg.BaseDelay, cfg.MaxDelay)
	}
}
