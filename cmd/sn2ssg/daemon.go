package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/sn2ssg/sn2ssg"
	"github.com/sn2ssg/sn2ssg/pkg/render"
)

// daemonCmd represents the daemon command
var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the conversion on a polling cycle",
	Long: `Run the conversion repeatedly: once at startup, then again every
polling cycle. When a template file is configured, a change to it also
triggers an immediate re-run. Stop with SIGINT or SIGTERM.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			fatal("Invalid configuration", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		trigger := make(chan struct{}, 1)
		if cfg.Format == render.FormatTemplate && cfg.TemplatePath != "" {
			if err := watchTemplate(ctx, cfg.TemplatePath, trigger); err != nil {
				fatal("Failed to watch template", err)
			}
		}

		interval := cfg.PollingInterval()
		slog.Info("daemon started", "interval", interval)

		for {
			if _, err := sn2ssg.Run(ctx, cfg); err != nil {
				// The run notified already; the daemon stays up and
				// tries again next cycle.
				slog.Error("cycle failed", "error", err)
			}

			select {
			case <-ctx.Done():
				slog.Info("daemon stopping")
				return
			case <-time.After(interval):
			case <-trigger:
				slog.Info("template changed, re-running")
			}
		}
	},
}

// watchTemplate signals trigger whenever the template file is rewritten.
// Watching the directory instead of the file survives editors that
// replace files on save.
func watchTemplate(ctx context.Context, path string, trigger chan<- struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return err
	}

	target := filepath.Clean(path)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					select {
					case trigger <- struct{}{}:
					default:
					}
				}
			case werr, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				slog.Error("template watcher error", "error", werr)
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		slog.Error("template watcher panic", "error", err)
	}))

	return nil
}

func init() {
	rootCmd.AddCommand(daemonCmd)
}
