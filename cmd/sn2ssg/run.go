package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sn2ssg/sn2ssg"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Convert tagged notes into Markdown files once",
	Long: `Fetch all notes carrying the publication tag, convert each into a
front-matter Markdown page, and write the pages into the output directory.
Per-note failures are reported at the end; they do not abort the run.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			fatal("Invalid configuration", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		report, err := sn2ssg.Run(ctx, cfg)
		if err != nil {
			fatal("Run failed", err)
		}

		fmt.Printf("%d notes fetched, %d published, %d written, %d unchanged\n",
			report.Fetched, report.Published, report.Written, report.Unchanged)

		if len(report.Failures) > 0 {
			fmt.Fprintf(os.Stderr, "%d notes failed:\n", len(report.Failures))
			for _, f := range report.Failures {
				fmt.Fprintf(os.Stderr, "  %s (%s): %v\n", f.NoteID, f.Stage, f.Err)
			}
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
