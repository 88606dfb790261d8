package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sn2ssg/sn2ssg"
)

var (
	verbose    bool
	cfgFile    string
	flagTag    string
	flagOut    string
	flagFormat string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sn2ssg",
	Short: "Convert tagged Simplenote notes into static-site Markdown pages",
	Long: `sn2ssg bridges a note-taking workflow and a static site.
Notes carrying the publication tag are fetched via sncli, converted into
front-matter Markdown, and written into the directory your SSG builds from.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// loadConfig resolves the configuration: TOML file when --config is
// given, environment otherwise, with flags overriding both.
func loadConfig() (sn2ssg.Config, error) {
	var cfg sn2ssg.Config
	if cfgFile != "" {
		loaded, err := sn2ssg.LoadFile(cfgFile)
		if err != nil {
			return sn2ssg.Config{}, err
		}
		cfg = loaded
	} else {
		cfg = sn2ssg.FromEnv()
	}

	if flagTag != "" {
		cfg.Tag = flagTag
	}
	if flagOut != "" {
		cfg.OutputDir = flagOut
	}
	if flagFormat != "" {
		cfg.Format = flagFormat
	}
	cfg.Logger = slog.Default()

	return cfg, cfg.Validate()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to TOML config file (default: environment)")
	rootCmd.PersistentFlags().StringVarP(&flagTag, "tag", "t", "", "Publication tag (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&flagOut, "output", "o", "", "Output directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "", "Front-matter format: yaml, toml or template (overrides config)")
}
