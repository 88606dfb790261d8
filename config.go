package sn2ssg

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/sn2ssg/sn2ssg/pkg/core"
	"github.com/sn2ssg/sn2ssg/pkg/render"
)

// GotifyConfig points at a Gotify server for run notifications. Empty URL
// disables notifications.
type GotifyConfig struct {
	URL   string `toml:"url"`
	Token string `toml:"token"`
}

// Config carries every option the pipeline needs. Components receive it
// explicitly; nothing in the core reads ambient environment state, which
// keeps the pipeline testable without environment mutation.
type Config struct {
	// Tag is the publication tag. Required.
	Tag string `toml:"tag"`
	// OutputDir is the directory the SSG build consumes. Required.
	OutputDir string `toml:"output_dir"`

	// DateFormat is a Go time layout for the front-matter date.
	DateFormat string `toml:"date_format"`
	// DatePrefix prepends YYYY-MM-DD- to output filenames.
	DatePrefix bool `toml:"date_prefix"`
	// IncludeControlTag keeps the publication tag in the visible tag
	// list instead of treating it as a control tag.
	IncludeControlTag bool `toml:"include_control_tag"`

	// IgnoreTags are stripped from the visible tag list.
	IgnoreTags []string `toml:"ignore_tags"`
	// UnlistedTags mark notes as unlisted in the front matter.
	UnlistedTags []string `toml:"unlisted_tags"`
	// TitleSubstitutions are "find:replace" pairs deriving the summary
	// field from the title when "find" appears among the note's tags.
	TitleSubstitutions []string `toml:"title_substitutions"`
	// ContinuousTag ("tag:replacement") enables continuous note
	// expansion.
	ContinuousTag string `toml:"continuous_tag"`
	// FallbackTag replaces an empty visible tag list.
	FallbackTag string `toml:"fallback_tag"`
	// Author is copied into the front matter when set.
	Author string `toml:"author"`

	// Format selects the front-matter syntax: yaml (default), toml, or
	// template. TemplatePath names the template file for the latter.
	Format       string `toml:"format"`
	TemplatePath string `toml:"template_path"`

	// SncliPath overrides the sncli binary location.
	SncliPath string `toml:"sncli_path"`
	// MaxRetries / BaseDelay / MaxDelay bound the fetch backoff.
	// Delays are in seconds.
	MaxRetries int     `toml:"max_retries"`
	BaseDelay  float64 `toml:"base_delay"`
	MaxDelay   float64 `toml:"max_delay"`

	// PollingCycle is the daemon's sleep between runs, in seconds.
	PollingCycle int `toml:"polling_cycle"`

	Gotify GotifyConfig `toml:"gotify"`

	// Debug additionally notifies on successful runs.
	Debug bool `toml:"debug"`

	Logger *slog.Logger `toml:"-"`
}

// Validate checks the required fields.
func (c Config) Validate() error {
	if c.Tag == "" {
		return fmt.Errorf("publication tag is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	switch c.Format {
	case "", render.FormatYAML, render.FormatTOML:
	case render.FormatTemplate:
		if c.TemplatePath == "" {
			return fmt.Errorf("template format requires template_path")
		}
	default:
		return fmt.Errorf("unknown front-matter format: %q", c.Format)
	}
	return nil
}

// PollingInterval returns the daemon cycle as a duration, defaulting to
// one hour.
func (c Config) PollingInterval() time.Duration {
	if c.PollingCycle <= 0 {
		return time.Hour
	}
	return time.Duration(c.PollingCycle) * time.Second
}

func (c Config) baseDelay() time.Duration {
	return time.Duration(c.BaseDelay * float64(time.Second))
}

func (c Config) maxDelay() time.Duration {
	return time.Duration(c.MaxDelay * float64(time.Second))
}

// substitutions parses the raw "find:replace" pairs, skipping malformed
// entries.
func (c Config) substitutions() []core.Substitution {
	subs := make([]core.Substitution, 0, len(c.TitleSubstitutions))
	for _, raw := range c.TitleSubstitutions {
		find, replace, ok := strings.Cut(raw, ":")
		if !ok || find == "" {
			continue
		}
		subs = append(subs, core.Substitution{Find: find, Replace: replace})
	}
	return subs
}

// LoadFile reads a TOML configuration file.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// FromEnv builds a Config from the environment, loading a .env file from
// the working directory first when one exists. The variable names follow
// the original deployment surface of the converter.
func FromEnv() Config {
	_ = godotenv.Load()

	cfg := Config{
		Tag:           os.Getenv("TAG_TO_DOWNLOAD"),
		OutputDir:     os.Getenv("OUTPUT_DIR"),
		DateFormat:    os.Getenv("DATE_FORMAT"),
		Author:        os.Getenv("AUTHOR"),
		ContinuousTag: os.Getenv("CONTINUOUS_NOTE_TAG"),
		FallbackTag:   os.Getenv("FALLBACK_TAG"),
		SncliPath:     os.Getenv("SNCLI_PATH"),
		Format:        os.Getenv("FORMAT"),
		TemplatePath:  os.Getenv("TEMPLATE_PATH"),
		Gotify: GotifyConfig{
			URL:   os.Getenv("GOTIFY_URL"),
			Token: os.Getenv("GOTIFY_TOKEN"),
		},
	}

	// SSG_TYPE is the legacy template selector: templates/<type>.md.
	if cfg.Format == "" {
		if ssg := os.Getenv("SSG_TYPE"); ssg != "" {
			cfg.Format = render.FormatTemplate
			cfg.TemplatePath = filepath.Join("templates", ssg+".md")
		}
	}

	cfg.IgnoreTags = splitList(os.Getenv("IGNORE_TAGS"))
	cfg.TitleSubstitutions = splitList(os.Getenv("TITLE_SUBSTITUTIONS"))

	// UNLISTED_TAGS items are "label:tag" pairs; only the tag matters.
	for _, item := range splitList(os.Getenv("UNLISTED_TAGS")) {
		if _, tag, ok := strings.Cut(item, ":"); ok {
			item = tag
		}
		cfg.UnlistedTags = append(cfg.UnlistedTags, item)
	}

	cfg.MaxRetries = envInt("MAX_RETRIES")
	cfg.BaseDelay = envFloat("BASE_DELAY")
	cfg.MaxDelay = envFloat("MAX_DELAY")
	cfg.PollingCycle = envInt("POLLING_CYCLE")
	cfg.DatePrefix = envBool("DATE_PREFIX")
	cfg.IncludeControlTag = envBool("INCLUDE_CONTROL_TAG")
	cfg.Debug = envBool("DEBUG")

	return cfg
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func envInt(key string) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return 0
	}
	return v
}

func envFloat(key string) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return 0
	}
	return v
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return false
	}
	return v
}
