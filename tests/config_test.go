package tests

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sn2ssg/sn2ssg"
)

func TestFromEnv(t *testing.T) {
	t.Setenv("TAG_TO_DOWNLOAD", "publish")
	t.Setenv("OUTPUT_DIR", "/srv/site/content")
	t.Setenv("AUTHOR", "Jane")
	t.Setenv("CONTINUOUS_NOTE_TAG", "cnote:log")
	t.Setenv("IGNORE_TAGS", "secret, internal")
	t.Setenv("TITLE_SUBSTITUTIONS", "standup:Standup notes")
	t.Setenv("UNLISTED_TAGS", "hidden:private")
	t.Setenv("MAX_RETRIES", "3")
	t.Setenv("BASE_DELAY", "0.5")
	t.Setenv("POLLING_CYCLE", "900")
	t.Setenv("DATE_PREFIX", "true")
	t.Setenv("GOTIFY_URL", "https://gotify.example.com")
	t.Setenv("GOTIFY_TOKEN", "secret")
	t.Setenv("FORMAT", "")
	t.Setenv("SSG_TYPE", "")

	cfg := sn2ssg.FromEnv()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "publish", cfg.Tag)
	assert.Equal(t, "/srv/site/content", cfg.OutputDir)
	assert.Equal(t, "Jane", cfg.Author)
	assert.Equal(t, "cnote:log", cfg.ContinuousTag)
	assert.Equal(t, []string{"secret", "internal"}, cfg.IgnoreTags)
	assert.Equal(t, []string{"standup:Standup notes"}, cfg.TitleSubstitutions)
	assert.Equal(t, []string{"private"}, cfg.UnlistedTags)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 0.5, cfg.BaseDelay)
	assert.True(t, cfg.DatePrefix)
	assert.Equal(t, 15*time.Minute, cfg.PollingInterval())
	assert.Equal(t, "https://gotify.example.com", cfg.Gotify.URL)
}

func TestFromEnvLegacySSGType(t *testing.T) {
	t.Setenv("TAG_TO_DOWNLOAD", "publish")
	t.Setenv("OUTPUT_DIR", "/srv/site/content")
	t.Setenv("FORMAT", "")
	t.Setenv("SSG_TYPE", "hugo")

	cfg := sn2ssg.FromEnv()
	assert.Equal(t, "template", cfg.Format)
	assert.Equal(t, filepath.Join("templates", "hugo.md"), cfg.TemplatePath)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sn2ssg.toml")
	raw := `tag = "publish"
output_dir = "/srv/site/content"
date_prefix = true
ignore_tags = ["secret"]
title_substitutions = ["standup:Standup notes"]
continuous_tag = "cnote:log"
format = "toml"
max_retries = 3
base_delay = 0.5
polling_cycle = 900

[gotify]
url = "https://gotify.example.com"
token = "secret"
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := sn2ssg.LoadFile(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "publish", cfg.Tag)
	assert.Equal(t, "/srv/site/content", cfg.OutputDir)
	assert.True(t, cfg.DatePrefix)
	assert.Equal(t, []string{"secret"}, cfg.IgnoreTags)
	assert.Equal(t, "cnote:log", cfg.ContinuousTag)
	assert.Equal(t, "toml", cfg.Format)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, "https://gotify.example.com", cfg.Gotify.URL)
	assert.Equal(t, "secret", cfg.Gotify.Token)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := sn2ssg.LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestValidateTemplateFormat(t *testing.T) {
	cfg := sn2ssg.Config{Tag: "publish", OutputDir: "out", Format: "template"}
	assert.Error(t, cfg.Validate(), "template format requires a path")

	cfg.TemplatePath = "templates/hugo.md"
	assert.NoError(t, cfg.Validate())
}
