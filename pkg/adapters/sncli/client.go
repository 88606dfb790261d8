// Package sncli adapts sncli, the Simplenote command line client, to the
// pipeline's note source contract. It shells out to the binary and parses
// its dump format; it never speaks the note store's network protocol
// itself.
package sncli

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// DefaultBinary is used when sncli is neither configured nor on PATH.
const DefaultBinary = "/usr/local/bin/sncli"

// Client executes sncli dump invocations.
type Client struct {
	binary string
	logger *slog.Logger
}

// NewClient creates a client for the sncli binary. An empty binary path
// falls back to PATH lookup, then to DefaultBinary.
func NewClient(binary string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if binary == "" {
		if found, err := exec.LookPath("sncli"); err == nil {
			binary = found
		} else {
			binary = DefaultBinary
		}
	}
	return &Client{binary: binary, logger: logger}
}

// Dump runs a single `sncli dump` for the tag and returns the raw output.
// The --config=/dev/null flag keeps a user's local sncli configuration
// from leaking into the run.
func (c *Client) Dump(ctx context.Context, tag string) (string, error) {
	cmd := exec.CommandContext(ctx, c.binary, "--config=/dev/null", "-r", "dump", tag)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	c.logger.Debug("dumping notes", "binary", c.binary, "tag", tag)
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return "", fmt.Errorf("sncli dump: %w: %s", err, detail)
		}
		return "", fmt.Errorf("sncli dump: %w", err)
	}

	return stdout.String(), nil
}
