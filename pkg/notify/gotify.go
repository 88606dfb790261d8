package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Gotify posts notifications to a Gotify server's /message endpoint.
type Gotify struct {
	baseURL string
	token   string
	client  *http.Client
	logger  *slog.Logger
}

// NewGotify creates a Gotify notifier for the server at baseURL.
func NewGotify(baseURL, token string, logger *slog.Logger) *Gotify {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gotify{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

var _ Notifier = (*Gotify)(nil)

func (g *Gotify) Notify(ctx context.Context, title, message string) error {
	endpoint := g.baseURL + "/message?token=" + url.QueryEscape(g.token)

	form := url.Values{
		"title":   {title},
		"message": {message},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("gotify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("gotify post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("gotify post: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	g.logger.Debug("notification sent", "title", title)
	return nil
}
