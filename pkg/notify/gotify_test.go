package notify

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGotifyNotify(t *testing.T) {
	var got struct {
		path, token, title, message string
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.path = r.URL.Path
		got.token = r.URL.Query().Get("token")
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm: %v", err)
		}
		got.title = r.FormValue("title")
		got.message = r.FormValue("message")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	g := NewGotify(srv.URL+"/", "secret-token", slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err := g.Notify(context.Background(), "sn2ssg successful", "3 notes written"); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	if got.path != "/message" {
		t.Errorf("path = %q", got.path)
	}
	if got.token != "secret-token" {
		t.Errorf("token = %q", got.token)
	}
	if got.title != "sn2ssg successful" || got.message != "3 notes written" {
		t.Errorf("payload = %q / %q", got.title, got.message)
	}
}

func TestGotifyNotifyServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad token", http.StatusUnauthorized)
	}))
	defer srv.Close()

	g := NewGotify(srv.URL, "wrong", slog.New(slog.NewTextHandler(io.Discard, nil)))
	err := g.Notify(context.Background(), "title", "message")
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
	if !strings.Contains(err.Error(), "401") || !strings.Contains(err.Error(), "bad token") {
		t.Errorf("error = %v", err)
	}
}

func TestNoopNotify(t *testing.T) {
	if err := (Noop{}).Notify(context.Background(), "title", "message"); err != nil {
		t.Errorf("Noop.Notify: %v", err)
	}
}
