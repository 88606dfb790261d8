package main

import (
	"log/slog"
	"os"
)

func main() {
	Execute()
}

// fatal logs through the handler PersistentPreRun installed and exits.
func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
