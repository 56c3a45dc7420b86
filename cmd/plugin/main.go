package main

import (
	"log/slog"
	"os"
)

func main() {
	if err := run(os.Stdout, os.Stderr); err != nil {
		slog.Error("plugin exited with error", "error", err)
		os.Exit(1)
	}
}
