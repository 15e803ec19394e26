package main

import (
	"log/slog"
	"os"

	"tally/internal/cli"
	"tally/internal/config"
)

func main() {
	cli.LoadEnvFile()

	// An invalid level is reported by config validation inside Run; until
	// then fall back to info so the complaint itself gets logged.
	level := slog.LevelInfo
	if l, err := config.Load().SlogLevel(); err == nil {
		level = l
	}
	cli.SetupLogger(level)

	os.Exit(cli.Run(os.Args[1:]))
}
