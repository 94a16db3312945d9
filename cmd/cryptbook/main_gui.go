//go:build !cli

package main

import (
	"fmt"
	"os"

	"Cryptbook/internal/cli"
	"Cryptbook/internal/config"
	"Cryptbook/internal/log"
	"Cryptbook/internal/ui"
)

// run is the GUI+CLI entry point.
// It first checks for CLI subcommands, and if none are found, launches the GUI.
func run() {
	if cli.Execute(version) {
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fail(err)
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		fail(err)
	}
	closeLog, err := log.Setup(level, cfg.LogFile)
	if err != nil {
		fail(err)
	}
	defer closeLog()

	app, err := ui.NewApp(version, cfg)
	if err != nil {
		fail(err)
	}
	app.Run()
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
	os.Exit(1)
}
