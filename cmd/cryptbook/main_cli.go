//go:build cli

package main

import (
	"fmt"
	"os"

	"Cryptbook/internal/cli"
)

// run is the CLI-only entry point. It never links Fyne and runs on headless
// systems.
func run() {
	if !cli.Execute(version) {
		fmt.Fprintf(os.Stderr, "cryptbook %s (CLI-only build)\n", version)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage: cryptbook <command> [options]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Commands:")
		fmt.Fprintln(os.Stderr, "  strength   Score a password and encryption settings")
		fmt.Fprintln(os.Stderr, "  passbook   Show the metadata of a password book")
		fmt.Fprintln(os.Stderr, "  inspect    Check and fingerprint a file before submitting it")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Run 'cryptbook <command> --help' for more information.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Note: This is a CLI-only build without GUI support.")
		fmt.Fprintln(os.Stderr, "For the GUI, build without the 'cli' tag.")
		os.Exit(0)
	}
}
