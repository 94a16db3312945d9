// Package cli provides the command-line interface of the Cryptbook client.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"Cryptbook/internal/config"
	"Cryptbook/internal/log"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// Version is set by main.go
var Version = "dev"

// rootCmd is the base command when called without subcommands
var rootCmd = &cobra.Command{
	Use:   "cryptbook",
	Short: "Client for the Cryptbook encryption service",
	Long: `Cryptbook stages files for encryption, estimates password and
encryption strength, and looks up the password books the service keeps for
every encrypted file.

Run without arguments to open the graphical client.`,
	Version:            Version,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
	SilenceErrors:      true,
	SilenceUsage:       true,
}

// Global flags
var (
	flagBackend  string
	flagLogLevel string
	flagEnvFile  string
)

var (
	cfg      *config.Config
	closeLog func() error
)

// builtin names that should reach cobra even though they are not commands.
var builtinArgs = []string{"help", "--help", "-h", "version", "--version", "-v"}

// Execute runs the CLI application.
// Returns true if CLI mode was activated, false if GUI should run instead.
func Execute(version string) bool {
	Version = version
	rootCmd.Version = version

	if len(os.Args) < 2 || !isCLIArg(os.Args[1]) {
		return false
	}

	// Ctrl+C cancels the running command through its context.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
	return true
}

// isCLIArg reports whether arg names a subcommand or a builtin flag.
func isCLIArg(arg string) bool {
	if lo.Contains(builtinArgs, arg) {
		return true
	}
	return lo.ContainsBy(rootCmd.Commands(), func(c *cobra.Command) bool {
		return c.Name() == arg || c.HasAlias(arg)
	})
}

// setup loads the configuration and applies flag overrides.
func setup(cmd *cobra.Command, _ []string) error {
	var files []string
	if flagEnvFile != "" {
		files = append(files, flagEnvFile)
	}
	c, err := config.Load(files...)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("backend") {
		c.BackendURL = flagBackend
	}
	if flags.Changed("log-level") {
		c.LogLevel = flagLogLevel
	}
	if err := c.Validate(); err != nil {
		return err
	}

	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	closeLog, err = log.Setup(level, c.LogFile)
	if err != nil {
		return fmt.Errorf("log file: %w", err)
	}
	cfg = c
	return nil
}

func teardown(*cobra.Command, []string) error {
	if closeLog == nil {
		return nil
	}
	err := closeLog()
	closeLog = nil
	log.SetLogger(nil)
	return err
}

// activeConfig returns the loaded configuration, or the defaults when a
// command runs without the root pre-run (as in tests).
func activeConfig() (*config.Config, error) {
	if cfg != nil {
		return cfg, nil
	}
	return config.Load(os.DevNull)
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagBackend, "backend", "", "Backend base URL (overrides CRYPTBOOK_BACKEND_URL)")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&flagEnvFile, "env-file", "", "Read settings from this dotenv file instead of .env")
}
