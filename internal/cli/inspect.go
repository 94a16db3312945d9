package cli

import (
	"fmt"
	"path/filepath"

	"Cryptbook/internal/app"
	"Cryptbook/internal/intake"
	"Cryptbook/internal/util"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Check whether a file can be submitted and fingerprint it",
	Long: `Stat a file the way the graphical client stages it: detect its type,
apply the upload policy, and print a BLAKE2b-256 fingerprint.

Examples:
  cryptbook inspect report.pdf
  cryptbook inspect --no-hash --no-policy backup.tar.gz`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

// Inspect flags
var (
	insNoHash   bool
	insNoPolicy bool
	insQuiet    bool
)

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().BoolVar(&insNoHash, "no-hash", false, "Skip the fingerprint")
	inspectCmd.Flags().BoolVar(&insNoPolicy, "no-policy", false, "Do not apply the upload policy")
	inspectCmd.Flags().BoolVarP(&insQuiet, "quiet", "q", false, "Suppress progress output")
}

func runInspect(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}

	c, err := activeConfig()
	if err != nil {
		return err
	}

	f, err := intake.Stat(path)
	if err != nil {
		return err
	}

	if !insNoPolicy && c.EnforcePolicy {
		policy := intake.DefaultPolicy()
		policy.MaxSize = c.MaxUploadBytes()
		if err := policy.Check(f.Name, f.SizeBytes); err != nil {
			return err
		}
	}

	rows := [][]string{
		{"Name", f.Name},
		{"Path", f.Path},
		{"Size", util.FormatFileSize(f.SizeBytes)},
		{"Type", f.MimeOrExtension},
		{"Kind", string(util.FileType(f.Name))},
	}

	if !insNoHash {
		r := NewReporter(cmd.ErrOrStderr(), insQuiet)
		sum, err := app.Fingerprint(cmd.Context(), path, r)
		r.Finish()
		if err != nil {
			r.PrintError("fingerprint %s: %v", f.Name, err)
			return fmt.Errorf("fingerprint: %w", err)
		}
		rows = append(rows, []string{"BLAKE2b-256", sum})
	}

	table := newTable(cmd.OutOrStdout(), "Field", "Value")
	table.AppendBulk(rows)
	table.Render()
	return nil
}
