package cli

import (
	"fmt"
	"net/http"
	"strings"

	"Cryptbook/internal/errors"
	"Cryptbook/internal/passbook"

	"github.com/spf13/cobra"
)

var passbookCmd = &cobra.Command{
	Use:     "passbook <id>",
	Aliases: []string{"book"},
	Short:   "Show the metadata of a password book",
	Long: `Fetch the metadata the service keeps for a password book and print
it. Nothing is invented: an unknown id is reported as an error.

Examples:
  cryptbook passbook a1b2c3d4
  cryptbook --backend https://cryptbook.example passbook a1b2c3d4`,
	Args: cobra.ExactArgs(1),
	RunE: runPassbook,
}

func init() {
	rootCmd.AddCommand(passbookCmd)
}

func runPassbook(cmd *cobra.Command, args []string) error {
	id := strings.TrimSpace(args[0])
	if id == "" {
		return errors.ErrEmptyID
	}

	c, err := activeConfig()
	if err != nil {
		return err
	}
	client, err := passbook.NewClient(c.BackendURL,
		passbook.WithHTTPClient(&http.Client{Timeout: c.FetchTimeout}))
	if err != nil {
		return err
	}

	m, err := client.FetchMetadata(cmd.Context(), id)
	if errors.IsNotFound(err) {
		return fmt.Errorf("no password book with id %q: %w", id, err)
	}
	if err != nil {
		return err
	}

	table := newTable(cmd.OutOrStdout(), "Field", "Value")
	for _, f := range m.Fields() {
		table.Append([]string{f.Name, f.Value})
	}
	table.Render()
	return nil
}
