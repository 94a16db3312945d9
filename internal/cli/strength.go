package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"Cryptbook/internal/strength"
	"Cryptbook/internal/util"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var strengthCmd = &cobra.Command{
	Use:   "strength",
	Short: "Score a password and an encryption configuration",
	Long: `Score a password and the encryption settings that would be submitted
with it, using the same rules as the graphical client.

If no password is given you will be prompted for one (hidden while typing).

Examples:
  # Prompt for the password, default rounds and algorithms
  cryptbook strength

  # Five rounds, two algorithms
  cryptbook strength -p "Abcdefgh1!" -r 5 -a zip -a tar.gz

  # Derive rounds from a code, as the service does
  cryptbook strength -p "Abcdefgh1!" -c abc

  # Generate a 24 character password and score it
  cryptbook strength -g 24`,
	Args: cobra.NoArgs,
	RunE: runStrength,
}

// Strength flags
var (
	strPassword      string
	strPasswordStdin bool
	strRounds        int
	strCode          string
	strAlgorithms    []string
	strGenerate      int
)

func init() {
	rootCmd.AddCommand(strengthCmd)

	f := strengthCmd.Flags()
	f.StringVarP(&strPassword, "password", "p", "", "Password to score (visible in shell history)")
	f.BoolVarP(&strPasswordStdin, "password-stdin", "P", false, "Read the password from stdin")
	f.IntVarP(&strRounds, "rounds", "r", strength.DefaultRounds, "Encryption rounds (1-10)")
	f.StringVarP(&strCode, "code", "c", "", "Code deriving the rounds (overrides --rounds)")
	f.StringArrayVarP(&strAlgorithms, "algorithm", "a", nil,
		"Compression algorithm, repeatable: "+strings.Join(strength.SupportedAlgorithms, ", ")+" (default all)")
	f.IntVarP(&strGenerate, "generate", "g", 0, "Generate a password of this length instead of reading one")
}

func runStrength(cmd *cobra.Command, _ []string) error {
	algorithms := strAlgorithms
	if len(algorithms) == 0 {
		algorithms = strength.SupportedAlgorithms
	}
	if bad := lo.Reject(algorithms, func(a string, _ int) bool { return strength.IsSupported(a) }); len(bad) > 0 {
		return fmt.Errorf("unsupported algorithm(s): %s", strings.Join(bad, ", "))
	}
	if strRounds < strength.MinRounds || strRounds > strength.MaxRounds {
		return fmt.Errorf("--rounds must be between %d and %d", strength.MinRounds, strength.MaxRounds)
	}

	out := cmd.OutOrStdout()
	var (
		password string
		err      error
	)
	if strGenerate > 0 {
		password, err = util.GenPassword(util.PassgenOptions{
			Length: strGenerate, Upper: true, Lower: true, Numbers: true, Symbols: true,
		})
		if err != nil {
			return fmt.Errorf("generate password: %w", err)
		}
		fmt.Fprintf(out, "Generated password: %s\n", password)
	} else {
		password, err = resolvePassword(strPassword, strPasswordStdin, cmd.InOrStdin())
		if err != nil {
			return err
		}
	}

	pw := strength.Estimate(password)
	enc := strength.EstimateEncryption(strCode, strRounds, algorithms)

	roundsNote := strconv.Itoa(enc.Rounds) + " rounds"
	if strings.TrimSpace(strCode) != "" {
		roundsNote += " (from code)"
	}

	table := newTable(out, "Check", "Score", "Rating", "Details")
	table.Append([]string{
		"Password", strconv.Itoa(pw.Score), colorLabel(pw.Label),
		fmt.Sprintf("%d chars, %.0f bits, guessability %d/4", len([]rune(password)), pw.Entropy, pw.Guesses),
	})
	table.Append([]string{
		"Encryption", strconv.Itoa(enc.Score), colorLabel(enc.Label),
		roundsNote + ", " + strings.Join(lo.Uniq(enc.Algorithms), ", "),
	})
	table.Render()
	return nil
}

// colorLabel renders a strength label in its class color.
func colorLabel(l strength.Label) string {
	var c color.Color
	switch l {
	case strength.Weak:
		c = color.FgRed
	case strength.Medium:
		c = color.FgYellow
	case strength.Strong:
		c = color.FgCyan
	default:
		c = color.FgGreen
	}
	return c.Render(l.Title())
}

// newTable returns a borderless, left-aligned table.
func newTable(out io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(out)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}
