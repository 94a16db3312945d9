package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"
)

var ErrPasswordEmpty = errors.New("password cannot be empty")

// isTerminal returns true if stdin is a terminal (not piped/redirected).
func isTerminal() bool {
	return term.IsTerminal(int(syscall.Stdin))
}

// readPasswordSecure reads a password from stdin without echo.
// Falls back to a line read if stdin is not a terminal.
func readPasswordSecure(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)

	if !isTerminal() {
		return readLine(os.Stdin)
	}

	pw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr) // newline after hidden input
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(pw), nil
}

// readLine returns the first line of r without its line ending. A final
// line without a newline is accepted.
func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("reading password: %w", err)
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// resolvePassword picks the password from, in order: the flag value, stdin
// when fromStdin is set, or an interactive prompt.
func resolvePassword(flag string, fromStdin bool, stdin io.Reader) (string, error) {
	var (
		pw  string
		err error
	)
	switch {
	case flag != "":
		pw = flag
	case fromStdin:
		pw, err = readLine(stdin)
	default:
		pw, err = readPasswordSecure("Password: ")
	}
	if err != nil {
		return "", err
	}
	if pw == "" {
		return "", ErrPasswordEmpty
	}
	return pw, nil
}
