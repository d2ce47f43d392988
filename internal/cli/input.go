package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
// In tests, replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

// GetSimpleText prints a prompt to w and reads a single line of input from
// reader. The trailing newline is trimmed. If EOF occurs after some input
// was read, the partial line is returned.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prints a password prompt to w and reads a password from the
// user's terminal without echo. A newline is printed after the read to keep
// the UI tidy.
func GetPassword(w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return "", err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// GetChoice prints a prompt listing the options and reads lines until the
// user enters one of them. An empty line selects the first option.
func GetChoice(reader *bufio.Reader, prompt string, options []string, w io.Writer) (string, error) {
	for {
		choice, err := GetSimpleText(reader, fmt.Sprintf("%s [%s]", prompt, strings.Join(options, "/")), w)
		if err != nil {
			return "", err
		}
		if choice == "" {
			return options[0], nil
		}
		for _, opt := range options {
			if choice == opt {
				return opt, nil
			}
		}
		fmt.Fprintf(w, "Please enter one of: %s\n", strings.Join(options, ", "))
	}
}
