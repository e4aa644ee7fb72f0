package console

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
var readPassword = term.ReadPassword

// promptLine prints a prompt to w and reads one line from reader with the
// trailing newline trimmed. A partial line before EOF is still returned.
func promptLine(reader *bufio.Reader, w io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
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

// promptPassword reads a password from the terminal without echo.
func promptPassword(w io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return "", err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// promptList reads lines until an empty one. Each non-empty line becomes one
// item, so ingredients and steps can contain commas freely.
func promptList(reader *bufio.Reader, w io.Writer, prompt string) ([]string, error) {
	if _, err := fmt.Fprintln(w, prompt+" (empty line to finish):"); err != nil {
		return nil, err
	}

	var items []string
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			if err != nil && len(items) == 0 {
				return nil, err
			}
			return items, nil
		}
		items = append(items, strings.TrimSpace(line))
		if err != nil {
			return items, nil
		}
	}
}
