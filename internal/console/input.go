package console

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// ask prints prompt and reads one trimmed line. A final line without a
// newline is still returned; EOF with nothing read is io.EOF.
func (a *App) ask(prompt string) (string, error) {
	if _, err := fmt.Fprintf(a.out, "%s: ", prompt); err != nil {
		return "", err
	}
	line, err := a.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// askOptional is ask for nullable columns: a blank answer is nil.
func (a *App) askOptional(prompt string) (*string, error) {
	s, err := a.ask(prompt + " (optional)")
	if err != nil || s == "" {
		return nil, err
	}
	return &s, nil
}

// askInt reads an optional integer; blank is nil.
func (a *App) askInt(prompt string) (*int, error) {
	s, err := a.ask(prompt + " (optional)")
	if err != nil || s == "" {
		return nil, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%s must be a whole number", strings.ToLower(prompt))
	}
	return &n, nil
}

// askPassword reads a password from the terminal without echo.
func (a *App) askPassword() (string, error) {
	if _, err := fmt.Fprint(a.out, "Password: "); err != nil {
		return "", err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(a.out)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}
