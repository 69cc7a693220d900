package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Output streams. Tests swap these.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
	Stdin  io.Reader = os.Stdin
)

// Confirm prompts the user for confirmation
func Confirm(prompt string, defaultYes bool) (bool, error) {
	if skipConfirm {
		return true, nil
	}

	suffix := " [y/N]: "
	if defaultYes {
		suffix = " [Y/n]: "
	}

	fmt.Fprint(Stdout, prompt+suffix)

	reader := bufio.NewReader(Stdin)
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		if err == io.EOF {
			return defaultYes, nil
		}
		return false, err
	}

	response = strings.ToLower(strings.TrimSpace(response))

	if response == "" {
		return defaultYes, nil
	}

	return response == "y" || response == "yes", nil
}

// status writes one status line. Without color the icon is replaced by a
// plain label so the output stays greppable.
func status(w io.Writer, icon, label, format string, args ...interface{}) {
	prefix := icon
	if noColor {
		prefix = label + ":"
	}
	fmt.Fprintf(w, "%s %s\n", prefix, fmt.Sprintf(format, args...))
}

// PrintSuccess prints to stdout unless quiet
func PrintSuccess(format string, args ...interface{}) {
	if !quiet {
		status(Stdout, "✓", "OK", format, args...)
	}
}

// PrintInfo prints to stdout unless quiet
func PrintInfo(format string, args ...interface{}) {
	if !quiet {
		status(Stdout, "ℹ", "INFO", format, args...)
	}
}

// PrintWarning always prints, to stderr
func PrintWarning(format string, args ...interface{}) {
	status(Stderr, "⚠", "WARNING", format, args...)
}

// PrintError always prints, to stderr
func PrintError(format string, args ...interface{}) {
	status(Stderr, "✗", "ERROR", format, args...)
}

// Global flags (set from the root command)
var (
	quiet       bool
	noColor     bool
	skipConfirm bool
)

// SetGlobalFlags sets the global flag values from the cmd package
func SetGlobalFlags(q, nc, sc bool) {
	quiet = q
	noColor = nc
	skipConfirm = sc
}
