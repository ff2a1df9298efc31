// Package wizard holds the interactive prompts used when a command is run
// without its arguments on a terminal.
package wizard

import (
	"os"

	"golang.org/x/term"
)

// IsTerminal returns true if both stdin and stdout are terminals.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// NeedsPrompt returns true if a required argument is missing and a prompt
// can be shown instead.
func NeedsPrompt(args []string, want int) bool {
	return len(args) < want && IsTerminal()
}
