package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// WordWrap is the column limit for rendered replies.
const WordWrap = 100

// NewRenderer returns a markdown renderer for chat replies.
// Comparison replies use **bold** headers and list items, which glamour styles
// for the terminal background. It falls back to plain text when f is not a TTY
// or glamour cannot be initialized.
func NewRenderer(f *os.File) func(string) (string, error) {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return Plain
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(WordWrap),
	)
	if err != nil {
		return Plain
	}

	return func(markdown string) (string, error) {
		out, err := r.Render(markdown)
		if err != nil {
			return markdown, err
		}
		return strings.TrimRight(out, "\n"), nil
	}
}

// Plain strips the markdown emphasis markers and leaves the text as is.
func Plain(markdown string) (string, error) {
	return strings.ReplaceAll(markdown, "**", ""), nil
}
