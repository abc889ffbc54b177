package tui

import (
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// NewRenderer returns a function that renders markdown using glamour.
// When stdout is not a terminal the markdown is returned untouched.
func NewRenderer() func(string) (string, error) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return Plain
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return Plain
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// Plain renders markdown as is.
func Plain(markdown string) (string, error) {
	return markdown, nil
}
