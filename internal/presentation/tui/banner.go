package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the gpmlog banner to w.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	// Indigo to rose, one colour per line
	lines := []struct {
		text  string
		color string
	}{
		{"   __ _ _ __  _ __ ___ | | ___   __ _ ", "#818cf8"},
		{"  / _` | '_ \\| '_ ` _ \\| |/ _ \\ / _` |", "#a78bfa"},
		{" | (_| | |_) | | | | | | | (_) | (_| |", "#c084fc"},
		{"  \\__, | .__/|_| |_| |_|_|\\___/ \\__, |", "#e879f9"},
		{"  |___/|_|                      |___/ ", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Success prints a green check line.
func Success(w io.Writer, format string, args ...any) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(w, out.String("✔ "+fmt.Sprintf(format, args...)).Foreground(out.Color("#22c55e")))
}

// Failure prints a red cross line.
func Failure(w io.Writer, format string, args ...any) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(w, out.String("✘ "+fmt.Sprintf(format, args...)).Foreground(out.Color("#ef4444")).Bold())
}
