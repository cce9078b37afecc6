package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the arbor ASCII art banner with the version underneath.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	// Bark to leaf gradient
	lines := []struct {
		text  string
		color string
	}{
		{"                 _                ", "#a3e635"},
		{"   __ _ _ __ | |__   ___  _ __ ", "#84cc16"},
		{"  / _` | '__|| '_ \\ / _ \\| '__|", "#65a30d"},
		{" | (_| | |   | |_) | (_) | |   ", "#a16207"},
		{"  \\__,_|_|   |_.__/ \\___/|_|   ", "#854d0e"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  v"+version).Faint())
	fmt.Fprintln(w)
}
