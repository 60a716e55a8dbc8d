package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner writes the infobot logo and version to w.
// Colors are dropped automatically when w is not a color terminal.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{` _        __       _           _   `, "#818cf8"},
		{`(_)_ __  / _| ___ | |__   ___ | |_ `, "#a78bfa"},
		{`| | '_ \| |_ / _ \| '_ \ / _ \| __|`, "#c084fc"},
		{`| | | | |  _| (_) | |_) | (_) | |_ `, "#e879f9"},
		{`|_|_| |_|_|  \___/|_.__/ \___/ \__|`, "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w, out.String("  college information assistant v"+strings.TrimSpace(version)).Faint())
	fmt.Fprintln(w)
}
