package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the turing banner to w using the stdout colour profile.
func PrintBanner(w io.Writer) {
	WriteBanner(w, termenv.ColorProfile())
}

// WriteBanner writes the banner with an explicit profile.
func WriteBanner(w io.Writer, p termenv.Profile) {
	lines := []struct {
		text  string
		color string
	}{
		{" _              _", "#818cf8"},
		{"| |_ _  _ _ _ _(_)_ _  __ _", "#a78bfa"},
		{"|  _| || | '_| | ' \\/ _` |", "#c084fc"},
		{" \\__|\\_,_|_| |_|_||_\\__, |", "#e879f9"},
		{"                    |___/", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
