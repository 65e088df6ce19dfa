package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	primaryColor = lipgloss.Color("#2E86AB")
	warnColor    = lipgloss.Color("#D7263D")
	mutedColor   = lipgloss.Color("#888888")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(warnColor)

	keyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	valueStyle = lipgloss.NewStyle().
			Bold(true)

	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(primaryColor)
)

func printTitle(w io.Writer, title string) {
	fmt.Fprintln(w, titleStyle.Render(title))
}

func printKeyValue(w io.Writer, key string, value any) {
	fmt.Fprintf(w, "%s %s\n", keyStyle.Render(key+":"), valueStyle.Render(fmt.Sprint(value)))
}

// printTable renders t with a styled header line.
func printTable(w io.Writer, t *metricTable) {
	lines := t.Lines()
	if len(lines) == 0 {
		return
	}
	fmt.Fprintln(w, tableHeaderStyle.Render(lines[0]))
	for _, line := range lines[1:] {
		fmt.Fprintln(w, line)
	}
}

func printError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", errorStyle.Render("Error:"), message)
}
