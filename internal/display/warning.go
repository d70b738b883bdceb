package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related files (optional)
	Suggestion string   // Action to take (optional)
	Color      bool     // Render in yellow
}

// Display shows a formatted warning, in yellow when Color is set
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	// Add files with proper singular/plural and indentation
	if len(w.Files) > 0 {
		b.WriteString("    ")
		if len(w.Files) == 1 {
			b.WriteString("Affected path:\n")
		} else {
			b.WriteString("Affected paths:\n")
		}

		for i, file := range w.Files {
			b.WriteString("      ")
			b.WriteString(fmt.Sprintf("%d. %s", i+1, file))
			b.WriteString("\n")
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	text := b.String()
	if w.Color {
		yellow := color.New(color.FgYellow)
		yellow.EnableColor()
		text = yellow.Sprint(text)
	}
	fmt.Fprint(out, text)
}

// WarnUnreadable creates a warning listing paths that could not be searched
func WarnUnreadable(paths []string) Warning {
	title := "1 path could not be read"
	if len(paths) != 1 {
		title = fmt.Sprintf("%d paths could not be read", len(paths))
	}
	return Warning{
		Title:      title,
		Files:      paths,
		Suggestion: "Check the permissions on these paths, or run with --log-level debug for details",
	}
}
