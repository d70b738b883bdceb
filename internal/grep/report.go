package grep

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Styles holds the colors applied to colored reports.
type Styles struct {
	Filename *color.Color
	Match    *color.Color
}

// DefaultStyles returns bold green filenames and black-on-yellow matches.
// Both colors are forced on; whether they are used is decided by
// Options.UseColor, not by the terminal the process happens to run in.
func DefaultStyles() Styles {
	s := Styles{
		Filename: color.New(color.FgGreen, color.Bold),
		Match:    color.New(color.FgBlack, color.BgYellow),
	}
	s.Filename.EnableColor()
	s.Match.EnableColor()
	return s
}

func (s Styles) orDefault() Styles {
	if s.Filename == nil || s.Match == nil {
		d := DefaultStyles()
		if s.Filename == nil {
			s.Filename = d.Filename
		}
		if s.Match == nil {
			s.Match = d.Match
		}
	}
	return s
}

// Report renders captured lines for filename. It returns "" when there is
// nothing to show and otherwise a string ending in "\n".
func (g *Grepper) Report(lines []ContextLine, filename string) string {
	if len(lines) == 0 {
		return ""
	}
	if !g.opts.ShowMatch {
		return filename + "\n"
	}

	styles := g.opts.Styles.orDefault()
	var b strings.Builder

	if g.opts.ShowFilename && !g.opts.ShowEmacs {
		header := filename + ":"
		if g.opts.UseColor {
			header = styles.Filename.Sprint(header)
		}
		b.WriteString(header)
		b.WriteByte('\n')
	}

	for _, cl := range lines {
		line := string(cl.Line)
		if g.opts.UseColor && len(cl.Spans) > 0 {
			line = highlight(line, cl.Spans, styles.Match)
		}

		switch {
		case g.opts.ShowEmacs:
			fmt.Fprintf(&b, "%s:%d: %s", filename, cl.Index+1, line)
		case g.opts.ShowLineNumbers:
			fmt.Fprintf(&b, "%5d %c %s", cl.Index+1, cl.Role.Separator(), line)
		default:
			b.WriteString(line)
		}
	}

	out := b.String()
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out
}

// highlight wraps every span of line in the match color. Spans are offsets
// into the original line, so each insertion shifts the later ones by the
// length of the escape codes added so far.
func highlight(line string, spans []Span, c *color.Color) string {
	offset := 0
	for _, sp := range spans {
		if sp.Start >= sp.End {
			continue
		}
		start, end := sp.Start+offset, sp.End+offset
		colored := c.Sprint(line[start:end])
		line = line[:start] + colored + line[end:]
		offset += len(colored) - (sp.End - sp.Start)
	}
	return line
}
