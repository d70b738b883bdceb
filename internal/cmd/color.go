package cmd

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/harrison/grin/internal/config"
)

// useColor decides whether output written to w is colored. In auto mode
// that requires a terminal whose TERM is not "dumb".
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}

	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}
