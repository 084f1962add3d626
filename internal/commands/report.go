package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow, color.Bold)
	red    = color.New(color.FgRed)
)

func success(w io.Writer, format string, args ...any) {
	green.Fprintf(w, "  → %s\n", fmt.Sprintf(format, args...))
}

func warning(w io.Writer, format string, args ...any) {
	yellow.Fprintf(w, "  ⚠ %s\n", fmt.Sprintf(format, args...))
}

func failure(w io.Writer, format string, args ...any) {
	red.Fprintf(w, "  ✗ %s\n", fmt.Sprintf(format, args...))
}
