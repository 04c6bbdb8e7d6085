package output

import (
	"fmt"
	"io"
)

// Warnf writes a non-fatal warning line. Warnings never abort the
// operation that produced them.
func Warnf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, "WARNING: "+format+"\n", args...)
}

// Line writes a single status line.
func Line(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format+"\n", args...)
}
