// Package cliutil provides the output helpers shared by the raml2obj command
// and its subcommands.
package cliutil

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Writef writes formatted output to the writer.
// A failed write is reported on stderr.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// Heading writes title underlined with '=' and followed by a blank line.
func Heading(w io.Writer, title string) {
	Writef(w, "%s\n%s\n\n", title, strings.Repeat("=", len(title)))
}

// WriteError writes err as a single "Error: ..." line. Nil errors write nothing.
func WriteError(w io.Writer, err error) {
	if err == nil {
		return
	}
	Writef(w, "Error: %s\n", strings.TrimRight(err.Error(), "\n"))
}
