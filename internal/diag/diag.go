// Package diag implements the single-error reporter described in
// spec.md §4.6 and §7: Lumen has no error recovery, so there is exactly
// one Diagnostic per run, formatted with a colored label, a parenthesized
// context, the offending source line, and a caret pointer, then the
// process exits non-zero.
package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/lumen-lang/lumen/internal/source"
	"github.com/lumen-lang/lumen/internal/token"
)

// Diagnostic is the one fatal error a run can produce.
type Diagnostic struct {
	Message    string
	SourceName string
	Token      token.Token
	StackDepth int
}

// Error satisfies the error interface with a plain, uncolored one-liner —
// used when a Diagnostic needs to travel through normal Go error-wrapping
// paths before it reaches the reporter.
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", d.SourceName, d.Token.Pos.Line, d.Token.Pos.Col, d.Message)
}

// Options controls how a Diagnostic is rendered.
type Options struct {
	Color bool
}

// Report writes the full spec.md §4.6 rendering of d to w:
//
//	Error: <message> (lexeme, kind, file, line, column, depth)
//	<source line>
//	<caret under the offending column>
func Report(w io.Writer, d *Diagnostic, file *source.File, opts Options) {
	label := "Error:"
	if opts.Color {
		label = color.New(color.FgRed, color.Bold).Sprint("Error:")
	}

	lexeme := d.Token.Text
	if lexeme == "" {
		lexeme = d.Token.Kind.String()
	}

	fmt.Fprintf(w, "%s %s (lexeme=%q, kind=%s, file=%s, line=%d, col=%d, depth=%d)\n",
		label, d.Message, lexeme, d.Token.Kind, d.SourceName, d.Token.Pos.Line, d.Token.Pos.Col, d.StackDepth)

	if file == nil {
		return
	}
	line := file.Line(d.Token.Pos.Line)
	fmt.Fprintln(w, line)

	col := int(d.Token.Pos.Col)
	if col < 1 {
		col = 1
	}
	caret := strings.Repeat(" ", col-1) + "^"
	if opts.Color {
		caret = color.New(color.FgRed, color.Bold).Sprint(caret)
	}
	fmt.Fprintln(w, caret)
}
