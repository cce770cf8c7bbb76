package interp

import (
	"io"

	"github.com/lumen-lang/lumen/internal/langvalue"
	"github.com/lumen-lang/lumen/internal/lexer"
	"github.com/lumen-lang/lumen/internal/source"
	"github.com/lumen-lang/lumen/internal/symbols"
	"github.com/lumen-lang/lumen/internal/token"
)

// NewREPL returns an Interpreter with an empty token stream, ready for
// AppendLine, for `lumen repl` (SPEC_FULL.md §2.5): one live Interpreter
// whose frame stack and symbol table persist across every submitted line.
func NewREPL(sourceName string, out io.Writer, opts Options) *Interpreter {
	syms := symbols.New()
	file := source.New(sourceName, nil)
	return New(sourceName, file, []token.Token{token.New(token.EOF, "", token.Position{Line: 1, Col: 1})}, syms, out, opts)
}

// AppendLine lexes one more line of source, splices its tokens in ahead
// of the stream's trailing EOF sentinel, and evaluates every statement it
// introduces — so `let` bindings and function definitions from earlier
// lines are still live in the frame stack and symbol table. It returns
// the value of the last statement the line contained.
//
// Each line is lexed independently, so a diagnostic's line/column is
// relative to that line rather than the whole session transcript; a
// convenience REPL trades that off against re-lexing the entire growing
// buffer on every keystroke.
func (it *Interpreter) AppendLine(line string) (langvalue.Value, error) {
	lx := lexer.New([]byte(line), it.syms)
	toks, err := lx.Tokenize()
	if err != nil {
		return langvalue.Value{}, wrapLexError(it.sourceName, it.file, err)
	}

	if n := len(it.tokens); n > 0 && it.tokens[n-1].Kind == token.EOF {
		it.tokens = it.tokens[:n-1]
	}
	it.tokens = append(it.tokens, toks...)

	last := langvalue.Value{Kind: langvalue.Undefined}
	for !it.at(token.EOF) {
		v, err := it.EvalStatement()
		if err != nil {
			return langvalue.Value{}, err
		}
		if !v.IsUndefined() {
			last = v
		}
	}
	return last, nil
}
