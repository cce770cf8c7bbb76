// Package interp is the evaluator hub described in spec.md §4.3: a
// single-pass recursive-descent walk over the pre-lexed token array that
// parses and evaluates simultaneously, with no intermediate AST.
package interp

import (
	"fmt"
	"io"

	"github.com/lumen-lang/lumen/internal/diag"
	"github.com/lumen-lang/lumen/internal/frame"
	"github.com/lumen-lang/lumen/internal/langvalue"
	"github.com/lumen-lang/lumen/internal/lexer"
	"github.com/lumen-lang/lumen/internal/source"
	"github.com/lumen-lang/lumen/internal/symbols"
	"github.com/lumen-lang/lumen/internal/token"
)

// RuntimeError wraps any evaluation-time failure with the token where it
// was raised, so the top-level Run caller can hand it to the diag
// reporter (spec.md §4.6/§7). All errors are fatal — there is no
// try/catch construct and no partial result.
type RuntimeError struct {
	Tok   token.Token
	Depth int
	Err   error
}

func (e *RuntimeError) Error() string { return e.Err.Error() }
func (e *RuntimeError) Unwrap() error { return e.Err }

// Interpreter holds all the process-wide, single-run state spec.md §9
// describes as "a handful of process-wide arrays" reshaped into a
// reentrant context value: the token array, the symbol table, the frame
// stack, the string pool, and the trace/print sink.
type Interpreter struct {
	tokens []token.Token
	pos    int

	syms  *symbols.Table
	stack *frame.Stack
	pool  *langvalue.Pool

	out        io.Writer
	testMode   bool
	debugPrint bool
	trace      io.Writer

	sourceName string
	file       *source.File

	// knownFuncs records, keyed by the bound name's symbol, every closure
	// bound with `let NAME = fn ...` seen so far — used by the cache-eligibility
	// scan to detect calls to an "already-defined" ineligible function
	// (spec.md §4.5).
	knownFuncs map[uint32]*langvalue.Function

	// callChain is the stack of function entities currently executing,
	// used to disqualify memoization dynamically when print runs
	// somewhere inside a call (spec.md §4.3).
	callChain []*langvalue.Function

	preloadCache  map[uint32][]langvalue.CacheEntry
	cacheCapacity int
}

// Options configures a Run beyond the core (source_name, source_text,
// test_mode) contract of spec.md §6.
type Options struct {
	TestMode   bool
	DebugPrint bool
	Trace      io.Writer // nil disables call tracing

	// PreloadCache seeds newly defined closures with previously persisted
	// memoization entries, keyed by the `fn` keyword's byte offset in
	// source_text (SPEC_FULL.md §2.6). Nil disables preloading.
	PreloadCache map[uint32][]langvalue.CacheEntry

	// StackDepth and CacheCapacity override the frame.MaxDepth and
	// langvalue.CacheSize floors, sourced from a lumen.toml [limits]
	// table (SPEC_FULL.md §2.2). Zero keeps the spec floor.
	StackDepth    int
	CacheCapacity int
}

// New constructs an Interpreter over already-tokenized source, sharing
// syms with whatever lexer produced tokens. Exposed for callers (like the
// REPL) that need to keep one interpreter — and one symbol table — alive
// across multiple incremental parses.
func New(sourceName string, file *source.File, tokens []token.Token, syms *symbols.Table, out io.Writer, opts Options) *Interpreter {
	return &Interpreter{
		tokens:        tokens,
		syms:          syms,
		stack:         frame.NewStackWithLimit(opts.StackDepth),
		pool:          langvalue.NewPool(),
		out:           out,
		testMode:      opts.TestMode,
		debugPrint:    opts.DebugPrint,
		trace:         opts.Trace,
		sourceName:    sourceName,
		file:          file,
		knownFuncs:    make(map[uint32]*langvalue.Function),
		preloadCache:  opts.PreloadCache,
		cacheCapacity: opts.CacheCapacity,
	}
}

// Run implements the embedding contract of spec.md §6: lex source_text
// once, then evaluate it end to end, returning the value of the last
// evaluated expression.
func Run(sourceName, sourceText string, opts Options) (langvalue.Value, error) {
	v, _, err := RunWithInterpreter(sourceName, sourceText, io.Discard, opts)
	return v, err
}

// RunTo evaluates source_text with an explicit output sink, such as
// stdout for streaming print output.
func RunTo(sourceName, sourceText string, out io.Writer, opts Options) (langvalue.Value, error) {
	v, _, err := RunWithInterpreter(sourceName, sourceText, out, opts)
	return v, err
}

// RunWithInterpreter is RunTo but also returns the Interpreter used, so a
// caller (namely `lumen run` persisting the memoization cache, SPEC_FULL.md
// §2.6) can inspect state — such as each named closure's cache contents —
// after evaluation finishes.
func RunWithInterpreter(sourceName, sourceText string, out io.Writer, opts Options) (langvalue.Value, *Interpreter, error) {
	syms := symbols.New()
	file := source.New(sourceName, []byte(sourceText))
	lx := lexer.New(file.Content, syms)
	toks, err := lx.Tokenize()
	if err != nil {
		return langvalue.Value{}, nil, wrapLexError(sourceName, file, err)
	}
	it := New(sourceName, file, toks, syms, out, opts)
	v, err := it.EvalProgram()
	return v, it, err
}

func wrapLexError(sourceName string, file *source.File, err error) error {
	lerr, ok := err.(*lexer.Error)
	if !ok {
		return err
	}
	return &diag.Diagnostic{
		Message:    lerr.Message,
		SourceName: sourceName,
		Token:      token.New(token.Illegal, "", token.Position{Line: lerr.Line, Col: lerr.Col}),
	}
}

// File exposes the source file for callers rendering diagnostics.
func (it *Interpreter) File() *source.File { return it.file }

// ExportFunctionCaches collects every named closure's memoized entries,
// keyed by definition offset, for the persistent cache writer
// (SPEC_FULL.md §2.6). Anonymous closures never bound with `let NAME =
// fn ...` aren't tracked here — nothing outside this run could address
// them again by offset alone in a meaningful way.
func (it *Interpreter) ExportFunctionCaches() map[uint32][]langvalue.CacheEntry {
	out := make(map[uint32][]langvalue.CacheEntry, len(it.knownFuncs))
	for _, fn := range it.knownFuncs {
		if entries := fn.ExportCache(); len(entries) > 0 {
			out[fn.DefOffset] = entries
		}
	}
	return out
}

// SourceName exposes the run's source name for diagnostics.
func (it *Interpreter) SourceName() string { return it.sourceName }

func (it *Interpreter) cur() token.Token { return it.tokens[it.pos] }

func (it *Interpreter) at(kind token.Kind) bool { return it.cur().Kind == kind }

func (it *Interpreter) advance() token.Token {
	tok := it.tokens[it.pos]
	if it.pos < len(it.tokens)-1 {
		it.pos++
	}
	return tok
}

func (it *Interpreter) expect(kind token.Kind) (token.Token, error) {
	if !it.at(kind) {
		return token.Token{}, it.errorf("expected %s, found %s", kind, it.cur().Kind)
	}
	return it.advance(), nil
}

func (it *Interpreter) errorf(format string, args ...any) error {
	return &RuntimeError{Tok: it.cur(), Depth: it.stack.Depth(), Err: fmt.Errorf(format, args...)}
}

func (it *Interpreter) errorAt(tok token.Token, format string, args ...any) error {
	return &RuntimeError{Tok: tok, Depth: it.stack.Depth(), Err: fmt.Errorf(format, args...)}
}

// ToDiagnostic converts any error Run/EvalProgram returned into the
// fatal, single-shot Diagnostic spec.md §4.6 describes.
func ToDiagnostic(sourceName string, err error) *diag.Diagnostic {
	if d, ok := err.(*diag.Diagnostic); ok {
		return d
	}
	if rerr, ok := err.(*RuntimeError); ok {
		return &diag.Diagnostic{
			Message:    rerr.Err.Error(),
			SourceName: sourceName,
			Token:      rerr.Tok,
			StackDepth: rerr.Depth,
		}
	}
	return &diag.Diagnostic{Message: err.Error(), SourceName: sourceName}
}
