package interp

import (
	"fmt"
	"strings"

	"github.com/lumen-lang/lumen/internal/langvalue"
	"github.com/lumen-lang/lumen/internal/token"
)

// evalFnLiteral parses `fn (params) => body` (spec.md §4.4). It captures
// the defining frame by value, runs the one-time static eligibility scan
// over the body's tokens, then skips past the body without evaluating it
// — a closure's body only runs when called.
func (it *Interpreter) evalFnLiteral() (langvalue.Value, error) {
	fnTok := it.advance() // `fn`
	if _, err := it.expect(token.LParen); err != nil {
		return langvalue.Value{}, err
	}
	var params []uint32
	for !it.at(token.RParen) {
		if len(params) > 0 {
			if _, err := it.expect(token.Comma); err != nil {
				return langvalue.Value{}, err
			}
		}
		p, err := it.expect(token.Ident)
		if err != nil {
			return langvalue.Value{}, err
		}
		params = append(params, p.Sym)
	}
	if _, err := it.expect(token.RParen); err != nil {
		return langvalue.Value{}, err
	}
	if _, err := it.expect(token.FatArrow); err != nil {
		return langvalue.Value{}, err
	}

	bodyStart := it.pos
	bodyIsBlock := it.at(token.LBrace)

	fn := langvalue.NewFunction(it.cacheCapacity)
	fn.ID = it.syms.Anonymous()
	fn.EntryPos = bodyStart
	fn.BodyIsBlock = bodyIsBlock
	fn.Params = params
	fn.Captured = it.stack.Current().Snapshot()
	fn.DefOffset = fnTok.Pos.Offset

	var bodyEnd int
	if bodyIsBlock {
		bodyEnd = it.skipBalancedBlock(bodyStart)
		it.pos = bodyEnd
	} else {
		it.skipExprTop()
		bodyEnd = it.pos
	}

	fn.EligibleStatic = it.scanEligibility(fn, bodyStart, bodyEnd)
	fn.Inspected = true

	if entries, ok := it.preloadCache[fn.DefOffset]; ok {
		fn.ImportCache(entries)
	}

	return langvalue.Value{Kind: langvalue.Closure, Closure: fn}, nil
}

// scanEligibility implements spec.md §4.5's definition-time body scan: a
// function may be memoized only if it takes 1 to 3 parameters, never
// calls `print`/`cowsay`, never assigns to an identifier it didn't
// declare itself (a parameter or a local `let`), and never calls a
// closure that has already been inspected and found ineligible. A
// self-recursive call never trips the last rule, since a function's own
// name is only registered in knownFuncs after this scan completes.
func (it *Interpreter) scanEligibility(fn *langvalue.Function, start, end int) bool {
	if len(fn.Params) < 1 || len(fn.Params) > langvalue.MaxCachedArgs {
		return false
	}

	locals := make(map[uint32]bool, len(fn.Params)+4)
	for _, p := range fn.Params {
		locals[p] = true
	}

	for i := start; i < end; i++ {
		tok := it.tokens[i]
		switch tok.Kind {
		case token.KwPrint, token.KwCowsay:
			return false
		case token.KwLet:
			if i+1 < end && it.tokens[i+1].Kind == token.Ident {
				locals[it.tokens[i+1].Sym] = true
			}
		case token.Ident:
			if i+1 < end && it.tokens[i+1].Kind == token.Assign && !locals[tok.Sym] {
				return false
			}
			if i+1 < end && it.tokens[i+1].Kind == token.LParen {
				if callee, ok := it.knownFuncs[tok.Sym]; ok && callee.Inspected && !callee.EligibleStatic {
					return false
				}
			}
		}
	}
	return true
}

// callClosure implements spec.md §4.4's call sequence: push a frame,
// initialize it from the closure's captured snapshot, overwrite
// parameter slots with the actual arguments, consult the memoization
// cache when eligible, otherwise evaluate the body, then pop the frame
// and resume at the call site.
func (it *Interpreter) callClosure(callTok token.Token, fn *langvalue.Function, args []langvalue.Value) (langvalue.Value, error) {
	if len(args) != len(fn.Params) {
		return langvalue.Value{}, it.errorAt(callTok, "%q expects %d argument(s), got %d", fn.Name, len(fn.Params), len(args))
	}

	allInts := true
	for _, a := range args {
		if a.Kind != langvalue.Integer {
			allInts = false
			break
		}
	}
	if !allInts {
		fn.Disqualify()
	}

	if allInts && fn.Eligible() {
		if v, ok := fn.CacheLookup(args); ok {
			return v, nil
		}
	}

	returnPos := it.pos

	frame, err := it.stack.Push()
	if err != nil {
		return langvalue.Value{}, it.errorAt(callTok, "%s", err)
	}
	for sym, v := range fn.Captured {
		frame.Set(sym, v)
	}
	for i, p := range fn.Params {
		frame.Set(p, args[i])
	}

	it.callChain = append(it.callChain, fn)
	it.pos = fn.EntryPos

	if it.trace != nil {
		it.traceCall(fn, args)
	}

	var result langvalue.Value
	if fn.BodyIsBlock {
		result, err = it.evalBlock()
	} else {
		result, err = it.EvalExpression()
	}

	it.callChain = it.callChain[:len(it.callChain)-1]
	it.stack.Pop()
	it.pos = returnPos

	if err != nil {
		return langvalue.Value{}, err
	}

	if allInts && fn.Eligible() {
		fn.CacheStore(args, result)
	}
	return result, nil
}

// traceCall writes one `depth, function id, args` line per call to the
// `--trace` sink (SPEC_FULL.md §2.4), grounded on the teacher's
// `--vm-trace` flag in cmd/surge/run.go. Purely a debugging aid: it never
// affects evaluation order or cached results.
func (it *Interpreter) traceCall(fn *langvalue.Function, args []langvalue.Value) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = langvalue.Format(a)
	}
	fmt.Fprintf(it.trace, "depth=%d fn=%d args=(%s)\n", it.stack.Depth(), fn.ID, strings.Join(parts, ", "))
}
