package interp

import (
	"github.com/lumen-lang/lumen/internal/langvalue"
	"github.com/lumen-lang/lumen/internal/token"
)

// evalPrimary implements spec.md §4.3's primary forms: identifier
// (possibly followed by a call), number, string, true/false, `fn`
// literal, `first`/`second`, `print`, `if`, and a parenthesized
// expression or tuple.
func (it *Interpreter) evalPrimary() (langvalue.Value, error) {
	tok := it.cur()
	switch tok.Kind {
	case token.Number:
		it.advance()
		return langvalue.Int64(tok.Number), nil
	case token.String:
		it.advance()
		return langvalue.Str64(tok.Str), nil
	case token.KwTrue:
		it.advance()
		return langvalue.Bool64(true), nil
	case token.KwFalse:
		it.advance()
		return langvalue.Bool64(false), nil
	case token.Ident:
		return it.evalIdentOrCall()
	case token.KwFn:
		return it.evalFnLiteral()
	case token.KwFirst:
		return it.evalUnaryBuiltin(token.KwFirst, langvalue.First)
	case token.KwSecond:
		return it.evalUnaryBuiltin(token.KwSecond, langvalue.Second)
	case token.KwPrint:
		return it.evalPrint()
	case token.KwIf:
		return it.evalIf()
	case token.LParen:
		return it.evalParenOrTuple()
	default:
		return langvalue.Value{}, it.errorf("unexpected token %s", tok.Kind)
	}
}

// evalIdentOrCall resolves an identifier, calling it if followed by `(`.
// A closure referenced without a call evaluates to itself, so it can be
// passed around and bound like any other value (spec.md §4.4).
func (it *Interpreter) evalIdentOrCall() (langvalue.Value, error) {
	tok := it.advance()
	v, ok := it.stack.Lookup(tok.Sym)
	if !ok {
		return langvalue.Value{}, it.errorAt(tok, "undefined identifier %q", tok.Text)
	}
	if !it.at(token.LParen) {
		return v, nil
	}
	if v.Kind != langvalue.Closure {
		return langvalue.Value{}, it.errorAt(tok, "%q is not callable", tok.Text)
	}
	args, err := it.evalCallArgs()
	if err != nil {
		return langvalue.Value{}, err
	}
	return it.callClosure(tok, v.Closure, args)
}

// evalCallArgs parses and evaluates a `(a, b, ...)` argument list,
// left to right (spec.md §5's ordering rule).
func (it *Interpreter) evalCallArgs() ([]langvalue.Value, error) {
	if _, err := it.expect(token.LParen); err != nil {
		return nil, err
	}
	var args []langvalue.Value
	for !it.at(token.RParen) {
		if len(args) > 0 {
			if _, err := it.expect(token.Comma); err != nil {
				return nil, err
			}
		}
		v, err := it.EvalExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	if _, err := it.expect(token.RParen); err != nil {
		return nil, err
	}
	return args, nil
}

func (it *Interpreter) evalUnaryBuiltin(kind token.Kind, fn func(langvalue.Value) (langvalue.Value, error)) (langvalue.Value, error) {
	kwTok := it.advance()
	if _, err := it.expect(token.LParen); err != nil {
		return langvalue.Value{}, err
	}
	v, err := it.EvalExpression()
	if err != nil {
		return langvalue.Value{}, err
	}
	if _, err := it.expect(token.RParen); err != nil {
		return langvalue.Value{}, err
	}
	result, err := fn(v)
	if err != nil {
		return langvalue.Value{}, it.errorAt(kwTok, "%s", err)
	}
	return result, nil
}

// evalPrint evaluates its argument, writes its textual rendering followed
// by a newline (spec.md §4.3), and returns the value itself. It also
// disqualifies memoization for every closure currently on the call chain,
// since printing is an observable side effect a cached call must not
// silently skip (spec.md §4.3, §4.5).
func (it *Interpreter) evalPrint() (langvalue.Value, error) {
	it.advance()
	if _, err := it.expect(token.LParen); err != nil {
		return langvalue.Value{}, err
	}
	v, err := it.EvalExpression()
	if err != nil {
		return langvalue.Value{}, err
	}
	if _, err := it.expect(token.RParen); err != nil {
		return langvalue.Value{}, err
	}

	for _, fn := range it.callChain {
		fn.Disqualify()
	}

	if !it.testMode {
		text := langvalue.Format(v)
		if it.debugPrint {
			text = langvalue.DebugFormat(v)
		}
		_, _ = it.out.Write([]byte(text + "\n"))
	}
	return v, nil
}

// evalParenOrTuple evaluates `(expr)` or, if a comma follows, `(a, b)`.
func (it *Interpreter) evalParenOrTuple() (langvalue.Value, error) {
	if _, err := it.expect(token.LParen); err != nil {
		return langvalue.Value{}, err
	}
	first, err := it.EvalExpression()
	if err != nil {
		return langvalue.Value{}, err
	}
	if it.at(token.Comma) {
		it.advance()
		second, err := it.EvalExpression()
		if err != nil {
			return langvalue.Value{}, err
		}
		if _, err := it.expect(token.RParen); err != nil {
			return langvalue.Value{}, err
		}
		return langvalue.Tuple2(first, second), nil
	}
	if _, err := it.expect(token.RParen); err != nil {
		return langvalue.Value{}, err
	}
	return first, nil
}

// evalIf implements spec.md §4.3's `if`, including the fast-path jump
// cache: the first execution of a given `if` token scans and records the
// end offsets of its then- and else-blocks, so later executions of the
// same `if` (e.g. across recursive calls) skip the untaken branch by
// jumping straight to its cached end instead of rescanning brace by
// brace.
func (it *Interpreter) evalIf() (langvalue.Value, error) {
	ifIdx := it.pos
	it.advance() // `if`
	if _, err := it.expect(token.LParen); err != nil {
		return langvalue.Value{}, err
	}
	cond, err := it.EvalExpression()
	if err != nil {
		return langvalue.Value{}, err
	}
	if _, err := it.expect(token.RParen); err != nil {
		return langvalue.Value{}, err
	}
	if cond.Kind != langvalue.Boolean {
		return langvalue.Value{}, it.errorf("if condition must be boolean")
	}

	thenStart := it.pos
	ifTok := &it.tokens[ifIdx]

	if cond.Bool {
		result, err := it.evalBlock()
		if err != nil {
			return langvalue.Value{}, err
		}
		if ifTok.ThenEnd == token.NoJump {
			ifTok.ThenEnd = it.pos
		} else {
			it.pos = ifTok.ThenEnd
		}
		if it.at(token.KwElse) {
			it.advance()
			if ifTok.ElseEnd == token.NoJump {
				ifTok.ElseEnd = it.skipBalancedBlock(it.pos)
			}
			it.pos = ifTok.ElseEnd
		}
		return result, nil
	}

	var thenEnd int
	if ifTok.ThenEnd != token.NoJump {
		thenEnd = ifTok.ThenEnd
	} else {
		thenEnd = it.skipBalancedBlock(thenStart)
		ifTok.ThenEnd = thenEnd
	}
	it.pos = thenEnd

	if !it.at(token.KwElse) {
		return langvalue.Value{Kind: langvalue.Undefined}, nil
	}
	it.advance()
	result, err := it.evalBlock()
	if err != nil {
		return langvalue.Value{}, err
	}
	if ifTok.ElseEnd == token.NoJump {
		ifTok.ElseEnd = it.pos
	} else {
		it.pos = ifTok.ElseEnd
	}
	return result, nil
}
