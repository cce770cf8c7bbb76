package interp

import "github.com/lumen-lang/lumen/internal/token"

// The skip* family mirrors the eval* precedence ladder in expression.go
// structurally, without evaluating anything: no lookup, no arithmetic, no
// calls, no printing. It exists to implement short-circuiting (spec.md
// §5): once `&&`/`||` know their result, the untaken operand's tokens
// still have to be consumed so the cursor lands in the right place, but
// none of its side effects may run.

func (it *Interpreter) skipAnd() {
	it.skipComparison()
	for it.at(token.AndAnd) {
		it.advance()
		it.skipComparison()
	}
}

func (it *Interpreter) skipComparison() {
	it.skipAdditive()
	for {
		switch it.cur().Kind {
		case token.EqEq, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq:
			it.advance()
			it.skipAdditive()
		default:
			return
		}
	}
}

func (it *Interpreter) skipAdditive() {
	it.skipMultiplicative()
	for it.at(token.Plus) || it.at(token.Minus) {
		it.advance()
		it.skipMultiplicative()
	}
}

func (it *Interpreter) skipMultiplicative() {
	it.skipUnary()
	for it.at(token.Star) || it.at(token.Slash) || it.at(token.Percent) {
		it.advance()
		it.skipUnary()
	}
}

func (it *Interpreter) skipUnary() {
	if it.at(token.Minus) {
		it.advance()
		it.skipUnary()
		return
	}
	it.skipPrimary()
}

// skipPrimary structurally consumes one primary production, matching
// every form evalPrimary understands (spec.md §4.3).
func (it *Interpreter) skipPrimary() {
	switch it.cur().Kind {
	case token.Number, token.String, token.KwTrue, token.KwFalse:
		it.advance()
	case token.Ident:
		it.advance()
		if it.at(token.LParen) {
			it.skipParenArgs()
		}
	case token.KwFn:
		it.skipFnLiteral()
	case token.KwFirst, token.KwSecond, token.KwPrint:
		it.advance()
		if it.at(token.LParen) {
			it.advance()
			it.skipExprTop()
			if it.at(token.RParen) {
				it.advance()
			}
		}
	case token.KwIf:
		it.skipIf()
	case token.LParen:
		it.advance()
		it.skipExprTop()
		if it.at(token.Comma) {
			it.advance()
			it.skipExprTop()
		}
		if it.at(token.RParen) {
			it.advance()
		}
	default:
		it.advance()
	}
}

// skipExprTop skips one full assignment-level expression (spec.md §4.3),
// covering the `ident = expr` form as well as a plain logical-OR chain.
func (it *Interpreter) skipExprTop() {
	isIdent := it.at(token.Ident)
	if isIdent && it.tokens[it.pos+1].Kind == token.Assign {
		it.advance()
		it.advance()
		it.skipExprTop()
		return
	}
	it.skipOr()
}

func (it *Interpreter) skipOr() {
	it.skipAnd()
	for it.at(token.OrOr) {
		it.advance()
		it.skipAnd()
	}
}

func (it *Interpreter) skipParenArgs() {
	it.advance() // `(`
	for !it.at(token.RParen) && !it.at(token.EOF) {
		it.skipExprTop()
		if it.at(token.Comma) {
			it.advance()
		}
	}
	if it.at(token.RParen) {
		it.advance()
	}
}

func (it *Interpreter) skipFnLiteral() {
	it.advance() // `fn`
	if it.at(token.LParen) {
		it.advance()
		for !it.at(token.RParen) && !it.at(token.EOF) {
			it.advance()
			if it.at(token.Comma) {
				it.advance()
			}
		}
		if it.at(token.RParen) {
			it.advance()
		}
	}
	if it.at(token.FatArrow) {
		it.advance()
	}
	if it.at(token.LBrace) {
		it.pos = it.skipBalancedBlock(it.pos)
		return
	}
	it.skipExprTop()
}

func (it *Interpreter) skipIf() {
	it.advance() // `if`
	if it.at(token.LParen) {
		it.advance()
		it.skipExprTop()
		if it.at(token.RParen) {
			it.advance()
		}
	}
	if it.at(token.LBrace) {
		it.pos = it.skipBalancedBlock(it.pos)
	}
	if it.at(token.KwElse) {
		it.advance()
		if it.at(token.LBrace) {
			it.pos = it.skipBalancedBlock(it.pos)
		}
	}
}
