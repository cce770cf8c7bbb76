package interp

import (
	"github.com/lumen-lang/lumen/internal/langvalue"
	"github.com/lumen-lang/lumen/internal/token"
)

// EvalExpression is the assignment level of the precedence ladder
// (spec.md §4.3): it parses a logical-OR chain and, if the next token is
// `=`, evaluates the RHS and writes it into the slot the LHS identifier
// already addresses. Assignment is right-associative and is itself an
// expression whose value is the written value.
func (it *Interpreter) EvalExpression() (langvalue.Value, error) {
	lhsTok := it.cur()
	isAssignTarget := lhsTok.Kind == token.Ident

	left, err := it.evalOr()
	if err != nil {
		return langvalue.Value{}, err
	}

	if it.at(token.Assign) {
		if !isAssignTarget {
			return langvalue.Value{}, it.errorAt(lhsTok, "left-hand side of assignment must be an identifier")
		}
		it.advance()
		right, err := it.EvalExpression() // right-associative
		if err != nil {
			return langvalue.Value{}, err
		}
		if !it.stack.Assign(lhsTok.Sym, right) {
			return langvalue.Value{}, it.errorAt(lhsTok, "undefined identifier %q", lhsTok.Text)
		}
		return right, nil
	}

	return left, nil
}

func (it *Interpreter) evalOr() (langvalue.Value, error) {
	left, err := it.evalAnd()
	if err != nil {
		return langvalue.Value{}, err
	}
	for it.at(token.OrOr) {
		it.advance()
		if left.Kind != langvalue.Boolean {
			return langvalue.Value{}, it.errorf("left operand of '||' must be boolean")
		}
		if left.Bool {
			it.skipAnd()
			left = langvalue.Bool64(true)
			continue
		}
		right, err := it.evalAnd()
		if err != nil {
			return langvalue.Value{}, err
		}
		if right.Kind != langvalue.Boolean {
			return langvalue.Value{}, it.errorf("right operand of '||' must be boolean")
		}
		left = langvalue.Bool64(right.Bool)
	}
	return left, nil
}

func (it *Interpreter) evalAnd() (langvalue.Value, error) {
	left, err := it.evalComparison()
	if err != nil {
		return langvalue.Value{}, err
	}
	for it.at(token.AndAnd) {
		it.advance()
		if left.Kind != langvalue.Boolean {
			return langvalue.Value{}, it.errorf("left operand of '&&' must be boolean")
		}
		if !left.Bool {
			it.skipComparison()
			left = langvalue.Bool64(false)
			continue
		}
		right, err := it.evalComparison()
		if err != nil {
			return langvalue.Value{}, err
		}
		if right.Kind != langvalue.Boolean {
			return langvalue.Value{}, it.errorf("right operand of '&&' must be boolean")
		}
		left = langvalue.Bool64(right.Bool)
	}
	return left, nil
}

// skipAnd/skipComparison, defined in skip.go, discard an operand without
// evaluating it: spec.md §5 requires that the right operand of `&&`/`||`
// is not evaluated once the result is already determined, though the
// cursor still has to land past it.

func (it *Interpreter) evalComparison() (langvalue.Value, error) {
	left, err := it.evalAdditive()
	if err != nil {
		return langvalue.Value{}, err
	}
	for {
		var opTok token.Token
		switch it.cur().Kind {
		case token.EqEq, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq:
			opTok = it.advance()
		default:
			return left, nil
		}
		right, err := it.evalAdditive()
		if err != nil {
			return langvalue.Value{}, err
		}
		switch opTok.Kind {
		case token.EqEq:
			eq, err := langvalue.Equal(left, right)
			if err != nil {
				return langvalue.Value{}, it.errorAt(opTok, "%s", err)
			}
			left = langvalue.Bool64(eq)
		case token.BangEq:
			eq, err := langvalue.Equal(left, right)
			if err != nil {
				return langvalue.Value{}, it.errorAt(opTok, "%s", err)
			}
			left = langvalue.Bool64(!eq)
		default:
			result, err := langvalue.Compare(opTok.Kind.String(), left, right)
			if err != nil {
				return langvalue.Value{}, it.errorAt(opTok, "%s", err)
			}
			left = result
		}
	}
}

func (it *Interpreter) evalAdditive() (langvalue.Value, error) {
	left, err := it.evalMultiplicative()
	if err != nil {
		return langvalue.Value{}, err
	}
	for it.at(token.Plus) || it.at(token.Minus) {
		opTok := it.advance()
		right, err := it.evalMultiplicative()
		if err != nil {
			return langvalue.Value{}, err
		}
		if opTok.Kind == token.Plus {
			result, err := langvalue.Add(it.pool, left, right)
			if err != nil {
				return langvalue.Value{}, it.errorAt(opTok, "%s", err)
			}
			left = result
		} else {
			result, err := langvalue.IntBinOp("-", left, right)
			if err != nil {
				return langvalue.Value{}, it.errorAt(opTok, "%s", err)
			}
			left = result
		}
	}
	return left, nil
}

func (it *Interpreter) evalMultiplicative() (langvalue.Value, error) {
	left, err := it.evalUnary()
	if err != nil {
		return langvalue.Value{}, err
	}
	for it.at(token.Star) || it.at(token.Slash) || it.at(token.Percent) {
		opTok := it.advance()
		right, err := it.evalUnary()
		if err != nil {
			return langvalue.Value{}, err
		}
		result, err := langvalue.IntBinOp(opTok.Kind.String(), left, right)
		if err != nil {
			return langvalue.Value{}, it.errorAt(opTok, "%s", err)
		}
		left = result
	}
	return left, nil
}

// evalUnary handles the single unary form Lumen has: a leading `-` on a
// primary expression, desugared as `0 - expr`.
func (it *Interpreter) evalUnary() (langvalue.Value, error) {
	if it.at(token.Minus) {
		opTok := it.advance()
		v, err := it.evalUnary()
		if err != nil {
			return langvalue.Value{}, err
		}
		result, err := langvalue.IntBinOp("-", langvalue.Int64(0), v)
		if err != nil {
			return langvalue.Value{}, it.errorAt(opTok, "%s", err)
		}
		return result, nil
	}
	return it.evalPrimary()
}
