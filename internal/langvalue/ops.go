package langvalue

import "fmt"

// TypeError reports an operator or builtin applied to operands of the
// wrong kind — spec.md §7's "Type" error category.
type TypeError struct {
	Op      string
	Details string
}

func (e *TypeError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("type error in %s: %s", e.Op, e.Details)
	}
	return fmt.Sprintf("type error in %s", e.Op)
}

// ArithmeticError reports division or modulo by zero (spec.md §7).
type ArithmeticError struct {
	Op string
}

func (e *ArithmeticError) Error() string {
	return fmt.Sprintf("%s by zero", e.Op)
}

// Equal implements spec.md §3's structural-equality rules: numeric for
// Integer, logical for Boolean, byte-wise for String, structural (element
// by element) for Tuple. Comparing values of different tags is an error.
func Equal(a, b Value) (bool, error) {
	if a.Kind != b.Kind {
		return false, &TypeError{Op: "==", Details: fmt.Sprintf("cannot compare %s with %s", a.Kind, b.Kind)}
	}
	switch a.Kind {
	case Integer:
		return a.Int == b.Int, nil
	case Boolean:
		return a.Bool == b.Bool, nil
	case String:
		return a.Str == b.Str, nil
	case Tuple:
		firstEq, err := Equal(a.Tuple.First, b.Tuple.First)
		if err != nil {
			return false, err
		}
		if !firstEq {
			return false, nil
		}
		return Equal(a.Tuple.Second, b.Tuple.Second)
	case Closure:
		return a.Closure == b.Closure, nil
	default:
		return false, &TypeError{Op: "==", Details: "cannot compare undefined values"}
	}
}

// Add implements spec.md §4.3's `+` typing rule: integer addition when
// both sides are Integer, otherwise string concatenation of the textual
// form of each operand. Concatenation results are built through a Pool so
// that chained concatenations never alias each other's storage
// (spec.md §5).
func Add(pool *Pool, a, b Value) (Value, error) {
	if a.Kind == Integer && b.Kind == Integer {
		return Int64(a.Int + b.Int), nil
	}
	if a.Kind == Tuple || b.Kind == Tuple {
		return Value{}, &TypeError{Op: "+", Details: "tuples cannot be added or concatenated"}
	}
	return Str64(pool.Concat(Format(a), Format(b))), nil
}

// IntBinOp applies one of spec.md's integer-only arithmetic operators
// (-, *, /, %) after checking both operands are Integer.
func IntBinOp(op string, a, b Value) (Value, error) {
	if a.Kind != Integer || b.Kind != Integer {
		return Value{}, &TypeError{Op: op, Details: "operands must be integers"}
	}
	switch op {
	case "-":
		return Int64(a.Int - b.Int), nil
	case "*":
		return Int64(a.Int * b.Int), nil
	case "/":
		if b.Int == 0 {
			return Value{}, &ArithmeticError{Op: "division"}
		}
		return Int64(a.Int / b.Int), nil
	case "%":
		if b.Int == 0 {
			return Value{}, &ArithmeticError{Op: "modulo"}
		}
		return Int64(a.Int % b.Int), nil
	default:
		return Value{}, &TypeError{Op: op, Details: "unknown integer operator"}
	}
}

// Compare applies one of <, <=, >, >=, integer-only per spec.md §4.3.
func Compare(op string, a, b Value) (Value, error) {
	if a.Kind != Integer || b.Kind != Integer {
		return Value{}, &TypeError{Op: op, Details: "comparison operands must be integers"}
	}
	var result bool
	switch op {
	case "<":
		result = a.Int < b.Int
	case "<=":
		result = a.Int <= b.Int
	case ">":
		result = a.Int > b.Int
	case ">=":
		result = a.Int >= b.Int
	default:
		return Value{}, &TypeError{Op: op, Details: "unknown comparison operator"}
	}
	return Bool64(result), nil
}

// First returns the first element of a tuple, erroring on any other kind
// (spec.md §4.3).
func First(v Value) (Value, error) {
	if v.Kind != Tuple {
		return Value{}, &TypeError{Op: "first", Details: "argument must be a tuple"}
	}
	return v.Tuple.First, nil
}

// Second returns the second element of a tuple, erroring on any other
// kind (spec.md §4.3).
func Second(v Value) (Value, error) {
	if v.Kind != Tuple {
		return Value{}, &TypeError{Op: "second", Details: "argument must be a tuple"}
	}
	return v.Tuple.Second, nil
}
