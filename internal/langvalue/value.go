// Package langvalue implements the tagged-union value model of spec.md §3:
// integers, booleans, strings, two-element tuples, and closures, plus the
// Undefined sentinel used only internally for "slot empty".
package langvalue

import "fmt"

// Kind tags which field of a Value is meaningful.
type Kind uint8

const (
	Undefined Kind = iota
	Integer
	Boolean
	String
	Tuple
	Closure
)

func (k Kind) String() string {
	switch k {
	case Undefined:
		return "undefined"
	case Integer:
		return "integer"
	case Boolean:
		return "boolean"
	case String:
		return "string"
	case Tuple:
		return "tuple"
	case Closure:
		return "closure"
	default:
		return "unknown"
	}
}

// TuplePair is the two-element, ordered payload of a Tuple value.
type TuplePair struct {
	First  Value
	Second Value
}

// Value is a single Lumen runtime value. Exactly one of the fields below
// is meaningful, selected by Kind — the closed-sum-type shape spec.md §9
// calls for ("a closed sum type with exhaustive case analysis").
type Value struct {
	Kind    Kind
	Int     int64
	Bool    bool
	Str     string
	Tuple   *TuplePair
	Closure *Function
}

// Int64 constructs an Integer value.
func Int64(n int64) Value { return Value{Kind: Integer, Int: n} }

// Bool64 constructs a Boolean value (named to avoid shadowing the Bool field).
func Bool64(b bool) Value { return Value{Kind: Boolean, Bool: b} }

// Str64 constructs a String value.
func Str64(s string) Value { return Value{Kind: String, Str: s} }

// Tuple2 constructs a Tuple value from two elements.
func Tuple2(first, second Value) Value {
	return Value{Kind: Tuple, Tuple: &TuplePair{First: first, Second: second}}
}

// Closure64 constructs a Closure value wrapping a function entity.
func Closure64(fn *Function) Value { return Value{Kind: Closure, Closure: fn} }

// IsUndefined reports whether v is the "slot empty" sentinel. Undefined is
// a frame slot's zero value and the result of statements such as `let`;
// it is also what an `if` with a false condition and no else branch
// evaluates to, so it can end up bound by `let`.
func (v Value) IsUndefined() bool { return v.Kind == Undefined }

// Format renders v the way `print` does: integer decimal, true/false,
// raw string text, "<#closure>" for closures, "(a, b)" recursively for
// tuples (spec.md §4.3).
func Format(v Value) string {
	switch v.Kind {
	case Integer:
		return fmt.Sprintf("%d", v.Int)
	case Boolean:
		if v.Bool {
			return "true"
		}
		return "false"
	case String:
		return v.Str
	case Closure:
		return "<#closure>"
	case Tuple:
		return fmt.Sprintf("(%s, %s)", Format(v.Tuple.First), Format(v.Tuple.Second))
	default:
		return "<#undefined>"
	}
}

// DebugFormat is the tagged rendering used by `lumen run --debug-print`,
// grounded on rinha_print_debug_ in original_source/src/rinha.c.
func DebugFormat(v Value) string {
	switch v.Kind {
	case Integer:
		return fmt.Sprintf("INTEGER: -> %d", v.Int)
	case Boolean:
		return fmt.Sprintf("BOOLEAN: -> %s", Format(v))
	case String:
		return fmt.Sprintf("STRING (%d): -> %s", len(v.Str), v.Str)
	case Closure:
		return "CLOSURE: -> <#closure>"
	case Tuple:
		return fmt.Sprintf("TUPLE: -> %s", Format(v))
	default:
		return "UNKNOWN"
	}
}
