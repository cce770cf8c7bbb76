package langvalue

import "testing"

func TestFormat(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Int64(42), "42"},
		{Bool64(true), "true"},
		{Bool64(false), "false"},
		{Str64("hi"), "hi"},
		{Closure64(&Function{}), "<#closure>"},
		{Tuple2(Int64(1), Tuple2(Int64(2), Int64(3))), "(1, (2, 3))"},
	}
	for _, c := range cases {
		if got := Format(c.v); got != c.want {
			t.Errorf("Format(%v) = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestDebugFormatTagsEachKind(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Int64(5), "INTEGER: -> 5"},
		{Bool64(true), "BOOLEAN: -> true"},
		{Str64("hi"), "STRING (2): -> hi"},
	}
	for _, c := range cases {
		if got := DebugFormat(c.v); got != c.want {
			t.Errorf("DebugFormat(%v) = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestIsUndefined(t *testing.T) {
	if !(Value{}).IsUndefined() {
		t.Error("zero Value.IsUndefined() = false, want true")
	}
	if Int64(0).IsUndefined() {
		t.Error("Integer(0).IsUndefined() = true, want false")
	}
}
