package interp

import (
	"strings"
	"testing"

	"github.com/lumen-lang/lumen/internal/langvalue"
)

func run(t *testing.T, src string) langvalue.Value {
	t.Helper()
	v, err := Run("<test>", src, Options{TestMode: true})
	if err != nil {
		t.Fatalf("Run(%q) returned error: %v", src, err)
	}
	return v
}

func runOut(t *testing.T, src string) (langvalue.Value, string) {
	t.Helper()
	var out strings.Builder
	v, err := RunTo("<test>", src, &out, Options{})
	if err != nil {
		t.Fatalf("RunTo(%q) returned error: %v", src, err)
	}
	return v, out.String()
}

func TestHelloWorld(t *testing.T) {
	_, out := runOut(t, `print("Hello, World!")`)
	if out != "Hello, World!\n" {
		t.Errorf("output = %q, want %q", out, "Hello, World!\n")
	}
}

func TestFibonacciOfTwenty(t *testing.T) {
	src := `
		let fib = fn(n) => {
			if (n < 2) { n } else { fib(n - 1) + fib(n - 2) }
		};
		fib(20)
	`
	v := run(t, src)
	if v.Kind != langvalue.Integer || v.Int != 6765 {
		t.Errorf("fib(20) = %v, want Integer 6765", v)
	}
}

func TestSumViaClosureCapture(t *testing.T) {
	src := `
		let makeAdder = fn(x) => fn(y) => x + y;
		let addFive = makeAdder(5);
		addFive(10)
	`
	v := run(t, src)
	if v.Kind != langvalue.Integer || v.Int != 15 {
		t.Errorf("addFive(10) = %v, want Integer 15", v)
	}
}

func TestArithmeticChainRespectsPrecedence(t *testing.T) {
	v := run(t, `2 + 3 * 4 - 10 / 2`)
	if v.Kind != langvalue.Integer || v.Int != 9 {
		t.Errorf("2 + 3 * 4 - 10 / 2 = %v, want Integer 9", v)
	}
}

func TestStringConcatenationCoercesIntegers(t *testing.T) {
	v := run(t, `"count: " + 42`)
	if v.Kind != langvalue.String || v.Str != "count: 42" {
		t.Errorf(`"count: " + 42 = %v, want String "count: 42"`, v)
	}
}

func TestChainedAssignmentIsRightAssociative(t *testing.T) {
	src := `
		let a = 0;
		let b = 0;
		a = b = 7;
		a + b
	`
	v := run(t, src)
	if v.Kind != langvalue.Integer || v.Int != 14 {
		t.Errorf("a + b after a = b = 7 = %v, want Integer 14", v)
	}
}

func TestNestedClosureCaptureIsByValue(t *testing.T) {
	src := `
		let x = 1;
		let capture = fn() => x;
		x = 2;
		capture()
	`
	v := run(t, src)
	if v.Kind != langvalue.Integer || v.Int != 1 {
		t.Errorf("capture() after mutating x = %v, want Integer 1 (capture-by-value)", v)
	}
}

func TestNestedTupleFirstSecond(t *testing.T) {
	src := `
		let pair = (1, (2, 3));
		first(second(pair)) + second(second(pair))
	`
	v := run(t, src)
	if v.Kind != langvalue.Integer || v.Int != 5 {
		t.Errorf("nested tuple access = %v, want Integer 5", v)
	}
}

func TestShortCircuitAndDoesNotEvaluateRightOperand(t *testing.T) {
	_, out := runOut(t, `false && print(1)`)
	if out != "" {
		t.Errorf("right operand of a short-circuited && produced output: %q", out)
	}
}

func TestShortCircuitOrDoesNotEvaluateRightOperand(t *testing.T) {
	_, out := runOut(t, `true || print(1)`)
	if out != "" {
		t.Errorf("right operand of a short-circuited || produced output: %q", out)
	}
}

func TestAndEvaluatesRightOperandWhenLeftIsTrue(t *testing.T) {
	v, out := runOut(t, `true && print(true)`)
	if v.Kind != langvalue.Boolean || !v.Bool {
		t.Errorf("true && print(true) = %v, want true", v)
	}
	if out != "true\n" {
		t.Errorf("output = %q, want %q", out, "true\n")
	}
}

func TestIfFastPathJumpIsStableAcrossRepeatedCalls(t *testing.T) {
	src := `
		let choose = fn(n) => if (n < 0) { 0 - n } else { n };
		choose(-3) + choose(5) + choose(-3) + choose(5)
	`
	v := run(t, src)
	if v.Kind != langvalue.Integer || v.Int != 16 {
		t.Errorf("repeated if-branch calls = %v, want Integer 16", v)
	}
}

func TestIfWithoutElseIsUndefinedWhenFalse(t *testing.T) {
	src := `
		let x = if (false) { 1 };
		let y = 9;
		y
	`
	v := run(t, src)
	if v.Kind != langvalue.Integer || v.Int != 9 {
		t.Errorf("program result = %v, want Integer 9", v)
	}
}

func TestPrintDisqualifiesMemoizationForCallChain(t *testing.T) {
	src := `
		let noisy = fn(n) => { print(n); n + 1 };
		noisy(1);
		noisy(1)
	`
	_, out := runOut(t, src)
	if strings.Count(out, "1\n") != 2 {
		t.Errorf("a function containing print was memoized across identical calls; output = %q", out)
	}
}

func TestTraceWritesOneLinePerCall(t *testing.T) {
	src := `
		let inc = fn(n) => n + 1;
		inc(1);
		inc(2)
	`
	var trace strings.Builder
	_, err := RunTo("<test>", src, &strings.Builder{}, Options{TestMode: true, Trace: &trace})
	if err != nil {
		t.Fatalf("RunTo returned error: %v", err)
	}
	lines := strings.Split(strings.TrimRight(trace.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("trace has %d lines, want 2: %q", len(lines), trace.String())
	}
	for _, line := range lines {
		if !strings.Contains(line, "depth=") || !strings.Contains(line, "fn=") || !strings.Contains(line, "args=") {
			t.Errorf("trace line missing expected fields: %q", line)
		}
	}
}

func TestCallsDoNotPanicWithTraceOptionNil(t *testing.T) {
	src := `let inc = fn(n) => n + 1; inc(1)`
	if _, err := Run("<test>", src, Options{TestMode: true}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}

func TestUndefinedIdentifierIsAnError(t *testing.T) {
	if _, err := Run("<test>", `missingName`, Options{TestMode: true}); err == nil {
		t.Error("expected an error referencing an unbound identifier")
	}
}

func TestCallWithWrongArgCountIsAnError(t *testing.T) {
	src := `let f = fn(a, b) => a + b; f(1)`
	if _, err := Run("<test>", src, Options{TestMode: true}); err == nil {
		t.Error("expected an arity-mismatch error")
	}
}

func TestDivisionByZeroIsAnError(t *testing.T) {
	if _, err := Run("<test>", `1 / 0`, Options{TestMode: true}); err == nil {
		t.Error("expected a division-by-zero error")
	}
}

func TestCowsayStatementEvaluatesToTrue(t *testing.T) {
	v, out := runOut(t, `cowsay; true`)
	if v.Kind != langvalue.Boolean || !v.Bool {
		t.Errorf("program result = %v, want Boolean true", v)
	}
	if !strings.Contains(out, "moo!") {
		t.Errorf("cowsay did not write its banner to output: %q", out)
	}
}

func TestLetWildcardDiscardsResultButEvaluatesRHS(t *testing.T) {
	src := `
		let sink = fn(n) => { print(n); n };
		let _ = sink(5);
		true
	`
	_, out := runOut(t, src)
	if out != "5\n" {
		t.Errorf("output = %q, want %q (wildcard let still evaluates its RHS)", out, "5\n")
	}
}
