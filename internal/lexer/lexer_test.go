package lexer

import (
	"testing"

	"github.com/lumen-lang/lumen/internal/symbols"
	"github.com/lumen-lang/lumen/internal/token"
)

func tokenize(t *testing.T, src string) []token.Token {
	t.Helper()
	toks, err := New([]byte(src), symbols.New()).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize(%q) returned error: %v", src, err)
	}
	return toks
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenizeKeywordsAndPunct(t *testing.T) {
	toks := tokenize(t, "let x = fn(a, b) => a + b;")
	want := []token.Kind{
		token.KwLet, token.Ident, token.Assign, token.KwFn, token.LParen,
		token.Ident, token.Comma, token.Ident, token.RParen, token.FatArrow,
		token.Ident, token.Plus, token.Ident, token.Semicolon, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestTokenizeSecretCowsay(t *testing.T) {
	toks := tokenize(t, "cowsay;")
	if toks[0].Kind != token.KwCowsay {
		t.Errorf("got %s, want KwCowsay", toks[0].Kind)
	}
}

func TestTokenizeStringLiteralsSymmetricQuotes(t *testing.T) {
	for _, src := range []string{`"hi there"`, `'hi there'`} {
		toks := tokenize(t, src)
		if toks[0].Kind != token.String {
			t.Fatalf("%q: got %s, want String", src, toks[0].Kind)
		}
		if toks[0].Str != "hi there" {
			t.Errorf("%q: got %q, want %q", src, toks[0].Str, "hi there")
		}
	}
}

func TestTokenizeNumber(t *testing.T) {
	toks := tokenize(t, "12345")
	if toks[0].Kind != token.Number || toks[0].Number != 12345 {
		t.Errorf("got kind=%s number=%d, want Number 12345", toks[0].Kind, toks[0].Number)
	}
}

func TestTokenizeSameIdentifierSameSymbol(t *testing.T) {
	syms := symbols.New()
	toks, err := New([]byte("foo foo bar"), syms).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize returned error: %v", err)
	}
	if toks[0].Sym != toks[1].Sym {
		t.Errorf("two occurrences of %q got different symbols: %d vs %d", "foo", toks[0].Sym, toks[1].Sym)
	}
	if toks[0].Sym == toks[2].Sym {
		t.Errorf("distinct identifiers %q and %q got the same symbol", "foo", "bar")
	}
}

func TestTokenizeCommentsAreSkipped(t *testing.T) {
	toks := tokenize(t, "1 // trailing comment\n+ /* block\ncomment */ 2")
	got := kinds(toks)
	want := []token.Kind{token.Number, token.Plus, token.Number, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestTokenizeUnterminatedStringErrors(t *testing.T) {
	_, err := New([]byte(`"never closed`), symbols.New()).Tokenize()
	if err == nil {
		t.Fatal("expected an error for an unterminated string literal")
	}
}

func TestTokenizeUnterminatedBlockCommentErrors(t *testing.T) {
	_, err := New([]byte("/* never closed"), symbols.New()).Tokenize()
	if err == nil {
		t.Fatal("expected an error for an unterminated block comment")
	}
}

func TestTokenizeTwoCharOperators(t *testing.T) {
	toks := tokenize(t, "== != <= >= && || =>")
	want := []token.Kind{
		token.EqEq, token.BangEq, token.LtEq, token.GtEq,
		token.AndAnd, token.OrOr, token.FatArrow, token.EOF,
	}
	got := kinds(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestTokenizeBareUnderscoreIsWildcard(t *testing.T) {
	toks := tokenize(t, "_")
	if toks[0].Kind != token.Underscore {
		t.Errorf("got %s, want Underscore", toks[0].Kind)
	}
}

func TestTokenizeUnderscorePrefixedNameIsIdent(t *testing.T) {
	for _, src := range []string{"_foo", "foo_bar", "__"} {
		toks := tokenize(t, src)
		if toks[0].Kind != token.Ident {
			t.Errorf("%q: got %s, want Ident", src, toks[0].Kind)
		}
	}
}

func TestTokenizeTracksLineAndColumn(t *testing.T) {
	toks := tokenize(t, "a\nbb")
	if toks[0].Pos.Line != 1 || toks[0].Pos.Col != 1 {
		t.Errorf("first token: got line=%d col=%d, want 1,1", toks[0].Pos.Line, toks[0].Pos.Col)
	}
	if toks[1].Pos.Line != 2 || toks[1].Pos.Col != 1 {
		t.Errorf("second token: got line=%d col=%d, want 2,1", toks[1].Pos.Line, toks[1].Pos.Col)
	}
}
