package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lumen-lang/lumen/internal/lexer"
	"github.com/lumen-lang/lumen/internal/symbols"
	"github.com/lumen-lang/lumen/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize <file>",
	Short: "Print the token stream for a Lumen source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	lx := lexer.New(src, symbols.New())
	toks, err := lx.Tokenize()
	if err != nil {
		return err
	}

	switch format {
	case "pretty":
		return formatTokensPretty(os.Stdout, toks)
	case "json":
		return formatTokensJSON(os.Stdout, toks)
	default:
		return fmt.Errorf("unknown format: %s (must be pretty or json)", format)
	}
}

func formatTokensPretty(out *os.File, toks []token.Token) error {
	for _, t := range toks {
		lexeme := t.Text
		if lexeme == "" {
			lexeme = t.Kind.String()
		}
		fmt.Fprintf(out, "%4d:%-3d %-10s %q\n", t.Pos.Line, t.Pos.Col, t.Kind, lexeme)
	}
	return nil
}

type tokenJSON struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
}

func formatTokensJSON(out *os.File, toks []token.Token) error {
	list := make([]tokenJSON, len(toks))
	for i, t := range toks {
		list[i] = tokenJSON{Kind: t.Kind.String(), Text: t.Text, Line: t.Pos.Line, Col: t.Pos.Col}
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(list)
}
