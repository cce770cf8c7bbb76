package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lumen-lang/lumen/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "lumen",
	Short: "Lumen language interpreter",
	Long:  `Lumen runs a small, dynamically-typed, expression-oriented scripting language.`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "accepted for all commands; no command reads it")
	rootCmd.PersistentFlags().String("cache-file", "", "path to the persistent memoization cache (empty defers to lumen.toml's [cache].persist)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func wantColor(cmd *cobra.Command, out *os.File) bool {
	mode, _ := cmd.Root().PersistentFlags().GetString("color")
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(out)
	}
}
