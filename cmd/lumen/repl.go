package main

import (
	"github.com/spf13/cobra"

	"github.com/lumen-lang/lumen/internal/interp"
	"github.com/lumen-lang/lumen/internal/replui"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Lumen session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return replui.Run("<repl>", interp.Options{})
	},
}
