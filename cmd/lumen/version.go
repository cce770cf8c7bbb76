package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lumen-lang/lumen/internal/version"
)

const versionTagline = "a small language, evaluated as it's read"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show lumen build fingerprints",
	RunE: func(cmd *cobra.Command, args []string) error {
		v := strings.TrimSpace(version.Version)
		if v == "" {
			v = "dev"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "lumen %s — %s\n", v, versionTagline)
		if commit := strings.TrimSpace(version.GitCommit); commit != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "commit: %s\n", commit)
		}
		if date := strings.TrimSpace(version.BuildDate); date != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "built:  %s\n", date)
		}
		return nil
	},
}
