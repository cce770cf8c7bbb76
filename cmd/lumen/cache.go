package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumen-lang/lumen/internal/cachefile"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the persistent memoization cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show whether a persistent cache file exists and its size",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, path, err := openDefaultCacheStore(cmd)
		if err != nil {
			return err
		}
		exists, size, err := store.Stat()
		if err != nil {
			return err
		}
		if !exists {
			fmt.Fprintf(cmd.OutOrStdout(), "no cache file at %s\n", path)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d bytes\n", path, size)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the persistent memoization cache",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, path, err := openDefaultCacheStore(cmd)
		if err != nil {
			return err
		}
		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", path)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

func openDefaultCacheStore(cmd *cobra.Command) (*cachefile.Store, string, error) {
	path, _ := cmd.Root().PersistentFlags().GetString("cache-file")
	if path == "" {
		def, err := cachefile.DefaultPath()
		if err != nil {
			return nil, "", err
		}
		path = def
	}
	store, err := cachefile.Open(path)
	if err != nil {
		return nil, "", err
	}
	return store, path, nil
}
