package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lumen-lang/lumen/internal/cachefile"
	"github.com/lumen-lang/lumen/internal/config"
	"github.com/lumen-lang/lumen/internal/diag"
	"github.com/lumen-lang/lumen/internal/interp"
	"github.com/lumen-lang/lumen/internal/source"
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Lumen program",
	Long:  `Run evaluates a Lumen source file end to end, streaming print output to stdout.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRun,
}

func init() {
	runCmd.Flags().Bool("trace", false, "log each closure call (depth, function, args) to stderr")
	runCmd.Flags().Bool("debug-print", false, "render print output in the tagged debug form")
}

func runRun(cmd *cobra.Command, args []string) error {
	trace, _ := cmd.Flags().GetBool("trace")
	debugPrint, _ := cmd.Flags().GetBool("debug-print")

	manifest, hasManifest, err := config.Load(".")
	if err != nil {
		return err
	}

	path, err := resolveRunPath(args, manifest, hasManifest)
	if err != nil {
		return err
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	limits := config.DefaultLimits()
	if hasManifest {
		limits = manifest.Limits
	}

	opts := interp.Options{
		DebugPrint:    debugPrint,
		StackDepth:    limits.StackDepth,
		CacheCapacity: limits.CacheSize,
	}
	if trace {
		opts.Trace = os.Stderr
	}

	store, cacheHash, persist := openCacheStore(cmd, manifest, hasManifest, string(src))
	if persist {
		if preload, ok := store.Load(cacheHash); ok {
			opts.PreloadCache = preload
		}
	}

	_, it, runErr := interp.RunWithInterpreter(path, string(src), os.Stdout, opts)
	if runErr != nil {
		d := interp.ToDiagnostic(path, runErr)
		diag.Report(os.Stderr, d, fileOf(it), diag.Options{Color: wantColor(cmd, os.Stderr)})
		os.Exit(1)
	}

	if persist {
		if err := store.Save(cacheHash, it.ExportFunctionCaches()); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to persist memoization cache: %v\n", err)
		}
	}
	return nil
}

func fileOf(it *interp.Interpreter) *source.File {
	if it == nil {
		return nil
	}
	return it.File()
}

// resolveRunPath implements the manifest fallback of SPEC_FULL.md §2.2:
// with an explicit file argument, run that; otherwise run the manifest's
// [run].main target.
func resolveRunPath(args []string, manifest *config.Manifest, hasManifest bool) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if !hasManifest {
		return "", fmt.Errorf("no file given and no lumen.toml found\nplease specify the file explicitly, e.g.:\n  lumen run path/to/main.lu")
	}
	return manifest.ResolveMainPath()
}

func openCacheStore(cmd *cobra.Command, manifest *config.Manifest, hasManifest bool, source string) (store *cachefile.Store, hash string, persist bool) {
	cachePath, _ := cmd.Root().PersistentFlags().GetString("cache-file")
	if cachePath == "" {
		if !hasManifest || !manifest.Cache.Persist {
			return nil, "", false
		}
		def, err := cachefile.DefaultPath()
		if err != nil {
			return nil, "", false
		}
		cachePath = def
	}
	s, err := cachefile.Open(cachePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to open memoization cache at %s: %v\n", cachePath, err)
		return nil, "", false
	}
	return s, cachefile.SourceDigest(source), true
}
