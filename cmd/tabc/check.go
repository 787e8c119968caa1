package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tabc/internal/cache"
	"tabc/internal/diag"
	"tabc/internal/diagfmt"
	"tabc/internal/driver"
	"tabc/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [file|dir]",
	Short: "Tokenize, parse, and validate without generating code",
	Long:  "Tokenize, parse, and validate without generating code. With no argument, falls back to the entry file named by tabc.toml.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	checkCmd.Flags().Int("jobs", 0, "parallel jobs for a directory (0 = GOMAXPROCS)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	switch format {
	case "pretty", "json", "msgpack":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}

	diskCache, cacheErr := cache.Open("tabc")
	if cacheErr != nil {
		diskCache = nil // cache is a pure performance layer; proceed uncached
	}

	target, _, err := resolveTarget(args)
	if err != nil {
		return err
	}

	info, statErr := os.Stat(target)
	if statErr != nil {
		return statErr
	}

	if !info.IsDir() {
		return checkOneFile(cmd, target, format, diskCache)
	}

	files, err := driver.ListSourceFiles(target)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .tab files found under %s", target)
	}
	results, err := driver.BatchCheck(context.Background(), files, driver.BatchOptions{Jobs: jobs})
	if err != nil && len(results) == 0 {
		return err
	}
	if ferr := driver.FirstError(results); ferr != nil {
		var derr *diag.Error
		if errors.As(ferr, &derr) {
			return renderDiagnostic(cmd, derr, nil, format)
		}
		return ferr
	}
	if !quiet(cmd) {
		fmt.Fprintf(cmd.OutOrStdout(), "%d files ok\n", len(results))
	}
	return nil
}

func checkOneFile(cmd *cobra.Command, path, format string, diskCache *cache.DiskCache) error {
	content, readErr := os.ReadFile(path) //nolint:gosec // path is a CLI argument
	if readErr != nil {
		return readErr
	}
	digest := cache.Sum(content)

	var payload cache.DiskPayload
	if hit, _ := diskCache.Get(digest, &payload); hit && !payload.Broken {
		if !quiet(cmd) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (cached)\n", path)
		}
		return nil
	}

	fs := source.NewFileSet()
	res, err := driver.Check(fs, path, nil)
	if err != nil {
		_ = diskCache.Put(digest, &cache.DiskPayload{Path: path, ContentHash: digest, Broken: true})
		var derr *diag.Error
		if errors.As(err, &derr) {
			return renderDiagnostic(cmd, derr, fs, format)
		}
		return err
	}

	names := make([]string, 0, len(res.Functions))
	returns := make([]string, 0, len(res.Functions))
	for _, fn := range res.Functions {
		names = append(names, fn.Proto.Name)
		returns = append(returns, res.Interner.String(fn.Proto.ReturnType))
	}
	_ = diskCache.Put(digest, &cache.DiskPayload{
		Path:            path,
		ContentHash:     digest,
		FuncNames:       names,
		FuncReturnTypes: returns,
	})

	if !quiet(cmd) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
	}
	return nil
}

func renderDiagnostic(cmd *cobra.Command, derr *diag.Error, fs *source.FileSet, format string) error {
	switch format {
	case "json":
		if err := diagfmt.JSON(cmd.OutOrStdout(), derr, fs, diagfmt.JSONOpts{}); err != nil {
			return err
		}
	case "msgpack":
		if err := diagfmt.Msgpack(cmd.OutOrStdout(), derr, fs, diagfmt.JSONOpts{}); err != nil {
			return err
		}
	default:
		opts := diagfmt.PrettyOpts{Color: resolveColor(cmd, os.Stderr)}
		if err := diagfmt.Pretty(os.Stderr, derr, fs, opts); err != nil {
			return err
		}
	}
	return fmt.Errorf("check failed")
}
