package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"tabc/internal/diag"
	"tabc/internal/diagfmt"
	"tabc/internal/driver"
	"tabc/internal/pipeline"
	"tabc/internal/source"
	"tabc/internal/ui"
)

var buildCmd = &cobra.Command{
	Use:   "build [file|dir]",
	Short: "Run the full pipeline and emit textual IR",
	Long:  "Run the full pipeline and emit textual IR. With no argument, falls back to the entry file named by tabc.toml.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().String("out", "", "output path (defaults to main.ll, or <name>.ll per file for a directory)")
	buildCmd.Flags().Bool("ui", false, "show a Bubble Tea progress bar")
	buildCmd.Flags().Int("jobs", 0, "parallel jobs for a directory (0 = GOMAXPROCS)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	out, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}
	useUI, err := cmd.Flags().GetBool("ui")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}

	target, manifest, err := resolveTarget(args)
	if err != nil {
		return err
	}
	if out == "" && manifest != nil {
		out = manifest.OutPath()
	}

	info, statErr := os.Stat(target)
	if statErr != nil {
		return statErr
	}
	if !info.IsDir() {
		return buildOneFile(cmd, target, out)
	}
	return buildDir(cmd, target, jobs, useUI)
}

func buildOneFile(cmd *cobra.Command, path, out string) error {
	if out == "" {
		out = "main.ll"
	}
	fs := source.NewFileSet()
	ir, err := driver.Build(fs, path, nil)
	if err != nil {
		var derr *diag.Error
		if errors.As(err, &derr) {
			opts := diagfmt.PrettyOpts{Color: resolveColor(cmd, os.Stderr)}
			_ = diagfmt.Pretty(os.Stderr, derr, fs, opts)
			return fmt.Errorf("build failed")
		}
		return err
	}
	if werr := os.WriteFile(out, []byte(ir), 0o644); werr != nil { //nolint:gosec // output path is a CLI argument
		return werr
	}
	if !quiet(cmd) {
		fmt.Fprintf(cmd.OutOrStdout(), "built %s\n", out)
	}
	return nil
}

func buildDir(cmd *cobra.Command, dir string, jobs int, useUI bool) error {
	files, err := driver.ListSourceFiles(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .tab files found under %s", dir)
	}

	opts := driver.BatchOptions{Jobs: jobs}
	var (
		results  []driver.FileResult
		buildErr error
	)
	if useUI {
		events := make(chan pipeline.Event)
		opts.Progress = pipeline.ChannelSink{Ch: events}
		program := tea.NewProgram(ui.NewProgressModel("tabc build", files, events))
		go func() {
			defer close(events)
			results, buildErr = driver.BatchBuild(context.Background(), files, opts)
		}()
		if _, runErr := program.Run(); runErr != nil {
			return runErr
		}
	} else {
		opts.Progress = pipeline.WriterSink{Log: func(line string) {
			if !quiet(cmd) {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
		}}
		results, buildErr = driver.BatchBuild(context.Background(), files, opts)
	}
	err = buildErr
	if err != nil && len(results) == 0 {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			var derr *diag.Error
			if errors.As(r.Err, &derr) {
				outOpts := diagfmt.PrettyOpts{Color: resolveColor(cmd, os.Stderr)}
				_ = diagfmt.Pretty(os.Stderr, derr, nil, outOpts)
			} else {
				fmt.Fprintf(os.Stderr, "%s: %v\n", r.Path, r.Err)
			}
			continue
		}
		outPath := strings.TrimSuffix(r.Path, filepath.Ext(r.Path)) + ".ll"
		if werr := os.WriteFile(outPath, []byte(r.IR), 0o644); werr != nil { //nolint:gosec // derived from a discovered source path
			return werr
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to build", failed, len(results))
	}
	if !quiet(cmd) {
		fmt.Fprintf(cmd.OutOrStdout(), "built %d files\n", len(results))
	}
	return nil
}
