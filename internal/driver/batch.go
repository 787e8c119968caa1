package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"tabc/internal/pipeline"
	"tabc/internal/source"
)

// FileResult is one file's outcome from a BatchBuild/BatchCheck run.
type FileResult struct {
	Path    string
	IR      string // only set by BatchBuild, on success
	Err     error
	Elapsed time.Duration
}

// ListSourceFiles returns every *.tab file under dir, sorted for a
// deterministic batch order.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".tab") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// BatchOptions configures a concurrent multi-file run.
type BatchOptions struct {
	Jobs     int // 0 means GOMAXPROCS
	Externs  Externs
	Progress pipeline.ProgressSink
}

// BatchCheck runs tokenize->parse->validate over every file concurrently,
// one goroutine per file via errgroup. A file's failure is recorded on its
// own FileResult and does not cancel the other files; only cancellation of
// ctx stops files that have not started yet. The core's own pipeline is
// fully independent per file (the language has no imports), so this is
// just fan-out, no shared mutable state besides each file's own FileSet
// slot.
func BatchCheck(ctx context.Context, files []string, opts BatchOptions) ([]FileResult, error) {
	return runBatch(ctx, files, opts, func(fs *source.FileSet, path string) (string, error) {
		_, err := Check(fs, path, opts.Externs)
		return "", err
	})
}

// BatchBuild runs the full pipeline over every file concurrently and
// collects each file's emitted IR.
func BatchBuild(ctx context.Context, files []string, opts BatchOptions) ([]FileResult, error) {
	return runBatch(ctx, files, opts, func(fs *source.FileSet, path string) (string, error) {
		return Build(fs, path, opts.Externs)
	})
}

func runBatch(ctx context.Context, files []string, opts BatchOptions, run func(*source.FileSet, string) (string, error)) ([]FileResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(files) == 0 {
		return nil, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	pipeline.EmitQueued(opts.Progress, files)

	results := make([]FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				results[i] = FileResult{Path: path, Err: gctx.Err()}
				return gctx.Err()
			default:
			}

			start := time.Now()
			emit := func(stage pipeline.Stage, status pipeline.Status, err error) {
				pipeline.EmitFileStage(opts.Progress, path, stage, status, err, time.Since(start))
			}

			emit(pipeline.StageValidate, pipeline.StatusWorking, nil)
			fileSet := source.NewFileSet()
			ir, err := run(fileSet, path)
			elapsed := time.Since(start)
			if err != nil {
				// Each file is its own independent compilation unit: a
				// failure here is recorded on its FileResult, not
				// propagated as the goroutine's error, so sibling files
				// still run to completion.
				emit(pipeline.StageValidate, pipeline.StatusError, err)
				results[i] = FileResult{Path: path, Err: err, Elapsed: elapsed}
				return nil
			}
			emit(pipeline.StageCodegen, pipeline.StatusDone, nil)
			results[i] = FileResult{Path: path, IR: ir, Elapsed: elapsed}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// FirstError returns the first per-file error in results, in file order,
// or nil if every file succeeded.
func FirstError(results []FileResult) error {
	for _, r := range results {
		if r.Err != nil {
			return fmt.Errorf("%s: %w", r.Path, r.Err)
		}
	}
	return nil
}
