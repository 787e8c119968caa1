package driver_test

import (
	"context"
	"testing"

	"tabc/internal/driver"
	"tabc/internal/pipeline"
)

func TestBatchBuildCompilesEveryFileConcurrently(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir+"/a.tab", "function a() -> void:\n\treturn\n")
	writeFile(t, dir+"/b.tab", "function b() -> void:\n\treturn\n")

	files, err := driver.ListSourceFiles(dir)
	if err != nil {
		t.Fatalf("ListSourceFiles: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}

	results, err := driver.BatchBuild(context.Background(), files, driver.BatchOptions{})
	if err != nil {
		t.Fatalf("unexpected batch error: %v", err)
	}
	if err := driver.FirstError(results); err != nil {
		t.Fatalf("unexpected per-file error: %v", err)
	}
	for _, r := range results {
		if r.IR == "" {
			t.Fatalf("expected emitted IR for %s", r.Path)
		}
	}
}

func TestBatchCheckIsolatesPerFileFailures(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir+"/good.tab", "function good() -> void:\n\treturn\n")
	writeFile(t, dir+"/bad.tab", "function bad() -> void:\n\treturn missing\n")

	files, err := driver.ListSourceFiles(dir)
	if err != nil {
		t.Fatalf("ListSourceFiles: %v", err)
	}

	var events []pipeline.Event
	sink := collectingSink{events: &events}
	results, err := driver.BatchCheck(context.Background(), files, driver.BatchOptions{Progress: sink})
	if err != nil {
		t.Fatalf("unexpected batch-level error: %v", err)
	}

	var sawError, sawOK bool
	for _, r := range results {
		switch {
		case r.Path == dir+"/bad.tab" && r.Err != nil:
			sawError = true
		case r.Path == dir+"/good.tab" && r.Err == nil:
			sawOK = true
		}
	}
	if !sawError {
		t.Fatal("expected bad.tab to report an error")
	}
	if !sawOK {
		t.Fatal("expected good.tab to succeed despite bad.tab's failure")
	}
	if len(events) == 0 {
		t.Fatal("expected progress events")
	}
}

type collectingSink struct {
	events *[]pipeline.Event
}

func (s collectingSink) OnEvent(evt pipeline.Event) {
	*s.events = append(*s.events, evt)
}
