package pipeline_test

import (
	"testing"

	"tabc/internal/pipeline"
)

func TestEmitQueuedReportsEveryFile(t *testing.T) {
	var got []pipeline.Event
	sink := recordingSink{&got}
	pipeline.EmitQueued(sink, []string{"a.tab", "b.tab"})
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	for _, ev := range got {
		if ev.Stage != pipeline.StageTokenize || ev.Status != pipeline.StatusQueued {
			t.Fatalf("unexpected event: %+v", ev)
		}
	}
}

func TestEmitQueuedToNilSinkIsNoop(t *testing.T) {
	pipeline.EmitQueued(nil, []string{"a.tab"})
}

func TestTimingsSumAcrossStages(t *testing.T) {
	var tm pipeline.Timings
	tm.Set(pipeline.StageParse, 10)
	tm.Set(pipeline.StageValidate, 20)
	if got := tm.Sum(pipeline.StageParse, pipeline.StageValidate); got != 30 {
		t.Fatalf("Sum() = %v, want 30", got)
	}
	if got := tm.Duration(pipeline.StageCodegen); got != 0 {
		t.Fatalf("Duration(unset) = %v, want 0", got)
	}
}

func TestWriterSinkFormatsFileAndErr(t *testing.T) {
	var lines []string
	sink := pipeline.WriterSink{Log: func(line string) { lines = append(lines, line) }}
	sink.OnEvent(pipeline.Event{File: "a.tab", Stage: pipeline.StageParse, Status: pipeline.StatusDone})
	if len(lines) != 1 || lines[0] != "a.tab: parse done" {
		t.Fatalf("unexpected line: %v", lines)
	}
}

type recordingSink struct {
	events *[]pipeline.Event
}

func (s recordingSink) OnEvent(evt pipeline.Event) {
	*s.events = append(*s.events, evt)
}
