package pipeline

import "time"

// ChannelSink forwards events into a channel, for a consumer (e.g. a
// Bubble Tea program) reading on the other end.
type ChannelSink struct {
	Ch chan<- Event
}

// OnEvent implements ProgressSink.
func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// WriterSink prints a one-line status to a writer-backed log function,
// the default sink for non-interactive runs.
type WriterSink struct {
	Log func(line string)
}

// OnEvent implements ProgressSink.
func (s WriterSink) OnEvent(evt Event) {
	if s.Log == nil {
		return
	}
	s.Log(formatEvent(evt))
}

func formatEvent(evt Event) string {
	if evt.File == "" {
		return string(evt.Stage) + ": " + string(evt.Status)
	}
	if evt.Err != nil {
		return evt.File + ": " + string(evt.Stage) + " " + string(evt.Status) + ": " + evt.Err.Error()
	}
	return evt.File + ": " + string(evt.Stage) + " " + string(evt.Status)
}

// EmitQueued reports every file as queued for the tokenize stage, the
// batch driver's first progress report before any worker slot is free.
func EmitQueued(sink ProgressSink, files []string) {
	if sink == nil {
		return
	}
	for _, file := range files {
		sink.OnEvent(Event{File: file, Stage: StageTokenize, Status: StatusQueued})
	}
}

// EmitFileStage reports a single file's progress through one stage.
func EmitFileStage(sink ProgressSink, file string, stage Stage, status Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{File: file, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
}
