package trace

// Sink receives patient stage records and resource utilization samples as they
// are produced. The engine delivers records one at a time, in simulated-time
// order, so implementations need no internal synchronization unless they are
// shared across real goroutines.
type Sink interface {
	RecordStage(StageRecord)
	RecordUtilization(UtilizationSample)
}

// Trace is a buffering Sink that accumulates every record in memory.
// Useful for tests and for callers that want the whole run at once.
type Trace struct {
	Stages      []StageRecord
	Utilization []UtilizationSample
}

// NewTrace creates a Trace ready for recording.
func NewTrace() *Trace {
	return &Trace{
		Stages:      make([]StageRecord, 0),
		Utilization: make([]UtilizationSample, 0),
	}
}

// RecordStage appends a patient stage record.
func (t *Trace) RecordStage(r StageRecord) {
	t.Stages = append(t.Stages, r)
}

// RecordUtilization appends a utilization sample.
func (t *Trace) RecordUtilization(s UtilizationSample) {
	t.Utilization = append(t.Utilization, s)
}

// StreamSink adapts plain functions into a Sink, letting the reporting layer
// consume records incrementally instead of buffering the run. A nil function
// drops that record type.
type StreamSink struct {
	OnStage       func(StageRecord)
	OnUtilization func(UtilizationSample)
}

func (s StreamSink) RecordStage(r StageRecord) {
	if s.OnStage != nil {
		s.OnStage(r)
	}
}

func (s StreamSink) RecordUtilization(u UtilizationSample) {
	if s.OnUtilization != nil {
		s.OnUtilization(u)
	}
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) RecordStage(StageRecord)             {}
func (NopSink) RecordUtilization(UtilizationSample) {}
