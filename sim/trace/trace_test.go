package trace

import "testing"

func TestTrace_BuffersRecordsInOrder(t *testing.T) {
	// GIVEN an empty trace
	tr := NewTrace()

	// WHEN stage records and samples are delivered
	tr.RecordStage(StageRecord{PatientID: 1, Stream: "fast_track", Stage: "arrived", Time: 0})
	tr.RecordStage(StageRecord{PatientID: 1, Stream: "fast_track", Stage: "exited", Time: 25})
	tr.RecordUtilization(UtilizationSample{Pool: "fast_track", Active: 1, QueueLength: 0, Time: 10})

	// THEN they are retained in delivery order
	if len(tr.Stages) != 2 {
		t.Fatalf("got %d stage records, want 2", len(tr.Stages))
	}
	if tr.Stages[0].Stage != "arrived" || tr.Stages[1].Stage != "exited" {
		t.Errorf("stage order corrupted: %v", tr.Stages)
	}
	if len(tr.Utilization) != 1 || tr.Utilization[0].Pool != "fast_track" {
		t.Errorf("utilization sample lost: %v", tr.Utilization)
	}
}

func TestStreamSink_DeliversIncrementally(t *testing.T) {
	var stages, samples int
	sink := StreamSink{
		OnStage:       func(StageRecord) { stages++ },
		OnUtilization: func(UtilizationSample) { samples++ },
	}

	sink.RecordStage(StageRecord{})
	sink.RecordStage(StageRecord{})
	sink.RecordUtilization(UtilizationSample{})

	if stages != 2 || samples != 1 {
		t.Errorf("got %d stage / %d sample callbacks, want 2 / 1", stages, samples)
	}
}

func TestStreamSink_NilCallbacksAreSafe(t *testing.T) {
	var sink StreamSink
	sink.RecordStage(StageRecord{})
	sink.RecordUtilization(UtilizationSample{})
}

func TestNopSink_DiscardsEverything(t *testing.T) {
	var sink NopSink
	sink.RecordStage(StageRecord{PatientID: 1})
	sink.RecordUtilization(UtilizationSample{Pool: "lab"})
}
