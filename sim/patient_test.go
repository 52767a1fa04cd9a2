package sim

import "testing"

func TestPatient_Record_KeepsOrderedStamps(t *testing.T) {
	// GIVEN a patient progressing through the fast track
	p := &Patient{ID: 1, Acuity: AcuityLow, ArrivalTime: 0}
	p.SetStream(StreamFastTrack)

	// WHEN stages are recorded in order
	p.Record(StageArrived, 0)
	p.Record(StageRouted, 0)
	p.Record(StageTriageStart, 2.5)
	p.Record(StageTriaged, 7.5)
	p.Record(StageInTreatment, 7.5)
	p.Record(StageTreatmentEnd, 20)
	p.Record(StageDisposed, 20)
	p.Record(StageExited, 20)

	// THEN the stamps are stored with non-decreasing times
	if len(p.Stamps) != 8 {
		t.Fatalf("got %d stamps, want 8", len(p.Stamps))
	}
	for i := 1; i < len(p.Stamps); i++ {
		if p.Stamps[i].Time < p.Stamps[i-1].Time {
			t.Errorf("stamp %d time %v below predecessor %v", i, p.Stamps[i].Time, p.Stamps[i-1].Time)
		}
		if p.Stamps[i].Stage <= p.Stamps[i-1].Stage {
			t.Errorf("stamp %d stage %v not after %v", i, p.Stamps[i].Stage, p.Stamps[i-1].Stage)
		}
	}
}

func TestPatient_Record_OutOfOrderStagePanics(t *testing.T) {
	// Recording a stage at or before the last one is a controller bug.
	p := &Patient{ID: 2}
	p.Record(StageArrived, 0)
	p.Record(StageTriaged, 5)

	defer func() {
		if recover() == nil {
			t.Error("recording triage_start after triaged did not panic")
		}
	}()
	p.Record(StageTriageStart, 6)
}

func TestPatient_Record_BackwardTimePanics(t *testing.T) {
	p := &Patient{ID: 3}
	p.Record(StageArrived, 10)

	defer func() {
		if recover() == nil {
			t.Error("recording an earlier timestamp did not panic")
		}
	}()
	p.Record(StageRouted, 9)
}

func TestPatient_SetStream_TwicePanics(t *testing.T) {
	// Stream is assigned exactly once, at routing.
	p := &Patient{ID: 4}
	p.SetStream(StreamMainED)

	defer func() {
		if recover() == nil {
			t.Error("second stream assignment did not panic")
		}
	}()
	p.SetStream(StreamOverflow)
}

func TestPatient_StampFor(t *testing.T) {
	p := &Patient{ID: 5}
	p.Record(StageArrived, 1.5)

	if got, ok := p.StampFor(StageArrived); !ok || got != 1.5 {
		t.Errorf("StampFor(arrived) = (%v, %v), want (1.5, true)", got, ok)
	}
	if _, ok := p.StampFor(StageBoarding); ok {
		t.Error("StampFor(boarding) found a stamp that was never recorded")
	}
}
