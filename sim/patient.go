// Defines the Patient entity and its stage state machine.
// Tracks acuity, stream assignment, sampled attributes, and the ordered
// sequence of stage timestamps from arrival to exit.

package sim

import "fmt"

// Acuity is the severity classification of a patient, determining routing.
type Acuity string

const (
	AcuityLow  Acuity = "low"
	AcuityHigh Acuity = "high"
)

// Stream is the treatment path a patient is assigned to at routing time.
type Stream string

const (
	StreamFastTrack Stream = "fast_track"
	StreamMainED    Stream = "main_ed"
	StreamOverflow  Stream = "overflow" // Fast-Track-equivalent care hosted on Main ED capacity
)

// Stage enumerates the patient state machine in required order. A patient's
// recorded stages are a strictly increasing subsequence of this enum
// (lab and boarding legs are optional), with non-decreasing timestamps.
type Stage int

const (
	StageArrived Stage = iota
	StageRouted
	StageTriageStart
	StageTriaged
	StageInTreatment
	StageTreatmentEnd
	StageLabPending
	StageLabDone
	StageDisposed
	StageBoarding
	StageTransferredOut
	StageExited
)

var stageNames = map[Stage]string{
	StageArrived:        "arrived",
	StageRouted:         "routed",
	StageTriageStart:    "triage_start",
	StageTriaged:        "triaged",
	StageInTreatment:    "in_treatment",
	StageTreatmentEnd:   "treatment_end",
	StageLabPending:     "lab_pending",
	StageLabDone:        "lab_done",
	StageDisposed:       "disposed",
	StageBoarding:       "boarding",
	StageTransferredOut: "transferred_out",
	StageExited:         "exited",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// StageStamp pairs a stage with the simulated minute it was entered.
type StageStamp struct {
	Stage Stage
	Time  float64
}

// Patient models a single patient's passage through the department.
// A patient is created on its arrival event and mutated only by the flow that
// owns it; the cooperative engine never runs two flows at the same instant.
type Patient struct {
	ID      int64
	Acuity  Acuity
	Stream  Stream // assigned exactly once at routing, immutable thereafter
	routed  bool
	ArrivalTime float64

	// Sampled once at routing, immutable.
	LabRequired bool
	Admitted    bool

	Stamps []StageStamp
}

// SetStream assigns the treatment stream. Assigning twice is a contract
// breach: routing happens exactly once per patient, before any resource
// request.
func (p *Patient) SetStream(s Stream) {
	if p.routed {
		panic(fmt.Sprintf("patient %d: stream assigned twice (%s then %s)", p.ID, p.Stream, s))
	}
	p.Stream = s
	p.routed = true
}

// Record appends a stage timestamp. Stages must be recorded in strictly
// increasing enum order with non-decreasing times; violating either is a
// controller bug, not bad input, and panics.
func (p *Patient) Record(stage Stage, t float64) {
	if n := len(p.Stamps); n > 0 {
		last := p.Stamps[n-1]
		if stage <= last.Stage {
			panic(fmt.Sprintf("patient %d: stage %s recorded after %s", p.ID, stage, last.Stage))
		}
		if t < last.Time {
			panic(fmt.Sprintf("patient %d: stage %s at t=%v before t=%v", p.ID, stage, t, last.Time))
		}
	}
	p.Stamps = append(p.Stamps, StageStamp{Stage: stage, Time: t})
}

// StampFor returns the recorded time of a stage, if present.
func (p *Patient) StampFor(stage Stage) (float64, bool) {
	for _, st := range p.Stamps {
		if st.Stage == stage {
			return st.Time, true
		}
	}
	return 0, false
}

// This method returns a human-readable string representation of a Patient.
func (p Patient) String() string {
	return fmt.Sprintf("Patient: (ID: %d, Acuity: %s, Stream: %s, ArrivalTime: %.2f)", p.ID, p.Acuity, p.Stream, p.ArrivalTime)
}
