// The ED flow controller: arrival generation, the once-per-patient routing
// decision with overflow policy, and the per-patient flow state machine that
// sequences triage → treatment → lab → disposition → boarding → exit.

package sim

import "github.com/sirupsen/logrus"

// handleArrival runs on every ArrivalEvent: it schedules the follow-on
// arrival, creates the patient with a sampled acuity class, routes it, and
// starts its flow.
func (sim *Simulator) handleArrival(t float64) {
	// Arrival generation is a perpetual process bounded by the horizon.
	if next := t + sim.arrival.Sample(); next <= sim.Horizon {
		sim.Schedule(&ArrivalEvent{time: next})
	}

	sim.nextPatientID++
	acuity := AcuityHigh
	if sim.attributes.Float64() < sim.Config.ProbFastTrack {
		acuity = AcuityLow
	}
	p := &Patient{
		ID:          sim.nextPatientID,
		Acuity:      acuity,
		ArrivalTime: t,
	}
	logrus.Debugf("<< Arrival: patient %d (%s acuity) at t=%.2f", p.ID, p.Acuity, t)
	sim.Patients = append(sim.Patients, p)
	sim.record(p, StageArrived)

	sim.routePatient(p)
	sim.startFlow(&patientFlow{patient: p})
}

// routePatient makes the routing decision exactly once per patient, before any
// resource request, and never re-evaluates it.
//
// Low-acuity patients overflow to Main ED capacity when the Fast Track queue
// predicts a wait above the threshold (or has grown past three times Fast
// Track capacity) AND Main ED providers have spare active-holder capacity.
// Overflow patients receive Fast-Track-equivalent care: no lab, no admission.
func (sim *Simulator) routePatient(p *Patient) {
	if p.Acuity == AcuityHigh {
		p.SetStream(StreamMainED)
		p.LabRequired = sim.attributes.Float64() < sim.Config.ProbLab
		p.Admitted = sim.attributes.Float64() < sim.Config.ProbAdmit
		sim.record(p, StageRouted)
		return
	}

	queued := sim.FastTrack.QueueLength()
	estimatedWait := float64(queued) * sim.Config.FastServiceMean
	saturated := estimatedWait > sim.Config.OverflowThresholdMinutes ||
		queued >= sim.FastTrack.Capacity()*3
	if saturated && sim.MainProviders.Active() < sim.MainProviders.Capacity() {
		p.SetStream(StreamOverflow)
		sim.Metrics.observeOverflow(sim.Clock)
		logrus.Debugf("patient %d overflows to Main ED (fast queue=%d, est wait=%.1f min)", p.ID, queued, estimatedWait)
	} else {
		p.SetStream(StreamFastTrack)
	}
	sim.record(p, StageRouted)
}

// flowStep is the explicit continuation of a patient flow: where it resumes
// when the engine wakes it after a delay or a resource grant.
type flowStep int

const (
	stepTriageAcquire flowStep = iota
	stepTriageService
	stepTriageDone
	stepTreatmentAcquire
	stepTreatmentService
	stepTreatmentDone
	stepLabAcquire
	stepLabService
	stepLabDone
	stepDispose
	stepBedAcquire
	stepBoardingService
	stepBoardingDone
	stepExit
)

// patientFlow is one patient's schedulable process. Between suspension points
// it runs to completion inside proceed; it suspends by returning after either
// scheduling a timed wake-up or being enqueued on a pool.
type patientFlow struct {
	patient   *Patient
	step      flowStep
	holding   []*ResourcePool // units currently held, for leak-free cancellation
	waitingOn *ResourcePool   // pool this flow is queued on, nil otherwise
	cancelled bool
}

// held registers a granted unit.
func (f *patientFlow) held(rp *ResourcePool) {
	f.holding = append(f.holding, rp)
}

// drop forgets a held unit, reporting whether it was held at all.
func (f *patientFlow) drop(rp *ResourcePool) bool {
	for i, h := range f.holding {
		if h == rp {
			f.holding = append(f.holding[:i], f.holding[i+1:]...)
			return true
		}
	}
	return false
}

// treatmentPool is where this patient's treatment happens: the Fast Track
// provider for fast_track, a Main ED provider for main_ed and overflow.
func (f *patientFlow) treatmentPool(sim *Simulator) *ResourcePool {
	if f.patient.Stream == StreamFastTrack {
		return sim.FastTrack
	}
	return sim.MainProviders
}

// treatmentSample draws the treatment duration: overflow patients are treated
// as Fast Track clinically, so they get the Fast Track distribution even on
// Main ED capacity.
func (f *patientFlow) treatmentSample(sim *Simulator) float64 {
	if f.patient.Stream == StreamMainED {
		return sim.mainInitial.Sample()
	}
	return sim.fastSvc.Sample()
}

// proceed advances the flow until its next suspension point or exit. The
// engine calls it on start and on every wake-up; it must only ever run for
// one flow at a time, which the single-threaded event loop guarantees.
func (f *patientFlow) proceed(sim *Simulator) {
	for {
		switch f.step {
		case stepTriageAcquire:
			if !sim.Triage.Acquire(sim, f) {
				return
			}
			f.step = stepTriageService

		case stepTriageService:
			sim.record(f.patient, StageTriageStart)
			f.step = stepTriageDone
			sim.delay(f, sim.triageSvc.Sample())
			return

		case stepTriageDone:
			sim.record(f.patient, StageTriaged)
			sim.Triage.Release(sim, f)
			f.step = stepTreatmentAcquire

		case stepTreatmentAcquire:
			if !f.treatmentPool(sim).Acquire(sim, f) {
				return
			}
			f.step = stepTreatmentService

		case stepTreatmentService:
			sim.record(f.patient, StageInTreatment)
			f.step = stepTreatmentDone
			sim.delay(f, f.treatmentSample(sim))
			return

		case stepTreatmentDone:
			sim.record(f.patient, StageTreatmentEnd)
			if f.patient.Stream == StreamMainED && f.patient.LabRequired {
				// Lab work is ordered while the provider is retained.
				sim.record(f.patient, StageLabPending)
				f.step = stepLabAcquire
			} else {
				f.step = stepDispose
			}

		case stepLabAcquire:
			if !sim.Lab.Acquire(sim, f) {
				return
			}
			f.step = stepLabService

		case stepLabService:
			f.step = stepLabDone
			sim.delay(f, sim.labSvc.Sample())
			return

		case stepLabDone:
			sim.record(f.patient, StageLabDone)
			sim.Lab.Release(sim, f)
			f.step = stepDispose

		case stepDispose:
			sim.record(f.patient, StageDisposed)
			f.treatmentPool(sim).Release(sim, f)
			if f.patient.Admitted {
				f.step = stepBedAcquire
			} else {
				f.step = stepExit
			}

		case stepBedAcquire:
			if !sim.Beds.Acquire(sim, f) {
				return
			}
			f.step = stepBoardingService

		case stepBoardingService:
			sim.record(f.patient, StageBoarding)
			f.step = stepBoardingDone
			sim.delay(f, sim.boardingSvc.Sample())
			return

		case stepBoardingDone:
			sim.record(f.patient, StageTransferredOut)
			sim.Beds.Release(sim, f)
			f.step = stepExit

		case stepExit:
			sim.record(f.patient, StageExited)
			logrus.Debugf(">> Exit: patient %d (%s) at t=%.2f", f.patient.ID, f.patient.Stream, sim.Clock)
			sim.finishFlow(f)
			return
		}
	}
}

// cancel terminates the flow cooperatively: it withdraws any pending resource
// request and releases every held unit. Used only for whole-run aborts.
func (f *patientFlow) cancel(sim *Simulator) {
	if f.cancelled {
		return
	}
	f.cancelled = true
	if f.waitingOn != nil {
		f.waitingOn.removeWaiter(f)
		f.waitingOn = nil
	}
	for len(f.holding) > 0 {
		f.holding[len(f.holding)-1].Release(sim, f)
	}
}

// delay suspends f for d simulated minutes.
func (sim *Simulator) delay(f *patientFlow, d float64) {
	sim.Schedule(&resumeEvent{time: sim.Clock + d, flow: f})
}
