package sim

import "github.com/sirupsen/logrus"

// Event defines the interface for all simulation events.
// Each event has a Timestamp (simulated minutes) and an Execute method that
// advances simulation state when invoked.
type Event interface {
	Timestamp() float64
	Execute(*Simulator)
}

// ArrivalEvent represents the arrival of a new patient at the department.
type ArrivalEvent struct {
	time float64
}

// Timestamp returns the scheduled time of the ArrivalEvent.
func (e *ArrivalEvent) Timestamp() float64 {
	return e.time
}

// Execute creates and routes the patient, starts its flow, and schedules the
// next arrival while the horizon has not been reached.
func (e *ArrivalEvent) Execute(sim *Simulator) {
	sim.handleArrival(e.time)
}

// resumeEvent wakes a suspended patient flow, either after a timed service
// delay or when a resource grant has been made for it.
type resumeEvent struct {
	time float64
	flow *patientFlow
}

func (e *resumeEvent) Timestamp() float64 {
	return e.time
}

func (e *resumeEvent) Execute(sim *Simulator) {
	if e.flow.cancelled {
		return
	}
	e.flow.proceed(sim)
}

// utilizationSampleEvent records the state of every pool and reschedules
// itself until the horizon.
type utilizationSampleEvent struct {
	time  float64
	every float64
}

func (e *utilizationSampleEvent) Timestamp() float64 {
	return e.time
}

func (e *utilizationSampleEvent) Execute(sim *Simulator) {
	logrus.Debugf("[t %.2f] sampling pool utilization", e.time)
	sim.sampleUtilization(e.time)
	next := e.time + e.every
	if next <= sim.Horizon {
		sim.Schedule(&utilizationSampleEvent{time: next, every: e.every})
	}
}
