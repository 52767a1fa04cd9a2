// sim/simulator.go
package sim

import (
	"container/heap"
	"context"

	"github.com/sirupsen/logrus"

	"github.com/edflow-sim/edflow-sim/sim/trace"
)

// eventEntry pairs an event with its insertion sequence number.
// The sequence is the tie-break for events scheduled at the identical
// simulated time, so replay order is deterministic for a fixed seed.
type eventEntry struct {
	ev  Event
	seq uint64
}

// EventQueue implements heap.Interface and orders events by
// (timestamp, insertion sequence).
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type EventQueue []eventEntry

func (eq EventQueue) Len() int { return len(eq) }
func (eq EventQueue) Less(i, j int) bool {
	ti, tj := eq[i].ev.Timestamp(), eq[j].ev.Timestamp()
	if ti != tj {
		return ti < tj
	}
	return eq[i].seq < eq[j].seq
}
func (eq EventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *EventQueue) Push(x any) {
	*eq = append(*eq, x.(eventEntry))
}

func (eq *EventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	*eq = old[0 : n-1]
	return item
}

// Simulator is the SimulationContext: it owns the clock, the event loop, all
// resource pools, the random processes, and the metrics sink for one run.
// It is explicitly constructed and passed by reference, never a process-wide
// singleton, so multiple runs can execute independently.
//
// The scheduling model is single-threaded and cooperative: exactly one logical
// flow executes at any simulated instant, so pool counters and the clock need
// no locks.
type Simulator struct {
	Clock   float64 // simulated minutes; advances only to the next event, never backward
	Horizon float64

	Config RunConfiguration

	// EventQueue holds all pending wake-ups: arrivals, flow resumptions,
	// utilization sampling.
	EventQueue EventQueue

	// Resource pools, fixed for the run's duration.
	Triage        *ResourcePool
	FastTrack     *ResourcePool
	MainProviders *ResourcePool
	Beds          *ResourcePool
	Lab           *ResourcePool

	// Random processes, partitioned per subsystem for isolation.
	rng         *PartitionedRNG
	arrival     *ArrivalSampler
	triageSvc   *ServiceSampler
	fastSvc     *ServiceSampler
	mainInitial *ServiceSampler
	labSvc      *ServiceSampler
	boardingSvc *ServiceSampler
	attributes  coinSource

	Sink    trace.Sink
	Metrics *Metrics

	// Patients holds every patient generated during the run, in arrival order.
	Patients []*Patient

	nextSeq       uint64
	nextPatientID int64
	liveFlows     []*patientFlow
	aborted       bool
}

// coinSource narrows *rand.Rand to the one draw the attribute subsystem uses.
type coinSource interface {
	Float64() float64
}

// NewSimulator validates the configuration and assembles a run. It fails with
// a wrapped ErrInvalidParameter before any simulated time advances; no partial
// run is ever started. A nil sink is replaced by trace.NopSink.
func NewSimulator(cfg RunConfiguration, sink trace.Sink) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sink == nil {
		sink = trace.NopSink{}
	}

	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed))

	arrival, err := NewArrivalSampler(cfg.ArrivalRatePerHour, rng.ForSubsystem(SubsystemArrivals))
	if err != nil {
		return nil, err
	}
	serviceRNG := rng.ForSubsystem(SubsystemService)
	samplers := make([]*ServiceSampler, 5)
	for i, mean := range []float64{cfg.TriageMean, cfg.FastServiceMean, cfg.MainInitialMean, cfg.LabMean, cfg.BoardingMean} {
		if samplers[i], err = NewServiceSampler(mean, serviceRNG); err != nil {
			return nil, err
		}
	}

	sim := &Simulator{
		Horizon:     cfg.HorizonMinutes,
		Config:      cfg,
		EventQueue:  make(EventQueue, 0),
		rng:         rng,
		arrival:     arrival,
		triageSvc:   samplers[0],
		fastSvc:     samplers[1],
		mainInitial: samplers[2],
		labSvc:      samplers[3],
		boardingSvc: samplers[4],
		attributes:  rng.ForSubsystem(SubsystemAttributes),
		Sink:        sink,
	}

	pools := []struct {
		name     string
		capacity int
		dst      **ResourcePool
	}{
		{PoolTriage, cfg.TriageNurses, &sim.Triage},
		{PoolFastTrack, cfg.FastTrackProviders, &sim.FastTrack},
		{PoolMainProviders, cfg.MainProviders, &sim.MainProviders},
		{PoolMainBeds, cfg.MainBeds, &sim.Beds},
		{PoolLab, cfg.LabTechs, &sim.Lab},
	}
	for _, p := range pools {
		if *p.dst, err = NewResourcePool(p.name, p.capacity); err != nil {
			return nil, err
		}
	}

	sim.Metrics = NewMetrics(cfg.WarmupMinutes)
	return sim, nil
}

// Pool names, as they appear in utilization samples.
const (
	PoolTriage        = "triage"
	PoolFastTrack     = "fast_track"
	PoolMainProviders = "main_providers"
	PoolMainBeds      = "main_beds"
	PoolLab           = "lab"
)

// Schedule pushes an event into the simulator's EventQueue, stamping it with
// the next insertion sequence number.
func (sim *Simulator) Schedule(ev Event) {
	heap.Push(&sim.EventQueue, eventEntry{ev: ev, seq: sim.nextSeq})
	sim.nextSeq++
}

// Run drives the event loop: pop the soonest event, advance the clock to its
// time, execute it. Arrival generation and utilization sampling stop at the
// horizon; the loop then drains so every in-flight patient reaches exit.
// Cancelling ctx aborts the run early: every live flow releases the units it
// holds before the loop returns, so no resource leaks past an abort.
func (sim *Simulator) Run(ctx context.Context) {
	if first := sim.arrival.Sample(); first <= sim.Horizon {
		sim.Schedule(&ArrivalEvent{time: first})
	}
	if every := sim.Config.UtilizationSampleEvery; every > 0 {
		sim.Schedule(&utilizationSampleEvent{time: 0, every: every})
	}

	for len(sim.EventQueue) > 0 {
		select {
		case <-ctx.Done():
			sim.abort()
			return
		default:
		}
		// get the next event to be simulated
		entry := heap.Pop(&sim.EventQueue).(eventEntry)
		// advance the clock
		sim.Clock = entry.ev.Timestamp()
		logrus.Debugf("[t %010.2f] Executing %T", sim.Clock, entry.ev)
		// process the event
		entry.ev.Execute(sim)
	}
	sim.Metrics.SimEndedTime = sim.Clock
	logrus.Infof("[t %010.2f] Simulation ended (%d patients generated)", sim.Clock, sim.nextPatientID)
}

// record stamps a patient stage at the current clock and forwards it to the
// sink. This is the only externally observable effect of the flow controller.
func (sim *Simulator) record(p *Patient, stage Stage) {
	p.Record(stage, sim.Clock)
	sim.Sink.RecordStage(trace.StageRecord{
		PatientID: p.ID,
		Stream:    string(p.Stream),
		Stage:     stage.String(),
		Time:      sim.Clock,
	})
}

// sampleUtilization emits one sample per pool and feeds the aggregate.
func (sim *Simulator) sampleUtilization(t float64) {
	for _, rp := range []*ResourcePool{sim.Triage, sim.FastTrack, sim.MainProviders, sim.Beds, sim.Lab} {
		s := trace.UtilizationSample{
			Pool:        rp.Name(),
			Active:      rp.Active(),
			QueueLength: rp.QueueLength(),
			Time:        t,
		}
		sim.Sink.RecordUtilization(s)
		sim.Metrics.observeUtilization(s, rp.Capacity())
	}
}

// startFlow registers a patient flow and runs its first steps.
func (sim *Simulator) startFlow(f *patientFlow) {
	sim.liveFlows = append(sim.liveFlows, f)
	f.proceed(sim)
}

// finishFlow archives an exited patient.
func (sim *Simulator) finishFlow(f *patientFlow) {
	for i, lf := range sim.liveFlows {
		if lf == f {
			sim.liveFlows = append(sim.liveFlows[:i], sim.liveFlows[i+1:]...)
			break
		}
	}
	sim.Metrics.archive(f.patient)
}

// abort cancels every live flow in patient order. Each cancellation releases
// the flow's held units, so a whole-run abort cannot leak a resource.
func (sim *Simulator) abort() {
	sim.aborted = true
	logrus.Warnf("[t %010.2f] Run aborted; cancelling %d in-flight patients", sim.Clock, len(sim.liveFlows))
	flows := make([]*patientFlow, len(sim.liveFlows))
	copy(flows, sim.liveFlows)
	for _, f := range flows {
		f.cancel(sim)
	}
	sim.liveFlows = nil
	sim.EventQueue = sim.EventQueue[:0]
	sim.Metrics.SimEndedTime = sim.Clock
}

// Aborted reports whether the run was cancelled before draining.
func (sim *Simulator) Aborted() bool { return sim.aborted }
