// Aggregates run-level statistics: throughput per stream, waits, lengths of
// stay, boarding, overflow activations, and mean pool utilization.

package sim

import (
	"fmt"

	"github.com/edflow-sim/edflow-sim/sim/trace"
)

// poolUsage accumulates utilization samples for one pool.
type poolUsage struct {
	activeSum float64
	queueSum  float64
	capacity  int
	samples   int
}

// Metrics aggregates statistics about one run for final reporting. Records
// that fall inside the warm-up window are excluded so steady-state numbers are
// not skewed by the initially empty department.
type Metrics struct {
	warmup float64

	FastTrackCompleted  int // discharged through the Fast Track provider
	OverflowCompleted   int // Fast-Track-equivalent patients hosted on Main ED
	MainDischarged      int
	MainAdmitted        int
	OverflowRouted      int // routing decisions, counted at routing time
	PatientsArchived    int

	WaitsFast     []float64 // arrival → treatment start, fast_track + overflow
	WaitsMain     []float64 // arrival → treatment start, main_ed
	LOSFast       []float64
	LOSOverflow   []float64
	LOSMain       []float64
	BoardingTimes []float64

	usage map[string]*poolUsage

	SimEndedTime float64
}

// NewMetrics creates an empty aggregate honoring the given warm-up window.
func NewMetrics(warmupMinutes float64) *Metrics {
	return &Metrics{
		warmup: warmupMinutes,
		usage:  make(map[string]*poolUsage),
	}
}

func (m *Metrics) observeOverflow(t float64) {
	if t >= m.warmup {
		m.OverflowRouted++
	}
}

func (m *Metrics) observeUtilization(s trace.UtilizationSample, capacity int) {
	if s.Time < m.warmup {
		return
	}
	u, ok := m.usage[s.Pool]
	if !ok {
		u = &poolUsage{capacity: capacity}
		m.usage[s.Pool] = u
	}
	u.activeSum += float64(s.Active)
	u.queueSum += float64(s.QueueLength)
	u.samples++
}

// archive folds an exited patient into the aggregate.
func (m *Metrics) archive(p *Patient) {
	exit, ok := p.StampFor(StageExited)
	if !ok || exit < m.warmup {
		return
	}
	m.PatientsArchived++
	los := exit - p.ArrivalTime

	if start, ok := p.StampFor(StageInTreatment); ok {
		wait := start - p.ArrivalTime
		if p.Stream == StreamMainED {
			m.WaitsMain = append(m.WaitsMain, wait)
		} else {
			m.WaitsFast = append(m.WaitsFast, wait)
		}
	}

	switch p.Stream {
	case StreamFastTrack:
		m.FastTrackCompleted++
		m.LOSFast = append(m.LOSFast, los)
	case StreamOverflow:
		m.OverflowCompleted++
		m.LOSOverflow = append(m.LOSOverflow, los)
	case StreamMainED:
		m.LOSMain = append(m.LOSMain, los)
		if p.Admitted {
			m.MainAdmitted++
			if start, ok := p.StampFor(StageBoarding); ok {
				if end, ok := p.StampFor(StageTransferredOut); ok {
					m.BoardingTimes = append(m.BoardingTimes, end-start)
				}
			}
		} else {
			m.MainDischarged++
		}
	}
}

// MeanUtilization returns the mean busy fraction of a pool over the sampled
// window, in [0,1]. Returns 0 when the pool was never sampled.
func (m *Metrics) MeanUtilization(pool string) float64 {
	u, ok := m.usage[pool]
	if !ok || u.samples == 0 || u.capacity == 0 {
		return 0
	}
	return u.activeSum / float64(u.samples) / float64(u.capacity)
}

// MeanQueueLength returns the mean number of waiters observed at a pool.
func (m *Metrics) MeanQueueLength(pool string) float64 {
	u, ok := m.usage[pool]
	if !ok || u.samples == 0 {
		return 0
	}
	return u.queueSum / float64(u.samples)
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// Print displays the aggregate at the end of the run.
func (m *Metrics) Print() {
	fmt.Println("=== ED Simulation Metrics ===")
	fmt.Printf("Patients completed     : %d\n", m.PatientsArchived)
	fmt.Printf("  Fast Track           : %d\n", m.FastTrackCompleted)
	fmt.Printf("  Overflow (on Main ED): %d\n", m.OverflowCompleted)
	fmt.Printf("  Main ED discharged   : %d\n", m.MainDischarged)
	fmt.Printf("  Main ED admitted     : %d\n", m.MainAdmitted)
	fmt.Printf("Overflow routings      : %d\n", m.OverflowRouted)
	fmt.Printf("Avg wait (fast/ovf)    : %.1f min\n", mean(m.WaitsFast))
	fmt.Printf("Avg wait (main)        : %.1f min\n", mean(m.WaitsMain))
	fmt.Printf("Avg LOS fast track     : %.1f min\n", mean(m.LOSFast))
	fmt.Printf("Avg LOS overflow       : %.1f min\n", mean(m.LOSOverflow))
	fmt.Printf("Avg LOS main ED        : %.1f min\n", mean(m.LOSMain))
	fmt.Printf("Avg boarding time      : %.1f min\n", mean(m.BoardingTimes))
	for _, pool := range []string{PoolTriage, PoolFastTrack, PoolMainProviders, PoolMainBeds, PoolLab} {
		if _, ok := m.usage[pool]; ok {
			fmt.Printf("Utilization %-14s: %.1f%% (avg queue %.2f)\n",
				pool, 100*m.MeanUtilization(pool), m.MeanQueueLength(pool))
		}
	}
	fmt.Printf("Sim ended at           : %.1f min\n", m.SimEndedTime)
}
