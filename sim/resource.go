// Implements the ResourcePool, the unit of mutual exclusion in the simulation.
// Pools are fixed-capacity and FIFO-fair: a freed slot always goes to the
// longest-waiting flow, never to a newer request that raced in after.

package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// ResourcePool models a typed, fixed-capacity resource (triage nurses,
// providers, beds, lab techs). Flows acquire one unit at a time and suspend
// when none is free. Created once at run start; capacity never changes.
type ResourcePool struct {
	name     string
	capacity int
	active   int
	waiters  []*patientFlow // FIFO grant order
}

// NewResourcePool creates a pool. Fails with ErrInvalidParameter if capacity < 1.
func NewResourcePool(name string, capacity int) (*ResourcePool, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: pool %q capacity must be >= 1, got %d", ErrInvalidParameter, name, capacity)
	}
	return &ResourcePool{name: name, capacity: capacity}, nil
}

// Name returns the pool's identity.
func (rp *ResourcePool) Name() string { return rp.name }

// Capacity returns the configured maximum number of concurrent holders.
func (rp *ResourcePool) Capacity() int { return rp.capacity }

// Active returns the current number of holders. Never exceeds Capacity.
func (rp *ResourcePool) Active() int { return rp.active }

// QueueLength returns the number of suspended flows waiting for a unit,
// accurate as of the current event.
func (rp *ResourcePool) QueueLength() int { return len(rp.waiters) }

// Acquire grants one unit to f immediately when a slot is free and returns
// true. Otherwise it enqueues f at the tail of the wait queue and returns
// false; f must suspend and will be resumed when a release grants its slot.
func (rp *ResourcePool) Acquire(sim *Simulator, f *patientFlow) bool {
	if rp.active < rp.capacity {
		rp.active++
		f.held(rp)
		return true
	}
	rp.waiters = append(rp.waiters, f)
	f.waitingOn = rp
	logrus.Debugf("[t %.2f] patient %d waits for %s (queue=%d)", sim.Clock, f.patient.ID, rp.name, len(rp.waiters))
	return false
}

// Release returns f's unit to the pool and, if flows are waiting, grants the
// freed slot to the head of the queue. The grant (active count transfer) is
// atomic within this call, so two releases at the same simulated instant can
// never hand out the same slot twice; the resumed flow only runs when its
// wake-up event executes.
func (rp *ResourcePool) Release(sim *Simulator, f *patientFlow) {
	if !f.drop(rp) {
		panic(fmt.Sprintf("pool %s: release by patient %d which holds no unit", rp.name, f.patient.ID))
	}
	rp.active--
	for len(rp.waiters) > 0 {
		next := rp.waiters[0]
		rp.waiters = rp.waiters[1:]
		if next.cancelled {
			continue
		}
		rp.active++
		next.held(rp)
		next.waitingOn = nil
		sim.Schedule(&resumeEvent{time: sim.Clock, flow: next})
		break
	}
}

// removeWaiter withdraws a cancelled flow from the wait queue without a grant.
func (rp *ResourcePool) removeWaiter(f *patientFlow) {
	for i, w := range rp.waiters {
		if w == f {
			rp.waiters = append(rp.waiters[:i], rp.waiters[i+1:]...)
			return
		}
	}
}
