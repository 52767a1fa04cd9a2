package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutePatient_HighAcuityAlwaysMainED(t *testing.T) {
	sim := newTestSimulator(t, nil)

	p := &Patient{ID: 1, Acuity: AcuityHigh}
	sim.routePatient(p)

	assert.Equal(t, StreamMainED, p.Stream)
}

// saturateFastTrack fills the Fast Track provider and queues extra waiters.
func saturateFastTrack(t *testing.T, sim *Simulator, queued int) {
	t.Helper()
	require.True(t, sim.FastTrack.Acquire(sim, newTestFlow(100)))
	for i := 0; i < queued; i++ {
		require.False(t, sim.FastTrack.Acquire(sim, newTestFlow(int64(101+i))))
	}
}

func TestRoutePatient_OverflowWhenFastTrackSaturated(t *testing.T) {
	// GIVEN fast capacity 1, threshold 30 min, fast mean 15 min, and three
	// low-acuity patients already queued at Fast Track
	sim := newTestSimulator(t, func(c *RunConfiguration) {
		c.FastTrackProviders = 1
		c.OverflowThresholdMinutes = 30
		c.FastServiceMean = 15
	})
	saturateFastTrack(t, sim, 3)

	// WHEN the next low-acuity patient is routed
	p := &Patient{ID: 1, Acuity: AcuityLow}
	sim.routePatient(p)

	// THEN it overflows to Main ED capacity with Fast-Track-equivalent care
	assert.Equal(t, StreamOverflow, p.Stream)
	assert.False(t, p.LabRequired)
	assert.False(t, p.Admitted)
}

func TestRoutePatient_NoOverflowWhenMainEDSaturated(t *testing.T) {
	// GIVEN a saturated Fast Track AND every Main ED provider busy
	sim := newTestSimulator(t, func(c *RunConfiguration) {
		c.FastTrackProviders = 1
		c.OverflowThresholdMinutes = 30
		c.FastServiceMean = 15
	})
	saturateFastTrack(t, sim, 3)
	for i := 0; i < sim.MainProviders.Capacity(); i++ {
		require.True(t, sim.MainProviders.Acquire(sim, newTestFlow(int64(200+i))))
	}

	// WHEN the next low-acuity patient is routed
	p := &Patient{ID: 1, Acuity: AcuityLow}
	sim.routePatient(p)

	// THEN overflow never exceeds Main ED capacity; the patient stays fast track
	assert.Equal(t, StreamFastTrack, p.Stream)
}

func TestRoutePatient_EstimatedWaitBoundary(t *testing.T) {
	// queue=2: estimated wait 30 is not above the 30-minute threshold and the
	// queue is below 3x capacity, so no overflow; queue=3 tips both conditions.
	tests := []struct {
		name   string
		queued int
		want   Stream
	}{
		{"two queued stays fast track", 2, StreamFastTrack},
		{"three queued overflows", 3, StreamOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := newTestSimulator(t, func(c *RunConfiguration) {
				c.FastTrackProviders = 1
				c.OverflowThresholdMinutes = 30
				c.FastServiceMean = 15
			})
			saturateFastTrack(t, sim, tt.queued)

			p := &Patient{ID: 1, Acuity: AcuityLow}
			sim.routePatient(p)

			assert.Equal(t, tt.want, p.Stream)
		})
	}
}

func TestRoutePatient_QueueLengthTriggerAloneActivatesOverflow(t *testing.T) {
	// GIVEN a threshold too high for the estimated-wait trigger to fire
	sim := newTestSimulator(t, func(c *RunConfiguration) {
		c.FastTrackProviders = 1
		c.OverflowThresholdMinutes = 1e6
		c.FastServiceMean = 15
	})
	saturateFastTrack(t, sim, 3) // queue >= 3x capacity

	p := &Patient{ID: 1, Acuity: AcuityLow}
	sim.routePatient(p)

	assert.Equal(t, StreamOverflow, p.Stream)
}
