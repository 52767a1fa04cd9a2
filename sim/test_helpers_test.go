package sim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestSimulator builds a simulator on a day-long horizon with no warm-up,
// applying an optional config mutation before construction.
func newTestSimulator(t *testing.T, mutate func(*RunConfiguration)) *Simulator {
	t.Helper()
	cfg := DefaultRunConfiguration()
	cfg.HorizonMinutes = 24 * 60
	cfg.WarmupMinutes = 0
	if mutate != nil {
		mutate(&cfg)
	}
	s, err := NewSimulator(cfg, nil)
	require.NoError(t, err)
	return s
}

// newTestFlow builds a routed fast-track patient flow for pool-level tests.
func newTestFlow(id int64) *patientFlow {
	p := &Patient{ID: id, Acuity: AcuityLow}
	p.SetStream(StreamFastTrack)
	return &patientFlow{patient: p}
}
