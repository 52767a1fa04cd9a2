package sim

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewArrivalSampler_RejectsNonPositiveRate(t *testing.T) {
	for _, rate := range []float64{0, -1, -0.5} {
		_, err := NewArrivalSampler(rate, rand.New(rand.NewSource(1)))
		require.Error(t, err, "rate %v", rate)
		assert.True(t, errors.Is(err, ErrInvalidParameter))
	}
}

func TestNewServiceSampler_RejectsNonPositiveMean(t *testing.T) {
	for _, mean := range []float64{0, -15} {
		_, err := NewServiceSampler(mean, rand.New(rand.NewSource(1)))
		require.Error(t, err, "mean %v", mean)
		assert.True(t, errors.Is(err, ErrInvalidParameter))
	}
}

func TestArrivalSampler_DrawsArePositiveAndDeterministic(t *testing.T) {
	// GIVEN two samplers over identically-seeded generators
	s1, err := NewArrivalSampler(10, rand.New(rand.NewSource(88)))
	require.NoError(t, err)
	s2, err := NewArrivalSampler(10, rand.New(rand.NewSource(88)))
	require.NoError(t, err)

	// WHEN a sequence of gaps is drawn from each
	for i := 0; i < 1000; i++ {
		g1, g2 := s1.Sample(), s2.Sample()

		// THEN draws are positive and the sequences are bit-identical
		assert.Greater(t, g1, 0.0)
		assert.Equal(t, g1, g2, "draw %d diverged", i)
	}
}

func TestArrivalSampler_MeanGapMatchesRate(t *testing.T) {
	// 10 arrivals/hr -> 6 min mean gap
	s, err := NewArrivalSampler(10, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	var sum float64
	const n = 200000
	for i := 0; i < n; i++ {
		sum += s.Sample()
	}
	assert.InDelta(t, 6.0, sum/n, 0.1)
}

func TestServiceSampler_MeanMatchesConfiguredMean(t *testing.T) {
	// The mu derivation compensates the log-normal shape so the sample mean
	// lands on the configured mean.
	s, err := NewServiceSampler(30, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	var sum float64
	const n = 200000
	for i := 0; i < n; i++ {
		v := s.Sample()
		require.GreaterOrEqual(t, v, 0.5)
		sum += v
	}
	assert.InDelta(t, 30.0, sum/n, 0.5)
}

func TestServiceSampler_SupportIsNonNegative(t *testing.T) {
	s, err := NewServiceSampler(0.6, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	for i := 0; i < 10000; i++ {
		v := s.Sample()
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("draw %d out of support: %v", i, v)
		}
	}
}
