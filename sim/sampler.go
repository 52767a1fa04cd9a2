package sim

import (
	"fmt"
	"math"
	"math/rand"
)

// serviceShapeSigma is the fixed log-normal shape (std dev of ln X) shared by
// every service stage. 0.6 gives a coefficient of variation of about 0.66,
// a typical spread for clinical service times.
const serviceShapeSigma = 0.6

// Samplers are pure functions of their *rand.Rand state: no globals, so two
// runs with the same seed and configuration replay identical draw sequences.

// ArrivalSampler generates exponential inter-arrival gaps in minutes for a
// Poisson arrival process parameterized in arrivals per hour.
type ArrivalSampler struct {
	meanGap float64 // minutes
	rng     *rand.Rand
}

// NewArrivalSampler converts an arrivals-per-hour rate to a per-minute process.
// Fails with ErrInvalidParameter if the rate is not positive.
func NewArrivalSampler(ratePerHour float64, rng *rand.Rand) (*ArrivalSampler, error) {
	if ratePerHour <= 0 {
		return nil, fmt.Errorf("%w: arrival rate must be > 0 per hour, got %v", ErrInvalidParameter, ratePerHour)
	}
	return &ArrivalSampler{meanGap: 60.0 / ratePerHour, rng: rng}, nil
}

// Sample returns the next inter-arrival gap in minutes. Always positive.
func (s *ArrivalSampler) Sample() float64 {
	gap := s.rng.ExpFloat64() * s.meanGap
	if gap < 0.01 {
		return 0.01
	}
	return gap
}

// ServiceSampler generates log-normal service durations in minutes with the
// fixed serviceShapeSigma shape. The mu parameter is derived so that the
// distribution's mean equals the configured mean: mu = ln(mean) - sigma^2/2.
type ServiceSampler struct {
	mu    float64
	sigma float64
	rng   *rand.Rand
}

// NewServiceSampler builds a sampler for one service stage.
// Fails with ErrInvalidParameter if the mean is not positive.
func NewServiceSampler(meanMinutes float64, rng *rand.Rand) (*ServiceSampler, error) {
	if meanMinutes <= 0 {
		return nil, fmt.Errorf("%w: service mean must be > 0 minutes, got %v", ErrInvalidParameter, meanMinutes)
	}
	return &ServiceSampler{
		mu:    math.Log(meanMinutes) - 0.5*serviceShapeSigma*serviceShapeSigma,
		sigma: serviceShapeSigma,
		rng:   rng,
	}, nil
}

// Sample returns one service duration in minutes.
// Log-normal support is already non-negative; the floor only guards the
// degenerate sub-half-minute tail.
func (s *ServiceSampler) Sample() float64 {
	z := s.rng.NormFloat64()
	val := math.Exp(s.mu + s.sigma*z)
	if val < 0.5 {
		return 0.5
	}
	return val
}
