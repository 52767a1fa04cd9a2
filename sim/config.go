package sim

import "fmt"

// RunConfiguration is the immutable parameter snapshot for one simulation run.
// A new configuration value always starts a fresh run; nothing reads it after
// NewSimulator copies what it needs.
type RunConfiguration struct {
	// Arrival process
	ArrivalRatePerHour float64 `yaml:"arrival_rate_per_hour"`
	ProbFastTrack      float64 `yaml:"p_fast"`  // probability an arrival is low-acuity
	ProbLab            float64 `yaml:"p_lab"`   // probability a Main ED patient needs lab work
	ProbAdmit          float64 `yaml:"p_admit"` // probability a Main ED patient is admitted

	// Service-time means (minutes, log-normal with a fixed shape)
	TriageMean      float64 `yaml:"triage_mean"`
	FastServiceMean float64 `yaml:"fast_service_mean"`
	MainInitialMean float64 `yaml:"main_initial_mean"`
	LabMean         float64 `yaml:"lab_mean"`
	BoardingMean    float64 `yaml:"boarding_mean"`

	// Overflow policy
	OverflowThresholdMinutes float64 `yaml:"overflow_threshold_minutes"`

	// Resource capacities
	TriageNurses       int `yaml:"triage_nurses"`
	FastTrackProviders int `yaml:"fast_track_providers"`
	MainProviders      int `yaml:"main_providers"`
	MainBeds           int `yaml:"main_beds"`
	LabTechs           int `yaml:"lab_techs"`

	// Run control
	HorizonMinutes         float64 `yaml:"horizon_minutes"`
	WarmupMinutes          float64 `yaml:"warmup_minutes"`
	UtilizationSampleEvery float64 `yaml:"utilization_sample_every"` // minutes between pool samples; 0 disables
	Seed                   int64   `yaml:"seed"`
}

// DefaultRunConfiguration returns the baseline 3-week scenario:
// 10 arrivals/hr, 52% ambulatory, a single Fast Track provider backed by
// 5 Main ED providers, 15 beds and 2 lab techs, with a 2-day warm-up.
func DefaultRunConfiguration() RunConfiguration {
	return RunConfiguration{
		ArrivalRatePerHour:       10.0,
		ProbFastTrack:            0.52,
		ProbLab:                  0.4,
		ProbAdmit:                0.3,
		TriageMean:               5.0,
		FastServiceMean:          15.0,
		MainInitialMean:          30.0,
		LabMean:                  30.0,
		BoardingMean:             120.0,
		OverflowThresholdMinutes: 30.0,
		TriageNurses:             2,
		FastTrackProviders:       1,
		MainProviders:            5,
		MainBeds:                 15,
		LabTechs:                 2,
		HorizonMinutes:           21 * 24 * 60,
		WarmupMinutes:            2 * 24 * 60,
		UtilizationSampleEvery:   1.0,
		Seed:                     88,
	}
}

// Validate checks every field against its domain. It returns the first
// violation wrapped around ErrInvalidParameter.
func (c RunConfiguration) Validate() error {
	positives := []struct {
		name  string
		value float64
	}{
		{"arrival_rate_per_hour", c.ArrivalRatePerHour},
		{"triage_mean", c.TriageMean},
		{"fast_service_mean", c.FastServiceMean},
		{"main_initial_mean", c.MainInitialMean},
		{"lab_mean", c.LabMean},
		{"boarding_mean", c.BoardingMean},
		{"horizon_minutes", c.HorizonMinutes},
	}
	for _, p := range positives {
		if p.value <= 0 {
			return fmt.Errorf("%w: %s must be > 0, got %v", ErrInvalidParameter, p.name, p.value)
		}
	}

	probs := []struct {
		name  string
		value float64
	}{
		{"p_fast", c.ProbFastTrack},
		{"p_lab", c.ProbLab},
		{"p_admit", c.ProbAdmit},
	}
	for _, p := range probs {
		if p.value < 0 || p.value > 1 {
			return fmt.Errorf("%w: %s must be in [0,1], got %v", ErrInvalidParameter, p.name, p.value)
		}
	}

	capacities := []struct {
		name  string
		value int
	}{
		{"triage_nurses", c.TriageNurses},
		{"fast_track_providers", c.FastTrackProviders},
		{"main_providers", c.MainProviders},
		{"main_beds", c.MainBeds},
		{"lab_techs", c.LabTechs},
	}
	for _, p := range capacities {
		if p.value < 1 {
			return fmt.Errorf("%w: %s must be >= 1, got %d", ErrInvalidParameter, p.name, p.value)
		}
	}

	if c.OverflowThresholdMinutes < 0 {
		return fmt.Errorf("%w: overflow_threshold_minutes must be >= 0, got %v", ErrInvalidParameter, c.OverflowThresholdMinutes)
	}
	if c.WarmupMinutes < 0 {
		return fmt.Errorf("%w: warmup_minutes must be >= 0, got %v", ErrInvalidParameter, c.WarmupMinutes)
	}
	if c.WarmupMinutes >= c.HorizonMinutes {
		return fmt.Errorf("%w: warmup_minutes (%v) must be below horizon_minutes (%v)", ErrInvalidParameter, c.WarmupMinutes, c.HorizonMinutes)
	}
	if c.UtilizationSampleEvery < 0 {
		return fmt.Errorf("%w: utilization_sample_every must be >= 0, got %v", ErrInvalidParameter, c.UtilizationSampleEvery)
	}
	return nil
}
