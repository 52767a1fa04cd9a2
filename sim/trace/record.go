// Package trace provides the passive record types the simulation core emits.
// This package has no dependencies on sim/ -- it stores pure data types; the
// reporting layer that consumes them lives outside this module.
package trace

// StageRecord captures a single patient stage transition.
type StageRecord struct {
	PatientID int64
	Stream    string
	Stage     string
	Time      float64 // simulated minutes
}

// UtilizationSample captures the state of one resource pool at a sampling instant.
type UtilizationSample struct {
	Pool        string
	Active      int
	QueueLength int
	Time        float64 // simulated minutes
}
