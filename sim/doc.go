// Package sim provides the discrete-event simulation core for Emergency
// Department patient flow.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - patient.go: Patient lifecycle (arrived → triaged → treated → exited) and stage state machine
//   - event.go: Event types that drive the simulation (Arrival, resume, utilization sampling)
//   - simulator.go: The event loop, clock, and run construction
//
// # Architecture
//
// The engine is a single-threaded cooperative scheduler: exactly one logical
// flow executes at any simulated instant, all others are suspended awaiting a
// timed delay or a resource grant. Pending wake-ups live in a priority heap
// ordered by (time, insertion sequence), so runs with the same seed and
// configuration replay bit-identically.
//
//   - resource.go: fixed-capacity FIFO-fair pools (triage, providers, beds, lab)
//   - flow.go: the ED flow controller: arrival generation, the once-per-patient
//     routing/overflow decision, and the per-patient continuation state machine
//   - rng.go, sampler.go: partitioned deterministic randomness and the
//     exponential/log-normal processes built on it
//   - metrics.go: end-of-run aggregate honoring the warm-up window
//   - trace/: dependency-free record types and sinks; the reporting layer that
//     consumes them lives outside this module
//
// A Simulator is an explicitly constructed context owning the clock, pools,
// and sink. There are no package-level singletons: independent runs (e.g. a
// scenario sweep driven by a caller) can execute side by side.
package sim
