package sim

import "errors"

// ErrInvalidParameter marks configuration values outside their domain
// (non-positive rates or means, zero capacities, probabilities outside [0,1]).
// It is detected eagerly when a simulator is constructed; a run never
// partially starts. Match with errors.Is.
var ErrInvalidParameter = errors.New("invalid parameter")
