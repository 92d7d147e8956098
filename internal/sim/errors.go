package sim

import "errors"

// Domain errors for run construction. All are fatal: an invalid
// configuration has no meaningful partial result, and nothing in the
// validated step loop can fail.
var (
	// ErrConfiguration indicates invalid grid, material, timing or
	// intrusion parameters detected at construction.
	ErrConfiguration = errors.New("sim: invalid configuration")

	// ErrStability indicates a tunable dt above the explicit-scheme
	// stability bound. Runs that derive dt automatically never hit it.
	ErrStability = errors.New("sim: dt violates stability bound")

	// ErrGeometry indicates a dike placement that covers no grid cell.
	ErrGeometry = errors.New("sim: dike geometry outside domain")
)
