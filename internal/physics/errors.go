package physics

import "errors"

// Domain errors for field operations.
var (
	// ErrDuplicateBody indicates an AddBody call with an id already present.
	ErrDuplicateBody = errors.New("physics: duplicate body id")

	// ErrNonPositiveMass indicates a body mass of zero or less.
	ErrNonPositiveMass = errors.New("physics: mass must be positive")
)
