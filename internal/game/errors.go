package game

import "errors"

// Command errors. None of these are fatal: a failed command leaves the world
// untouched and the tick loop carries on.
var (
	ErrUnreachable           = errors.New("destination unreachable")
	ErrCannotMine            = errors.New("unit cannot mine")
	ErrNotCarrying           = errors.New("unit is not carrying resources")
	ErrInvalidTarget         = errors.New("invalid target")
	ErrBusy                  = errors.New("unit is busy")
	ErrInsufficientResources = errors.New("insufficient resources")
	ErrNotActionable         = errors.New("action not available")
	ErrInvalidPlacement      = errors.New("invalid building placement")
	ErrNotFound              = errors.New("entity not found")
)
