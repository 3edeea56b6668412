package physics

import "errors"

var (
	ErrInvalidRadius    = errors.New("physics: radius must be positive and finite")
	ErrInvalidMass      = errors.New("physics: mass must be positive and finite")
	ErrMassMismatch     = errors.New("physics: mass must equal pi*radius^2")
	ErrDegenerateWall   = errors.New("physics: wall endpoints coincide")
	ErrInvalidThickness = errors.New("physics: wall thickness must be positive")
	ErrIndexOutOfRange  = errors.New("physics: body index out of range")
)
