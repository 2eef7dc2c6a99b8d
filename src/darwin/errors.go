package darwin

import "errors"

//invalid arguments
var (
	ErrInvalidSpecies   = errors.New("invalid species")
	ErrInvalidDirection = errors.New("invalid direction")
	ErrInvalidProgram   = errors.New("invalid program")
)

//out of range conditions
var (
	ErrOutOfBounds = errors.New("location out of bounds")
	ErrOutOfRange  = errors.New("program counter out of range")
	ErrOccupied    = errors.New("location occupied")
)
