package calculator

import "errors"

var (
	ErrInvalidDimension   = errors.New("invalid plate dimension")
	ErrDimensionMismatch  = errors.New("field dimensions do not match")
	ErrAliasedBuffers     = errors.New("source and destination field are the same buffer")
	ErrInvalidLevels      = errors.New("invalid number of heat levels")
	ErrInvalidThreshold   = errors.New("invalid convergence threshold")
	ErrInvalidIterations  = errors.New("invalid iteration count")
	ErrUnknownMode        = errors.New("unknown iteration mode")
	ErrInvalidTemperature = errors.New("invalid temperature")
)
