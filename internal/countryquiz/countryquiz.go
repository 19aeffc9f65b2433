// Package countryquiz is the quiz engine: the metric registry, question
// generation, answer evaluation, score tracking and value formatting.
// Nothing here touches I/O; persistence and transport live in other packages.
package countryquiz

import "errors"

var (
	ErrUnknownMetric   = errors.New("unknown metric")
	ErrCatalogTooSmall = errors.New("catalog needs at least two countries")
	ErrInvalidCatalog  = errors.New("invalid catalog")
	ErrInvalidSide     = errors.New("invalid side")
	ErrNoQuestion      = errors.New("no question outstanding")
	ErrStaleQuestion   = errors.New("question is not the current one")
	ErrAlreadyAnswered = errors.New("question already answered")
	ErrCorruptState    = errors.New("game state violates invariants")
)
