package domain

import "time"

type GenerationState string

const (
	GenerationActive     GenerationState = "active"
	GenerationDeprecated GenerationState = "deprecated"
)

// Generation is one API route set. A generation only ever moves from active
// to deprecated.
type Generation struct {
	Name     string
	Prefix   string
	TokenTTL time.Duration
	State    GenerationState
}

func (g Generation) Deprecated() bool {
	return g.State == GenerationDeprecated
}

// Deprecate returns a copy of g in the deprecated state.
func (g Generation) Deprecate() Generation {
	g.State = GenerationDeprecated
	return g
}
