package kernel

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// Token is the constraint for states and events of a TransitionTable.
type Token interface {
	comparable
	fmt.Stringer
}

// Edge is a (state, event) pair of a transition table.
type Edge[S, E Token] struct {
	From  S
	Event E
}

// TransitionTable is the legal-edge table of one entity's state machine.
// Every status change of an aggregate goes through Fire so that a single table
// decides what is legal.
type TransitionTable[S, E Token] struct {
	entity string
	edges  map[Edge[S, E]]S
}

// NewTransitionTable builds a table for entity from its edges.
func NewTransitionTable[S, E Token](entity string, edges map[Edge[S, E]]S) TransitionTable[S, E] {
	return TransitionTable[S, E]{entity: entity, edges: edges}
}

// Fire returns the state reached from `from` on event, or an IllegalTransitionError.
func (t TransitionTable[S, E]) Fire(from S, event E) (S, error) {
	to, ok := t.edges[Edge[S, E]{From: from, Event: event}]
	if !ok {
		var zero S
		return zero, errs.NewIllegalTransitionError(t.entity, from.String(), event.String())
	}
	return to, nil
}

// Can reports whether event is legal from `from`.
func (t TransitionTable[S, E]) Can(from S, event E) bool {
	_, ok := t.edges[Edge[S, E]{From: from, Event: event}]
	return ok
}
