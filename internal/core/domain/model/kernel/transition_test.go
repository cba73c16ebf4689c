package kernel_test

import (
	"testing"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lightState int

const (
	red lightState = iota + 1
	green
)

func (s lightState) String() string { return map[lightState]string{red: "Red", green: "Green"}[s] }

type lightEvent int

const (
	goEvent lightEvent = iota + 1
	stopEvent
)

func (e lightEvent) String() string { return map[lightEvent]string{goEvent: "Go", stopEvent: "Stop"}[e] }

func TestTransitionTable(t *testing.T) {
	table := kernel.NewTransitionTable("light", map[kernel.Edge[lightState, lightEvent]]lightState{
		{From: red, Event: goEvent}:     green,
		{From: green, Event: stopEvent}: red,
	})

	t.Run("legal_edge", func(t *testing.T) {
		to, err := table.Fire(red, goEvent)
		require.NoError(t, err)
		assert.Equal(t, green, to)
		assert.True(t, table.Can(green, stopEvent))
	})

	t.Run("illegal_edge_reports_state_and_event", func(t *testing.T) {
		_, err := table.Fire(red, stopEvent)

		var illegal *errs.IllegalTransitionError
		require.ErrorAs(t, err, &illegal)
		assert.Equal(t, "light", illegal.Entity)
		assert.Equal(t, "Red", illegal.State)
		assert.Equal(t, "Stop", illegal.Event)
		assert.False(t, table.Can(red, stopEvent))
	})
}
