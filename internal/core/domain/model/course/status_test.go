package course_test

import (
	"fmt"
	"testing"

	"freight/internal/core/domain/model/course"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Fire(t *testing.T) {
	statuses := []course.Status{course.Available, course.Full, course.InProgress, course.Completed, course.Cancelled}
	events := []course.Event{course.Fill, course.Reopen, course.Start, course.Complete, course.Cancel}
	legal := map[course.Status]map[course.Event]course.Status{
		course.Available:  {course.Fill: course.Full, course.Start: course.InProgress, course.Cancel: course.Cancelled},
		course.Full:       {course.Reopen: course.Available, course.Start: course.InProgress, course.Cancel: course.Cancelled},
		course.InProgress: {course.Complete: course.Completed},
	}

	for _, from := range statuses {
		for _, event := range events {
			t.Run(fmt.Sprintf("%s_%s", from, event), func(t *testing.T) {
				to, err := from.Fire(event)
				if want, ok := legal[from][event]; ok {
					require.NoError(t, err)
					assert.Equal(t, want, to)
					return
				}
				assert.ErrorIs(t, err, errs.ErrIllegalTransition)
				assert.False(t, course.Transitions().Can(from, event))
			})
		}
	}
}

func TestStatus_Validate(t *testing.T) {
	require.NoError(t, course.Full.Validate())
	assert.ErrorIs(t, course.Unknown.Validate(), errs.ErrValueIsInvalid)
	assert.True(t, course.Full.AcceptsBookings())
	assert.False(t, course.InProgress.AcceptsBookings())
}
