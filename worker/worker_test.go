package worker

import (
	"Frustals/domain"
	"Frustals/fractal"
	"Frustals/misc"
	"Frustals/render"
	"Frustals/task"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessMatchesRenderer(t *testing.T) {
	options := fractal.Options{Variant: fractal.BurningShip, Precision: 50, Smooth: true}
	r, err := render.New(24, 16, options)
	require.NoError(t, err)
	require.NoError(t, r.Change(-0.4, -0.5, 0.8))
	want := r.Render()

	shader, err := render.NewShader(options)
	require.NoError(t, err)

	tasks, err := task.Generate(task.Column, 0, 1, r.Snapshot(), 0)
	require.NoError(t, err)
	for i := range tasks {
		require.NoError(t, Process(shader, &tasks[i]))
		require.Len(t, tasks[i].Results, 16)
		for _, result := range tasks[i].Results {
			assert.Equal(t, want.At(result.Index), result.Pixel)
		}
	}
}

func TestProcessRejectsBadViewport(t *testing.T) {
	shader, err := render.NewShader(fractal.Options{})
	require.NoError(t, err)
	todo := task.NewTask(0, 1, domain.Snapshot{Width: 4, Height: 4})
	todo.AddTasksForImage()
	assert.ErrorIs(t, Process(shader, &todo), domain.ErrInvalidScale)
}

func TestSettingsVerify(t *testing.T) {
	s := settings{CoordinatorAddress: "10.0.0.1:51000"}
	require.NoError(t, s.Verify())
	assert.Equal(t, "10.0.0.1:51000", s.CoordinatorAddress)

	s = settings{}
	require.NoError(t, s.Verify())
	assert.Contains(t, s.CoordinatorAddress, ":51000")
}

func TestRollCall(t *testing.T) {
	var w Worker
	var present bool
	require.NoError(t, w.RollCall(misc.Nothing{}, &present))
	assert.True(t, present)
}
