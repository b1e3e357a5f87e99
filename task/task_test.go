package task

import (
	"Frustals/domain"
	"Frustals/pixel"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var viewport = domain.Snapshot{OriginX: -0.5, Scale: 1.5, Width: 5, Height: 3}

func TestGenerateCoversFrameOnce(t *testing.T) {
	for _, generation := range []Generation{Row, Column, Image, Stripe} {
		tasks, err := Generate(generation, 10, 2, viewport, 4)
		require.NoError(t, err, generation.String())

		var indices []int
		for i, task := range tasks {
			assert.Equal(t, uint(10+i), task.ID)
			assert.Equal(t, uint(2), task.FrameNumber)
			assert.Equal(t, viewport, task.Viewport)
			indices = append(indices, task.Indices...)
		}
		sort.Ints(indices)
		require.Len(t, indices, 15, generation.String())
		for i, index := range indices {
			assert.Equal(t, i, index, generation.String())
		}
	}
}

func TestTasksPerFrame(t *testing.T) {
	count, err := Row.TasksPerFrame(5, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	count, err = Column.TasksPerFrame(5, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
	count, err = Stripe.TasksPerFrame(5, 3, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, count)

	_, err = Stripe.TasksPerFrame(5, 3, 0)
	assert.Error(t, err)
	_, err = Generation(9).TasksPerFrame(5, 3, 1)
	assert.ErrorIs(t, err, ErrUnknownGeneration)
}

func TestRowAndColumn(t *testing.T) {
	task := NewTask(0, 1, viewport)
	task.AddTasksForRow(1)
	assert.Equal(t, []int{5, 6, 7, 8, 9}, task.Indices)

	task = NewTask(0, 1, viewport)
	task.AddTasksForColumn(2)
	assert.Equal(t, []int{2, 7, 12}, task.Indices)

	task = NewTask(0, 1, viewport)
	task.AddTasksForStripe(4, 1)
	assert.Equal(t, []int{3, 7, 11}, task.Indices)
}

func TestProcessing(t *testing.T) {
	task := NewTask(0, 1, viewport)
	task.AddTasksForRow(2)

	for {
		index, err := task.GetNextTask()
		if err != nil {
			assert.ErrorIs(t, err, ErrNoMoreTasks)
			break
		}
		task.AddResult(Result{Index: index, Pixel: pixel.Background})
	}
	require.Len(t, task.Results, 5)
	assert.Equal(t, 10, task.Results[0].Index)
	assert.Equal(t, 14, task.Results[4].Index)
	assert.Equal(t, "{Task ID: 0 Frame Number: 1 Result Count: 5 Task Count: 5}", task.String())
}
