package task

import (
	"Frustals/domain"
	"errors"
	"fmt"
)

const (
	Row Generation = iota
	Column
	Image
	Stripe
)

var (
	ErrNoMoreTasks       = errors.New("no more tasks")
	ErrAllHandedOut      = errors.New("all tasks handed out")
	ErrUnknownGeneration = errors.New("unknown generation type")
)

// Generation decides how the pixels of a frame are split into tasks
type Generation int

func (g Generation) String() string {
	if g < Row || g > Stripe {
		return fmt.Sprintf("Generation(%d)", int(g))
	}
	return []string{
		"Row", "Column", "Image", "Stripe",
	}[g]
}

// TasksPerFrame is the number of tasks one frame is split into
func (g Generation) TasksPerFrame(width int, height int, stride int) (int, error) {
	switch g {
	case Row:
		return height, nil
	case Column:
		return width, nil
	case Image:
		return 1, nil
	case Stripe:
		if stride <= 0 {
			return 0, fmt.Errorf("stripe stride must be positive, got %d", stride)
		}
		return stride, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownGeneration, int(g))
	}
}

// Task is a set of pixel indices of one frame. The viewport travels with the task so
// that a worker can rebuild the exact domain the coordinator had for that frame.
type Task struct {
	CurrentTask   int
	ID            uint
	FrameNumber   uint
	Viewport      domain.Snapshot
	Indices       []int
	Results       []Result
	WorkerAddress string
}

func NewTask(id uint, frameNumber uint, viewport domain.Snapshot) Task {
	return Task{
		ID:          id,
		FrameNumber: frameNumber,
		Viewport:    viewport,
	}
}

func (t *Task) String() string {
	output := "{Task "
	output += fmt.Sprintf("ID: %d ", t.ID)
	output += fmt.Sprintf("Frame Number: %d ", t.FrameNumber)
	output += fmt.Sprintf("Result Count: %d ", len(t.Results))
	output += fmt.Sprintf("Task Count: %d}", len(t.Indices))
	return output
}

func (t *Task) AddTaskForPixel(index int) {
	t.Indices = append(t.Indices, index)
}

func (t *Task) AddTasksForRow(row int) {
	width := t.Viewport.Width
	for column := 0; column < width; column++ {
		t.AddTaskForPixel(row*width + column)
	}
}

func (t *Task) AddTasksForColumn(column int) {
	width := t.Viewport.Width
	for row := 0; row < t.Viewport.Height; row++ {
		t.AddTaskForPixel(row*width + column)
	}
}

func (t *Task) AddTasksForImage() {
	count := t.Viewport.Width * t.Viewport.Height
	for index := 0; index < count; index++ {
		t.AddTaskForPixel(index)
	}
}

// AddTasksForStripe adds every pixel whose index satisfies (index + phase) mod stride == 0
func (t *Task) AddTasksForStripe(stride int, phase int) {
	count := t.Viewport.Width * t.Viewport.Height
	phase = ((phase % stride) + stride) % stride
	for index := (stride - phase) % stride; index < count; index += stride {
		t.AddTaskForPixel(index)
	}
}

// GetNextTask
// Returns the pixel index to be processed. Make sure to return the result to the AddResult method before calling
// this method again
func (t *Task) GetNextTask() (int, error) {
	if t.CurrentTask >= len(t.Indices) {
		return 0, ErrNoMoreTasks
	}
	return t.Indices[t.CurrentTask], nil
}

// AddResult
// Records the color of the current pixel index and advances to the next one
func (t *Task) AddResult(result Result) {
	t.Results = append(t.Results, result)
	t.CurrentTask++
}

// Generate splits one frame into tasks, numbering them from firstID
func Generate(generation Generation, firstID uint, frameNumber uint, viewport domain.Snapshot, stride int) ([]Task, error) {
	count, err := generation.TasksPerFrame(viewport.Width, viewport.Height, stride)
	if err != nil {
		return nil, err
	}

	tasks := make([]Task, count)
	for i := 0; i < count; i++ {
		tasks[i] = NewTask(firstID+uint(i), frameNumber, viewport)
		switch generation {
		case Row:
			tasks[i].AddTasksForRow(i)
		case Column:
			tasks[i].AddTasksForColumn(i)
		case Image:
			tasks[i].AddTasksForImage()
		case Stripe:
			tasks[i].AddTasksForStripe(stride, i)
		}
	}
	return tasks, nil
}
