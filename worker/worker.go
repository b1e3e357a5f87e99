package worker

import (
	"Frustals/domain"
	"Frustals/fractal"
	"Frustals/misc"
	"Frustals/render"
	"Frustals/task"
	"fmt"
	"sync"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/BrugadaSyndrome/multirpc"
)

type Worker struct {
	coordinatorAddress string
	done               chan struct{}
	logger             bslogger.Logger
	myAddress          string
	shader             *render.Shader
	stopOnce           sync.Once
	tasksCompleted     int

	ServerClient multirpc.TcpServerClient
}

func NewWorker(settingsFile string) *Worker {
	settings := NewSettings(settingsFile)
	worker := &Worker{
		coordinatorAddress: settings.CoordinatorAddress,
		done:               make(chan struct{}),
		logger:             misc.NewLogger("Worker", nil),
	}

	// Find a free port to use for this worker
	port, err := misc.GetFreePort()
	misc.CheckError(err, worker.logger, misc.Fatal)
	worker.logger.Debugf("Found free port: %d", port)
	worker.myAddress = misc.LocalAddressOr(fmt.Sprint(port))
	worker.logger = misc.NewLogger(fmt.Sprintf("Worker %s", worker.myAddress), nil)
	worker.ServerClient = multirpc.NewTcpServerClient(worker, worker.myAddress, worker.myAddress, settings.CoordinatorAddress, settings.CoordinatorAddress)
	misc.CheckError(worker.ServerClient.Server.Run(), worker.logger, misc.Fatal)

	// Register with the coordinator
	misc.CheckError(worker.ServerClient.Client.Connect(), worker.logger, misc.Fatal)
	var nothing misc.Nothing
	misc.CheckError(worker.ServerClient.Client.Call("Coordinator.RegisterWorker", worker.myAddress, &nothing), worker.logger, misc.Fatal)

	// Get the render options from the coordinator
	var options fractal.Options
	misc.CheckError(worker.ServerClient.Client.Call("Coordinator.GetRenderSettings", nothing, &options), worker.logger, misc.Fatal)
	worker.shader, err = render.NewShader(options)
	misc.CheckError(err, worker.logger, misc.Fatal)

	go worker.tickers()
	go worker.processTasks()

	return worker
}

// Done is closed once the worker has shut down
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

func (w *Worker) tickers() {
	rollCall := time.NewTicker(time.Minute)
	heartBeat := time.NewTicker(30 * time.Second)
	defer rollCall.Stop()
	defer heartBeat.Stop()

	for {
		select {
		case <-w.done:
			return

		case <-rollCall.C:
			w.logger.Debug("Roll call ticker")
			var junk misc.Nothing
			var reply bool
			err := w.ServerClient.Client.Call("Coordinator.RollCall", junk, &reply)
			if err != nil {
				// Cannot communicate with the Coordinator so we should shut down
				w.logger.Warningf("Coordinator missed roll call: %s", err)
				w.stop()
				return
			}

		case <-heartBeat.C:
			w.logger.Debug("Heart beat ticker")
			w.logger.Infof("Tasks [Completed: %d]", w.tasksCompleted)
		}
	}
}

func (w *Worker) processTasks() {
	w.logger.Info("Processing tasks")

	var nothing misc.Nothing
	var startTime = time.Now()

	for {
		var taskTodo task.Task

		err := w.ServerClient.Client.Call("Coordinator.GetTask", w.myAddress, &taskTodo)
		if err != nil {
			// This is an expected error. No more work to do
			if err.Error() == task.ErrAllHandedOut.Error() {
				break
			}
			w.logger.Errorf("Unable to get a task: %s", err)
			break
		}

		if err = Process(w.shader, &taskTodo); err != nil {
			w.logger.Errorf("Unable to process task %d: %s", taskTodo.ID, err)
			break
		}

		err = w.ServerClient.Client.Call("Coordinator.ReturnTask", taskTodo, &nothing)
		if err != nil {
			w.logger.Errorf("Unable to return a task: %s", err)
			break
		}
		w.tasksCompleted++
	}

	w.logger.Info("Done processing tasks")
	w.logger.Debugf("Processed %d tasks in %s", w.tasksCompleted, time.Since(startTime))

	w.logger.Info("Shutting down")
	misc.CheckError(w.ServerClient.Client.Call("Coordinator.DeRegisterWorker", w.myAddress, &nothing), w.logger, misc.Warning)
	w.stop()
}

func (w *Worker) stop() {
	w.stopOnce.Do(func() {
		misc.CheckError(w.ServerClient.Client.Disconnect(), w.logger, misc.Warning)
		misc.CheckError(w.ServerClient.Server.Stop(), w.logger, misc.Warning)
		close(w.done)
	})
}

// Process shades every pixel index of a task in the viewport the task carries
func Process(shader *render.Shader, t *task.Task) error {
	d, err := domain.Restore(t.Viewport)
	if err != nil {
		return err
	}
	for {
		// Process each pixel index given
		index, err := t.GetNextTask()
		if err != nil {
			break
		}
		t.AddResult(task.Result{Index: index, Pixel: shader.At(d, index)})
	}
	return nil
}

func (w *Worker) RollCall(request misc.Nothing, reply *bool) error {
	*reply = true
	return nil
}
