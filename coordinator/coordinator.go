package coordinator

import (
	"Frustals/fractal"
	"Frustals/misc"
	"Frustals/pixel"
	"Frustals/task"
	"Frustals/viewer"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/BrugadaSyndrome/multirpc"
)

// FrameSink receives every completed frame, the buffer must not be kept after Publish returns
type FrameSink interface {
	Publish(frame *pixel.Buffer)
}

type frameTask struct {
	buffer     *pixel.Buffer
	pixelsLeft int
}

type Coordinator struct {
	clients             map[string]*multirpc.TcpClient
	done                chan struct{}
	frames              map[uint]*frameTask
	frameCompletedCount uint
	frameCount          uint
	ingested            map[uint]bool
	logger              bslogger.Logger
	mutex               sync.Mutex
	settings            settings
	sinks               []FrameSink
	taskCount           uint
	taskGeneratedCount  uint
	taskIngestedCount   uint
	tasksHandedOut      map[string]map[uint]task.Task // keep track of all tasks workers have
	tasksDone           chan task.Task
	tasksTodo           chan task.Task
	workerWait          *sync.WaitGroup

	Server *multirpc.TcpServer
}

func NewCoordinator(settingsFile string, sinks ...FrameSink) *Coordinator {
	s := NewSettings(settingsFile)
	if s.ViewerAddress != "" {
		hub := viewer.NewHub()
		sinks = append(sinks, hub)
		go serveViewers(hub, s.ViewerAddress)
	}
	coordinator := newCoordinator(s, sinks...)

	// Create directory to store files for this run
	runPath := filepath.Join(s.SavePath, s.RunName)
	if err := os.MkdirAll(runPath, os.ModePerm); err != nil {
		coordinator.logger.Fatalf("Unable to create folder: %s", err)
	}

	// Copy the settings to the directory so the run can be duplicated in the future
	bytes, err := json.MarshalIndent(s, "", "  ")
	misc.CheckError(err, coordinator.logger, misc.Fatal)
	bytesWritten, err := misc.WriteFile(filepath.Join(runPath, filepath.Base(settingsFile)), bytes)
	if err != nil || bytesWritten == 0 {
		coordinator.logger.Fatalf("Unable to make a backup copy of settingsFile: %s", settingsFile)
	}

	// Create a log file to record the run
	logFile, err := os.Create(filepath.Join(runPath, "coordinator.log"))
	if !misc.CheckError(err, coordinator.logger, misc.Warning) {
		coordinator.logger = misc.NewLogger("Coordinator", logFile)
	}

	// Start up the rpc tcp server to allow workers to communicate with the coordinator
	server := multirpc.NewTcpServer(coordinator, s.ServerAddress, "CoordinatorServer")
	coordinator.Server = &server
	misc.CheckError(coordinator.Server.Run(), coordinator.logger, misc.Fatal)

	go coordinator.tickers()
	coordinator.start()

	return coordinator
}

// serveViewers streams finished frames on ws://address/ws
func serveViewers(hub *viewer.Hub, address string) {
	logger := misc.NewLogger("CoordinatorViewer", nil)
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.Handler())
	srv := &http.Server{
		Addr:              address,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Infof("Publishing frames on ws://%s/ws", address)
	misc.CheckError(srv.ListenAndServe(), logger, misc.Error)
}

func newCoordinator(s settings, sinks ...FrameSink) *Coordinator {
	coordinator := &Coordinator{
		clients:        make(map[string]*multirpc.TcpClient),
		done:           make(chan struct{}),
		frames:         make(map[uint]*frameTask),
		ingested:       make(map[uint]bool),
		logger:         misc.NewLogger("Coordinator", nil),
		settings:       s,
		sinks:          sinks,
		tasksHandedOut: make(map[string]map[uint]task.Task),
		tasksDone:      make(chan task.Task, 1000),
		tasksTodo:      make(chan task.Task, 1000),
		workerWait:     &sync.WaitGroup{},
	}

	for i := 0; i < len(s.TransitionSettings); i++ {
		coordinator.frameCount += uint(s.TransitionSettings[i].FrameCount)
	}

	// Determine the number of tasks that will be generated so the coordinator knows when to shut down
	perFrame, err := s.TaskGeneration.TasksPerFrame(s.Width, s.Height, s.Stride)
	misc.CheckError(err, coordinator.logger, misc.Fatal)
	coordinator.taskCount = uint(perFrame) * coordinator.frameCount

	return coordinator
}

func (c *Coordinator) start() {
	go c.generateTasks()
	go c.ingestTasks()
}

// Done is closed once every frame of the run has been assembled
func (c *Coordinator) Done() <-chan struct{} {
	return c.done
}

func (c *Coordinator) FramesCompleted() uint {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.frameCompletedCount
}

func (c *Coordinator) tickers() {
	rollCall := time.NewTicker(time.Minute)
	heartBeat := time.NewTicker(30 * time.Second)
	defer rollCall.Stop()
	defer heartBeat.Stop()

	for {
		select {
		case <-c.done:
			return

		case <-rollCall.C:
			c.logger.Debug("Roll call ticker")
			var junk misc.Nothing
			for _, v := range c.workers() {
				var reply bool
				err := v.Call("Worker.RollCall", junk, &reply)
				if err != nil {
					// Cannot communicate with the worker
					c.logger.Warningf("Worker %s missed roll call: %s", v.Name(), err)

					// Remove worker from pool
					var nothing misc.Nothing
					misc.CheckError(c.DeRegisterWorker(v.Name(), &nothing), c.logger, misc.Warning)
				}
			}

		case <-heartBeat.C:
			c.logger.Debug("Heart beat ticker")
			c.mutex.Lock()
			c.logger.Infof("Tasks [Generated: %d] [Ingested: %d] | Frames [Completed: %d] [WIP: %d] [Todo: %d]", c.taskGeneratedCount, c.taskIngestedCount, c.frameCompletedCount, len(c.frames), c.frameCount-c.frameCompletedCount)
			c.mutex.Unlock()
		}
	}
}

func (c *Coordinator) workers() []*multirpc.TcpClient {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	workers := make([]*multirpc.TcpClient, 0, len(c.clients))
	for _, v := range c.clients {
		workers = append(workers, v)
	}
	return workers
}

func (c *Coordinator) generateTasks() {
	c.logger.Info("Generating tasks")

	var frameNumber uint = 1
	var startTime = time.Now()

	for transitionStep := 0; transitionStep < len(c.settings.TransitionSettings); transitionStep++ {
		transition := c.settings.TransitionSettings[transitionStep]

		for currentFrame := 0; currentFrame < transition.FrameCount; currentFrame++ {
			viewport := transition.Frame(currentFrame, c.settings.Width, c.settings.Height)

			c.mutex.Lock()
			firstID := c.taskGeneratedCount
			c.mutex.Unlock()

			tasks, err := task.Generate(c.settings.TaskGeneration, firstID, frameNumber, viewport, c.settings.Stride)
			misc.CheckError(err, c.logger, misc.Fatal)
			for _, taskTodo := range tasks {
				select {
				case c.tasksTodo <- taskTodo:
				case <-c.done:
					return
				}
				c.mutex.Lock()
				c.taskGeneratedCount++
				c.mutex.Unlock()
			}

			frameNumber++
		}
	}

	c.logger.Debugf("Done generating %d tasks in %s", c.taskGeneratedCount, time.Since(startTime))
}

func (c *Coordinator) ingestTasks() {
	c.logger.Info("Ingesting tasks")

	var startTime = time.Now()

	for c.taskIngestedCount < c.taskCount {
		taskReceived := <-c.tasksDone

		c.mutex.Lock()
		delete(c.tasksHandedOut[taskReceived.WorkerAddress], taskReceived.ID)
		c.mutex.Unlock()

		// A task handed out again after its worker left may come back twice
		if c.ingested[taskReceived.ID] {
			c.logger.Debugf("Dropping duplicate task %d", taskReceived.ID)
			continue
		}
		c.ingested[taskReceived.ID] = true
		c.ingest(taskReceived)
	}

	c.logger.Debugf("Done ingesting %d tasks in %s", c.taskIngestedCount, time.Since(startTime))
	close(c.done)

	c.logger.Infof("Waiting for %d workers to disconnect", len(c.workers()))
	c.workerWait.Wait()
	if c.Server != nil {
		misc.CheckError(c.Server.Stop(), c.logger, misc.Warning)
	}
}

func (c *Coordinator) ingest(taskReceived task.Task) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.taskIngestedCount++

	frame, ok := c.frames[taskReceived.FrameNumber]
	if !ok {
		// Need to create a buffer to save the incoming pixels
		buffer, err := pixel.NewBuffer(c.settings.Width, c.settings.Height)
		misc.CheckError(err, c.logger, misc.Fatal)
		buffer.Clear(pixel.Void)
		frame = &frameTask{buffer: buffer, pixelsLeft: buffer.Len()}
		c.frames[taskReceived.FrameNumber] = frame
	}

	// Record the pixels in the frame and decrement the amount of pixels left to be recorded
	for _, result := range taskReceived.Results {
		frame.buffer.Set(result.Index, result.Pixel)
	}
	frame.pixelsLeft -= len(taskReceived.Results)

	// All pixels have been recorded so hand the frame out
	if frame.pixelsLeft <= 0 {
		for _, sink := range c.sinks {
			sink.Publish(frame.buffer)
		}
		c.logger.Infof("Completed frame %d", taskReceived.FrameNumber)

		// Remove the frame to conserve memory
		delete(c.frames, taskReceived.FrameNumber)
		c.frameCompletedCount++
	}
}

func (c *Coordinator) RegisterWorker(workerServerAddress string, reply *misc.Nothing) error {
	// Create a client to communicate with this worker
	client := multirpc.NewTcpClient(workerServerAddress, workerServerAddress)
	misc.CheckError(client.Connect(), c.logger, misc.Warning)

	c.mutex.Lock()
	c.clients[workerServerAddress] = &client
	c.mutex.Unlock()
	c.trackWorker(workerServerAddress)

	c.logger.Infof("Worker joined: %s", workerServerAddress)
	c.workerWait.Add(1)

	return nil
}

// trackWorker records the tasks a worker checks out
func (c *Coordinator) trackWorker(workerServerAddress string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if _, ok := c.tasksHandedOut[workerServerAddress]; !ok {
		c.tasksHandedOut[workerServerAddress] = make(map[uint]task.Task)
	}
}

func (c *Coordinator) DeRegisterWorker(workerServerAddress string, reply *misc.Nothing) error {
	c.mutex.Lock()
	client, ok := c.clients[workerServerAddress]
	handedOut := c.tasksHandedOut[workerServerAddress]
	delete(c.tasksHandedOut, workerServerAddress)
	delete(c.clients, workerServerAddress)
	c.mutex.Unlock()

	if !ok {
		return nil
	}

	// Put tasks this worker has not returned yet back into the tasksTodo pool
	c.requeue(handedOut)

	// Disconnect from worker
	misc.CheckError(client.Disconnect(), c.logger, misc.Warning)

	c.logger.Infof("Worker left: %s", workerServerAddress)
	c.workerWait.Done()

	return nil
}

func (c *Coordinator) requeue(tasks map[uint]task.Task) {
	if len(tasks) == 0 {
		return
	}
	c.logger.Infof("Requeueing %d tasks", len(tasks))
	go func() {
		for _, v := range tasks {
			v.WorkerAddress = ""
			select {
			case c.tasksTodo <- v:
			case <-c.done:
				return
			}
		}
	}()
}

func (c *Coordinator) RollCall(nothing misc.Nothing, present *bool) error {
	*present = true
	return nil
}

// GetTask blocks until a task is available. Once the run is complete it fails with
// task.ErrAllHandedOut which tells the worker to leave.
func (c *Coordinator) GetTask(workerAddress string, todo *task.Task) error {
	select {
	case next := <-c.tasksTodo:
		c.mutex.Lock()
		next.WorkerAddress = workerAddress
		if handedOut, ok := c.tasksHandedOut[workerAddress]; ok {
			handedOut[next.ID] = next
		}
		c.mutex.Unlock()
		*todo = next
		return nil
	case <-c.done:
		c.logger.Info("Telling worker that all tasks are handed out")
		return task.ErrAllHandedOut
	}
}

func (c *Coordinator) ReturnTask(done task.Task, nothing *misc.Nothing) error {
	select {
	case c.tasksDone <- done:
	case <-c.done:
		// Late copy of a task that was already ingested
	}
	return nil
}

func (c *Coordinator) GetRenderSettings(nothing misc.Nothing, options *fractal.Options) error {
	*options = c.settings.Options
	return nil
}
