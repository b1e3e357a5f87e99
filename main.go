package main

import (
	"Frustals/coordinator"
	"Frustals/fractal"
	"Frustals/misc"
	"Frustals/viewer"
	"Frustals/worker"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
)

var (
	coordinatorSettings, viewerSettings, workerSettings string
	isCoordinator, isViewer, isWorker, listPresets       bool
	workerCount                                          int
)

func main() {
	parseArguments()
	logger := misc.NewLogger("Main", nil)

	if listPresets {
		fmt.Println(strings.Join(fractal.PresetNames(), "\n"))
		return
	}

	if !isCoordinator && !isWorker && !isViewer {
		flag.Usage()
		os.Exit(2)
	}

	var c *coordinator.Coordinator
	if isCoordinator {
		c = coordinator.NewCoordinator(coordinatorSettings)
	}

	var workers []*worker.Worker
	if isWorker {
		for i := 0; i < workerCount; i++ {
			workers = append(workers, worker.NewWorker(workerSettings))
		}
	}

	if isViewer {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		settings := viewer.Settings{}
		if viewerSettings != "" {
			bytes, err := misc.ReadFile(viewerSettings)
			misc.CheckError(err, logger, misc.Fatal)
			misc.CheckError(json.Unmarshal(bytes, &settings), logger, misc.Fatal)
		}
		server, err := viewer.NewServer(settings)
		misc.CheckError(err, logger, misc.Fatal)
		misc.CheckError(server.Run(ctx), logger, misc.Fatal)
	}

	for _, w := range workers {
		<-w.Done()
	}
	if c != nil {
		<-c.Done()
		logger.Infof("Completed %d frames", c.FramesCompleted())
	}
}

func parseArguments() {
	// Coordinator
	flag.BoolVar(&isCoordinator, "coordinator", false, "Run a coordinator that hands out render tasks")
	flag.StringVar(&coordinatorSettings, "coordinatorSettings", "coordinator.json", "Json file with the coordinator settings")

	// Worker
	flag.BoolVar(&isWorker, "worker", false, "Run workers that render tasks of a coordinator")
	flag.StringVar(&workerSettings, "workerSettings", "", "Json file with the worker settings")
	flag.IntVar(&workerCount, "workerCount", 1, "Number of workers to create")

	// Viewer
	flag.BoolVar(&isViewer, "viewer", false, "Run an interactive viewer steered over a websocket")
	flag.StringVar(&viewerSettings, "viewerSettings", "", "Json file with the viewer settings")

	flag.BoolVar(&listPresets, "presets", false, "List the named presets and exit")
	flag.BoolVar(&misc.Verbose, "verbose", false, "Log debug messages")

	flag.Parse()
}
