package coordinator

import (
	"Frustals/fractal"
	"Frustals/misc"
	"Frustals/task"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
)

type settings struct {
	logger bslogger.Logger

	Height             int
	Options            fractal.Options
	Preset             string
	RunName            string
	SavePath           string
	ServerAddress      string
	Stride             int
	TaskGeneration     task.Generation
	TransitionSettings []transitionSettings
	ViewerAddress      string
	Width              int
}

func NewSettings(settingsFile string) settings {
	s, err := loadSettings(settingsFile)
	misc.CheckError(err, s.logger, misc.Fatal)
	s.logger.Debug(s.String())
	return s
}

func loadSettings(settingsFile string) (settings, error) {
	s := settings{
		logger: misc.NewLogger("CoordinatorSettings", nil),
	}
	fileBytes, err := misc.ReadFile(settingsFile)
	if err != nil {
		return s, err
	}
	if err = json.Unmarshal(fileBytes, &s); err != nil {
		return s, fmt.Errorf("unable to parse %s: %w", settingsFile, err)
	}
	return s, s.Verify()
}

func (s *settings) String() string {
	output := "\nCoordinator settings\n"
	output += fmt.Sprintf("My Address: %s\n", s.ServerAddress)
	output += fmt.Sprintf("Viewer Address: %s\n", s.ViewerAddress)
	output += fmt.Sprintf("Size: %dx%d\n", s.Width, s.Height)
	output += fmt.Sprintf("Options: %s\n", s.Options.String())
	output += fmt.Sprintf("Task Generation: %s\n", s.TaskGeneration)
	output += fmt.Sprintf("Transitions: %d", len(s.TransitionSettings))
	return output
}

func (s *settings) Verify() error {
	if s.Preset != "" {
		options, err := fractal.Preset(s.Preset)
		if err != nil {
			return err
		}
		s.Options = options
	}
	if err := s.Options.Verify(); err != nil {
		return err
	}
	if s.Width <= 0 {
		s.Width = 800
	}
	if s.Height <= 0 {
		s.Height = 600
	}
	if s.RunName == "" {
		s.RunName = "run_" + time.Now().Format("2006_01_02-03_04_05")
	}
	if s.SavePath == "" {
		s.SavePath, _ = os.Getwd()
	}
	if s.ServerAddress == "" {
		s.ServerAddress = misc.LocalAddressOr("51000")
	}
	if s.TaskGeneration < task.Row || s.TaskGeneration > task.Stripe {
		s.TaskGeneration = task.Row
	}
	if s.Stride <= 0 {
		s.Stride = 8
	}
	if len(s.TransitionSettings) == 0 {
		s.TransitionSettings = []transitionSettings{
			{
				StartScale: 1.5,
				EndScale:   1.5,
			},
		}
	}

	// Verify each of the transition settings objects
	for i := 0; i < len(s.TransitionSettings); i++ {
		if err := s.TransitionSettings[i].Verify(); err != nil {
			return fmt.Errorf("transition %d: %w", i, err)
		}
	}

	return nil
}
