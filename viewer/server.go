package viewer

import (
	"Frustals/fractal"
	"Frustals/misc"
	"Frustals/render"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

var ErrUnknownCommand = errors.New("unknown command")

// Render modes of the render command
const (
	Progressive = "progressive"
	Full        = "full"
	Pooled      = "pooled"
)

// Command is a JSON message sent by a browser. Only the fields of its Type are read.
//
//	{"Type": "resize", "Width": 800, "Height": 600}
//	{"Type": "shift", "X": -12, "Y": 4}
//	{"Type": "zoom", "Factor": 0.8, "X": 400, "Y": 300}
//	{"Type": "change", "X": -0.75, "Y": 0.1, "Scale": 0.01}
//	{"Type": "options", "Options": {"Variant": "Julia", "ConstReal": -0.8}}
//	{"Type": "preset", "Preset": "Julia 1-φ"}
//	{"Type": "render", "Mode": "pooled"}
type Command struct {
	Type    string
	Width   int
	Height  int
	X       float64
	Y       float64
	Factor  float64
	Scale   float64
	Options *fractal.Options
	Preset  string
	Mode    string
}

// Settings of an interactive viewer, zero values are replaced by defaults in Verify
type Settings struct {
	Address string
	Width   int
	Height  int
	Options fractal.Options
	// PreviewFactor is the downsample factor of the preview sent before every frame
	PreviewFactor int
	// Stride is the number of phases of a progressive render
	Stride int
	// Workers is the size of the pool of a pooled render, 0 uses GOMAXPROCS
	Workers int
	// Mode is the render mode used after every command
	Mode string
}

func (s *Settings) Verify() error {
	if s.Address == "" {
		s.Address = "localhost:8080"
	}
	if s.Width <= 0 {
		s.Width = 800
	}
	if s.Height <= 0 {
		s.Height = 600
	}
	if s.PreviewFactor <= 0 {
		s.PreviewFactor = 8
	}
	if s.Stride <= 0 {
		s.Stride = 8
	}
	if s.Mode == "" {
		s.Mode = Progressive
	}
	if s.Mode != Progressive && s.Mode != Full && s.Mode != Pooled {
		return fmt.Errorf("%w: render mode %q", ErrUnknownCommand, s.Mode)
	}
	return s.Options.Verify()
}

// Server owns a renderer that browsers steer with commands. Commands from every connection
// are applied one at a time on the goroutine running Run, between render passes.
type Server struct {
	commands chan Command
	hub      *Hub
	logger   bslogger.Logger
	renderer *render.Renderer
	settings Settings
}

func NewServer(settings Settings) (*Server, error) {
	if err := settings.Verify(); err != nil {
		return nil, err
	}
	renderer, err := render.New(settings.Width, settings.Height, settings.Options)
	if err != nil {
		return nil, err
	}
	return &Server{
		commands: make(chan Command, 64),
		hub:      NewHub(),
		logger:   misc.NewLogger("Viewer", nil),
		renderer: renderer,
		settings: settings,
	}, nil
}

func (s *Server) Hub() *Hub {
	return s.hub
}

// Handler streams frames to the connection and queues the commands it sends
func (s *Server) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := s.hub.accept(w, r)
		if err != nil {
			s.logger.Warningf("Unable to accept websocket: %s", err)
			return
		}
		defer conn.CloseNow()
		s.logger.Infof("Viewer joined: %s", r.RemoteAddr)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()
		go func() {
			defer cancel()
			misc.CheckError(s.hub.stream(ctx, conn), s.logger, misc.Debug)
		}()

		for {
			var command Command
			err = wsjson.Read(ctx, conn, &command)
			if err != nil {
				if websocket.CloseStatus(err) == -1 && ctx.Err() == nil {
					s.logger.Warningf("Viewer %s dropped: %s", r.RemoteAddr, err)
				}
				break
			}
			select {
			case s.commands <- command:
			case <-ctx.Done():
			}
		}
		s.logger.Infof("Viewer left: %s", r.RemoteAddr)
	}
}

// Run serves the websocket endpoint on /ws and applies commands until ctx is done
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.Handler())

	srv := &http.Server{
		Addr:              s.settings.Address,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errs := make(chan error, 1)
	go func() {
		errs <- srv.ListenAndServe()
	}()
	s.logger.Infof("Listening on ws://%s/ws", s.settings.Address)

	s.refine(ctx, s.settings.Mode)
	s.loop(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	misc.CheckError(srv.Shutdown(shutdownCtx), s.logger, misc.Warning)
	if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case command := <-s.commands:
			mode, err := s.Apply(command)
			if misc.CheckError(err, s.logger, misc.Warning) {
				continue
			}
			s.refine(ctx, mode)
		}
	}
}

// Apply changes the renderer according to command and returns the render mode to use next
func (s *Server) Apply(command Command) (string, error) {
	s.logger.Debugf("Applying %s", command.Type)
	mode := s.settings.Mode

	switch command.Type {
	case "resize":
		return mode, s.renderer.Resize(command.Width, command.Height)
	case "shift":
		s.renderer.Shift(command.X, command.Y)
		return mode, nil
	case "zoom":
		return mode, s.renderer.Zoom(command.Factor, command.X, command.Y)
	case "change":
		return mode, s.renderer.Change(command.X, command.Y, command.Scale)
	case "options":
		if command.Options == nil {
			return mode, fmt.Errorf("%w: options command without options", ErrUnknownCommand)
		}
		return mode, s.renderer.SetOptions(*command.Options)
	case "preset":
		options, err := fractal.Preset(command.Preset)
		if err != nil {
			return mode, err
		}
		return mode, s.renderer.SetOptions(options)
	case "render":
		switch command.Mode {
		case "":
			return mode, nil
		case Progressive, Full, Pooled:
			return command.Mode, nil
		}
		return mode, fmt.Errorf("%w: render mode %q", ErrUnknownCommand, command.Mode)
	default:
		return mode, fmt.Errorf("%w: %q", ErrUnknownCommand, command.Type)
	}
}

// refine publishes a preview and then the full frame. A progressive render gives up as soon
// as another command is waiting, the next pass starts over with the new viewport.
func (s *Server) refine(ctx context.Context, mode string) {
	startTime := time.Now()
	preview, err := s.renderer.RenderPreview(s.settings.PreviewFactor)
	if !misc.CheckError(err, s.logger, misc.Error) {
		s.hub.Publish(preview)
	}

	switch mode {
	case Full:
		s.hub.Publish(s.renderer.Render())
	case Pooled:
		frame, err := s.renderer.RenderPooled(s.settings.Workers)
		if misc.CheckError(err, s.logger, misc.Error) {
			return
		}
		s.hub.Publish(frame)
	default:
		for phase := 0; phase < s.settings.Stride; phase++ {
			if ctx.Err() != nil || len(s.commands) > 0 {
				s.logger.Debugf("Abandoned frame after %d of %d phases", phase, s.settings.Stride)
				return
			}
			_, err = s.renderer.RenderPartial(s.settings.Stride, phase)
			if misc.CheckError(err, s.logger, misc.Error) {
				return
			}
		}
		s.hub.Publish(s.renderer.Buffer())
	}
	s.logger.Debugf("Frame done in %s", time.Since(startTime))
}
