package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/gravsim/audio"
	"github.com/lixenwraith/gravsim/body"
	"github.com/lixenwraith/gravsim/config"
	"github.com/lixenwraith/gravsim/engine"
	"github.com/lixenwraith/gravsim/input"
	"github.com/lixenwraith/gravsim/render"
	"github.com/lixenwraith/gravsim/scene"
	"github.com/lixenwraith/gravsim/status"
	"github.com/lixenwraith/gravsim/vmath"
)

// Status line messages fade after this long
const messageTTL = 3 * time.Second

type runFlags struct {
	steps   int
	tickHz  float64
	miss    string
	noAudio bool
	keymap  string
	out     string
	seed    int64
}

func newRunCmd(rf *rootFlags) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the interactive simulator",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rf.loadConfig(cmd)
			if err != nil {
				return err
			}
			fl := cmd.Flags()
			if fl.Changed("steps") {
				cfg.Sim.TrajectorySteps = config.ClampSteps(f.steps)
			}
			if fl.Changed("tick-hz") {
				cfg.Sim.TickHz = f.tickHz
			}
			if fl.Changed("miss") {
				cfg.Sim.MissPolicy = f.miss
			}
			if f.noAudio {
				cfg.Audio.Enabled = false
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logFile, err := setupLogging(cfg.Logging)
			if err != nil {
				return err
			}
			if logFile != nil {
				defer logFile.Close()
			}

			sc, path, err := rf.loadScene()
			if err != nil {
				return err
			}
			if f.out != "" {
				path = f.out
			}
			return runInteractive(cfg, sc, path, f)
		},
	}

	fl := cmd.Flags()
	fl.IntVar(&f.steps, "steps", 0, "Trajectory prediction steps")
	fl.Float64Var(&f.tickHz, "tick-hz", 0, "Simulation tick rate")
	fl.StringVar(&f.miss, "miss", "", "Selection on empty click: keep or clear")
	fl.BoolVar(&f.noAudio, "no-audio", false, "Disable sound cues")
	fl.StringVar(&f.keymap, "keymap", "", "TOML keymap overriding default bindings")
	fl.StringVar(&f.out, "out", "", "Save path for the s key (default: loaded scene file or "+scene.DefaultSavePath+")")
	fl.Int64Var(&f.seed, "seed", time.Now().UnixNano(), "Seed for spawn colors")
	return cmd
}

// session holds everything the interactive loop touches
type session struct {
	screen   tcell.Screen
	sim      *engine.Simulation
	renderer *render.Renderer
	machine  *input.Machine
	disp     *input.Dispatcher
	player   *audio.Player
	metrics  *status.Registry
	clock    engine.TimeProvider

	message   string
	messageAt time.Time
}

func runInteractive(cfg *config.Config, sc *scene.Scene, savePath string, f *runFlags) error {
	log := slog.Default().With("component", "main")

	keys := input.DefaultKeyTable()
	if f.keymap != "" {
		kt, err := input.LoadKeyConfigFile(f.keymap)
		if err != nil {
			return err
		}
		keys = kt
	}

	reg := body.NewRegistry()
	if err := sc.Apply(reg); err != nil {
		return err
	}

	settings := cfg.EngineSettings()
	if sc.G > 0 {
		settings.G = sc.G
	}

	clock := engine.NewMonotonicTimeProvider()
	metrics := status.NewRegistry()
	sim := engine.NewSimulation(reg, settings, clock, metrics)
	cam := render.NewCamera(sc.CameraPosition(), vmath.Zero)

	var player *audio.Player
	var cues input.CuePlayer
	if cfg.Audio.Enabled {
		player = audio.NewPlayer(0)
		if err := player.Initialize(); err != nil {
			log.Warn("audio unavailable, continuing without sound", "error", err)
			player = nil
		} else {
			cues = player
			defer player.Close()
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}

	// Restore the terminal even if the loop panics
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mGRAVSIM CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()

	screen.EnableMouse(tcell.MouseButtonEvents)
	screen.HideCursor()
	screen.Clear()

	s := &session{
		screen:   screen,
		sim:      sim,
		renderer: render.NewRenderer(cam),
		machine:  input.NewMachineWithKeys(keys),
		disp:     input.NewDispatcher(sim, cam, cues, scene.NewStore(sc, savePath), body.NewPalette(f.seed)),
		player:   player,
		metrics:  metrics,
		clock:    clock,
	}
	log.Info("session started", "bodies", reg.Len(), "tick_hz", settings.TickHz, "steps", settings.PredictSteps)
	return s.loop(cfg.Display.FPS)
}

func (s *session) loop(fps int) error {
	events := make(chan tcell.Event, 256)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.screen.Fini()
				fmt.Fprintf(os.Stderr, "\r\n\x1b[31mEVENT POLLER CRASHED: %v\x1b[0m\r\n", r)
				fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
				os.Exit(1)
			}
		}()
		for {
			ev := s.screen.PollEvent()
			// nil after Fini
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	fpsGauge := s.metrics.Gauges.Get(status.KeyFPS)
	last := s.clock.Now()

	for {
		select {
		case ev := <-events:
			in := s.machine.Process(ev)
			if in == nil {
				continue
			}
			if in.Type == input.IntentResize {
				s.screen.Sync()
				continue
			}
			w, h := s.screen.Size()
			res := s.disp.Dispatch(in, w, h)
			if res.Quit {
				slog.Info("session ended", "component", "main", "sim_time", s.sim.SimTime())
				return nil
			}
			if res.Message != "" {
				s.message = res.Message
				s.messageAt = s.clock.Now()
			}

		case <-ticker.C:
			now := s.clock.Now()
			elapsed := now.Sub(last)
			last = now
			if elapsed > 0 {
				fpsGauge.Set(float64(time.Second) / float64(elapsed))
			}

			fr := s.sim.Frame(elapsed)
			s.renderer.Draw(s.screen, s.view(fr, now))
		}
	}
}

func (s *session) view(fr engine.FrameResult, now time.Time) render.View {
	if s.message != "" && now.Sub(s.messageAt) > messageTTL {
		s.message = ""
	}
	selected, _ := s.sim.Registry.Selected()
	settings := s.sim.Settings()
	return render.View{
		Bodies:           s.sim.Registry.Bodies(),
		Selected:         selected,
		Frame:            fr,
		State:            s.sim.Run.State(),
		SimTime:          s.sim.SimTime(),
		Steps:            settings.PredictSteps,
		Muted:            s.player == nil || s.player.Muted(),
		DrawTrajectories: settings.DrawTrajectories,
		DrawVelocities:   settings.DrawVelocities,
		Message:          s.message,
		Metrics:          s.metrics.Lines(),
	}
}
