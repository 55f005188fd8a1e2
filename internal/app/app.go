// Package app wires the loop driver, input store, swap chain and host into a
// running program and owns its termination.
package app

import (
	"errors"
	"image"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"chosenoffset.com/framekit/internal/config"
	"chosenoffset.com/framekit/internal/hud"
	"chosenoffset.com/framekit/internal/input"
	"chosenoffset.com/framekit/internal/logger"
	"chosenoffset.com/framekit/internal/loop"
	"chosenoffset.com/framekit/internal/render"
)

// Game is the application logic driven by the loop worker.
type Game interface {
	// Update runs once per tick. Returning loop.ErrTerminated (see Quit)
	// ends the program cleanly; any other error ends it as a failure.
	Update(a *App) error
	// Draw renders one frame into dst, which keeps the pixels of the frame
	// drawn into it previously.
	Draw(dst *image.RGBA)
}

// Options assembles an App. Store, Chain and Host are required.
type Options struct {
	Config *config.Config
	Store  *input.Store
	Chain  *render.SwapChain
	Host   render.Host
	HUD    *hud.HUD

	Clock  loop.TimeSource
	Logger *slog.Logger

	// Exit ends the process. Defaults to os.Exit.
	Exit func(status int)
}

// App runs a Game inside a Host.
type App struct {
	cfg    *config.Config
	log    *slog.Logger
	store  *input.Store
	chain  *render.SwapChain
	host   render.Host
	hud    *hud.HUD
	game   Game
	driver *loop.Driver
	exit   func(int)

	status   atomic.Int32
	termOnce sync.Once
}

// New assembles an App around game.
func New(opts Options, game Game) (*App, error) {
	if opts.Store == nil || opts.Chain == nil || opts.Host == nil {
		return nil, errors.New("app: store, swap chain and host are required")
	}
	if game == nil {
		return nil, errors.New("app: game is required")
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := opts.Logger
	if log == nil {
		log = logger.L()
	}
	exit := opts.Exit
	if exit == nil {
		exit = os.Exit
	}

	a := &App{
		cfg:   cfg,
		log:   log,
		store: opts.Store,
		chain: opts.Chain,
		host:  opts.Host,
		hud:   opts.HUD,
		game:  game,
		exit:  exit,
	}
	a.driver = loop.NewDriver(loop.Config{
		TickRate: cfg.Loop.TickRate,
		Report:   cfg.Loop.Report,
		Clock:    opts.Clock,
		Reporter: a.report,
		OnExit:   a.workerExited,
		Logger:   log,
	}, loop.Callbacks{
		Update: a.update,
		Render: a.render,
	})
	return a, nil
}

// Input returns the shared input state.
func (a *App) Input() *input.Store { return a.store }

// Driver returns the loop driver.
func (a *App) Driver() *loop.Driver { return a.driver }

// Config returns the active configuration.
func (a *App) Config() *config.Config { return a.cfg }

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger { return a.log }

// ExitStatus returns the status the program will exit with.
func (a *App) ExitStatus() int { return int(a.status.Load()) }

// Quit records status and returns loop.ErrTerminated. Return its result from
// Game.Update to end the program.
func (a *App) Quit(status int) error {
	a.status.Store(int32(status))
	return loop.ErrTerminated
}

// QuitOnKey ends the program with status when key is held.
func (a *App) QuitOnKey(key input.Key, status int) error {
	if a.store.IsPressed(key) {
		return a.Quit(status)
	}
	return nil
}

// Run starts the loop, blocks in the host until the window closes or the
// game quits, then terminates the process. It returns only if the exit
// function does.
func (a *App) Run() int {
	a.log.Info("starting", "host", a.host.Name(), "tick_rate", a.cfg.Loop.TickRate,
		"buffers", a.chain.Buffers())
	a.driver.Start()

	if err := a.host.Run(); err != nil {
		a.log.Error("host failed", "host", a.host.Name(), "err", err)
		a.status.Store(1)
	}
	a.Terminate(a.ExitStatus())
	return a.ExitStatus()
}

// Terminate stops the loop, closes the host and exits with status. A loop
// that ended with a fault turns status 0 into 1. Only the first call acts.
// It must not be called from Game callbacks; use Quit there.
func (a *App) Terminate(status int) {
	a.termOnce.Do(func() {
		a.status.Store(int32(status))

		a.chain.Close()
		if err := a.driver.Stop(); err != nil {
			var fault *loop.WorkerFault
			if errors.As(err, &fault) && fault.Stack != nil {
				a.log.Debug("worker panic stack", "stack", string(fault.Stack))
			}
			if status == 0 {
				a.status.Store(1)
			}
		}
		a.host.Close()

		if a.ExitStatus() == 0 {
			a.log.Info("[TERMINATED SUCCESSFULLY] Program terminated safely.")
		} else {
			a.log.Error("[TERMINATED UNSUCCESSFULLY] Program failed to terminate safely.",
				"status", a.ExitStatus())
		}
		a.exit(a.ExitStatus())
	})
}

func (a *App) update() error {
	return a.game.Update(a)
}

func (a *App) render() error {
	err := a.chain.Draw(func(dst *image.RGBA) {
		a.game.Draw(dst)
		if a.hud != nil {
			a.hud.SetTotals(a.driver.Totals())
			a.hud.Draw(dst)
		}
	})
	if errors.Is(err, render.ErrClosed) {
		// shutting down
		return loop.ErrTerminated
	}
	return err
}

func (a *App) report(s loop.Stats) {
	a.log.Info(s.String())
	if a.hud != nil {
		a.hud.Report(s)
	}
}

func (a *App) workerExited(err error) {
	if err != nil {
		a.status.Store(1)
	}
	// the loop is gone, so the window has nothing left to show
	a.host.Close()
}
