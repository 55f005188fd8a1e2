package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"chosenoffset.com/framekit/internal/app"
	"chosenoffset.com/framekit/internal/audio"
	"chosenoffset.com/framekit/internal/config"
	"chosenoffset.com/framekit/internal/demo"
	"chosenoffset.com/framekit/internal/hud"
	"chosenoffset.com/framekit/internal/input"
	"chosenoffset.com/framekit/internal/logger"
	"chosenoffset.com/framekit/internal/render"
	ebitenrender "chosenoffset.com/framekit/internal/render/ebiten"
	"chosenoffset.com/framekit/internal/render/term"
	"chosenoffset.com/framekit/internal/sprite"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	backend := flag.String("backend", "", "host backend: ebiten or terminal")
	tps := flag.Float64("tps", 0, "logic ticks per second")
	noReport := flag.Bool("no-report", false, "disable the throughput report")
	logLevel := flag.String("log-level", "", "debug, info, warn or error")
	pickup := flag.String("sound", "data/sounds/pickup.wav", "WAV clip played on pickup")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
		cfg = loaded
	}
	if *backend != "" {
		cfg.Backend = *backend
	}
	if *tps > 0 {
		cfg.Loop.TickRate = *tps
	}
	if *noReport {
		cfg.Loop.Report = false
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	logOut, closeLog := logOutput(cfg)
	defer closeLog()
	logger.Init(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format, Output: logOut})
	log := logger.L()

	app.CheckArguments(flag.Args(), log)

	store := input.NewStore()
	chain := render.NewSwapChain(render.SwapChainOptions{
		Width:          cfg.Window.Width,
		Height:         cfg.Window.Height,
		Buffers:        cfg.Loop.Buffers,
		VSync:          cfg.Window.VSync,
		PresentTimeout: cfg.Loop.PresentTimeout,
	})

	host, loader, err := newHost(cfg, store, chain, log)
	if err != nil {
		log.Error("failed to create host", "backend", cfg.Backend, "err", err)
		os.Exit(1)
	}

	var atlas *sprite.Atlas
	if cfg.Assets.Atlas != "" {
		atlas, err = sprite.LoadAtlas(cfg.Assets.Atlas, loader)
		if err != nil {
			log.Warn("atlas not loaded, using placeholders", "err", err)
			atlas = nil
		}
	}

	var clip *audio.Clip
	if err := audio.Init(cfg.Audio.SampleRate, cfg.Audio.Buffer); err != nil {
		log.Warn("audio disabled", "err", err)
	} else {
		clip = audio.Load(*pickup, log)
	}

	game, err := demo.New(atlas, clip, cfg.Window.Width, cfg.Window.Height, log)
	if err != nil {
		log.Error("failed to build demo", "err", err)
		os.Exit(1)
	}
	game.Attach(store)

	a, err := app.New(app.Options{
		Config: cfg,
		Store:  store,
		Chain:  chain,
		Host:   host,
		HUD:    hud.New(nil, store),
		Logger: log,
		Exit: func(status int) {
			closeLog()
			os.Exit(status)
		},
	}, game)
	if err != nil {
		log.Error("failed to create application", "err", err)
		os.Exit(1)
	}
	a.Run()
}

func newHost(cfg *config.Config, store *input.Store, chain *render.SwapChain, log *slog.Logger) (render.Host, render.ResourceLoader, error) {
	switch cfg.Backend {
	case config.BackendTerminal:
		h, err := term.New(term.Options{
			KeyHold:     cfg.Input.KeyHold,
			DoubleClick: cfg.Input.DoubleClick,
			Logger:      log,
		}, store, chain)
		return h, render.FileLoader{}, err
	default:
		loader := ebitenrender.NewResourceLoader()
		h := ebitenrender.New(ebitenrender.Options{
			Title:       cfg.Window.Title,
			Icon:        cfg.Window.Icon,
			Resizable:   cfg.Window.Resizable,
			VSync:       cfg.Window.VSync,
			DoubleClick: cfg.Input.DoubleClick,
			Loader:      loader,
			Logger:      log,
		}, store, chain)
		return h, loader, nil
	}
}

// logOutput picks the log destination. The terminal backend owns the screen,
// so it logs to a file (or nowhere) instead of stdout.
func logOutput(cfg *config.Config) (io.Writer, func()) {
	if cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
		} else {
			return f, func() { f.Close() }
		}
	}
	if cfg.Backend == config.BackendTerminal {
		return io.Discard, func() {}
	}
	return os.Stdout, func() {}
}
