package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/kizilcik/internal/assets"
	"chosenoffset.com/kizilcik/internal/config"
	"chosenoffset.com/kizilcik/internal/core/session"
	"chosenoffset.com/kizilcik/internal/observe"
	"chosenoffset.com/kizilcik/internal/sfx"
	"chosenoffset.com/kizilcik/internal/terminal"
	"chosenoffset.com/kizilcik/internal/timing"
)

func main() {
	configPath := flag.String("config", "game.yaml", "Path to the game rules file")
	observeAddr := flag.String("observe", "", "Serve the spectator feed on this address, e.g. :8080")
	mute := flag.Bool("mute", false, "Start with sound off")
	volume := flag.Float64("volume", 0.5, "Sound volume from 0 to 1")
	logPath := flag.String("log", "kizilcik.log", "Log file; the terminal is busy drawing")
	flag.Parse()

	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logFile.Close()
	logger := log.New(logFile, "", log.LstdFlags)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var sink sfx.Sink = sfx.NopSink{}
	if speakerSink, err := sfx.NewSpeakerSink(*volume); err != nil {
		logger.Printf("Warning: sound disabled: %v", err)
	} else {
		sink = speakerSink
	}
	sound := sfx.NewPlayer(sink, *mute, logger)
	defer sound.Close()

	glyphs := assets.NewGlyphs(cfg.AllNames())
	clock := timing.SystemClock{}
	sched := timing.NewScheduler()
	s := session.New(session.Options{
		Config:    cfg,
		Assets:    glyphs,
		Clock:     clock,
		Scheduler: sched,
		Logger:    logger,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var publish func(session.Snapshot)
	if *observeAddr != "" {
		obs := observe.New(observe.Config{Logger: logger})
		publish = obs.Publish
		go func() {
			if err := obs.Serve(ctx, *observeAddr); err != nil {
				logger.Printf("Observer stopped: %v", err)
			}
		}()
	}

	opts := terminal.Options{
		Session:   s,
		Scheduler: sched,
		Clock:     clock,
		Glyphs:    glyphs,
		Sound:     sound,
		Publish:   publish,
		Logger:    logger,
	}

	difficulty := cfg.Difficulty
	for {
		form := terminal.NewStartForm("Kızılcık", cfg.DifficultyNames(), difficulty)
		chosen, start, err := form.Run(nil)
		if err != nil {
			log.Fatalf("Terminal error: %v", err)
		}
		if !start {
			return
		}
		difficulty = chosen

		res, err := play(opts, difficulty)
		if err != nil {
			log.Fatalf("Terminal error: %v", err)
		}
		if res == terminal.ResultQuit {
			return
		}
	}
}

// play runs one stretch of games on a fresh screen.
func play(opts terminal.Options, difficulty string) (terminal.Result, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return terminal.ResultQuit, fmt.Errorf("failed to open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return terminal.ResultQuit, fmt.Errorf("failed to init terminal: %w", err)
	}
	defer screen.Fini()

	return terminal.NewLoop(screen, opts).Run(difficulty), nil
}
