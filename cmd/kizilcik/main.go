package main

import (
	"context"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"chosenoffset.com/kizilcik/internal/assets"
	"chosenoffset.com/kizilcik/internal/config"
	"chosenoffset.com/kizilcik/internal/core/session"
	"chosenoffset.com/kizilcik/internal/game"
	"chosenoffset.com/kizilcik/internal/observe"
	"chosenoffset.com/kizilcik/internal/placeholders"
	ebitenrender "chosenoffset.com/kizilcik/internal/render/ebiten"
	"chosenoffset.com/kizilcik/internal/sfx"
	"chosenoffset.com/kizilcik/internal/timing"
	"chosenoffset.com/kizilcik/internal/ui/menu"
)

func main() {
	configPath := flag.String("config", "game.yaml", "Path to the game rules file")
	assetDir := flag.String("assets", "Karakterler", "Directory holding one PNG per character")
	difficulty := flag.String("difficulty", "", "Difficulty preselected on the menu")
	observeAddr := flag.String("observe", "", "Serve the spectator feed on this address, e.g. :8080")
	mute := flag.Bool("mute", false, "Start with sound off")
	volume := flag.Float64("volume", 0.5, "Sound volume from 0 to 1")
	fill := flag.Bool("placeholders", true, "Draw generated placeholders for characters without an image")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *difficulty != "" {
		if _, ok := cfg.Difficulties[*difficulty]; !ok {
			log.Fatalf("Unknown difficulty %q (have %v)", *difficulty, cfg.DifficultyNames())
		}
		cfg.Difficulty = *difficulty
	}

	screenWidth := int(cfg.Field.Width)
	screenHeight := int(cfg.Field.Height)

	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	loader := ebitenrender.NewResourceLoader()
	engine := ebitenrender.NewEngine()

	registry, err := assets.Load(*assetDir, cfg.AllNames(), loader, log.Default())
	if err != nil {
		log.Printf("Warning: %v", err)
		registry = assets.NewRegistry()
	}
	if *fill {
		if n := placeholders.FillMissing(registry, cfg, loader); n > 0 {
			log.Printf("Using placeholders for %d characters", n)
		}
	}

	var sink sfx.Sink = sfx.NopSink{}
	if ebitenSink, err := sfx.NewEbitenSink(audio.NewContext(int(sfx.SampleRate)), *volume); err != nil {
		log.Printf("Warning: sound disabled: %v", err)
	} else {
		sink = ebitenSink
	}
	sound := sfx.NewPlayer(sink, *mute, log.Default())
	defer sound.Close()

	clock := timing.SystemClock{}
	sched := timing.NewScheduler()
	s := session.New(session.Options{
		Config:    cfg,
		Assets:    registry,
		Clock:     clock,
		Scheduler: sched,
		Logger:    log.Default(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var publish func(session.Snapshot)
	if *observeAddr != "" {
		obs := observe.New(observe.Config{Logger: log.Default()})
		publish = obs.Publish
		go func() {
			if err := obs.Serve(ctx, *observeAddr); err != nil {
				log.Printf("Observer stopped: %v", err)
			}
		}()
	}

	g := game.NewGame(game.Options{
		Session:   s,
		Scheduler: sched,
		Clock:     clock,
		Assets:    registry,
		Renderer:  renderer,
		Input:     inputMgr,
		Sound:     sound,
		Publish:   publish,
		Logger:    log.Default(),
		Width:     screenWidth,
		Height:    screenHeight,
	})

	mainMenu := menu.NewMainMenu("Kızılcık", cfg.DifficultyNames(), cfg.Difficulty, renderer, inputMgr, screenWidth, screenHeight)
	manager := game.NewManager(inputMgr, mainMenu, g, screenWidth, screenHeight)

	// Set up the window
	engine.SetWindowSize(screenWidth, screenHeight)
	engine.SetWindowTitle("Kızılcık")
	engine.SetWindowResizable(false)
	engine.SetTPS(60)

	log.Println("Starting game...")
	if err := engine.RunGame(manager); err != nil {
		log.Fatal(err)
	}
}
