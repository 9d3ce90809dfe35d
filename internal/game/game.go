package game

import (
	"log"

	"chosenoffset.com/kizilcik/internal/assets"
	"chosenoffset.com/kizilcik/internal/core/session"
	"chosenoffset.com/kizilcik/internal/render"
	"chosenoffset.com/kizilcik/internal/sfx"
	"chosenoffset.com/kizilcik/internal/timing"
	"chosenoffset.com/kizilcik/internal/ui/hud"
	"chosenoffset.com/kizilcik/internal/ui/label"
)

// Options wire a Game to its session and the window backend.
type Options struct {
	Session   *session.Session
	Scheduler *timing.Scheduler
	Clock     timing.Clock
	Assets    *assets.Registry
	Renderer  render.Renderer
	Input     render.InputManager
	Sound     *sfx.Player

	// Publish receives a copy of every frame, for the spectator feed.
	Publish func(session.Snapshot)
	Logger  *log.Logger
	Width   int
	Height  int
}

// Game is the playing screen: it turns window input into session input, drives the
// level clock and draws the latest snapshot.
type Game struct {
	ScreenWidth  int
	ScreenHeight int

	Session   *session.Session
	Scheduler *timing.Scheduler
	Clock     timing.Clock
	Assets    *assets.Registry
	Renderer  render.Renderer
	InputMgr  render.InputManager
	GameHUD   *hud.HUD
	Sound     *sfx.Player
	Publish   func(session.Snapshot)
	logger    *log.Logger

	last       session.Snapshot
	FrameCount int
}

// NewGame creates the playing screen. Session events are routed to the sound player.
func NewGame(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	clock := opts.Clock
	if clock == nil {
		clock = timing.SystemClock{}
	}
	g := &Game{
		ScreenWidth:  opts.Width,
		ScreenHeight: opts.Height,
		Session:      opts.Session,
		Scheduler:    opts.Scheduler,
		Clock:        clock,
		Assets:       opts.Assets,
		Renderer:     opts.Renderer,
		InputMgr:     opts.Input,
		GameHUD:      hud.New(opts.Renderer, opts.Width, opts.Height),
		Sound:        opts.Sound,
		Publish:      opts.Publish,
		logger:       logger,
	}
	if g.Assets == nil {
		g.Assets = assets.NewRegistry()
	}
	if g.Sound != nil {
		g.Session.OnEvent = g.Sound.OnEvent
	}
	g.refresh()
	return g
}

// Start begins a new game, replacing any game in progress.
func (g *Game) Start(difficulty string) {
	g.Session.Start(difficulty)
	g.refresh()
}

// Stop ends the running game as lost.
func (g *Game) Stop() {
	g.Session.Stop()
	g.refresh()
}

// Active reports whether a level or boss stage is being played.
func (g *Game) Active() bool {
	return g.Session.Phase().Active()
}

// Difficulty returns the tier of the current or last game.
func (g *Game) Difficulty() string {
	return g.Session.Difficulty()
}

// Snapshot returns the frame drawn last.
func (g *Game) Snapshot() session.Snapshot {
	return g.last
}

// Update handles one tick: buttons, the level clock, then one simulation step.
func (g *Game) Update() error {
	g.FrameCount++

	if g.InputMgr.IsKeyJustPressed(render.KeyM) && g.Sound != nil {
		g.Sound.ToggleMute()
	}

	if g.InputMgr.IsMouseButtonJustPressed(render.MouseButtonLeft) {
		x, y := g.InputMgr.GetCursorPosition()
		if g.GameHUD.ButtonHit(x, y) {
			g.toggle()
		}
	}

	// Enter restarts once a game is over
	if g.InputMgr.IsKeyJustPressed(render.KeyEnter) && !g.Active() {
		g.Session.Start("")
	}

	in := g.readInput()
	g.Scheduler.Run(g.Clock.Now())
	g.Session.Step(&in)

	g.refresh()
	return nil
}

// toggle is the Start/Stop button.
func (g *Game) toggle() {
	if g.Active() {
		g.logger.Printf("%s pressed", hud.LabelStop)
		g.Session.Stop()
		return
	}
	g.logger.Printf("%s pressed (%s)", hud.LabelStart, label.Difficulty(g.Session.Difficulty()))
	g.Session.Start("")
}

// readInput samples the held direction keys. Fire is edge-triggered.
func (g *Game) readInput() session.Input {
	in := g.InputMgr
	return session.Input{
		Up:    in.IsKeyPressed(render.KeyUp) || in.IsKeyPressed(render.KeyW),
		Down:  in.IsKeyPressed(render.KeyDown) || in.IsKeyPressed(render.KeyS),
		Left:  in.IsKeyPressed(render.KeyLeft) || in.IsKeyPressed(render.KeyA),
		Right: in.IsKeyPressed(render.KeyRight) || in.IsKeyPressed(render.KeyD),
		Fire:  in.IsKeyJustPressed(render.KeySpace),
	}
}

func (g *Game) refresh() {
	g.last = g.Session.Snapshot()
	if g.Publish != nil {
		g.Publish(g.last)
	}
}

// Layout returns the game's logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ScreenWidth, g.ScreenHeight
}
