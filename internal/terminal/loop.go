package terminal

import (
	"log"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/kizilcik/internal/assets"
	"chosenoffset.com/kizilcik/internal/core/session"
	"chosenoffset.com/kizilcik/internal/sfx"
	"chosenoffset.com/kizilcik/internal/timing"
)

// Result tells the caller how the play loop ended.
type Result int

const (
	ResultMenu Result = iota // Back to the start form
	ResultQuit
)

const (
	frameInterval = 16 * time.Millisecond // ~60 FPS

	// Terminals report key presses only. A direction counts as held until this long
	// after its last press or auto-repeat.
	holdWindow = 250 * time.Millisecond
)

type direction int

const (
	dirUp direction = iota
	dirDown
	dirLeft
	dirRight
	dirCount
)

func (d direction) opposite() direction {
	switch d {
	case dirUp:
		return dirDown
	case dirDown:
		return dirUp
	case dirLeft:
		return dirRight
	default:
		return dirLeft
	}
}

// Options wire a Loop to its session.
type Options struct {
	Session   *session.Session
	Scheduler *timing.Scheduler
	Clock     timing.Clock
	Glyphs    *assets.Glyphs
	Sound     *sfx.Player
	Publish   func(session.Snapshot)
	Logger    *log.Logger
}

// Loop runs one session on a tcell screen.
type Loop struct {
	screen  tcell.Screen
	session *session.Session
	sched   *timing.Scheduler
	clock   timing.Clock
	glyphs  *assets.Glyphs
	sound   *sfx.Player
	publish func(session.Snapshot)
	logger  *log.Logger

	pressed   [dirCount]time.Time
	fire      bool
	mouseDown bool
	button    buttonArea
	last      session.Snapshot
}

// NewLoop prepares a loop on an initialized screen. Session events go to the sound player.
func NewLoop(screen tcell.Screen, opts Options) *Loop {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	clock := opts.Clock
	if clock == nil {
		clock = timing.SystemClock{}
	}
	glyphs := opts.Glyphs
	if glyphs == nil {
		glyphs = assets.NewGlyphs(opts.Session.Config().AllNames())
	}
	l := &Loop{
		screen:  screen,
		session: opts.Session,
		sched:   opts.Scheduler,
		clock:   clock,
		glyphs:  glyphs,
		sound:   opts.Sound,
		publish: opts.Publish,
		logger:  logger,
	}
	if l.sound != nil {
		l.session.OnEvent = l.sound.OnEvent
	}
	return l
}

// Run starts a game at the given difficulty and plays until the player leaves.
// The game is stopped on return; the caller still owns the screen.
func (l *Loop) Run(difficulty string) Result {
	l.screen.EnableMouse()
	l.screen.HideCursor()
	l.session.Start(difficulty)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go l.screen.ChannelEvents(events, quit)

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				l.session.Stop()
				return ResultQuit
			}
			if res, exit := l.handleEvent(ev); exit {
				l.session.Stop()
				return res
			}

		case <-ticker.C:
			l.frame()
		}
	}
}

// frame runs the level clock, one simulation step, and redraws.
func (l *Loop) frame() {
	now := l.clock.Now()
	in := l.input(now)
	l.sched.Run(now)
	l.session.Step(&in)

	l.last = l.session.Snapshot()
	if l.publish != nil {
		l.publish(l.last)
	}
	l.draw(l.last)
}

// input builds the step input from recent presses and consumes a pending fire.
func (l *Loop) input(now time.Time) session.Input {
	held := func(d direction) bool {
		t := l.pressed[d]
		return !t.IsZero() && now.Sub(t) < holdWindow
	}
	in := session.Input{
		Up:    held(dirUp),
		Down:  held(dirDown),
		Left:  held(dirLeft),
		Right: held(dirRight),
		Fire:  l.fire,
	}
	l.fire = false
	return in
}

func (l *Loop) press(d direction) {
	l.pressed[d] = l.clock.Now()
	l.pressed[d.opposite()] = time.Time{}
}

// handleEvent reacts to one terminal event. It returns true when the loop should end.
func (l *Loop) handleEvent(ev tcell.Event) (Result, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return l.handleKey(ev)

	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !l.mouseDown {
			x, y := ev.Position()
			if l.button.contains(x, y) {
				l.toggle()
			}
		}
		l.mouseDown = down

	case *tcell.EventResize:
		l.screen.Sync()
	}
	return ResultMenu, false
}

func (l *Loop) handleKey(ev *tcell.EventKey) (Result, bool) {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return ResultQuit, true
	case tcell.KeyEscape:
		if l.session.Phase().Active() {
			l.session.Stop()
			return ResultMenu, false
		}
		return ResultMenu, true
	case tcell.KeyEnter:
		if !l.session.Phase().Active() {
			l.session.Start("")
		}
	case tcell.KeyUp:
		l.press(dirUp)
	case tcell.KeyDown:
		l.press(dirDown)
	case tcell.KeyLeft:
		l.press(dirLeft)
	case tcell.KeyRight:
		l.press(dirRight)
	case tcell.KeyRune:
		switch unicode.ToLower(ev.Rune()) {
		case 'w':
			l.press(dirUp)
		case 's':
			l.press(dirDown)
		case 'a':
			l.press(dirLeft)
		case 'd':
			l.press(dirRight)
		case ' ':
			l.fire = true
		case 'm':
			if l.sound != nil {
				l.sound.ToggleMute()
			}
		case 'q':
			return ResultQuit, true
		}
	}
	return ResultMenu, false
}

// toggle is the Start/Stop button.
func (l *Loop) toggle() {
	if l.session.Phase().Active() {
		l.session.Stop()
		return
	}
	l.session.Start("")
}
