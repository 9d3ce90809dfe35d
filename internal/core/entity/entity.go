// Package entity holds the plain data records the simulation moves around: the player,
// projectiles, roaming targets and obstacles, the boss and floating text effects.
package entity

import "time"

// Rect is an axis-aligned box with its origin at the top-left corner.
type Rect struct {
	X, Y float64
	W, H float64
}

// Overlaps reports whether two boxes intersect. Touching edges do not count.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W &&
		r.X+r.W > o.X &&
		r.Y < o.Y+o.H &&
		r.Y+r.H > o.Y
}

// CenterX returns the horizontal centre of the box.
func (r Rect) CenterX() float64 {
	return r.X + r.W/2
}

// CenterY returns the vertical centre of the box.
func (r Rect) CenterY() float64 {
	return r.Y + r.H/2
}

// Player is the character driven by input.
type Player struct {
	Rect
	Name      string
	BaseSpeed float64
	Speed     float64 // BaseSpeed scaled for the current level
}

// Projectile flies straight up until it leaves the field or hits something.
type Projectile struct {
	Rect
}

// Kind tells targets and obstacles apart.
type Kind int

const (
	KindTarget Kind = iota
	KindObstacle
)

func (k Kind) String() string {
	switch k {
	case KindTarget:
		return "target"
	case KindObstacle:
		return "obstacle"
	default:
		return "unknown"
	}
}

// Roamer is a character that bounces horizontally across the field.
// Targets and obstacles share this shape.
type Roamer struct {
	Rect
	Kind   Kind
	Name   string
	Speed  float64
	DX     float64 // Horizontal velocity: ±Speed
	Phrase string  // Speech bubble text, targets only
}

// Boss is the multi-hit enemy of a boss stage.
type Boss struct {
	Rect
	Name      string
	Speed     float64
	DX        float64
	HitPoints int
	MaxHP     int
}

// FloatingText is a short-lived label spawned by scoring and hit events.
type FloatingText struct {
	Text     string
	X, Y     float64
	Color    string
	Size     float64
	Created  time.Time
	Duration time.Duration
}

// Expired reports whether the text has been shown for its full duration.
func (f FloatingText) Expired(now time.Time) bool {
	return now.Sub(f.Created) >= f.Duration
}

// Progress returns how far through its lifetime the text is, in [0, 1].
func (f FloatingText) Progress(now time.Time) float64 {
	if f.Duration <= 0 {
		return 1
	}
	p := float64(now.Sub(f.Created)) / float64(f.Duration)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Speeds are the per-level movement speeds in pixels per frame.
type Speeds struct {
	Target   float64
	Obstacle float64
	Player   float64
}

// World owns every entity collection of a session.
type World struct {
	Width, Height float64

	Player      Player
	Projectiles []Projectile
	Targets     []*Roamer
	Obstacles   []*Roamer
	Boss        *Boss
	Texts       []FloatingText

	Speeds Speeds
}

// NewWorld creates an empty field of the given size.
func NewWorld(width, height float64) *World {
	return &World{Width: width, Height: height}
}

// Reset clears every collection and removes the boss.
func (w *World) Reset() {
	w.Projectiles = w.Projectiles[:0]
	w.Targets = w.Targets[:0]
	w.Obstacles = w.Obstacles[:0]
	w.Boss = nil
	w.Texts = w.Texts[:0]
}

// AddText appends a floating text effect.
func (w *World) AddText(t FloatingText) {
	w.Texts = append(w.Texts, t)
}

// PruneTexts drops the texts whose display time is over.
func (w *World) PruneTexts(now time.Time) {
	kept := w.Texts[:0]
	for _, t := range w.Texts {
		if !t.Expired(now) {
			kept = append(kept, t)
		}
	}
	w.Texts = kept
}
