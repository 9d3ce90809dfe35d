package game

import "image/color"

// Screen selects what the Manager shows.
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenPlaying
)

// Palette used by the playfield
var (
	backgroundColor = color.RGBA{255, 240, 245, 255}
	nameColor       = color.RGBA{0, 0, 0, 255}
	heartColor      = color.RGBA{255, 0, 0, 255}
	overlayColor    = color.RGBA{0, 0, 0, 178}

	// Fallback fills for characters without an image
	playerFallback   = color.RGBA{30, 144, 255, 255}
	targetFallback   = color.RGBA{0, 128, 0, 255}
	obstacleFallback = color.RGBA{128, 0, 128, 255}
	bossFallback     = color.RGBA{139, 0, 0, 255}
)

// Text sizes in pixels
const (
	nameSize    = 12
	bubbleSize  = 10
	overlaySize = 40
	hintSize    = 14
)

// floatRise is how far a floating text climbs over its lifetime.
const floatRise = 30
