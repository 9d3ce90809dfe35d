// Package rendertest provides recording fakes of the render interfaces for tests.
package rendertest

import (
	"image"
	"image/color"
	"strings"
	"unicode/utf8"

	"chosenoffset.com/kizilcik/internal/render"
)

// Text is one recorded DrawText call
type Text struct {
	Text  string
	X, Y  float64
	Color color.Color
	Size  float64
}

// Renderer records text and counts shapes. Text is measured at 0.6 × size per rune.
type Renderer struct {
	Texts  []Text
	Rects  int
	Shapes int
}

func (r *Renderer) NewImage(width, height int) render.Image { return NewImage(width, height) }

func (r *Renderer) FillRect(dst render.Image, x, y, w, h float32, clr color.Color) { r.Rects++ }

func (r *Renderer) StrokeRect(dst render.Image, x, y, w, h, sw float32, clr color.Color) { r.Rects++ }

func (r *Renderer) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) { r.Shapes++ }

func (r *Renderer) FillTriangle(dst render.Image, x1, y1, x2, y2, x3, y3 float32, clr color.Color) {
	r.Shapes++
}

func (r *Renderer) DrawText(dst render.Image, text string, x, y float64, clr color.Color, size float64) {
	r.Texts = append(r.Texts, Text{Text: text, X: x, Y: y, Color: clr, Size: size})
}

func (r *Renderer) MeasureText(text string, size float64) (float64, float64) {
	return float64(utf8.RuneCountInString(text)) * size * 0.6, size
}

// HasText reports whether any drawn text contains sub
func (r *Renderer) HasText(sub string) bool {
	for _, t := range r.Texts {
		if strings.Contains(t.Text, sub) {
			return true
		}
	}
	return false
}

// Reset forgets everything recorded
func (r *Renderer) Reset() {
	r.Texts = nil
	r.Rects = 0
	r.Shapes = 0
}

// Image is an in-memory surface that remembers what was drawn onto it.
type Image struct {
	W, H   int
	Filled color.Color
	Draws  int
}

// NewImage creates a blank fake image
func NewImage(w, h int) *Image { return &Image{W: w, H: h} }

func (i *Image) Bounds() image.Rectangle { return image.Rect(0, 0, i.W, i.H) }
func (i *Image) Size() (int, int)        { return i.W, i.H }

func (i *Image) Fill(clr color.Color) { i.Filled = clr }
func (i *Image) Clear()               { i.Filled = nil }

func (i *Image) DrawImage(src render.Image, opts *render.DrawImageOptions) { i.Draws++ }

// Loader hands out blank images and counts what it was asked for.
type Loader struct {
	Paths     []string
	Converted int
}

func (l *Loader) LoadImage(path string) (render.Image, error) {
	l.Paths = append(l.Paths, path)
	return NewImage(50, 50), nil
}

func (l *Loader) FromImage(img image.Image) render.Image {
	l.Converted++
	b := img.Bounds()
	return NewImage(b.Dx(), b.Dy())
}

// Input is scripted input. Just-pressed keys last until the next Frame call.
type Input struct {
	Held      map[render.Key]bool
	Just      map[render.Key]bool
	MouseX    int
	MouseY    int
	MouseHeld bool
	MouseJust bool
}

// NewInput creates an idle input
func NewInput() *Input {
	return &Input{Held: map[render.Key]bool{}, Just: map[render.Key]bool{}}
}

// Press marks a key as pressed this frame and held.
func (in *Input) Press(k render.Key) {
	in.Held[k] = true
	in.Just[k] = true
}

// Release lets go of a key.
func (in *Input) Release(k render.Key) {
	delete(in.Held, k)
	delete(in.Just, k)
}

// Click presses the left button at (x, y) for one frame.
func (in *Input) Click(x, y int) {
	in.MouseX, in.MouseY = x, y
	in.MouseHeld = true
	in.MouseJust = true
}

// Frame ends the current frame: just-pressed state is cleared and the mouse released.
func (in *Input) Frame() {
	in.Just = map[render.Key]bool{}
	in.MouseHeld = false
	in.MouseJust = false
}

func (in *Input) IsKeyPressed(k render.Key) bool     { return in.Held[k] }
func (in *Input) IsKeyJustPressed(k render.Key) bool { return in.Just[k] }
func (in *Input) GetCursorPosition() (int, int)      { return in.MouseX, in.MouseY }

func (in *Input) IsMouseButtonPressed(b render.MouseButton) bool {
	return b == render.MouseButtonLeft && in.MouseHeld
}

func (in *Input) IsMouseButtonJustPressed(b render.MouseButton) bool {
	return b == render.MouseButtonLeft && in.MouseJust
}

// GeoM records the transform as a scale followed by a translation.
type GeoM struct {
	SX, SY float64
	TX, TY float64
}

// NewGeoM returns an identity transform.
func NewGeoM() render.GeoM { return &GeoM{SX: 1, SY: 1} }

func (g *GeoM) Translate(tx, ty float64) { g.TX += tx; g.TY += ty }
func (g *GeoM) Scale(sx, sy float64)     { g.SX *= sx; g.SY *= sy; g.TX *= sx; g.TY *= sy }
func (g *GeoM) Reset()                   { *g = GeoM{SX: 1, SY: 1} }

func init() {
	if render.NewGeoM == nil {
		render.NewGeoM = NewGeoM
	}
}
