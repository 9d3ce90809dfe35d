package rendertest

import (
	"image/color"
	"testing"

	"chosenoffset.com/kizilcik/internal/render"
)

func TestFakesSatisfyRender(t *testing.T) {
	var r render.Renderer = &Renderer{}
	dst := r.NewImage(100, 40)
	src := r.NewImage(10, 10)

	r.FillRect(dst, 0, 0, 10, 10, color.White)
	r.StrokeRect(dst, 0, 0, 10, 10, 1, color.White)
	r.FillCircle(dst, 5, 5, 3, color.White)
	r.FillTriangle(dst, 0, 0, 5, 0, 0, 5, color.White)
	r.DrawText(dst, "Skor: 3", 2, 2, color.White, 10)

	geo := NewGeoM()
	geo.Translate(4, 2)
	geo.Scale(2, 2)
	dst.DrawImage(src, &render.DrawImageOptions{GeoM: geo})

	fake := r.(*Renderer)
	if fake.Rects != 2 {
		t.Errorf("Expected 2 rects, got %d", fake.Rects)
	}
	if fake.Shapes != 2 {
		t.Errorf("Expected 2 shapes, got %d", fake.Shapes)
	}
	if !fake.HasText("Skor") {
		t.Errorf("Expected the score text to be recorded, got %v", fake.Texts)
	}
	if got := dst.(*Image).Draws; got != 1 {
		t.Errorf("Expected 1 draw onto the destination, got %d", got)
	}
	g := geo.(*GeoM)
	if g.TX != 8 || g.TY != 4 || g.SX != 2 || g.SY != 2 {
		t.Errorf("Expected translate (8,4) scale (2,2), got (%v,%v) (%v,%v)", g.TX, g.TY, g.SX, g.SY)
	}
	w, h := dst.Size()
	if w != 100 || h != 40 {
		t.Errorf("Expected size 100x40, got %dx%d", w, h)
	}
}
