package entity

// Bounce advances a horizontally moving box by dx and flips the direction once it
// reaches either side of the field while heading outward. The flip is applied after the
// move, so an entity may sit past the edge for a frame.
func Bounce(r *Rect, dx *float64, width float64) {
	r.X += *dx
	if (r.X <= 0 && *dx < 0) || (r.X+r.W >= width && *dx > 0) {
		*dx = -*dx
	}
}

// Move advances a roamer one frame.
func (r *Roamer) Move(width float64) {
	Bounce(&r.Rect, &r.DX, width)
}

// Move advances the boss one frame.
func (b *Boss) Move(width float64) {
	Bounce(&b.Rect, &b.DX, width)
}

// SetSpeed changes the speed while keeping the current direction.
func (r *Roamer) SetSpeed(speed float64) {
	r.Speed = speed
	if r.DX < 0 {
		r.DX = -speed
	} else {
		r.DX = speed
	}
}

// Clamp limits v to [lo, hi]. When hi < lo, lo wins.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
