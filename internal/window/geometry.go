package window

// Rect is an axis-aligned rectangle covering [X, X+Width) x [Y, Y+Height).
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// OverlapArea returns the area of the intersection of a and b. Each edge of
// a is clamped into b's span on that axis, so disjoint rectangles yield 0.
func OverlapArea(a, b Rect) int {
	x1 := clamp(a.X, b.X, b.X+b.Width)
	x2 := clamp(a.X+a.Width, b.X, b.X+b.Width)
	y1 := clamp(a.Y, b.Y, b.Y+b.Height)
	y2 := clamp(a.Y+a.Height, b.Y, b.Y+b.Height)
	return max(0, x2-x1) * max(0, y2-y1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	return min(v, hi)
}

// centeredIn returns the origin that centers a width x height box inside
// the monitor's current mode, flooring odd remainders.
func centeredIn(mon *Monitor, width, height int) (int, int) {
	mode := mon.CurrentMode()
	return mon.X() + floorHalf(mode.Width-width), mon.Y() + floorHalf(mode.Height-height)
}

func floorHalf(v int) int {
	if v < 0 {
		return -((-v + 1) / 2)
	}
	return v / 2
}
