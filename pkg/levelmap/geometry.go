package levelmap

// Point is an integer pixel coordinate, in either map space or room space
// depending on context.
type Point struct {
	X, Y int
}

// Rect is an axis-aligned integer pixel rectangle.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether p falls within r (inclusive of the top-left
// corner, exclusive of the bottom-right, as is conventional for pixel
// rectangles).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Intersects reports whether r and other overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.W && other.X < r.X+r.W &&
		r.Y < other.Y+other.H && other.Y < r.Y+r.H
}

// TileSize converts a pixel rectangle to tile-space dimensions (room space /
// 8), per spec.md §3's room-bounds-to-grid-size invariant.
func (r Rect) TileSize() (w, h int) {
	return r.W / 8, r.H / 8
}
