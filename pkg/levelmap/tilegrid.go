package levelmap

// TileGrid is a flat row-major buffer of tiles, `stride` wide, generalizing
// the free functions dungo's tile-carving package used to operate directly
// on []uint32 slices. T is byte for the fg/bg character grids and int32 for
// the object-tile grid.
//
// Sampling outside the grid's bounds returns the caller-supplied sentinel
// rather than panicking, matching spec.md §3's "sampling outside bounds
// returns a default sentinel" invariant.
type TileGrid[T comparable] struct {
	Tiles  []T
	Stride int
}

// NewTileGrid allocates a width*height grid filled with fill.
func NewTileGrid[T comparable](width, height int, fill T) TileGrid[T] {
	tiles := make([]T, width*height)
	for i := range tiles {
		tiles[i] = fill
	}
	return TileGrid[T]{Tiles: tiles, Stride: width}
}

// Height returns the grid's row count, derived from Stride.
func (g TileGrid[T]) Height() int {
	if g.Stride == 0 {
		return 0
	}
	return len(g.Tiles) / g.Stride
}

// Get returns the tile at (x, y), or sentinel if out of bounds.
func (g TileGrid[T]) Get(x, y int, sentinel T) T {
	if x < 0 || y < 0 || x >= g.Stride || y >= g.Height() {
		return sentinel
	}
	return g.Tiles[y*g.Stride+x]
}

// Set writes value at (x, y). It is a no-op if (x, y) is out of bounds.
func (g TileGrid[T]) Set(x, y int, value T) {
	if x < 0 || y < 0 || x >= g.Stride || y >= g.Height() {
		return
	}
	g.Tiles[y*g.Stride+x] = value
}

// Resize returns a new grid of the given dimensions, copying over the
// overlapping region and filling the rest with fill. Matches the resize
// behavior action.RoomMove needs when a room's bounds change size.
func (g TileGrid[T]) Resize(width, height int, fill T) TileGrid[T] {
	out := NewTileGrid(width, height, fill)
	for y := 0; y < height && y < g.Height(); y++ {
		for x := 0; x < width && x < g.Stride; x++ {
			out.Set(x, y, g.Get(x, y, fill))
		}
	}
	return out
}

// CountNeighbors counts the 4- or 8-connected neighbors of (x, y) equal to
// target.
func (g TileGrid[T]) CountNeighbors(x, y int, target T, sentinel T, diagonal bool) int {
	deltas := [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	if diagonal {
		deltas = append(deltas, [2]int{-1, -1}, [2]int{-1, 1}, [2]int{1, -1}, [2]int{1, 1})
	}
	count := 0
	for _, d := range deltas {
		if g.Get(x+d[0], y+d[1], sentinel) == target {
			count++
		}
	}
	return count
}

// Clone returns an independent copy of g.
func (g TileGrid[T]) Clone() TileGrid[T] {
	tiles := make([]T, len(g.Tiles))
	copy(tiles, g.Tiles)
	return TileGrid[T]{Tiles: tiles, Stride: g.Stride}
}
