package action

import "github.com/levelsmith/levelsmith/pkg/levelmap"

// applyTiles overlays data onto target at offset, skipping any cell equal to
// ignore ("don't touch"). Each touched cell is swapped with the target's
// prior value, so on return data itself holds the exact inverse overlay:
// reapplying it restores whatever target held before this call. Returns
// whether any cell actually changed.
func applyTiles[T comparable](offset levelmap.Point, data levelmap.TileGrid[T], target levelmap.TileGrid[T], ignore T) bool {
	dirty := false
	lineStart := offset
	cur := lineStart
	for idx := 0; idx < len(data.Tiles); idx++ {
		tile := data.Tiles[idx]
		if tile != ignore && cur.X >= 0 && cur.Y >= 0 && cur.X < target.Stride && cur.Y < target.Height() {
			ti := cur.Y*target.Stride + cur.X
			if target.Tiles[ti] != tile {
				target.Tiles[ti], data.Tiles[idx] = tile, target.Tiles[ti]
				dirty = true
			}
		}
		if (idx+1)%data.Stride == 0 {
			lineStart.Y++
			cur = lineStart
		} else {
			cur.X++
		}
	}
	return dirty
}
