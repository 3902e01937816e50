// Package autotile selects a sprite-atlas tile for a tile character given
// its 8-neighborhood, per a configurable bitmask rule set loaded from
// tileset XML. It has no dependency on the map model: callers supply a
// TileFunc closure over whatever grid they're rendering.
package autotile
