// Package selection implements the tagged-reference selection set and tile
// float mechanism described in spec.md §4.7: a room's current selection is a
// set of AppSelection values, each naming a tile, a float, an entity (or one
// of its nodes), or a decal. RectsOf answers hit-testing queries in room
// space; Lift/Drop move tile regions into and out of floating TileGrids so
// a dragged selection never repeatedly copies the room's backing grids.
//
// The package is a pure engine: it has no event loop and no knowledge of
// pointers, windows, or keyboard state. Callers (the session layer) drive it
// by calling its functions in response to whatever input source they use,
// and apply the RoomActions/MapActions it returns through pkg/action.
package selection
