// Package render executes a content pack's draw-directive trees against an
// injected Canvas and SpriteAtlas. It depends on pkg/expr to resolve each
// directive's attributes from a per-call environment, and on pkg/autotile for
// the tileset tables. Callers own the occupancy/autotiler wiring and pass it
// in via the Context's Tilesets map and Occupancy callback.
package render
