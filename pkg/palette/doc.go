// Package palette loads and aggregates content packs' entity, trigger,
// styleground, and tileset configuration into the single read-only bundle
// a session consults while editing a map. It depends on pkg/render (to
// compile each config's YAML draw-directive tree) and pkg/autotile (to
// load each pack's tileset XML), but never on pkg/levelmap: the palette
// describes content, not a particular map.
package palette
