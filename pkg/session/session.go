package session

import (
	"fmt"

	"github.com/levelsmith/levelsmith/pkg/action"
	"github.com/levelsmith/levelsmith/pkg/idgen"
	"github.com/levelsmith/levelsmith/pkg/levelmap"
	"github.com/levelsmith/levelsmith/pkg/palette"
	"github.com/levelsmith/levelsmith/pkg/selection"
)

// MapID is the opaque handle by which the session addresses one loaded
// map in its map set, per spec.md §4.9's "map set, keyed by an opaque id".
type MapID = idgen.UUID

// MapSlot is one entry of the session's map set: a loaded map, the
// filesystem path it was opened from (empty for a never-saved map), and
// whether it has unsaved edits.
type MapSlot struct {
	ID    MapID
	Path  string
	Map   *levelmap.Map
	Dirty bool
}

// Tab is one open view, per spec.md §4.9's tagged-variant tab list.
type Tab interface {
	isTab()
}

// MapTab views a loaded map's rooms.
type MapTab struct{ Map MapID }

// MapMetaTab views a loaded map's package-level metadata (stylegrounds,
// filler, defaults).
type MapMetaTab struct{ Map MapID }

// ModuleTab shows the active content-pack module overview.
type ModuleTab struct{}

// ConfigEditorTab edits one pack's on-disk entity/trigger/styleground
// config, named by pack name.
type ConfigEditorTab struct{ Pack string }

// LogTab shows the session's log-message stream.
type LogTab struct{}

func (MapTab) isTab()          {}
func (MapMetaTab) isTab()      {}
func (ModuleTab) isTab()       {}
func (ConfigEditorTab) isTab() {}
func (LogTab) isTab()          {}

// PickerKind names one of the palette's picker categories.
type PickerKind int

const (
	PickerFgTile PickerKind = iota
	PickerBgTile
	PickerEntity
	PickerTrigger
	PickerDecal
)

// PickerSelections holds the session's current palette picks, one per
// picker category; spec.md §4.9's "current palette selections for
// tiles/entities/triggers/decals".
type PickerSelections struct {
	FgTile  string
	BgTile  string
	Entity  string
	Trigger string
	Decal   string
}

func (p *PickerSelections) set(kind PickerKind, name string) {
	switch kind {
	case PickerFgTile:
		p.FgTile = name
	case PickerBgTile:
		p.BgTile = name
	case PickerEntity:
		p.Entity = name
	case PickerTrigger:
		p.Trigger = name
	case PickerDecal:
		p.Decal = name
	}
}

// ToolState is the editor's per-tool ephemeral state: the active room
// selection and the reference snapshots a drag gesture measures its
// delta against, per spec.md §4.7.
type ToolState struct {
	Map       MapID
	Room      int
	Selection selection.Set
	RefPoints map[selection.AppSelection]levelmap.Point
	RefSizes  map[selection.AppSelection]levelmap.Rect
	Side      selection.ResizeSide
	Phase     action.EventPhase
}

// Session is the editor's single stateful aggregate.
type Session struct {
	ids idgen.Generator

	maps      map[MapID]*MapSlot
	pathIndex map[string]MapID
	history   map[MapID]*history

	Palette  *palette.Palette
	PackRoot string

	Tabs        []Tab
	SelectedTab int

	Tool    ToolState
	Pickers PickerSelections

	Prefs     *Preferences
	Clipboard Clipboard

	Log *LogStream
}

// New returns an empty session. log may be nil, in which case a LogStream
// discarding every message is used.
func New(log *LogStream) *Session {
	if log == nil {
		log = NewLogStream(0)
	}
	return &Session{
		maps:      map[MapID]*MapSlot{},
		pathIndex: map[string]MapID{},
		history:   map[MapID]*history{},
		Tabs:      nil,
		Clipboard: NewMemClipboard(),
		Log:       log,
	}
}

// Map returns the slot for id, if open.
func (s *Session) Map(id MapID) (*MapSlot, bool) {
	slot, ok := s.maps[id]
	return slot, ok
}

// MapByPath returns the slot whose Path equals path, if one is open.
func (s *Session) MapByPath(path string) (*MapSlot, bool) {
	id, ok := s.pathIndex[path]
	if !ok {
		return nil, false
	}
	return s.maps[id], true
}

// CanUndo and CanRedo report whether Map has a history entry available in
// the respective direction.
func (s *Session) CanUndo(id MapID) bool {
	h, ok := s.history[id]
	return ok && h.canUndo()
}

func (s *Session) CanRedo(id MapID) bool {
	h, ok := s.history[id]
	return ok && h.canRedo()
}

// addMap registers m as a newly opened map, indexing it by path if one was
// given, and returns its fresh id.
func (s *Session) addMap(path string, m *levelmap.Map) MapID {
	id := s.ids.Next()
	s.maps[id] = &MapSlot{ID: id, Path: path, Map: m}
	if path != "" {
		s.pathIndex[path] = id
	}
	s.history[id] = newHistory()
	return id
}

// removeMap drops a map from the session entirely: its slot, its path
// index entry, and its undo/redo history.
func (s *Session) removeMap(id MapID) {
	if slot, ok := s.maps[id]; ok && slot.Path != "" {
		delete(s.pathIndex, slot.Path)
	}
	delete(s.maps, id)
	delete(s.history, id)
}

// room looks up a room by index within a map, returning a *NotFoundError
// styled the same way pkg/action reports an out-of-range room.
func (s *Session) room(mapID MapID, idx int) (*levelmap.Room, error) {
	slot, ok := s.maps[mapID]
	if !ok {
		return nil, fmt.Errorf("session: no such open map")
	}
	if idx < 0 || idx >= len(slot.Map.Rooms) {
		return nil, fmt.Errorf("session: room index %d out of range", idx)
	}
	return slot.Map.Rooms[idx], nil
}

// entityResizable reports whether the palette marks entityType (an entity
// or a trigger; the picker namespaces overlap so both maps are consulted)
// as resizable, per pkg/selection.EntityResizable's callback shape.
func (s *Session) entityResizable(entityType string) bool {
	if s.Palette == nil {
		return false
	}
	if cfg, ok := s.Palette.Entities[entityType]; ok {
		return cfg.Resizable
	}
	if cfg, ok := s.Palette.Triggers[entityType]; ok {
		return cfg.Resizable
	}
	return false
}

// entityMinSize returns the palette's configured minimum size for
// entityType, defaulting to an 8x8 floor (one tile) when the type is
// unknown or declares no minimum.
func (s *Session) entityMinSize(entityType string) (int, int) {
	if s.Palette != nil {
		if cfg, ok := s.Palette.Entities[entityType]; ok && (cfg.MinWidth > 0 || cfg.MinHeight > 0) {
			return max(cfg.MinWidth, 8), max(cfg.MinHeight, 8)
		}
		if cfg, ok := s.Palette.Triggers[entityType]; ok && (cfg.MinWidth > 0 || cfg.MinHeight > 0) {
			return max(cfg.MinWidth, 8), max(cfg.MinHeight, 8)
		}
	}
	return 8, 8
}

// CanResize reports which edge/corner (if any) pointer grabs within the
// given room selection, per pkg/selection.CanResize, wired with the
// session's active palette for the resizable/min-size callbacks.
func (s *Session) CanResize(mapID MapID, roomIdx int, sel selection.Set, pointer levelmap.Point) (selection.ResizeSide, error) {
	room, err := s.room(mapID, roomIdx)
	if err != nil {
		return selection.ResizeSide{}, err
	}
	return selection.CanResize(room, sel, s.atlas(), s.entityResizable, pointer), nil
}

// PointSelectable hit-tests a single point within a room, per
// pkg/selection.PointSelectable.
func (s *Session) PointSelectable(mapID MapID, roomIdx int, layer selection.Layer, pt levelmap.Point) (selection.AppSelection, bool, error) {
	room, err := s.room(mapID, roomIdx)
	if err != nil {
		return nil, false, err
	}
	sel, ok := selection.PointSelectable(room, layer, pt, s.atlas())
	return sel, ok, nil
}

// RectSelectables hit-tests every selectable intersecting rect within a
// room, per pkg/selection.RectSelectables.
func (s *Session) RectSelectables(mapID MapID, roomIdx int, layer selection.Layer, rect levelmap.Rect) (selection.Set, error) {
	room, err := s.room(mapID, roomIdx)
	if err != nil {
		return nil, err
	}
	return selection.RectSelectables(room, layer, rect, s.atlas()), nil
}

// LoadPacks discovers and loads every content pack under root into a fresh
// Palette, replacing the session's active one. Load warnings (per-file
// parse failures that don't abort the load) are written to the log
// stream rather than returned, per spec.md §7's "session logs and
// continues" propagation policy for loader errors.
func (s *Session) LoadPacks(root string) error {
	sources, err := palette.DiscoverSources(root)
	if err != nil {
		return fmt.Errorf("session: discovering packs: %w", err)
	}
	p, warnings, err := palette.NewLoader().Load(sources)
	if err != nil {
		return fmt.Errorf("session: loading packs: %w", err)
	}
	for _, w := range warnings {
		s.Log.Warn("pack load warning", "detail", w)
	}
	s.Palette = p
	s.PackRoot = root
	return nil
}
