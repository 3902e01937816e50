package selection

import (
	"github.com/levelsmith/levelsmith/pkg/action"
	"github.com/levelsmith/levelsmith/pkg/levelmap"
)

// Nudge moves every entity, node, decal, and float in sel by delta (room
// space pixels), returning the RoomActions that perform the move.
//
// refPoints, if non-nil, gives the position each selected item started a
// drag gesture from; delta is then interpreted as the gesture's total
// displacement so far, so repeated calls during one drag don't accumulate
// drift. If refPoints is nil, delta is applied relative to each item's
// current live position, the right behavior for a single discrete nudge
// (e.g. one arrow-key press).
func Nudge(room *levelmap.Room, sel Set, refPoints map[AppSelection]levelmap.Point, delta levelmap.Point) []action.RoomAction {
	entityUpdates := map[int32]*levelmap.Entity{}
	triggerUpdates := map[int32]*levelmap.Entity{}
	var out []action.RoomAction

	basePoint := func(s AppSelection, fallback levelmap.Point) levelmap.Point {
		if refPoints != nil {
			if p, ok := refPoints[s]; ok {
				return p
			}
		}
		return fallback
	}

	for s := range sel {
		switch t := s.(type) {
		case EntityBody:
			updates := entityUpdates
			if t.Trigger {
				updates = triggerUpdates
			}
			e, ok := updates[t.ID]
			if !ok {
				live, found := room.Entity(t.ID, t.Trigger)
				if !found {
					continue
				}
				e = live.Clone()
				updates[t.ID] = e
			}
			base := basePoint(s, levelmap.Point{X: e.X, Y: e.Y})
			e.X, e.Y = base.X+delta.X, base.Y+delta.Y
		case EntityNode:
			updates := entityUpdates
			if t.Trigger {
				updates = triggerUpdates
			}
			e, ok := updates[t.ID]
			if !ok {
				live, found := room.Entity(t.ID, t.Trigger)
				if !found {
					continue
				}
				e = live.Clone()
				updates[t.ID] = e
			}
			if t.Index < 0 || t.Index >= len(e.Nodes) {
				continue
			}
			base := basePoint(s, e.Nodes[t.Index])
			e.Nodes[t.Index] = levelmap.Point{X: base.X + delta.X, Y: base.Y + delta.Y}
		case Decal:
			d, ok := room.Decal(t.ID, t.FG)
			if !ok {
				continue
			}
			d = d.Clone()
			base := basePoint(s, levelmap.Point{X: int(d.X), Y: int(d.Y)})
			np := levelmap.Point{X: base.X + delta.X, Y: base.Y + delta.Y}
			d.X, d.Y = float32(np.X), float32(np.Y)
			out = append(out, action.DecalUpdate{FG: t.FG, Decal: d})
		}
	}
	for _, e := range entityUpdates {
		out = append(out, action.EntityUpdate{Entity: e, Trigger: false})
	}
	for _, e := range triggerUpdates {
		out = append(out, action.EntityUpdate{Entity: e, Trigger: true})
	}

	hasFloat := sel.Contains(FgTileFloat{}) || sel.Contains(BgTileFloat{}) || sel.Contains(ObjTileFloat{})
	if hasFloat {
		out = append(out, NudgeFloatOrigins(room, delta)...)
	}
	return out
}
