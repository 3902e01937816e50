package levelmap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/levelsmith/levelsmith/pkg/binel"
)

// Encode serializes m into the on-disk binary element tree format required
// by spec.md §6: a "Map" root with "levels", "Style" (Foregrounds,
// Backgrounds), and "Filler" children.
func Encode(m *Map) ([]byte, error) {
	root := binel.NewElement("Map")
	for k, v := range m.Metadata {
		root.Set(k, v)
	}

	levels := binel.NewElement("levels")
	for _, r := range m.Rooms {
		levels.AddChild(encodeRoom(r))
	}
	root.AddChild(levels)

	style := binel.NewElement("Style")
	fg := binel.NewElement("Foregrounds")
	for _, s := range m.FgStyles {
		fg.AddChild(encodeStyleground(s))
	}
	bg := binel.NewElement("Backgrounds")
	for _, s := range m.BgStyles {
		bg.AddChild(encodeStyleground(s))
	}
	style.AddChild(fg)
	style.AddChild(bg)
	root.AddChild(style)

	filler := binel.NewElement("Filler")
	for _, r := range m.Filler {
		rectEl := binel.NewElement("rect")
		rectEl.Set("x", binel.Int(int32(r.X)))
		rectEl.Set("y", binel.Int(int32(r.Y)))
		rectEl.Set("w", binel.Int(int32(r.W)))
		rectEl.Set("h", binel.Int(int32(r.H)))
		filler.AddChild(rectEl)
	}
	root.AddChild(filler)

	return binel.Encode(m.Package, root)
}

// Decode parses the on-disk format into a typed Map. Decal ids are not part
// of the wire format (the reference engine never persists them); a fresh
// monotone id is minted for each decal as it is read.
func Decode(data []byte) (*Map, error) {
	pkg, root, err := binel.Decode(data)
	if err != nil {
		return nil, err
	}
	if root.Name != "Map" {
		return nil, &binel.ParseError{Description: fmt.Sprintf("root element named %q, want Map", root.Name)}
	}

	m := NewMap(pkg)
	m.Metadata = attrMap(root)

	if levels, ok := root.FirstChild("levels"); ok {
		for _, lvl := range levels.Children {
			r, err := decodeRoom(lvl)
			if err != nil {
				return nil, err
			}
			m.Rooms = append(m.Rooms, r)
		}
	}

	if style, ok := root.FirstChild("Style"); ok {
		if fg, ok := style.FirstChild("Foregrounds"); ok {
			for _, c := range fg.Children {
				m.FgStyles = append(m.FgStyles, decodeStyleground(c))
			}
		}
		if bg, ok := style.FirstChild("Backgrounds"); ok {
			for _, c := range bg.Children {
				m.BgStyles = append(m.BgStyles, decodeStyleground(c))
			}
		}
	}

	if filler, ok := root.FirstChild("Filler"); ok {
		for _, c := range filler.Children {
			m.Filler = append(m.Filler, Rect{
				X: attrInt(c, "x"), Y: attrInt(c, "y"),
				W: attrInt(c, "w"), H: attrInt(c, "h"),
			})
		}
	}

	assignFreshDecalIDs(m)
	return m, nil
}

func assignFreshDecalIDs(m *Map) {
	for _, r := range m.Rooms {
		for _, d := range r.FgDecals {
			d.ID = m.NextUUID()
		}
		for _, d := range r.BgDecals {
			d.ID = m.NextUUID()
		}
	}
}

func encodeRoom(r *Room) *binel.Element {
	e := binel.NewElement("level")
	e.Set("name", binel.Text(r.Name))
	e.Set("x", binel.Int(int32(r.Bounds.X)))
	e.Set("y", binel.Int(int32(r.Bounds.Y)))
	e.Set("width", binel.Int(int32(r.Bounds.W)))
	e.Set("height", binel.Int(int32(r.Bounds.H)))
	if r.Music != "" {
		e.Set("music", binel.Text(r.Music))
	}
	if r.Ambience != "" {
		e.Set("ambience", binel.Text(r.Ambience))
	}
	if r.CameraOffsetX != 0 {
		e.Set("cameraOffsetX", binel.Int(int32(r.CameraOffsetX)))
	}
	if r.CameraOffsetY != 0 {
		e.Set("cameraOffsetY", binel.Int(int32(r.CameraOffsetY)))
	}
	if r.DashesOverride != -1 {
		e.Set("dashesOverride", binel.Int(int32(r.DashesOverride)))
	}
	if r.Dark {
		e.Set("dark", binel.Bool(true))
	}
	if r.Underwater {
		e.Set("underwater", binel.Bool(true))
	}
	if r.Space {
		e.Set("space", binel.Bool(true))
	}
	if r.Whisper {
		e.Set("whisper", binel.Bool(true))
	}
	if r.DisableDownTransition {
		e.Set("disableDownTransition", binel.Bool(true))
	}
	for k, v := range r.Misc {
		e.Set(k, v)
	}

	solids := binel.NewElement("solids")
	solids.Set("innerText", binel.Text(encodeCharGrid(r.Solids)))
	e.AddChild(solids)

	bgtiles := binel.NewElement("bgtiles")
	bgtiles.Set("innerText", binel.Text(encodeCharGrid(r.Bg)))
	e.AddChild(bgtiles)

	// fgtiles is a structurally required sibling of solids in the on-disk
	// format; this model tracks only the collision (solids) and background
	// char grids, so fgtiles is written empty and ignored on decode.
	e.AddChild(binel.NewElement("fgtiles"))

	objtiles := binel.NewElement("objtiles")
	objtiles.Set("innerText", binel.Text(encodeIntGrid(r.ObjectTiles)))
	e.AddChild(objtiles)

	entities := binel.NewElement("entities")
	for _, ent := range r.Entities {
		entities.AddChild(encodeEntity(ent))
	}
	e.AddChild(entities)

	triggers := binel.NewElement("triggers")
	for _, ent := range r.Triggers {
		triggers.AddChild(encodeEntity(ent))
	}
	e.AddChild(triggers)

	fgdecals := binel.NewElement("fgdecals")
	for _, d := range r.FgDecals {
		fgdecals.AddChild(encodeDecal(d))
	}
	e.AddChild(fgdecals)

	bgdecals := binel.NewElement("bgdecals")
	for _, d := range r.BgDecals {
		bgdecals.AddChild(encodeDecal(d))
	}
	e.AddChild(bgdecals)

	return e
}

func decodeRoom(e *binel.Element) (*Room, error) {
	bounds := Rect{X: attrInt(e, "x"), Y: attrInt(e, "y"), W: attrInt(e, "width"), H: attrInt(e, "height")}
	r := NewRoom(attrText(e, "name"), bounds)
	r.Music = attrText(e, "music")
	r.Ambience = attrText(e, "ambience")
	r.CameraOffsetX = attrInt(e, "cameraOffsetX")
	r.CameraOffsetY = attrInt(e, "cameraOffsetY")
	if _, ok := e.Get("dashesOverride"); ok {
		r.DashesOverride = attrInt(e, "dashesOverride")
	}
	r.Dark = attrBool(e, "dark")
	r.Underwater = attrBool(e, "underwater")
	r.Space = attrBool(e, "space")
	r.Whisper = attrBool(e, "whisper")
	r.DisableDownTransition = attrBool(e, "disableDownTransition")
	r.Misc = attrMap(e)
	for _, k := range []string{"name", "x", "y", "width", "height", "music", "ambience",
		"cameraOffsetX", "cameraOffsetY", "dashesOverride", "dark", "underwater",
		"space", "whisper", "disableDownTransition"} {
		delete(r.Misc, k)
	}

	w, h := bounds.TileSize()
	if solids, ok := e.FirstChild("solids"); ok {
		r.Solids = decodeCharGrid(attrText(solids, "innerText"), w, h)
	}
	if bg, ok := e.FirstChild("bgtiles"); ok {
		r.Bg = decodeCharGrid(attrText(bg, "innerText"), w, h)
	}
	if obj, ok := e.FirstChild("objtiles"); ok {
		r.ObjectTiles = decodeIntGrid(attrText(obj, "innerText"), w, h)
	}

	if entities, ok := e.FirstChild("entities"); ok {
		for _, c := range entities.Children {
			r.Entities = append(r.Entities, decodeEntity(c))
		}
	}
	if triggers, ok := e.FirstChild("triggers"); ok {
		for _, c := range triggers.Children {
			r.Triggers = append(r.Triggers, decodeEntity(c))
		}
	}
	if fgdecals, ok := e.FirstChild("fgdecals"); ok {
		for _, c := range fgdecals.Children {
			r.FgDecals = append(r.FgDecals, decodeDecal(c))
		}
	}
	if bgdecals, ok := e.FirstChild("bgdecals"); ok {
		for _, c := range bgdecals.Children {
			r.BgDecals = append(r.BgDecals, decodeDecal(c))
		}
	}

	deduplicateEntityIDs(r.Entities)
	deduplicateEntityIDs(r.Triggers)
	return r, nil
}

// deduplicateEntityIDs resolves spec.md §9's "duplicate entity id on decode"
// open question by re-assigning colliding ids rather than rejecting the map.
func deduplicateEntityIDs(entities []*Entity) {
	seen := make(map[int32]bool, len(entities))
	next := int32(0)
	for _, e := range entities {
		if e.ID > next {
			next = e.ID
		}
	}
	next++
	for _, e := range entities {
		if seen[e.ID] {
			e.ID = next
			next++
		}
		seen[e.ID] = true
	}
}

func encodeEntity(ent *Entity) *binel.Element {
	e := binel.NewElement(ent.Type)
	e.Set("id", binel.Int(ent.ID))
	e.Set("x", binel.Int(int32(ent.X)))
	e.Set("y", binel.Int(int32(ent.Y)))
	if ent.Width != 0 {
		e.Set("width", binel.Int(int32(ent.Width)))
	}
	if ent.Height != 0 {
		e.Set("height", binel.Int(int32(ent.Height)))
	}
	for k, v := range ent.Attributes {
		e.Set(k, v)
	}
	for _, n := range ent.Nodes {
		node := binel.NewElement("node")
		node.Set("x", binel.Int(int32(n.X)))
		node.Set("y", binel.Int(int32(n.Y)))
		e.AddChild(node)
	}
	return e
}

func decodeEntity(e *binel.Element) *Entity {
	ent := &Entity{
		Type:   e.Name,
		ID:     int32(attrInt(e, "id")),
		X:      attrInt(e, "x"),
		Y:      attrInt(e, "y"),
		Width:  attrInt(e, "width"),
		Height: attrInt(e, "height"),
	}
	ent.Attributes = attrMap(e)
	delete(ent.Attributes, "id")
	delete(ent.Attributes, "x")
	delete(ent.Attributes, "y")
	delete(ent.Attributes, "width")
	delete(ent.Attributes, "height")
	for _, node := range e.ChildrenNamed("node") {
		ent.Nodes = append(ent.Nodes, Point{X: attrInt(node, "x"), Y: attrInt(node, "y")})
	}
	return ent
}

func encodeDecal(d *Decal) *binel.Element {
	e := binel.NewElement("decal")
	e.Set("x", binel.Float(d.X))
	e.Set("y", binel.Float(d.Y))
	e.Set("scaleX", binel.Float(d.ScaleX))
	e.Set("scaleY", binel.Float(d.ScaleY))
	e.Set("texture", binel.Text(d.Texture))
	return e
}

func decodeDecal(e *binel.Element) *Decal {
	return &Decal{
		X: attrFloat(e, "x"), Y: attrFloat(e, "y"),
		ScaleX: attrFloatDefault(e, "scaleX", 1), ScaleY: attrFloatDefault(e, "scaleY", 1),
		Texture: attrText(e, "texture"),
	}
}

func encodeStyleground(s *Styleground) *binel.Element {
	e := binel.NewElement(s.Type)
	for k, v := range s.Attributes {
		e.Set(k, v)
	}
	return e
}

func decodeStyleground(e *binel.Element) *Styleground {
	return &Styleground{Type: e.Name, Attributes: attrMap(e)}
}

// attrMap copies every attribute of e into a fresh map, keyed by attribute
// name. Used both for round-tripping unmodeled attributes (Room.Misc,
// Map.Metadata) and for entity/styleground Attributes maps.
func attrMap(e *binel.Element) map[string]binel.AttrValue {
	attrs := e.Attrs()
	out := make(map[string]binel.AttrValue, len(attrs))
	for _, a := range attrs {
		if a.Key == "innerText" {
			continue
		}
		out[a.Key] = a.Value
	}
	return out
}

func attrText(e *binel.Element, key string) string {
	v, ok := e.Get(key)
	if !ok {
		return ""
	}
	if s, ok := v.AsText(); ok {
		return s
	}
	return v.Display()
}

func attrInt(e *binel.Element, key string) int {
	v, ok := e.Get(key)
	if !ok {
		return 0
	}
	if i, ok := v.AsInt(); ok {
		return int(i)
	}
	if f, ok := v.AsFloat(); ok {
		return int(f)
	}
	return 0
}

func attrBool(e *binel.Element, key string) bool {
	v, ok := e.Get(key)
	if !ok {
		return false
	}
	b, _ := v.AsBool()
	return b
}

func attrFloat(e *binel.Element, key string) float32 {
	return attrFloatDefault(e, key, 0)
}

func attrFloatDefault(e *binel.Element, key string, def float32) float32 {
	v, ok := e.Get(key)
	if !ok {
		return def
	}
	if f, ok := v.AsFloat(); ok {
		return f
	}
	if i, ok := v.AsInt(); ok {
		return float32(i)
	}
	return def
}

// encodeCharGrid renders a fg/bg tile grid as newline-separated rows of
// single-byte cells, per spec.md §6.
func encodeCharGrid(g TileGrid[byte]) string {
	h := g.Height()
	rows := make([]string, h)
	for y := 0; y < h; y++ {
		row := make([]byte, g.Stride)
		for x := 0; x < g.Stride; x++ {
			row[x] = g.Get(x, y, '0')
		}
		rows[y] = string(row)
	}
	return strings.Join(rows, "\n")
}

// decodeCharGrid parses a newline-separated char grid, padding short or
// missing rows/cells with the '0' empty sentinel (tolerating the trailing-
// blank-line ambiguity spec.md §9 flags as an open question).
func decodeCharGrid(text string, width, height int) TileGrid[byte] {
	out := NewTileGrid(width, height, byte('0'))
	rows := strings.Split(text, "\n")
	for y := 0; y < height && y < len(rows); y++ {
		row := rows[y]
		for x := 0; x < width && x < len(row); x++ {
			out.Set(x, y, row[x])
		}
	}
	return out
}

// encodeIntGrid renders the object-tile grid as newline-separated rows of
// comma-separated decimal ints, per spec.md §6.
func encodeIntGrid(g TileGrid[int32]) string {
	h := g.Height()
	rows := make([]string, h)
	for y := 0; y < h; y++ {
		cells := make([]string, g.Stride)
		for x := 0; x < g.Stride; x++ {
			cells[x] = strconv.Itoa(int(g.Get(x, y, -1)))
		}
		rows[y] = strings.Join(cells, ",")
	}
	return strings.Join(rows, "\n")
}

// decodeIntGrid parses the comma/newline int grid format, treating any
// unparsable or missing cell as the -1 empty sentinel.
func decodeIntGrid(text string, width, height int) TileGrid[int32] {
	out := NewTileGrid(width, height, int32(-1))
	rows := strings.Split(text, "\n")
	for y := 0; y < height && y < len(rows); y++ {
		cells := strings.Split(rows[y], ",")
		for x := 0; x < width && x < len(cells); x++ {
			n, err := strconv.Atoi(strings.TrimSpace(cells[x]))
			if err != nil {
				continue
			}
			out.Set(x, y, int32(n))
		}
	}
	return out
}
