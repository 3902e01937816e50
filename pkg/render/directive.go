package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/levelsmith/levelsmith/pkg/autotile"
	"github.com/levelsmith/levelsmith/pkg/expr"
)

// TilerMode selects how DrawRectImage fills its bounds.
type TilerMode int

const (
	TilerRepeat   TilerMode = iota // tile the slice to fill bounds
	Tiler9Slice                    // four corners + four edges + center, 8px each
	TilerFgIgnore                  // autotile with tileset id 0 over the unchanged occupancy field
	TilerTileset                   // autotile using the named tileset id
)

// Directive is one node of a draw-directive tree. Every concrete directive
// type implements it; execute dispatches on the concrete type via a type
// switch rather than a method, so that directive types stay plain data and
// evaluation stays entirely in this package.
type Directive interface {
	isDirective()
}

// DrawRect fills and/or strokes an axis-aligned rectangle.
type DrawRect struct {
	X, Y, W, H           expr.Expression
	Fill, Border         expr.Expression // hex color strings; empty string means "none"
	BorderThickness      expr.Expression
}

// DrawEllipse fills and/or strokes an ellipse inscribed in a rectangle.
type DrawEllipse struct {
	X, Y, W, H      expr.Expression
	Fill, Border    expr.Expression
	BorderThickness expr.Expression
}

// DrawLine strokes a segment, optionally with an arrowhead at its end.
type DrawLine struct {
	X1, Y1, X2, Y2 expr.Expression
	Color          expr.Expression
	Thickness      expr.Expression
	Arrowhead      expr.Expression // nonzero means draw an arrowhead
}

// DrawCurve strokes a quadratic Bézier, promoted to cubic form before
// reaching the Canvas (every canvas in the pack exposes cubic curves only).
type DrawCurve struct {
	X1, Y1, X2, Y2 expr.Expression
	ControlX       expr.Expression
	ControlY       expr.Expression
	Color          expr.Expression
	Thickness      expr.Expression
}

// DrawPointImage draws a single sprite anchored at a point.
type DrawPointImage struct {
	Texture  expr.Expression
	X, Y     expr.Expression
	Justify  Justify
	Scale    expr.Expression
	Color    expr.Expression
	Rotation expr.Expression
}

// DrawRectImage draws a sliced or autotiled image across a rectangle.
type DrawRectImage struct {
	Texture               expr.Expression
	X, Y, W, H            expr.Expression
	SliceX, SliceY        expr.Expression
	SliceW, SliceH        expr.Expression
	Scale                 expr.Expression
	Color                 expr.Expression
	Tiler                 TilerMode
	TilesetID             byte // meaningful only when Tiler == TilerTileset
}

// DrawRectCustom iterates sub-pixel sample points of Rect spaced by
// Interval, binding customx/customy in the child environment, and recurses
// into Inner for each point.
type DrawRectCustom struct {
	X, Y, W, H expr.Expression
	Interval   expr.Expression
	Inner      []Directive
}

func (DrawRect) isDirective()        {}
func (DrawEllipse) isDirective()     {}
func (DrawLine) isDirective()        {}
func (DrawCurve) isDirective()       {}
func (DrawPointImage) isDirective()  {}
func (DrawRectImage) isDirective()   {}
func (DrawRectCustom) isDirective()  {}

// Context bundles a directive tree's external collaborators: the target
// Canvas, the atlas used to resolve textures and draw tiles, the loaded
// autotiler tables keyed by tileset id, a sampler over the room's occupancy
// field (used by the TilerFgIgnore/TilerTileset modes), and a Logger for
// per-directive evaluation warnings.
type Context struct {
	Canvas     Canvas
	Atlas      SpriteAtlas
	Tilesets   map[byte]*autotile.Tileset
	Occupancy  autotile.TileFunc
	Log        Logger
}

// Run evaluates and draws a directive tree against env. A directive that
// fails to evaluate is skipped with a logged warning rather than aborting
// the remaining tree, per spec.md §4.8.
func Run(ctx Context, directives []Directive, env expr.Env) {
	for _, d := range directives {
		runOne(ctx, d, env)
	}
}

func runOne(ctx Context, d Directive, env expr.Env) {
	if err := execute(ctx, d, env); err != nil {
		if ctx.Log != nil {
			ctx.Log.Warn("render directive skipped", "error", err)
		}
	}
}

func execute(ctx Context, d Directive, env expr.Env) error {
	switch dd := d.(type) {
	case DrawRect:
		return execRect(ctx, dd, env)
	case DrawEllipse:
		return execEllipse(ctx, dd, env)
	case DrawLine:
		return execLine(ctx, dd, env)
	case DrawCurve:
		return execCurve(ctx, dd, env)
	case DrawPointImage:
		return execPointImage(ctx, dd, env)
	case DrawRectImage:
		return execRectImage(ctx, dd, env)
	case DrawRectCustom:
		return execRectCustom(ctx, dd, env)
	default:
		return fmt.Errorf("render: unknown directive type %T", d)
	}
}

func evalNum(e expr.Expression, env expr.Env, name string) (float64, error) {
	if e == nil {
		return 0, nil
	}
	v, err := e.Eval(env)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if !v.IsNumber() {
		return 0, fmt.Errorf("%s: expected a number, got %q", name, v.Display())
	}
	return v.Num(), nil
}

func evalStr(e expr.Expression, env expr.Env, name string) (string, error) {
	if e == nil {
		return "", nil
	}
	v, err := e.Eval(env)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	if v.IsNumber() {
		return strconv.FormatFloat(v.Num(), 'g', -1, 64), nil
	}
	return v.Display(), nil
}

func evalRect(x, y, w, h expr.Expression, env expr.Env) (Rect, error) {
	xv, err := evalNum(x, env, "x")
	if err != nil {
		return Rect{}, err
	}
	yv, err := evalNum(y, env, "y")
	if err != nil {
		return Rect{}, err
	}
	wv, err := evalNum(w, env, "width")
	if err != nil {
		return Rect{}, err
	}
	hv, err := evalNum(h, env, "height")
	if err != nil {
		return Rect{}, err
	}
	return Rect{X: xv, Y: yv, W: wv, H: hv}, nil
}

func evalColor(e expr.Expression, env expr.Env, name string) (Paint, bool, error) {
	if e == nil {
		return Paint{}, false, nil
	}
	s, err := evalStr(e, env, name)
	if err != nil {
		return Paint{}, false, err
	}
	s = strings.TrimPrefix(s, "#")
	if s == "" {
		return Paint{}, false, nil
	}
	p, err := parseHexColor(s)
	if err != nil {
		return Paint{}, false, fmt.Errorf("%s: %w", name, err)
	}
	return p, true, nil
}

// parseHexColor parses "rrggbb" or "rrggbbaa" into a Paint; a missing alpha
// channel defaults to fully opaque.
func parseHexColor(s string) (Paint, error) {
	if len(s) != 6 && len(s) != 8 {
		return Paint{}, fmt.Errorf("color %q must be 6 or 8 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Paint{}, fmt.Errorf("color %q: %w", s, err)
	}
	if len(s) == 6 {
		return Paint{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
	}
	return Paint{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

func execRect(ctx Context, d DrawRect, env expr.Env) error {
	r, err := evalRect(d.X, d.Y, d.W, d.H, env)
	if err != nil {
		return err
	}
	path := rectPath(r)
	if fill, ok, err := evalColor(d.Fill, env, "fill"); err != nil {
		return err
	} else if ok {
		ctx.Canvas.FillPath(path, fill)
	}
	if border, ok, err := evalColor(d.Border, env, "border"); err != nil {
		return err
	} else if ok {
		thickness, err := evalNum(d.BorderThickness, env, "border_thickness")
		if err != nil {
			return err
		}
		ctx.Canvas.StrokePath(path, border, thickness)
	}
	return nil
}

func rectPath(r Rect) Path {
	return Path{Segments: []PathSegment{
		{Kind: SegMoveTo, To: Point{r.X, r.Y}},
		{Kind: SegLineTo, To: Point{r.X + r.W, r.Y}},
		{Kind: SegLineTo, To: Point{r.X + r.W, r.Y + r.H}},
		{Kind: SegLineTo, To: Point{r.X, r.Y + r.H}},
		{Kind: SegClosePath},
	}}
}

// ellipsePath approximates an ellipse inscribed in r with four cubic Bézier
// arcs, using the standard kappa constant for a circular-arc approximation.
func ellipsePath(r Rect) Path {
	const kappa = 0.5522847498
	cx, cy := r.X+r.W/2, r.Y+r.H/2
	rx, ry := r.W/2, r.H/2
	ox, oy := rx*kappa, ry*kappa
	return Path{Segments: []PathSegment{
		{Kind: SegMoveTo, To: Point{cx, cy - ry}},
		{Kind: SegCurveTo, To: Point{cx + rx, cy}, Control1: Point{cx + ox, cy - ry}, Control2: Point{cx + rx, cy - oy}},
		{Kind: SegCurveTo, To: Point{cx, cy + ry}, Control1: Point{cx + rx, cy + oy}, Control2: Point{cx + ox, cy + ry}},
		{Kind: SegCurveTo, To: Point{cx - rx, cy}, Control1: Point{cx - ox, cy + ry}, Control2: Point{cx - rx, cy + oy}},
		{Kind: SegCurveTo, To: Point{cx, cy - ry}, Control1: Point{cx - rx, cy - oy}, Control2: Point{cx - ox, cy - ry}},
		{Kind: SegClosePath},
	}}
}

func execEllipse(ctx Context, d DrawEllipse, env expr.Env) error {
	r, err := evalRect(d.X, d.Y, d.W, d.H, env)
	if err != nil {
		return err
	}
	path := ellipsePath(r)
	if fill, ok, err := evalColor(d.Fill, env, "fill"); err != nil {
		return err
	} else if ok {
		ctx.Canvas.FillPath(path, fill)
	}
	if border, ok, err := evalColor(d.Border, env, "border"); err != nil {
		return err
	} else if ok {
		thickness, err := evalNum(d.BorderThickness, env, "border_thickness")
		if err != nil {
			return err
		}
		ctx.Canvas.StrokePath(path, border, thickness)
	}
	return nil
}

func execLine(ctx Context, d DrawLine, env expr.Env) error {
	x1, err := evalNum(d.X1, env, "x1")
	if err != nil {
		return err
	}
	y1, err := evalNum(d.Y1, env, "y1")
	if err != nil {
		return err
	}
	x2, err := evalNum(d.X2, env, "x2")
	if err != nil {
		return err
	}
	y2, err := evalNum(d.Y2, env, "y2")
	if err != nil {
		return err
	}
	color, _, err := evalColor(d.Color, env, "color")
	if err != nil {
		return err
	}
	thickness, err := evalNum(d.Thickness, env, "thickness")
	if err != nil {
		return err
	}
	path := Path{Segments: []PathSegment{
		{Kind: SegMoveTo, To: Point{x1, y1}},
		{Kind: SegLineTo, To: Point{x2, y2}},
	}}
	ctx.Canvas.StrokePath(path, color, thickness)

	arrow, err := evalNum(d.Arrowhead, env, "arrowhead")
	if err != nil {
		return err
	}
	if arrow != 0 {
		drawArrowhead(ctx, x1, y1, x2, y2, color, thickness)
	}
	return nil
}

func drawArrowhead(ctx Context, x1, y1, x2, y2 float64, color Paint, thickness float64) {
	const size = 6
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	ux, uy := dx/length, dy/length
	px, py := -uy, ux
	left := Point{x2 - ux*size + px*size*0.5, y2 - uy*size + py*size*0.5}
	right := Point{x2 - ux*size - px*size*0.5, y2 - uy*size - py*size*0.5}
	path := Path{Segments: []PathSegment{
		{Kind: SegMoveTo, To: left},
		{Kind: SegLineTo, To: Point{x2, y2}},
		{Kind: SegLineTo, To: right},
	}}
	ctx.Canvas.StrokePath(path, color, thickness)
}

func execCurve(ctx Context, d DrawCurve, env expr.Env) error {
	x1, err := evalNum(d.X1, env, "x1")
	if err != nil {
		return err
	}
	y1, err := evalNum(d.Y1, env, "y1")
	if err != nil {
		return err
	}
	x2, err := evalNum(d.X2, env, "x2")
	if err != nil {
		return err
	}
	y2, err := evalNum(d.Y2, env, "y2")
	if err != nil {
		return err
	}
	qx, err := evalNum(d.ControlX, env, "controlx")
	if err != nil {
		return err
	}
	qy, err := evalNum(d.ControlY, env, "controly")
	if err != nil {
		return err
	}
	color, _, err := evalColor(d.Color, env, "color")
	if err != nil {
		return err
	}
	thickness, err := evalNum(d.Thickness, env, "thickness")
	if err != nil {
		return err
	}

	// Promote the quadratic control point to the two cubic control points
	// on the same curve: c1 = p0 + 2/3(q-p0), c2 = p1 + 2/3(q-p1).
	c1 := Point{x1 + 2.0/3.0*(qx-x1), y1 + 2.0/3.0*(qy-y1)}
	c2 := Point{x2 + 2.0/3.0*(qx-x2), y2 + 2.0/3.0*(qy-y2)}
	path := Path{Segments: []PathSegment{
		{Kind: SegMoveTo, To: Point{x1, y1}},
		{Kind: SegCurveTo, To: Point{x2, y2}, Control1: c1, Control2: c2},
	}}
	ctx.Canvas.StrokePath(path, color, thickness)
	return nil
}

func execPointImage(ctx Context, d DrawPointImage, env expr.Env) error {
	tex, err := evalStr(d.Texture, env, "texture")
	if err != nil {
		return err
	}
	x, err := evalNum(d.X, env, "x")
	if err != nil {
		return err
	}
	y, err := evalNum(d.Y, env, "y")
	if err != nil {
		return err
	}
	scale, err := evalNum(d.Scale, env, "scale")
	if err != nil {
		return err
	}
	if scale == 0 {
		scale = 1
	}
	color, ok, err := evalColor(d.Color, env, "color")
	if err != nil {
		return err
	}
	if !ok {
		color = Paint{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	rot, err := evalNum(d.Rotation, env, "rotation")
	if err != nil {
		return err
	}
	if _, ok := ctx.Atlas.Lookup(tex); !ok {
		return fmt.Errorf("texture %q not found", tex)
	}
	ctx.Atlas.DrawSprite(ctx.Canvas, tex, Point{x, y}, nil, d.Justify, Point{scale, scale}, color, rot)
	return nil
}

func execRectImage(ctx Context, d DrawRectImage, env expr.Env) error {
	tex, err := evalStr(d.Texture, env, "texture")
	if err != nil {
		return err
	}
	bounds, err := evalRect(d.X, d.Y, d.W, d.H, env)
	if err != nil {
		return err
	}
	if _, ok := ctx.Atlas.Lookup(tex); !ok {
		return fmt.Errorf("texture %q not found", tex)
	}
	color, ok, err := evalColor(d.Color, env, "color")
	if err != nil {
		return err
	}
	if !ok {
		color = Paint{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}

	switch d.Tiler {
	case TilerTileset:
		return drawAutotiled(ctx, d.TilesetID, bounds, color)
	case TilerFgIgnore:
		return drawAutotiled(ctx, 0, bounds, color)
	case Tiler9Slice:
		return drawNineSlice(ctx, tex, bounds, color)
	default: // TilerRepeat
		return drawRepeated(ctx, tex, bounds, color)
	}
}

func drawRepeated(ctx Context, tex string, bounds Rect, color Paint) error {
	size, ok := ctx.Atlas.Dimensions(tex)
	if !ok || size.W == 0 || size.H == 0 {
		return fmt.Errorf("texture %q has no dimensions", tex)
	}
	for y := 0.0; y < bounds.H; y += float64(size.H) {
		for x := 0.0; x < bounds.W; x += float64(size.W) {
			pos := Point{bounds.X + x, bounds.Y + y}
			ctx.Atlas.DrawSprite(ctx.Canvas, tex, pos, nil, Justify{}, Point{1, 1}, color, 0)
		}
	}
	return nil
}

// drawNineSlice splits the source texture into 8px corners/edges/center and
// stretches only the edge and center strips to fill bounds, per spec.md
// §4.8's 9-slice rule (source must be at least 17x17 px).
func drawNineSlice(ctx Context, tex string, bounds Rect, color Paint) error {
	const slice = 8
	size, ok := ctx.Atlas.Dimensions(tex)
	if !ok {
		return fmt.Errorf("texture %q has no dimensions", tex)
	}
	if size.W < 2*slice+1 || size.H < 2*slice+1 {
		return fmt.Errorf("texture %q is too small for 9-slice (need >= 17x17)", tex)
	}
	midW, midH := size.W-2*slice, size.H-2*slice
	cols := []struct{ srcX, srcW, dstX, dstW float64 }{
		{0, slice, bounds.X, slice},
		{slice, float64(midW), bounds.X + slice, bounds.W - 2*slice},
		{float64(size.W - slice), slice, bounds.X + bounds.W - slice, slice},
	}
	rows := []struct{ srcY, srcH, dstY, dstH float64 }{
		{0, slice, bounds.Y, slice},
		{slice, float64(midH), bounds.Y + slice, bounds.H - 2*slice},
		{float64(size.H - slice), slice, bounds.Y + bounds.H - slice, slice},
	}
	for _, row := range rows {
		for _, col := range cols {
			src := Rect{X: col.srcX, Y: row.srcY, W: col.srcW, H: row.srcH}
			dst := Rect{X: col.dstX, Y: row.dstY, W: col.dstW, H: row.dstH}
			tid, ok := ctx.Atlas.Lookup(tex)
			if !ok {
				continue
			}
			ctx.Canvas.Blit(tid, dst, &src)
		}
	}
	return nil
}

// drawAutotiled walks bounds in 8px cells, consulting the tileset keyed by
// tilesetID to pick a sub-tile per cell, and fails if that tileset is not
// loaded. The fg_ignore mode calls it with id 0 and the same ctx.Occupancy
// sampler as every other mode; fg neighbors are not treated as empty.
func drawAutotiled(ctx Context, tilesetID byte, bounds Rect, color Paint) error {
	ts, ok := ctx.Tilesets[tilesetID]
	if !ok {
		return fmt.Errorf("tileset %q not loaded", string(tilesetID))
	}
	x0, y0 := int32(bounds.X/8), int32(bounds.Y/8)
	x1, y1 := int32((bounds.X+bounds.W)/8), int32((bounds.Y+bounds.H)/8)
	for ty := y0; ty < y1; ty++ {
		for tx := x0; tx < x1; tx++ {
			coord, ok := ts.Select(tx, ty, ctx.Occupancy)
			if !ok {
				continue
			}
			ctx.Atlas.DrawTile(ctx.Canvas, tilesetID, int32(coord.X), int32(coord.Y), float64(tx*8), float64(ty*8), color)
		}
	}
	return nil
}

func execRectCustom(ctx Context, d DrawRectCustom, env expr.Env) error {
	bounds, err := evalRect(d.X, d.Y, d.W, d.H, env)
	if err != nil {
		return err
	}
	interval, err := evalNum(d.Interval, env, "interval")
	if err != nil {
		return err
	}
	if interval <= 0 {
		return fmt.Errorf("interval must be positive, got %v", interval)
	}
	for y := bounds.Y; y < bounds.Y+bounds.H; y += interval {
		for x := bounds.X; x < bounds.X+bounds.W; x += interval {
			child := make(expr.Env, len(env)+2)
			for k, v := range env {
				child[k] = v
			}
			child["customx"] = expr.Number(x)
			child["customy"] = expr.Number(y)
			Run(ctx, d.Inner, child)
		}
	}
	return nil
}
