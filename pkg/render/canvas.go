package render

// Point is a sub-pixel 2-D coordinate in room space.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned sub-pixel rectangle in room space.
type Rect struct {
	X, Y, W, H float64
}

// Paint is a flat fill/stroke color plus opacity, the minimal paint style
// the directive set needs (solid fills and strokes only — no gradients).
type Paint struct {
	R, G, B, A uint8
}

// Path is an ordered list of path segments a Canvas can fill or stroke.
// MoveTo/LineTo/CurveTo/ClosePath mirror the vector primitives every 2-D
// canvas API exposes; QuadTo is promoted to a cubic CurveTo by the
// directive layer before it ever reaches a Canvas, per spec.md §4.8.
type Path struct {
	Segments []PathSegment
}

// SegmentKind tags a PathSegment's variant.
type SegmentKind int

const (
	SegMoveTo SegmentKind = iota
	SegLineTo
	SegCurveTo
	SegClosePath
)

// PathSegment is one step of a Path. Only the fields relevant to Kind are
// meaningful: CurveTo uses To plus both control points, the others use To
// alone (ClosePath uses neither).
type PathSegment struct {
	Kind            SegmentKind
	To              Point
	Control1        Point
	Control2        Point
}

// Justify anchors a point-sprite draw relative to its own bounds, as a
// fraction of width/height: {0,0} is top-left, {0.5,0.5} is centered.
type Justify struct {
	X, Y float64
}

// TextureID opaquely identifies a loaded image resource; its value is
// meaningful only to the SpriteAtlas that produced it.
type TextureID int

// Size is an image's pixel dimensions.
type Size struct {
	W, H int
}

// Canvas is the 2-D drawing surface the render package draws onto. It is
// an external collaborator (per spec.md §6): this package only calls it,
// never implements it.
type Canvas interface {
	Save()
	Restore()
	Translate(dx, dy float64)
	Scale(sx, sy float64)
	IntersectScissor(r Rect)
	FillPath(p Path, paint Paint)
	StrokePath(p Path, paint Paint, width float64)
	SetGlobalAlpha(alpha float64)
	PushRenderTarget(size Size)
	PopRenderTarget()
	Blit(tex TextureID, dst Rect, src *Rect)
}

// SpriteAtlas resolves texture names to drawable images and draws sprites
// and autotiled sub-tiles onto a Canvas.
type SpriteAtlas interface {
	Lookup(name string) (TextureID, bool)
	Dimensions(name string) (Size, bool)
	DrawSprite(c Canvas, name string, pos Point, src *Rect, justify Justify, scale Point, color Paint, rot float64)
	DrawTile(c Canvas, tilesetID byte, tx, ty int32, x, y float64, color Paint)
}

// Logger receives per-directive evaluation warnings; a directive that
// fails never aborts the room render, it is simply skipped and logged.
type Logger interface {
	Warn(msg string, args ...any)
}
