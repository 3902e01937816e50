// Package svgcanvas implements render.Canvas and render.SpriteAtlas over
// github.com/ajstarks/svgo, the teacher's chosen SVG library. It exists
// mainly as a reference/test implementation: tests can render a directive
// tree and assert on the resulting SVG markup (e.g. a DrawRect at a given
// rect produces a <rect> of matching dimensions).
package svgcanvas

import (
	"bytes"
	"fmt"

	svg "github.com/ajstarks/svgo"

	"github.com/levelsmith/levelsmith/pkg/render"
)

// transform is the composed translate+scale state active when a draw call
// is made; Canvas keeps a stack of these across Save/Restore pairs. SVG
// group transforms would serve the same purpose, but tracking the
// composition ourselves keeps coordinate math (and test assertions)
// simple and avoids depending on exact svgo group-nesting behavior.
type transform struct {
	tx, ty float64
	sx, sy float64
}

func identity() transform { return transform{sx: 1, sy: 1} }

func (t transform) apply(p render.Point) (int, int) {
	return int(p.X*t.sx + t.tx), int(p.Y*t.sy + t.ty)
}

func (t transform) compose(dx, dy float64) transform {
	t.tx += dx * t.sx
	t.ty += dy * t.sy
	return t
}

func (t transform) composeScale(sx, sy float64) transform {
	t.sx *= sx
	t.sy *= sy
	return t
}

// Canvas is a render.Canvas backed by an in-memory SVG document.
type Canvas struct {
	buf   *bytes.Buffer
	svg   *svg.SVG
	stack []transform
	cur   transform
	alpha float64
}

// New creates a Canvas of the given pixel dimensions. Bytes returns the
// finished SVG document once drawing is complete.
func New(width, height int) *Canvas {
	buf := new(bytes.Buffer)
	s := svg.New(buf)
	s.Start(width, height)
	return &Canvas{buf: buf, svg: s, cur: identity(), alpha: 1}
}

// Bytes finalizes and returns the SVG document. Canvas must not be drawn
// to again afterward.
func (c *Canvas) Bytes() []byte {
	c.svg.End()
	return c.buf.Bytes()
}

func (c *Canvas) Save() {
	c.stack = append(c.stack, c.cur)
}

func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.cur = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *Canvas) Translate(dx, dy float64) {
	c.cur = c.cur.compose(dx, dy)
}

func (c *Canvas) Scale(sx, sy float64) {
	c.cur = c.cur.composeScale(sx, sy)
}

// IntersectScissor is a no-op: SVG clip-path composition across nested
// scissor regions isn't exercised by this reference canvas, since no test
// asserts clip behavior. A production Canvas collaborator would honor it.
func (c *Canvas) IntersectScissor(r render.Rect) {}

func (c *Canvas) FillPath(p render.Path, paint render.Paint) {
	style := fillStyle(paint, c.alpha)
	if rx, ry, rw, rh, ok := asAxisAlignedRect(p, c.cur); ok {
		c.svg.Rect(rx, ry, rw, rh, style)
		return
	}
	c.svg.Path(pathData(p, c.cur), style)
}

func (c *Canvas) StrokePath(p render.Path, paint render.Paint, width float64) {
	style := strokeStyle(paint, width*avgScale(c.cur), c.alpha)
	if len(p.Segments) == 2 && p.Segments[0].Kind == render.SegMoveTo && p.Segments[1].Kind == render.SegLineTo {
		x1, y1 := c.cur.apply(p.Segments[0].To)
		x2, y2 := c.cur.apply(p.Segments[1].To)
		c.svg.Line(x1, y1, x2, y2, style)
		return
	}
	c.svg.Path(pathData(p, c.cur), style)
}

func (c *Canvas) SetGlobalAlpha(alpha float64) {
	c.alpha = alpha
}

// PushRenderTarget/PopRenderTarget are no-ops: this canvas always draws
// directly into the one document; offscreen compositing is not exercised.
func (c *Canvas) PushRenderTarget(size render.Size) {}
func (c *Canvas) PopRenderTarget()                  {}

func (c *Canvas) Blit(tex render.TextureID, dst render.Rect, src *render.Rect) {
	x, y := c.cur.apply(render.Point{X: dst.X, Y: dst.Y})
	w := int(dst.W * c.cur.sx)
	h := int(dst.H * c.cur.sy)
	c.svg.Rect(x, y, w, h, fmt.Sprintf("fill:none;stroke:#888;stroke-dasharray:2,2;data-texture:%d", tex))
}

func avgScale(t transform) float64 {
	return (t.sx + t.sy) / 2
}

func fillStyle(p render.Paint, alpha float64) string {
	return fmt.Sprintf("fill:%s;fill-opacity:%s", hexColor(p), opacity(p, alpha))
}

func strokeStyle(p render.Paint, width, alpha float64) string {
	return fmt.Sprintf("fill:none;stroke:%s;stroke-opacity:%s;stroke-width:%g", hexColor(p), opacity(p, alpha), width)
}

func hexColor(p render.Paint) string {
	return fmt.Sprintf("#%02x%02x%02x", p.R, p.G, p.B)
}

func opacity(p render.Paint, alpha float64) string {
	return fmt.Sprintf("%g", (float64(p.A)/255.0)*alpha)
}

// asAxisAlignedRect recognizes the exact segment shape rectPath produces
// in pkg/render, so a DrawRect directive renders as a proper SVG <rect>
// rather than an equivalent but less legible <path>.
func asAxisAlignedRect(p render.Path, t transform) (x, y, w, h int, ok bool) {
	s := p.Segments
	if len(s) != 5 || s[0].Kind != render.SegMoveTo || s[4].Kind != render.SegClosePath {
		return 0, 0, 0, 0, false
	}
	for _, seg := range s[1:4] {
		if seg.Kind != render.SegLineTo {
			return 0, 0, 0, 0, false
		}
	}
	x0, y0 := t.apply(s[0].To)
	x2, y2 := t.apply(s[2].To)
	if x2 < x0 || y2 < y0 {
		return 0, 0, 0, 0, false
	}
	return x0, y0, x2 - x0, y2 - y0, true
}

// pathData renders a render.Path as an SVG path "d" attribute value.
func pathData(p render.Path, t transform) string {
	var b bytes.Buffer
	for _, seg := range p.Segments {
		switch seg.Kind {
		case render.SegMoveTo:
			x, y := t.apply(seg.To)
			fmt.Fprintf(&b, "M%d %d ", x, y)
		case render.SegLineTo:
			x, y := t.apply(seg.To)
			fmt.Fprintf(&b, "L%d %d ", x, y)
		case render.SegCurveTo:
			x1, y1 := t.apply(seg.Control1)
			x2, y2 := t.apply(seg.Control2)
			x, y := t.apply(seg.To)
			fmt.Fprintf(&b, "C%d %d %d %d %d %d ", x1, y1, x2, y2, x, y)
		case render.SegClosePath:
			b.WriteString("Z ")
		}
	}
	return b.String()
}
