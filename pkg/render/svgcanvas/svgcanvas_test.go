package svgcanvas

import (
	"strings"
	"testing"

	"github.com/levelsmith/levelsmith/pkg/render"
)

func TestFillPathEmitsRect(t *testing.T) {
	c := New(100, 100)
	path := render.Path{Segments: []render.PathSegment{
		{Kind: render.SegMoveTo, To: render.Point{X: 10, Y: 10}},
		{Kind: render.SegLineTo, To: render.Point{X: 30, Y: 10}},
		{Kind: render.SegLineTo, To: render.Point{X: 30, Y: 20}},
		{Kind: render.SegLineTo, To: render.Point{X: 10, Y: 20}},
		{Kind: render.SegClosePath},
	}}
	c.FillPath(path, render.Paint{R: 255, A: 255})
	out := string(c.Bytes())
	if !strings.Contains(out, `width="20"`) || !strings.Contains(out, `height="10"`) {
		t.Errorf("expected a 20x10 rect in output, got:\n%s", out)
	}
}

func TestTranslateAffectsSubsequentDraws(t *testing.T) {
	c := New(100, 100)
	c.Translate(50, 0)
	path := render.Path{Segments: []render.PathSegment{
		{Kind: render.SegMoveTo, To: render.Point{X: 0, Y: 0}},
		{Kind: render.SegLineTo, To: render.Point{X: 10, Y: 0}},
		{Kind: render.SegLineTo, To: render.Point{X: 10, Y: 10}},
		{Kind: render.SegLineTo, To: render.Point{X: 0, Y: 10}},
		{Kind: render.SegClosePath},
	}}
	c.FillPath(path, render.Paint{A: 255})
	out := string(c.Bytes())
	if !strings.Contains(out, `x="50"`) {
		t.Errorf("expected translated rect at x=50, got:\n%s", out)
	}
}

func TestSaveRestoreUndoesTransform(t *testing.T) {
	c := New(100, 100)
	c.Save()
	c.Translate(50, 50)
	c.Restore()
	path := render.Path{Segments: []render.PathSegment{
		{Kind: render.SegMoveTo, To: render.Point{X: 1, Y: 1}},
		{Kind: render.SegLineTo, To: render.Point{X: 2, Y: 1}},
		{Kind: render.SegLineTo, To: render.Point{X: 2, Y: 2}},
		{Kind: render.SegLineTo, To: render.Point{X: 1, Y: 2}},
		{Kind: render.SegClosePath},
	}}
	c.FillPath(path, render.Paint{A: 255})
	out := string(c.Bytes())
	if strings.Contains(out, `x="51"`) {
		t.Errorf("Restore should have undone the translate, got:\n%s", out)
	}
	if !strings.Contains(out, `x="1"`) {
		t.Errorf("expected untranslated rect at x=1, got:\n%s", out)
	}
}

func TestStrokeLineEmitsLineElement(t *testing.T) {
	c := New(100, 100)
	path := render.Path{Segments: []render.PathSegment{
		{Kind: render.SegMoveTo, To: render.Point{X: 0, Y: 0}},
		{Kind: render.SegLineTo, To: render.Point{X: 10, Y: 10}},
	}}
	c.StrokePath(path, render.Paint{A: 255}, 2)
	out := string(c.Bytes())
	if !strings.Contains(out, "<line") {
		t.Errorf("expected a <line> element, got:\n%s", out)
	}
}

func TestAtlasDrawSpriteBlitsAtJustifiedPosition(t *testing.T) {
	c := New(100, 100)
	atlas := NewAtlas(map[string]render.Size{"gizmo": {W: 10, H: 10}})
	atlas.DrawSprite(c, "gizmo", render.Point{X: 50, Y: 50}, nil, render.Justify{X: 0.5, Y: 0.5}, render.Point{X: 1, Y: 1}, render.Paint{A: 255}, 0)
	out := string(c.Bytes())
	if !strings.Contains(out, `x="45"`) || !strings.Contains(out, `y="45"`) {
		t.Errorf("expected sprite centered at (50,50) to blit at (45,45), got:\n%s", out)
	}
}
