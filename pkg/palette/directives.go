package palette

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/levelsmith/levelsmith/pkg/expr"
	"github.com/levelsmith/levelsmith/pkg/render"
)

// rawDirective is the YAML shape of one draw-directive tree node. Every
// attribute is stored as source text and compiled into an expr.Expression
// by compileDirective, per spec.md §4.8's "every numeric or string
// attribute is an Expression" rule.
type rawDirective struct {
	Kind string `yaml:"kind"`

	X string `yaml:"x,omitempty"`
	Y string `yaml:"y,omitempty"`
	W string `yaml:"w,omitempty"`
	H string `yaml:"h,omitempty"`

	X1       string `yaml:"x1,omitempty"`
	Y1       string `yaml:"y1,omitempty"`
	X2       string `yaml:"x2,omitempty"`
	Y2       string `yaml:"y2,omitempty"`
	ControlX string `yaml:"control_x,omitempty"`
	ControlY string `yaml:"control_y,omitempty"`

	Fill            string `yaml:"fill,omitempty"`
	Border          string `yaml:"border,omitempty"`
	BorderThickness string `yaml:"border_thickness,omitempty"`
	Color           string `yaml:"color,omitempty"`
	Thickness       string `yaml:"thickness,omitempty"`
	Arrowhead       string `yaml:"arrowhead,omitempty"`

	Texture  string `yaml:"texture,omitempty"`
	Justify  string `yaml:"justify,omitempty"`
	Scale    string `yaml:"scale,omitempty"`
	Rotation string `yaml:"rotation,omitempty"`

	SliceX string `yaml:"slice_x,omitempty"`
	SliceY string `yaml:"slice_y,omitempty"`
	SliceW string `yaml:"slice_w,omitempty"`
	SliceH string `yaml:"slice_h,omitempty"`
	Tiler  string `yaml:"tiler,omitempty"`

	Interval string         `yaml:"interval,omitempty"`
	Inner    []rawDirective `yaml:"inner,omitempty"`
}

func compileDirectives(raw []rawDirective) ([]render.Directive, error) {
	out := make([]render.Directive, 0, len(raw))
	for i, rd := range raw {
		d, err := compileDirective(rd)
		if err != nil {
			return nil, fmt.Errorf("directive %d (%s): %w", i, rd.Kind, err)
		}
		out = append(out, d)
	}
	return out, nil
}

func compileDirective(rd rawDirective) (render.Directive, error) {
	switch rd.Kind {
	case "rect":
		return compileRect(rd)
	case "ellipse":
		return compileEllipse(rd)
	case "line":
		return compileLine(rd)
	case "curve":
		return compileCurve(rd)
	case "point_image":
		return compilePointImage(rd)
	case "rect_image":
		return compileRectImage(rd)
	case "rect_custom":
		return compileRectCustom(rd)
	default:
		return nil, fmt.Errorf("unknown directive kind %q", rd.Kind)
	}
}

func parseExpr(src, fallback string) (expr.Expression, error) {
	if src == "" {
		src = fallback
	}
	if src == "" {
		return nil, nil
	}
	e, err := expr.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", src, err)
	}
	return e, nil
}

func compileRect(rd rawDirective) (render.Directive, error) {
	x, err := parseExpr(rd.X, "0")
	if err != nil {
		return nil, err
	}
	y, err := parseExpr(rd.Y, "0")
	if err != nil {
		return nil, err
	}
	w, err := parseExpr(rd.W, "width")
	if err != nil {
		return nil, err
	}
	h, err := parseExpr(rd.H, "height")
	if err != nil {
		return nil, err
	}
	fill, err := optionalStringExpr(rd.Fill)
	if err != nil {
		return nil, err
	}
	border, err := optionalStringExpr(rd.Border)
	if err != nil {
		return nil, err
	}
	thickness, err := parseExpr(rd.BorderThickness, "1")
	if err != nil {
		return nil, err
	}
	return render.DrawRect{X: x, Y: y, W: w, H: h, Fill: fill, Border: border, BorderThickness: thickness}, nil
}

func compileEllipse(rd rawDirective) (render.Directive, error) {
	d, err := compileRect(rd)
	if err != nil {
		return nil, err
	}
	r := d.(render.DrawRect)
	return render.DrawEllipse{X: r.X, Y: r.Y, W: r.W, H: r.H, Fill: r.Fill, Border: r.Border, BorderThickness: r.BorderThickness}, nil
}

func compileLine(rd rawDirective) (render.Directive, error) {
	x1, err := parseExpr(rd.X1, "0")
	if err != nil {
		return nil, err
	}
	y1, err := parseExpr(rd.Y1, "0")
	if err != nil {
		return nil, err
	}
	x2, err := parseExpr(rd.X2, "0")
	if err != nil {
		return nil, err
	}
	y2, err := parseExpr(rd.Y2, "0")
	if err != nil {
		return nil, err
	}
	color, err := optionalStringExpr(rd.Color)
	if err != nil {
		return nil, err
	}
	thickness, err := parseExpr(rd.Thickness, "1")
	if err != nil {
		return nil, err
	}
	arrowhead, err := parseExpr(rd.Arrowhead, "0")
	if err != nil {
		return nil, err
	}
	return render.DrawLine{X1: x1, Y1: y1, X2: x2, Y2: y2, Color: color, Thickness: thickness, Arrowhead: arrowhead}, nil
}

func compileCurve(rd rawDirective) (render.Directive, error) {
	x1, err := parseExpr(rd.X1, "0")
	if err != nil {
		return nil, err
	}
	y1, err := parseExpr(rd.Y1, "0")
	if err != nil {
		return nil, err
	}
	x2, err := parseExpr(rd.X2, "0")
	if err != nil {
		return nil, err
	}
	y2, err := parseExpr(rd.Y2, "0")
	if err != nil {
		return nil, err
	}
	cx, err := parseExpr(rd.ControlX, "0")
	if err != nil {
		return nil, err
	}
	cy, err := parseExpr(rd.ControlY, "0")
	if err != nil {
		return nil, err
	}
	color, err := optionalStringExpr(rd.Color)
	if err != nil {
		return nil, err
	}
	thickness, err := parseExpr(rd.Thickness, "1")
	if err != nil {
		return nil, err
	}
	return render.DrawCurve{X1: x1, Y1: y1, X2: x2, Y2: y2, ControlX: cx, ControlY: cy, Color: color, Thickness: thickness}, nil
}

func compilePointImage(rd rawDirective) (render.Directive, error) {
	tex, err := parseExpr(rd.Texture, "")
	if err != nil {
		return nil, err
	}
	x, err := parseExpr(rd.X, "x")
	if err != nil {
		return nil, err
	}
	y, err := parseExpr(rd.Y, "y")
	if err != nil {
		return nil, err
	}
	scale, err := parseExpr(rd.Scale, "1")
	if err != nil {
		return nil, err
	}
	color, err := optionalStringExpr(rd.Color)
	if err != nil {
		return nil, err
	}
	rot, err := parseExpr(rd.Rotation, "0")
	if err != nil {
		return nil, err
	}
	return render.DrawPointImage{
		Texture: tex, X: x, Y: y, Justify: parseJustify(rd.Justify),
		Scale: scale, Color: color, Rotation: rot,
	}, nil
}

func compileRectImage(rd rawDirective) (render.Directive, error) {
	tex, err := parseExpr(rd.Texture, "")
	if err != nil {
		return nil, err
	}
	x, err := parseExpr(rd.X, "x")
	if err != nil {
		return nil, err
	}
	y, err := parseExpr(rd.Y, "y")
	if err != nil {
		return nil, err
	}
	w, err := parseExpr(rd.W, "width")
	if err != nil {
		return nil, err
	}
	h, err := parseExpr(rd.H, "height")
	if err != nil {
		return nil, err
	}
	sliceX, err := parseExpr(rd.SliceX, "0")
	if err != nil {
		return nil, err
	}
	sliceY, err := parseExpr(rd.SliceY, "0")
	if err != nil {
		return nil, err
	}
	sliceW, err := parseExpr(rd.SliceW, "0")
	if err != nil {
		return nil, err
	}
	sliceH, err := parseExpr(rd.SliceH, "0")
	if err != nil {
		return nil, err
	}
	scale, err := parseExpr(rd.Scale, "1")
	if err != nil {
		return nil, err
	}
	color, err := optionalStringExpr(rd.Color)
	if err != nil {
		return nil, err
	}
	mode, tilesetID := parseTiler(rd.Tiler)
	return render.DrawRectImage{
		Texture: tex, X: x, Y: y, W: w, H: h,
		SliceX: sliceX, SliceY: sliceY, SliceW: sliceW, SliceH: sliceH,
		Scale: scale, Color: color, Tiler: mode, TilesetID: tilesetID,
	}, nil
}

func compileRectCustom(rd rawDirective) (render.Directive, error) {
	x, err := parseExpr(rd.X, "0")
	if err != nil {
		return nil, err
	}
	y, err := parseExpr(rd.Y, "0")
	if err != nil {
		return nil, err
	}
	w, err := parseExpr(rd.W, "width")
	if err != nil {
		return nil, err
	}
	h, err := parseExpr(rd.H, "height")
	if err != nil {
		return nil, err
	}
	interval, err := parseExpr(rd.Interval, "8")
	if err != nil {
		return nil, err
	}
	inner, err := compileDirectives(rd.Inner)
	if err != nil {
		return nil, err
	}
	return render.DrawRectCustom{X: x, Y: y, W: w, H: h, Interval: interval, Inner: inner}, nil
}

func optionalStringExpr(src string) (expr.Expression, error) {
	if src == "" {
		return nil, nil
	}
	// Bare color/texture attributes are plain hex or names, not already
	// quoted as an expression-language string literal; wrap them so the
	// expression parser treats the whole field as a string constant
	// unless the author explicitly wrote an expression (leading '=').
	// String literals have no escapes, so a value containing a single quote
	// is wrapped in double quotes instead; a value containing both quote
	// characters cannot be wrapped and fails to parse.
	if strings.HasPrefix(src, "=") {
		return parseExpr(src[1:], "")
	}
	if strings.Contains(src, "'") {
		return parseExpr(`"`+src+`"`, "")
	}
	return parseExpr("'"+src+"'", "")
}

func parseJustify(s string) render.Justify {
	switch s {
	case "", "top_left":
		return render.Justify{}
	case "center":
		return render.Justify{X: 0.5, Y: 0.5}
	case "top_center":
		return render.Justify{X: 0.5}
	case "bottom_center":
		return render.Justify{X: 0.5, Y: 1}
	case "bottom_left":
		return render.Justify{Y: 1}
	}
	parts := strings.SplitN(s, ",", 2)
	if len(parts) == 2 {
		x, errX := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if errX == nil && errY == nil {
			return render.Justify{X: x, Y: y}
		}
	}
	return render.Justify{}
}

func parseTiler(s string) (render.TilerMode, byte) {
	switch s {
	case "", "repeat":
		return render.TilerRepeat, 0
	case "9slice":
		return render.Tiler9Slice, 0
	case "fg_ignore":
		return render.TilerFgIgnore, 0
	default:
		if len(s) == 1 {
			return render.TilerTileset, s[0]
		}
		return render.TilerRepeat, 0
	}
}
