package levelmap

import "github.com/levelsmith/levelsmith/pkg/binel"

// Styleground is a parallax backdrop or foreground layer. Its behavior is
// entirely attribute-driven; the accessors below project the common
// attributes spec.md §3 names, defaulting the way the reference engine does
// when an attribute is absent.
type Styleground struct {
	Type       string
	Attributes map[string]binel.AttrValue
}

// Clone returns a deep copy of s.
func (s *Styleground) Clone() *Styleground {
	if s == nil {
		return nil
	}
	out := &Styleground{Type: s.Type, Attributes: make(map[string]binel.AttrValue, len(s.Attributes))}
	for k, v := range s.Attributes {
		out.Attributes[k] = v
	}
	return out
}

func (s *Styleground) floatAttr(key string, def float32) float32 {
	v, ok := s.Attributes[key]
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

func (s *Styleground) boolAttr(key string, def bool) bool {
	v, ok := s.Attributes[key]
	if !ok {
		return def
	}
	if b, ok := v.AsBool(); ok {
		return b
	}
	return def
}

func (s *Styleground) textAttr(key, def string) string {
	v, ok := s.Attributes[key]
	if !ok {
		return def
	}
	if t, ok := v.AsText(); ok {
		return t
	}
	return def
}

func (s *Styleground) ScrollX() float32 { return s.floatAttr("scrollx", 1) }
func (s *Styleground) ScrollY() float32 { return s.floatAttr("scrolly", 1) }
func (s *Styleground) SpeedX() float32  { return s.floatAttr("speedx", 1) }
func (s *Styleground) SpeedY() float32  { return s.floatAttr("speedy", 1) }
func (s *Styleground) Alpha() float32   { return s.floatAttr("alpha", 1) }
func (s *Styleground) Color() string    { return s.textAttr("color", "ffffff") }
func (s *Styleground) Loop() bool       { return s.boolAttr("loop", true) }
func (s *Styleground) Instant() bool    { return s.boolAttr("instant", true) }
func (s *Styleground) FlipX() bool      { return s.boolAttr("flipx", false) }
func (s *Styleground) FlipY() bool      { return s.boolAttr("flipy", false) }
func (s *Styleground) Always() bool     { return s.boolAttr("always", false) }
func (s *Styleground) Dreaming() bool   { return s.boolAttr("dreaming", false) }
func (s *Styleground) Flag() string     { return s.textAttr("flag", "") }
func (s *Styleground) NotFlag() bool    { return s.boolAttr("notflag", false) }
func (s *Styleground) Exclude() string  { return s.textAttr("exclude", "") }
func (s *Styleground) Only() string     { return s.textAttr("only", "") }
func (s *Styleground) FadeX() string    { return s.textAttr("fadex", "") }
func (s *Styleground) FadeY() string    { return s.textAttr("fadey", "") }

// StylegroundLoc addresses one styleground within its (fg, idx) list, as used
// by move/selection actions.
type StylegroundLoc struct {
	FG  bool
	Idx int
}
