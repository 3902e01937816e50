package binel

import "strings"

// defaultTable maps (parent element name, attribute name) to the value that
// attribute takes when absent, for the tabulated set of attributes the
// reference encoder is known to omit when they hold their default.
var defaultTable = map[[2]string]AttrValue{
	{"level", "musicLayer1"}: Bool(true),
	{"level", "musicLayer2"}: Bool(true),
	{"level", "musicLayer3"}: Bool(true),
	{"level", "musicLayer4"}: Bool(true),
	{"level", "dark"}:        Bool(false),
	{"level", "underwater"}:  Bool(false),
	{"level", "space"}:       Bool(false),
	{"level", "disableDownTransition"}: Bool(false),
	{"level", "whisper"}:               Bool(false),
	{"Map", "Dreaming"}:                Bool(false),
}

// coercibleAttrs lists attributes where an int32 value and a text value that
// spells the same number are considered equal — some entity attributes are
// historically serialized as plain numbers by some tools and as strings by
// others.
var coercibleAttrs = map[string]bool{
	"id":     true,
	"width":  true,
	"height": true,
	"x":      true,
	"y":      true,
}

// stylegroundDefaultOne lists styleground attributes that default to "1"
// (i.e. full opacity / unit speed) when absent.
var stylegroundDefaultOne = map[string]bool{
	"alpha":  true,
	"scrollx": true,
	"scrolly": true,
	"speedx":  true,
	"speedy":  true,
}

// stylegroundDefaultTrue lists styleground attributes that default to true
// when absent.
var stylegroundDefaultTrue = map[string]bool{
	"loop":    true,
	"instant": true,
}

// tileBlobAttrs lists attributes holding newline-separated tile text, which
// tolerates \r\n normalization and trailing blank lines.
var tileBlobAttrs = map[string]bool{
	"innerText": true,
}

// FuzzyEqual reports whether a and b describe the same level data, tolerating
// the encoding variances spec.md §4.1 tabulates: default-omission, int/text
// coercion on a whitelist, styleground-specific defaults, and tile-text
// whitespace normalization. It is not a general-purpose diff; the tolerated
// differences are exactly the ones listed here.
func FuzzyEqual(a, b *Element) bool {
	return fuzzyEqual(a, b, "")
}

func fuzzyEqual(a, b *Element, parent string) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Name != b.Name {
		return false
	}

	keys := map[string]bool{}
	for _, at := range a.attrs {
		keys[at.key] = true
	}
	for _, at := range b.attrs {
		keys[at.key] = true
	}

	for key := range keys {
		av, aok := a.Get(key)
		bv, bok := b.Get(key)
		if !attrFuzzyEqual(a.Name, key, av, aok, bv, bok) {
			return false
		}
	}

	return childrenFuzzyEqual(a.Children, b.Children, a.Name)
}

func attrFuzzyEqual(parent, key string, av AttrValue, aok bool, bv AttrValue, bok bool) bool {
	if !aok {
		av, aok = resolveDefault(parent, key, bv)
	}
	if !bok {
		bv, bok = resolveDefault(parent, key, av)
	}
	if aok != bok {
		return false
	}
	if !aok {
		return true // both missing, no default applies: vacuously equal
	}

	if av.Equal(bv) {
		return true
	}

	if tileBlobAttrs[key] {
		at, aIsText := av.AsText()
		bt, bIsText := bv.AsText()
		if aIsText && bIsText && normalizeTileBlob(at) == normalizeTileBlob(bt) {
			return true
		}
	}

	if coercibleAttrs[key] {
		if coerceEqual(av, bv) {
			return true
		}
	}

	return false
}

// resolveDefault fills in a missing attribute's implied value from the
// (parent, key) table and the styleground default lists. The lookup depends
// on parent and key only; other (the present side's value) is not consulted.
func resolveDefault(parent, key string, other AttrValue) (AttrValue, bool) {
	if v, ok := defaultTable[[2]string{parent, key}]; ok {
		return v, true
	}
	if stylegroundDefaultOne[key] {
		return Text("1"), true
	}
	if stylegroundDefaultTrue[key] {
		return Bool(true), true
	}
	return AttrValue{}, false
}

func coerceEqual(a, b AttrValue) bool {
	ai, aok := a.AsInt()
	bi, bok := b.AsInt()
	if aok && bok {
		return ai == bi
	}
	at, atok := a.AsText()
	bt, btok := b.AsText()
	if atok && btok {
		return at == bt
	}
	if aok && btok {
		return a.Display() == bt
	}
	if bok && atok {
		return b.Display() == at
	}
	return false
}

// normalizeTileBlob applies the \r\n -> \n normalization and trailing
// blank-line trimming spec.md §4.1 tolerates for tile text blobs.
func normalizeTileBlob(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

func childrenFuzzyEqual(a, b []*Element, parent string) bool {
	ag := groupByName(a)
	bg := groupByName(b)
	if len(ag) != len(bg) {
		return false
	}
	for name, aList := range ag {
		bList, ok := bg[name]
		if !ok || len(aList) != len(bList) {
			return false
		}
		for i := range aList {
			if !fuzzyEqual(aList[i], bList[i], parent) {
				return false
			}
		}
	}
	return true
}

func groupByName(elems []*Element) map[string][]*Element {
	out := make(map[string][]*Element)
	for _, e := range elems {
		out[e.Name] = append(out[e.Name], e)
	}
	return out
}
