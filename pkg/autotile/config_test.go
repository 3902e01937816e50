package autotile

import (
	"strings"
	"testing"
)

func TestParseMask(t *testing.T) {
	cases := []struct {
		mask      string
		wantMask  int
		wantValue int
	}{
		{"000-000-000", 0xff, 0x00},
		{"111-111-111", 0xff, 0xff},
		{"xxx-xxx-xxx", 0x00, 0x00},
		{"1xx-x0x-xx1", 1<<0 | 1<<7, 1<<0 | 1<<7},
	}
	for _, c := range cases {
		mask, value, err := parseMask(c.mask)
		if err != nil {
			t.Fatalf("parseMask(%q): %v", c.mask, err)
		}
		if mask != c.wantMask || value != c.wantValue {
			t.Errorf("parseMask(%q) = (%#x, %#x), want (%#x, %#x)", c.mask, mask, value, c.wantMask, c.wantValue)
		}
	}
}

func TestParseMaskRejectsBadForm(t *testing.T) {
	for _, bad := range []string{"", "000-000-00", "000x000x000", "2xx-xxx-xxx"} {
		if _, _, err := parseMask(bad); err == nil {
			t.Errorf("parseMask(%q) succeeded, want error", bad)
		}
	}
}

func TestParseTileList(t *testing.T) {
	got, err := parseTileList("1,2;3,4")
	if err != nil {
		t.Fatalf("parseTileList: %v", err)
	}
	want := Slot{{X: 1, Y: 2}, {X: 3, Y: 4}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("parseTileList = %v, want %v", got, want)
	}
}

func TestParseTileListRejectsMalformed(t *testing.T) {
	for _, bad := range []string{"1,2,3", "1", "a,b"} {
		if _, err := parseTileList(bad); err == nil {
			t.Errorf("parseTileList(%q) succeeded, want error", bad)
		}
	}
}

func TestLoadCopyInheritance(t *testing.T) {
	doc := `<Data>
  <Tileset id="1" path="dirt">
    <set mask="padding" tiles="0,0"/>
    <set mask="center" tiles="1,1"/>
  </Tileset>
  <Tileset id="2" path="dirt-variant" copy="1">
    <set mask="center" tiles="2,2"/>
  </Tileset>
</Data>`
	sets, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	base, variant := sets['1'], sets['2']
	if base == nil || variant == nil {
		t.Fatalf("missing tileset: base=%v variant=%v", base, variant)
	}
	if len(variant.Padding) != 1 || variant.Padding[0] != (TileCoord{0, 0}) {
		t.Errorf("copied tileset should inherit padding, got %v", variant.Padding)
	}
	if len(variant.Center) != 1 || variant.Center[0] != (TileCoord{2, 2}) {
		t.Errorf("copied tileset's own <set> should override center, got %v", variant.Center)
	}
	if len(base.Center) != 1 || base.Center[0] != (TileCoord{1, 1}) {
		t.Errorf("base tileset must be unaffected by the copy's override, got %v", base.Center)
	}
}

func TestLoadReverseDeclarationOrderOverride(t *testing.T) {
	doc := `<Data>
  <Tileset id="1" path="dirt">
    <set mask="000-000-000" tiles="0,0"/>
    <set mask="xxx-xxx-xxx" tiles="9,9"/>
  </Tileset>
</Data>`
	sets, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	ts := sets['1']
	if len(ts.Edges[0]) != 1 || ts.Edges[0][0] != (TileCoord{0, 0}) {
		t.Errorf("earlier-declared set should win for mask 0, got %v", ts.Edges[0])
	}
	if len(ts.Edges[0xab]) != 1 || ts.Edges[0xab][0] != (TileCoord{9, 9}) {
		t.Errorf("wildcard set should apply elsewhere, got %v", ts.Edges[0xab])
	}
}

func TestLoadIgnores(t *testing.T) {
	doc := `<Data>
  <Tileset id="1" path="dirt" ignores="*">
    <set mask="center" tiles="0,0"/>
  </Tileset>
  <Tileset id="2" path="grass" ignores="3">
    <set mask="center" tiles="0,0"/>
  </Tileset>
</Data>`
	sets, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !sets['1'].IgnoresAll {
		t.Error("tileset 1 should ignore all characters")
	}
	if !sets['2'].ignoresChar('3') || sets['2'].ignoresChar('4') {
		t.Error("tileset 2 should ignore only '3'")
	}
}

func TestLoadRejectsMultiCharID(t *testing.T) {
	doc := `<Data><Tileset id="ab" path="x"></Tileset></Data>`
	if _, err := Load(strings.NewReader(doc)); err == nil {
		t.Error("Load should reject a multi-character tileset id")
	}
}

func TestLoadRejectsUnknownCopyTarget(t *testing.T) {
	doc := `<Data><Tileset id="2" path="x" copy="9"></Tileset></Data>`
	if _, err := Load(strings.NewReader(doc)); err == nil {
		t.Error("Load should reject a copy of an undeclared tileset")
	}
}
