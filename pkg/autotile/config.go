package autotile

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ConfigError reports a malformed tileset XML document.
type ConfigError struct {
	Description string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("autotile: bad config: %s", e.Description)
}

type xmlDoc struct {
	XMLName  xml.Name     `xml:"Data"`
	Tilesets []xmlTileset `xml:"Tileset"`
}

type xmlTileset struct {
	ID      string   `xml:"id,attr"`
	Path    string   `xml:"path,attr"`
	Copy    string   `xml:"copy,attr"`
	Ignores string   `xml:"ignores,attr"`
	Sets    []xmlSet `xml:"set"`
}

type xmlSet struct {
	Mask    string `xml:"mask,attr"`
	Tiles   string `xml:"tiles,attr"`
	Sprites string `xml:"sprites,attr"`
}

// Load parses a tileset XML document (the `xxx-xxx-xxx` mask syntax of
// spec.md §4.4), returning every declared tileset keyed by its single-byte
// id. Config load rules: a tileset with an empty `copy` attribute starts
// blank; a one-character `copy` inherits another already-declared
// tileset's tables, then applies its own `<set>` overrides on top. Each
// tileset's `<set>` elements are processed in reverse declaration order so
// that, within a 256-way loop over matching masks, the earliest-declared
// set ends up winning for any bit pattern more than one set matches.
func Load(r io.Reader) (map[byte]*Tileset, error) {
	var doc xmlDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, &ConfigError{Description: fmt.Sprintf("xml: %v", err)}
	}

	out := make(map[byte]*Tileset, len(doc.Tilesets))
	for _, st := range doc.Tilesets {
		if len(st.ID) != 1 {
			return nil, &ConfigError{Description: fmt.Sprintf("tileset id %q must be a single ASCII character", st.ID)}
		}
		id := st.ID[0]

		var ts *Tileset
		if st.Copy == "" {
			ts = &Tileset{ID: id, Texture: st.Path}
		} else {
			if len(st.Copy) != 1 {
				return nil, &ConfigError{Description: fmt.Sprintf("tileset %q: copy id %q must be a single character", st.ID, st.Copy)}
			}
			copied, ok := out[st.Copy[0]]
			if !ok {
				return nil, &ConfigError{Description: fmt.Sprintf("tileset %q: no earlier tileset %q to copy", st.ID, st.Copy)}
			}
			ts = copied.clone()
			ts.ID = id
			ts.Texture = st.Path
		}

		switch st.Ignores {
		case "*":
			ts.IgnoresAll = true
		case "":
		default:
			if len(st.Ignores) != 1 {
				return nil, &ConfigError{Description: fmt.Sprintf("tileset %q: ignores %q must be '*' or a single character", st.ID, st.Ignores)}
			}
			if ts.Ignores == nil {
				ts.Ignores = make(map[byte]bool, 1)
			}
			ts.Ignores[st.Ignores[0]] = true
		}

		for i := len(st.Sets) - 1; i >= 0; i-- {
			set := st.Sets[i]
			tiles, err := parseTileList(set.Tiles)
			if err != nil {
				return nil, &ConfigError{Description: fmt.Sprintf("tileset %q: %v", st.ID, err)}
			}
			switch set.Mask {
			case "padding":
				ts.Padding = tiles
			case "center":
				ts.Center = tiles
			default:
				mask, value, err := parseMask(set.Mask)
				if err != nil {
					return nil, &ConfigError{Description: fmt.Sprintf("tileset %q: %v", st.ID, err)}
				}
				for bits := 0; bits < 256; bits++ {
					if bits&mask == value {
						ts.Edges[bits] = tiles
					}
				}
			}
		}

		out[id] = ts
	}
	return out, nil
}

// parseMask decodes an "xxx-xxx-xxx" mask string into (mask, value) pairs
// for the 8 bit positions NW, N, NE, W, E, SW, S, SE in that order.
func parseMask(s string) (mask, value int, err error) {
	if len(s) != 11 || s[3] != '-' || s[7] != '-' {
		return 0, 0, fmt.Errorf("mask %q must be of the form xxx-xxx-xxx, or the literals 'padding'/'center'", s)
	}
	positions := [8]int{0, 1, 2, 4, 6, 8, 9, 10}
	for bit, pos := range positions {
		switch s[pos] {
		case 'x':
		case '0':
			mask |= 1 << uint(bit)
		case '1':
			mask |= 1 << uint(bit)
			value |= 1 << uint(bit)
		default:
			return 0, 0, fmt.Errorf("mask %q has invalid character %q at position %d", s, s[pos], pos)
		}
	}
	return mask, value, nil
}

// parseTileList parses a ";"-separated list of "x,y" sub-tile coordinates.
func parseTileList(text string) (Slot, error) {
	pieces := strings.Split(text, ";")
	tiles := make(Slot, 0, len(pieces))
	for _, piece := range pieces {
		parts := strings.Split(piece, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("tile declaration %q must be semicolon-separated sets of two comma-separated integers", text)
		}
		x, errX := strconv.ParseUint(strings.TrimSpace(parts[0]), 10, 32)
		y, errY := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 32)
		if errX != nil || errY != nil {
			return nil, fmt.Errorf("tile declaration %q must be semicolon-separated sets of two comma-separated integers", text)
		}
		tiles = append(tiles, TileCoord{X: uint32(x), Y: uint32(y)})
	}
	return tiles, nil
}
