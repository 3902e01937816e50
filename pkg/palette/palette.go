package palette

import (
	"fmt"
	"io"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/levelsmith/levelsmith/pkg/autotile"
	"github.com/levelsmith/levelsmith/pkg/render"
)

// Palette is the read-only fold of every active content pack's
// configuration, per spec.md §4.5.
type Palette struct {
	FgTiler      map[byte]*autotile.Tileset
	BgTiler      map[byte]*autotile.Tileset
	Entities     map[string]*EntityConfig
	Triggers     map[string]*TriggerConfig
	Stylegrounds map[string]*StylegroundConfig

	// Atlas is set by the caller after Load, since atlas image decoding
	// is an external collaborator (spec.md §6) the palette never performs
	// itself.
	Atlas render.SpriteAtlas

	// Packs records the manifest of every pack that contributed to this
	// palette, in load order.
	Packs []Manifest

	pickerFgTiles   *orderedSet
	pickerBgTiles   *orderedSet
	pickerEntities  *orderedSet
	pickerTriggers  *orderedSet
	pickerDecals    *orderedSet
}

// PickerFgTiles, PickerBgTiles, PickerEntities, PickerTriggers, and
// PickerDecals return the ordered lists the spec's picker UIs iterate,
// in first-declared order across all loaded packs.
func (p *Palette) PickerFgTiles() []string  { return p.pickerFgTiles.items() }
func (p *Palette) PickerBgTiles() []string  { return p.pickerBgTiles.items() }
func (p *Palette) PickerEntities() []string { return p.pickerEntities.items() }
func (p *Palette) PickerTriggers() []string { return p.pickerTriggers.items() }
func (p *Palette) PickerDecals() []string   { return p.pickerDecals.items() }

// Loader aggregates Sources into a Palette. It holds no state between
// calls to Load; callers construct a fresh one (or reuse it, it is
// stateless) whenever a session's active pack set changes.
type Loader struct{}

// NewLoader returns a Loader.
func NewLoader() *Loader { return &Loader{} }

// origin tracks, for each category+name, which SourceKind last supplied
// it — the minimum bookkeeping the folder-beats-archive rule needs.
type origin struct {
	kind SourceKind
}

// Load merges every source's configuration into one Palette. Returns the
// palette, a list of human-readable warnings (folder/archive conflicts,
// per-file parse failures that were skipped), and an error only for
// conditions that make the whole load meaningless (a source's List fails).
func (l *Loader) Load(sources []Source) (*Palette, []string, error) {
	p := &Palette{
		FgTiler:        map[byte]*autotile.Tileset{},
		BgTiler:        map[byte]*autotile.Tileset{},
		Entities:       map[string]*EntityConfig{"default": defaultEntityConfig()},
		Triggers:       map[string]*TriggerConfig{"default": defaultEntityConfig()},
		Stylegrounds:   map[string]*StylegroundConfig{"default": defaultStylegroundConfig()},
		pickerFgTiles:  newOrderedSet(),
		pickerBgTiles:  newOrderedSet(),
		pickerEntities: newOrderedSet(),
		pickerTriggers: newOrderedSet(),
		pickerDecals:   newOrderedSet(),
	}

	entityOrigin := map[string]origin{}
	triggerOrigin := map[string]origin{}
	stylegroundOrigin := map[string]origin{}
	fgTileOrigin := map[byte]origin{}
	bgTileOrigin := map[byte]origin{}

	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	for _, src := range sources {
		paths, err := src.List()
		if err != nil {
			return nil, warnings, fmt.Errorf("listing source %q: %w", src.Name, err)
		}
		for _, rel := range paths {
			switch {
			case rel == "manifest.yml" || rel == "manifest.yaml":
				m, err := readManifest(src, rel)
				if err != nil {
					warn("pack %q: %v", src.Name, err)
					continue
				}
				p.Packs = append(p.Packs, m)
			case strings.HasPrefix(rel, "entities/") && isYAML(rel):
				if err := loadEntities(src, rel, p.Entities, entityOrigin, p.pickerEntities, warn); err != nil {
					warn("pack %q: %v", src.Name, err)
				}
			case strings.HasPrefix(rel, "triggers/") && isYAML(rel):
				if err := loadTriggers(src, rel, p.Triggers, triggerOrigin, p.pickerTriggers, warn); err != nil {
					warn("pack %q: %v", src.Name, err)
				}
			case strings.HasPrefix(rel, "stylegrounds/") && isYAML(rel):
				if err := loadStylegrounds(src, rel, p.Stylegrounds, stylegroundOrigin, warn); err != nil {
					warn("pack %q: %v", src.Name, err)
				}
			case rel == "tilesets/fg.xml":
				if err := loadTileset(src, rel, p.FgTiler, fgTileOrigin, p.pickerFgTiles, warn); err != nil {
					warn("pack %q: %v", src.Name, err)
				}
			case rel == "tilesets/bg.xml":
				if err := loadTileset(src, rel, p.BgTiler, bgTileOrigin, p.pickerBgTiles, warn); err != nil {
					warn("pack %q: %v", src.Name, err)
				}
			case strings.HasPrefix(rel, "decals/"):
				p.pickerDecals.add(strings.TrimSuffix(path.Base(rel), path.Ext(rel)))
			}
		}
	}

	return p, warnings, nil
}

func readManifest(src Source, rel string) (Manifest, error) {
	data, err := readAll(src, rel)
	if err != nil {
		return Manifest{}, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("%s: %w", rel, err)
	}
	return m, nil
}

func isYAML(rel string) bool {
	return strings.HasSuffix(rel, ".yml") || strings.HasSuffix(rel, ".yaml")
}

func readAll(src Source, rel string) ([]byte, error) {
	r, err := src.Open(rel)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func loadEntities(src Source, rel string, dst map[string]*EntityConfig, origins map[string]origin, picker *orderedSet, warn func(string, ...any)) error {
	data, err := readAll(src, rel)
	if err != nil {
		return err
	}
	var raw []rawEntityConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%s: %w", rel, err)
	}
	for _, r := range raw {
		cfg, err := r.compile()
		if err != nil {
			warn("pack %q, %s: %v", src.Name, rel, err)
			continue
		}
		if !shouldOverride(origins, cfg.Type, src.Kind) {
			warn("entity %q: folder-packed module keeps precedence over archive %q", cfg.Type, src.Name)
			continue
		}
		dst[cfg.Type] = cfg
		origins[cfg.Type] = origin{kind: src.Kind}
		picker.add(cfg.Type)
	}
	return nil
}

func loadTriggers(src Source, rel string, dst map[string]*TriggerConfig, origins map[string]origin, picker *orderedSet, warn func(string, ...any)) error {
	data, err := readAll(src, rel)
	if err != nil {
		return err
	}
	var raw []rawTriggerConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%s: %w", rel, err)
	}
	for _, r := range raw {
		cfg, err := r.compile()
		if err != nil {
			warn("pack %q, %s: %v", src.Name, rel, err)
			continue
		}
		if !shouldOverride(origins, cfg.Type, src.Kind) {
			warn("trigger %q: folder-packed module keeps precedence over archive %q", cfg.Type, src.Name)
			continue
		}
		dst[cfg.Type] = cfg
		origins[cfg.Type] = origin{kind: src.Kind}
		picker.add(cfg.Type)
	}
	return nil
}

func loadStylegrounds(src Source, rel string, dst map[string]*StylegroundConfig, origins map[string]origin, warn func(string, ...any)) error {
	data, err := readAll(src, rel)
	if err != nil {
		return err
	}
	var raw []rawStylegroundConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%s: %w", rel, err)
	}
	for _, r := range raw {
		cfg, err := r.compile()
		if err != nil {
			warn("pack %q, %s: %v", src.Name, rel, err)
			continue
		}
		if !shouldOverride(origins, cfg.Type, src.Kind) {
			warn("styleground %q: folder-packed module keeps precedence over archive %q", cfg.Type, src.Name)
			continue
		}
		dst[cfg.Type] = cfg
		origins[cfg.Type] = origin{kind: src.Kind}
	}
	return nil
}

func loadTileset(src Source, rel string, dst map[byte]*autotile.Tileset, origins map[byte]origin, picker *orderedSet, warn func(string, ...any)) error {
	r, err := src.Open(rel)
	if err != nil {
		return err
	}
	defer r.Close()
	sets, err := autotile.Load(r)
	if err != nil {
		return fmt.Errorf("%s: %w", rel, err)
	}
	for id, ts := range sets {
		if !shouldOverride(origins, id, src.Kind) {
			warn("tileset %q: folder-packed module keeps precedence over archive %q", string(id), src.Name)
			continue
		}
		dst[id] = ts
		origins[id] = origin{kind: src.Kind}
		picker.add(string(id))
	}
	return nil
}

// shouldOverride implements spec.md §4.5's conflict policy: last-write-wins,
// except a folder-packed declaration is never displaced by a
// later-declared archive-packed one for the same name.
func shouldOverride[K comparable](origins map[K]origin, key K, incoming SourceKind) bool {
	existing, ok := origins[key]
	if !ok {
		return true
	}
	return !(existing.kind == SourceFolder && incoming == SourceArchive)
}

// orderedSet tracks first-seen insertion order for the picker lists, so a
// later override of a name's value doesn't reshuffle its position.
type orderedSet struct {
	order []string
	seen  map[string]bool
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: map[string]bool{}}
}

func (s *orderedSet) add(name string) {
	if s.seen[name] {
		return
	}
	s.seen[name] = true
	s.order = append(s.order, name)
}

func (s *orderedSet) items() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
