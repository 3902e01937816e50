package palette

import (
	"fmt"

	"github.com/levelsmith/levelsmith/pkg/render"
)

// Manifest declares a content pack's identity, per spec.md §6's
// "a manifest declares the pack's name and version".
type Manifest struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// EntityConfig is one entity or trigger type's editor-facing definition:
// its draw-directive tree (used for both its visual and its hitbox, since
// the directive tree is the only drawing mechanism the spec defines) and
// the resize/size constraints tools consult before mutating it.
type EntityConfig struct {
	Type       string
	Directives []render.Directive
	Resizable  bool
	MinWidth   int
	MinHeight  int
	HasNodes   bool
}

type rawEntityConfig struct {
	Type      string         `yaml:"type"`
	Directives []rawDirective `yaml:"directives"`
	Resizable bool           `yaml:"resizable"`
	MinWidth  int            `yaml:"min_width"`
	MinHeight int            `yaml:"min_height"`
	HasNodes  bool           `yaml:"has_nodes"`
}

func (r rawEntityConfig) compile() (*EntityConfig, error) {
	if r.Type == "" {
		return nil, fmt.Errorf("entity config missing required \"type\"")
	}
	dirs, err := compileDirectives(r.Directives)
	if err != nil {
		return nil, fmt.Errorf("entity %q: %w", r.Type, err)
	}
	return &EntityConfig{
		Type: r.Type, Directives: dirs, Resizable: r.Resizable,
		MinWidth: r.MinWidth, MinHeight: r.MinHeight, HasNodes: r.HasNodes,
	}, nil
}

// TriggerConfig mirrors EntityConfig; triggers share the entity shape
// (position, bounds, draw directives) but are kept as a distinct config
// map so palette lookups never confuse the two, per spec.md §3's
// entity/trigger split.
type TriggerConfig = EntityConfig

type rawTriggerConfig = rawEntityConfig

// StylegroundConfig is one styleground type's definition: parallax/loop
// parameters are left to the caller's attribute map (read through the
// expression environment at render time), here we hold only its draw tree.
type StylegroundConfig struct {
	Type       string
	Directives []render.Directive
}

type rawStylegroundConfig struct {
	Type       string         `yaml:"type"`
	Directives []rawDirective `yaml:"directives"`
}

func (r rawStylegroundConfig) compile() (*StylegroundConfig, error) {
	if r.Type == "" {
		return nil, fmt.Errorf("styleground config missing required \"type\"")
	}
	dirs, err := compileDirectives(r.Directives)
	if err != nil {
		return nil, fmt.Errorf("styleground %q: %w", r.Type, err)
	}
	return &StylegroundConfig{Type: r.Type, Directives: dirs}, nil
}

// defaultEntityConfig is the mandatory "default" fallback entry every
// palette carries per spec.md §4.5, used when a map references a type not
// declared by any loaded content pack: a translucent red rectangle over
// the entity's own bounds.
func defaultEntityConfig() *EntityConfig {
	dirs, err := compileDirectives([]rawDirective{{Kind: "rect", Fill: "ff000080"}})
	if err != nil {
		panic("palette: built-in default entity directive failed to compile: " + err.Error())
	}
	return &EntityConfig{Type: "default", Directives: dirs}
}

func defaultStylegroundConfig() *StylegroundConfig {
	return &StylegroundConfig{Type: "default"}
}
