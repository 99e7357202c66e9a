// Package layout loads and validates the named layout definitions the
// renderer composes.
package layout

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/einkhub/renderer/internal/widget"
)

// ErrUnknownLayout is returned when a requested layout name does not
// exist. Callers treat this as a configuration error.
var ErrUnknownLayout = errors.New("unknown layout")

// Placement positions one widget within a layout. Bounds are
// caller-supplied and never clipped by the renderer; a well-behaved
// widget draws only inside them.
type Placement struct {
	Type     string         `yaml:"type"`
	X        int            `yaml:"x"`
	Y        int            `yaml:"y"`
	Width    int            `yaml:"width"`
	Height   int            `yaml:"height"`
	Provider string         `yaml:"provider,omitempty"`
	Options  widget.Options `yaml:"options,omitempty"`
}

// Definition is a named, ordered arrangement of widget placements.
// Placement order is draw order: later placements paint over earlier
// ones where they overlap.
type Definition struct {
	Name       string      `yaml:"-"`
	Background *int        `yaml:"background,omitempty"`
	Widgets    []Placement `yaml:"widgets"`
}

// BackgroundLevel returns the canvas background intensity, defaulting to
// white when the layout does not set one.
func (d *Definition) BackgroundLevel() uint8 {
	if d.Background == nil {
		return 255
	}
	return uint8(*d.Background)
}

// file is the on-disk shape of the layouts YAML.
type file struct {
	Layouts  map[string]*Definition `yaml:"layouts"`
	Rotation struct {
		Sequence []string `yaml:"sequence"`
	} `yaml:"rotation"`
}

// Store holds the validated layout definitions plus the rotation
// sequence used by auto-rotate mode.
type Store struct {
	layouts  map[string]*Definition
	rotation []string
}

// Load reads the layouts file and validates every definition against the
// canvas dimensions and the widget registry. Malformed configuration
// fails here, before any rendering happens.
func Load(path string, registry *widget.Registry, canvasWidth, canvasHeight int) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layouts file: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse layouts file: %w", err)
	}
	if len(f.Layouts) == 0 {
		return nil, fmt.Errorf("layouts file %s defines no layouts", path)
	}

	for name, def := range f.Layouts {
		def.Name = name
		if err := validate(def, registry, canvasWidth, canvasHeight); err != nil {
			return nil, fmt.Errorf("layout %s: %w", name, err)
		}
	}

	for _, name := range f.Rotation.Sequence {
		if _, ok := f.Layouts[name]; !ok {
			return nil, fmt.Errorf("rotation sequence references %w: %s", ErrUnknownLayout, name)
		}
	}

	return &Store{layouts: f.Layouts, rotation: f.Rotation.Sequence}, nil
}

func validate(def *Definition, registry *widget.Registry, canvasWidth, canvasHeight int) error {
	if def.Background != nil && (*def.Background < 0 || *def.Background > 255) {
		return fmt.Errorf("background intensity %d out of range 0-255", *def.Background)
	}

	for i, p := range def.Widgets {
		if p.Type == "" {
			return fmt.Errorf("widget %d has no type", i)
		}
		if !registry.Has(p.Type) {
			return fmt.Errorf("widget %d: %w: %s", i, widget.ErrUnknownType, p.Type)
		}
		if p.Width <= 0 || p.Height <= 0 {
			return fmt.Errorf("widget %d (%s): non-positive dimensions %dx%d", i, p.Type, p.Width, p.Height)
		}
		if p.X < 0 || p.Y < 0 || p.X+p.Width > canvasWidth || p.Y+p.Height > canvasHeight {
			return fmt.Errorf("widget %d (%s): bounds (%d,%d,%d,%d) exceed canvas %dx%d",
				i, p.Type, p.X, p.Y, p.Width, p.Height, canvasWidth, canvasHeight)
		}
		// Exercise the constructor once so bad options fail at load time.
		if _, err := registry.Create(p.Type, p.Options); err != nil {
			return fmt.Errorf("widget %d: %w", i, err)
		}
	}
	return nil
}

// Get returns the named layout definition.
func (s *Store) Get(name string) (*Definition, error) {
	def, ok := s.layouts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLayout, name)
	}
	return def, nil
}

// Names lists all layout names, sorted.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.layouts))
	for name := range s.layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RotationSequence returns the configured auto-rotate layout order.
func (s *Store) RotationSequence() []string {
	return s.rotation
}
