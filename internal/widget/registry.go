package widget

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownType is returned when a layout names a widget type that was
// never registered. This is a configuration error the renderer surfaces
// to its caller rather than swallowing.
var ErrUnknownType = errors.New("unknown widget type")

// Registry maps widget type names to constructors. It is populated once
// at process start and passed explicitly to whoever needs dispatch; there
// is no package-level instance.
type Registry struct {
	constructors map[string]Constructor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{constructors: make(map[string]Constructor)}
}

// Register adds a constructor under name, replacing any previous one.
func (r *Registry) Register(name string, ctor Constructor) {
	r.constructors[name] = ctor
}

// Has reports whether name is a registered widget type.
func (r *Registry) Has(name string) bool {
	_, ok := r.constructors[name]
	return ok
}

// Create instantiates a widget of the named type with the given options.
func (r *Registry) Create(name string, opts Options) (Widget, error) {
	ctor, ok := r.constructors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, name)
	}
	w, err := ctor(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to construct widget %s: %w", name, err)
	}
	return w, nil
}

// Types lists all registered widget type names, sorted.
func (r *Registry) Types() []string {
	names := make([]string, 0, len(r.constructors))
	for name := range r.constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builtins returns a registry with every widget type this binary ships.
func Builtins() *Registry {
	r := NewRegistry()
	r.Register("clock", NewClock)
	r.Register("text", NewText)
	r.Register("weather", NewWeather)
	r.Register("calendar", NewCalendar)
	r.Register("calendar_week", NewCalendarWeek)
	r.Register("activity", NewActivity)
	r.Register("activity_chart", NewActivityChart)
	r.Register("tasks", NewTasks)
	r.Register("indoor_sensor", NewIndoorSensor)
	r.Register("photo_frame", NewPhotoFrame)
	return r
}
