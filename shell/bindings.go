package shell

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
)

var (
	// ErrReadOnly is returned when setting a binding that has no setter.
	ErrReadOnly = errors.New("shell: binding is read-only")
	// ErrUnknownBinding is returned for names not in the binding set.
	ErrUnknownBinding = errors.New("shell: unknown binding")
)

// Binding is one live, named view of window state.
type Binding struct {
	Name string
	Help string
	Get  func() string
	Set  func(string) error // nil for read-only bindings
}

// ReadOnly reports whether the binding rejects Set.
func (b Binding) ReadOnly() bool { return b.Set == nil }

// Bindings is the set of names the shell can inspect and mutate. Getters and
// setters touch window state, so callers run them on the UI thread.
type Bindings struct {
	byName map[string]Binding
}

func NewBindings(bs ...Binding) *Bindings {
	r := &Bindings{byName: make(map[string]Binding, len(bs))}
	for _, b := range bs {
		r.Add(b)
	}
	return r
}

// Add registers or replaces a binding.
func (r *Bindings) Add(b Binding) { r.byName[b.Name] = b }

// Names returns the binding names in sorted order.
func (r *Bindings) Names() []string {
	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the binding called name.
func (r *Bindings) Lookup(name string) (Binding, bool) {
	b, ok := r.byName[name]
	return b, ok
}

func (r *Bindings) Get(name string) (string, error) {
	b, ok := r.byName[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownBinding, name)
	}
	return b.Get(), nil
}

func (r *Bindings) Set(name, value string) error {
	b, ok := r.byName[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownBinding, name)
	}
	if b.Set == nil {
		return fmt.Errorf("%w: %s", ErrReadOnly, name)
	}
	return b.Set(value)
}

// TargetBindings exposes the window state of t.
func TargetBindings(t Target) *Bindings {
	return NewBindings(
		Binding{Name: "title", Help: "window title",
			Get: t.Title,
			Set: func(v string) error { t.SetTitle(v); return nil }},
		Binding{Name: "path", Help: "input path or URL",
			Get: t.Path},
		Binding{Name: "mode", Help: "run mode",
			Get: func() string { return t.Mode().String() }},
		Binding{Name: "status", Help: "status line text",
			Get: t.Status,
			Set: func(v string) error { t.SetStatus(v); return nil }},
		Binding{Name: "zoom", Help: "surface zoom factor",
			Get: func() string { return strconv.FormatFloat(t.Zoom(), 'g', 4, 64) },
			Set: func(v string) error {
				f, err := parseZoom(v)
				if err != nil {
					return err
				}
				t.SetZoom(f)
				return nil
			}},
		Binding{Name: "theme", Help: "light or dark",
			Get: t.Theme,
			Set: t.SetTheme},
		Binding{Name: "size", Help: "image size",
			Get: func() string { return t.ImageSize().String() }},
		Binding{Name: "placement", Help: "initial window geometry",
			Get: func() string { return t.Placement().String() }},
		Binding{Name: "geometry", Help: "current window geometry",
			Get: func() string {
				g, err := t.Geometry()
				if err != nil {
					return "unknown"
				}
				return g.String()
			}},
		Binding{Name: "visible", Help: "whether the window is shown",
			Get: func() string { return strconv.FormatBool(t.Visible()) }},
	)
}

func parseZoom(v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("%w: zoom must be a positive number, got %q", ErrUsage, v)
	}
	return f, nil
}
