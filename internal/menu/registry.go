package menu

import (
	"fmt"
	"sort"
)

// Registry exposes lookup utilities for template definitions.
type Registry struct {
	templates map[string]*Template
}

func newRegistry() *Registry {
	return &Registry{templates: make(map[string]*Template)}
}

// Register adds t under its name.
func (r *Registry) Register(t *Template) error {
	if _, ok := r.templates[t.name]; ok {
		return fmt.Errorf("%q: %w", t.name, ErrDuplicateTemplate)
	}
	r.templates[t.name] = t
	return nil
}

// Find locates a template by name.
func (r *Registry) Find(name string) (*Template, bool) {
	t, ok := r.templates[name]
	return t, ok
}

// Names lists registered template names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
