package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/arbor/internal/compiler"
	"github.com/aretw0/arbor/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Preset is a named grammar with the iteration count it is meant to be viewed at.
type Preset struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Grammar     string `json:"grammar" yaml:"grammar"`
	Iterations  uint   `json:"iterations" yaml:"iterations"`
}

// Registry manages the available grammar presets.
type Registry struct {
	mu      sync.RWMutex
	presets map[string]Preset
	parser  *compiler.Parser
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		presets: make(map[string]Preset),
		parser:  compiler.NewParser(),
	}
}

// NewDefault creates a registry holding the built-in presets.
func NewDefault() *Registry {
	r := NewRegistry()
	for _, p := range builtin {
		if err := r.Register(p); err != nil {
			panic(fmt.Sprintf("builtin preset %s: %v", p.Name, err))
		}
	}
	return r
}

// Register adds a preset to the registry after checking that its grammar parses.
// If a preset with the same name exists, it is overwritten.
func (r *Registry) Register(p Preset) error {
	if p.Name == "" {
		return fmt.Errorf("preset name cannot be empty")
	}
	if _, err := r.parser.Parse(p.Grammar); err != nil {
		return fmt.Errorf("preset %s: %w", p.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.presets[p.Name] = p
	return nil
}

// Get looks up a preset by name.
// Returns domain.ErrPresetNotFound if the preset does not exist.
func (r *Registry) Get(name string) (Preset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %s", domain.ErrPresetNotFound, name)
	}
	return p, nil
}

// Names returns the registered preset names in ascending order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.presets))
	for name := range r.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns the registered presets ordered by name.
func (r *Registry) List() []Preset {
	names := r.Names()

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Preset, 0, len(names))
	for _, name := range names {
		if p, ok := r.presets[name]; ok {
			out = append(out, p)
		}
	}
	return out
}

// LoadCatalog registers every preset of a YAML catalog:
//
//	presets:
//	  - name: fern
//	    iterations: 5
//	    grammar: |
//	      axiom: X
//	      X -> F[+X][-X]FX
//
// Presets are registered in file order; the first invalid one stops the load.
func (r *Registry) LoadCatalog(data []byte) (int, error) {
	var catalog struct {
		Presets []Preset `yaml:"presets"`
	}
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return 0, fmt.Errorf("failed to decode preset catalog: %w", err)
	}

	for i, p := range catalog.Presets {
		if err := r.Register(p); err != nil {
			return i, err
		}
	}
	return len(catalog.Presets), nil
}
