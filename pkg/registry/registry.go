/*
Package registry ships a small catalog of built-in programs compiled into
the binary. The collection is described by manifest.yaml and parsed lazily
on first access; every entry is guaranteed to pass validation because
loading goes through the ordinary parser.
*/
package registry

import (
	"embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/turlang/tur/pkg/domain"
	"github.com/turlang/tur/pkg/dsl"
)

//go:embed manifest.yaml programs/*.tur
var builtin embed.FS

// Info describes one built-in program, as declared in manifest.yaml.
type Info struct {
	Name        string   `yaml:"name" json:"name"`
	File        string   `yaml:"file" json:"-"`
	Description string   `yaml:"description" json:"description"`
	Tags        []string `yaml:"tags" json:"tags"`
}

type manifest struct {
	Programs []Info `yaml:"programs"`
}

// Registry is the parsed built-in collection. It implements ports.Catalog
// and ports.SourceLoader and is safe for concurrent use because it is never
// mutated after construction.
type Registry struct {
	infos    []Info
	programs map[string]*domain.Program
	sources  map[string]string
}

var load = sync.OnceValues(build)

// Builtin returns the process-wide built-in registry, parsing the embedded
// collection on first call.
func Builtin() (*Registry, error) {
	return load()
}

func build() (*Registry, error) {
	data, err := builtin.ReadFile("manifest.yaml")
	if err != nil {
		return nil, fmt.Errorf("read builtin manifest: %w", err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse builtin manifest: %w", err)
	}

	r := &Registry{
		infos:    m.Programs,
		programs: make(map[string]*domain.Program, len(m.Programs)),
		sources:  make(map[string]string, len(m.Programs)),
	}
	for _, info := range m.Programs {
		source, err := builtin.ReadFile("programs/" + info.File)
		if err != nil {
			return nil, fmt.Errorf("builtin program %s: %w", info.Name, err)
		}
		program, err := dsl.Parse(string(source))
		if err != nil {
			return nil, fmt.Errorf("builtin program %s: %w", info.Name, err)
		}
		r.programs[info.Name] = program
		r.sources[info.Name] = string(source)
	}
	return r, nil
}

// Get returns a copy of the named program, so callers can tweak tapes or
// heads without affecting other users of the registry.
func (r *Registry) Get(name string) (*domain.Program, error) {
	p, ok := r.programs[name]
	if !ok {
		return nil, fmt.Errorf("unknown builtin program: %s", name)
	}
	return p.Clone(), nil
}

// List returns all built-in program names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.programs))
	for name := range r.programs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Infos returns the manifest entries in declaration order.
func (r *Registry) Infos() []Info {
	return append([]Info(nil), r.infos...)
}

// Describe returns the manifest entry for a program name.
func (r *Registry) Describe(name string) (Info, error) {
	for _, info := range r.infos {
		if info.Name == name {
			return info, nil
		}
	}
	return Info{}, fmt.Errorf("unknown builtin program: %s", name)
}

// LoadSource returns the original source text of a built-in program.
func (r *Registry) LoadSource(name string) (string, error) {
	source, ok := r.sources[name]
	if !ok {
		return "", fmt.Errorf("unknown builtin program: %s", name)
	}
	return source, nil
}

// ListSources returns the names of all built-in sources, sorted.
func (r *Registry) ListSources() ([]string, error) {
	return r.List(), nil
}
