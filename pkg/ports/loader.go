package ports

import "github.com/turlang/tur/pkg/domain"

// SourceLoader retrieves raw program source text. The core only ever needs a
// string; paths, embedding and I/O stay behind this interface.
type SourceLoader interface {
	// LoadSource returns the source text for a program name.
	LoadSource(name string) (string, error)

	// ListSources returns the names of all available sources.
	ListSources() ([]string, error)
}

// Catalog supplies ready-made programs, typically parsed ahead of time from
// a built-in collection.
type Catalog interface {
	// Get returns the program registered under name, or an error when the
	// name is unknown.
	Get(name string) (*domain.Program, error)

	// List returns all registered program names, sorted.
	List() []string
}
