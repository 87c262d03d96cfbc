/*
Package ports defines the driven ports (interfaces) for the interpreter core.

These interfaces decouple parsing and execution from external concerns,
letting the same core run against files, an in-memory catalog, or a Redis
session store.

# Key Interfaces

  - SourceLoader: supplies raw program source text by name.
  - Catalog: supplies ready-made Program values by name.
  - SessionStore: persists and restores execution sessions.
*/
package ports
