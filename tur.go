package tur

import (
	"github.com/turlang/tur/pkg/analysis"
	"github.com/turlang/tur/pkg/codec"
	"github.com/turlang/tur/pkg/domain"
	"github.com/turlang/tur/pkg/dsl"
	"github.com/turlang/tur/pkg/machine"
	"github.com/turlang/tur/pkg/registry"
)

// Version is the library version, also reported by the CLI and MCP server.
const Version = "0.1.0"

// Parse converts program source text into a validated Program.
func Parse(source string) (*domain.Program, error) {
	return dsl.Parse(source)
}

// Validate re-checks an already constructed Program.
func Validate(p *domain.Program) error {
	return analysis.Analyze(p)
}

// NewMachine builds a machine at the program's initial configuration.
func NewMachine(p *domain.Program) *machine.Machine {
	return machine.New(p)
}

// Encode serializes a single-tape program into its canonical text form.
func Encode(p *domain.Program) (string, error) {
	return codec.Encode(p)
}

// Decode reconstructs a program from its canonical text form.
func Decode(encoded string) (*domain.Program, error) {
	return codec.Decode(encoded)
}

// Builtins returns the catalog of programs shipped with the library.
func Builtins() (*registry.Registry, error) {
	return registry.Builtin()
}
