// Package mcp exposes the interpreter as a Model Context Protocol server,
// so agent tooling can browse the built-in catalog, run programs and work
// with the canonical encoding over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"

	"github.com/turlang/tur"
	"github.com/turlang/tur/pkg/domain"
	"github.com/turlang/tur/pkg/dsl"
	"github.com/turlang/tur/pkg/machine"
	"github.com/turlang/tur/pkg/ports"
)

// RunResult is the structured output of run_program and step_program.
type RunResult struct {
	Program    string          `json:"program" jsonschema_description:"Name of the executed program"`
	Snapshot   domain.Snapshot `json:"snapshot" jsonschema_description:"Final execution state"`
	Outcome    string          `json:"outcome" jsonschema_description:"continue or halted"`
	HaltReason string          `json:"halt_reason,omitempty" jsonschema_description:"Strict-mode halt reason, when present"`
}

// ProgramResult is the structured output of show_program.
type ProgramResult struct {
	Program *domain.Program `json:"program" jsonschema_description:"The parsed program"`
	Source  string          `json:"source,omitempty" jsonschema_description:"Original source text, when available"`
}

// EncodeResult is the structured output of encode_program.
type EncodeResult struct {
	Encoded string `json:"encoded" jsonschema_description:"Canonical name:tape:rules encoding"`
}

// Server wraps the interpreter core and exposes it as an MCP Server.
type Server struct {
	catalog   ports.Catalog
	sources   ports.SourceLoader
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. The source loader is
// optional; without it show_program omits source text.
func NewServer(catalog ports.Catalog, sources ports.SourceLoader) *Server {
	s := &Server{
		catalog:   catalog,
		sources:   sources,
		mcpServer: server.NewMCPServer("tur-mcp", strings.TrimSpace(tur.Version)),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_programs",
		mcp.WithDescription("List the names of all available programs."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, _ := json.Marshal(s.catalog.List())
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	showTool := mcp.NewTool("show_program",
		mcp.WithDescription("Show a program's parsed structure and source text."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Program name")),
		mcp.WithOutputSchema[ProgramResult](),
	)
	s.mcpServer.AddTool(showTool, mcp.NewStructuredToolHandler(s.handleShowProgram))

	runTool := mcp.NewTool("run_program",
		mcp.WithDescription("Run a program to completion. Provide either a catalog name or inline source."),
		mcp.WithString("name", mcp.Description("Catalog program name")),
		mcp.WithString("source", mcp.Description("Inline program source (alternative to name)")),
		mcp.WithString("tapes", mcp.Description("JSON array of tape contents overriding the program's initial tapes (optional)")),
		mcp.WithOutputSchema[RunResult](),
	)
	s.mcpServer.AddTool(runTool, mcp.NewStructuredToolHandler(s.handleRunProgram))

	stepTool := mcp.NewTool("step_program",
		mcp.WithDescription("Execute a bounded number of steps of a program and return the reached state."),
		mcp.WithString("name", mcp.Description("Catalog program name")),
		mcp.WithString("source", mcp.Description("Inline program source (alternative to name)")),
		mcp.WithNumber("count", mcp.Description("Number of steps to execute (default 1)")),
		mcp.WithOutputSchema[RunResult](),
	)
	s.mcpServer.AddTool(stepTool, mcp.NewStructuredToolHandler(s.handleStepProgram))

	encodeTool := mcp.NewTool("encode_program",
		mcp.WithDescription("Encode a single-tape program into its canonical name:tape:rules form."),
		mcp.WithString("name", mcp.Description("Catalog program name")),
		mcp.WithString("source", mcp.Description("Inline program source (alternative to name)")),
		mcp.WithOutputSchema[EncodeResult](),
	)
	s.mcpServer.AddTool(encodeTool, mcp.NewStructuredToolHandler(s.handleEncodeProgram))

	decodeTool := mcp.NewTool("decode_program",
		mcp.WithDescription("Decode a canonical name:tape:rules string back into a program."),
		mcp.WithString("encoded", mcp.Required(), mcp.Description("Encoded program text")),
		mcp.WithOutputSchema[ProgramResult](),
	)
	s.mcpServer.AddTool(decodeTool, mcp.NewStructuredToolHandler(s.handleDecodeProgram))
}

type programArgs struct {
	Name   string `mapstructure:"name"`
	Source string `mapstructure:"source"`
	Tapes  string `mapstructure:"tapes"`
	Count  int    `mapstructure:"count"`
}

// decodeArgs maps the loosely typed MCP arguments onto a typed struct.
func decodeArgs(args map[string]any) (programArgs, error) {
	var in programArgs
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &in,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return in, err
	}
	if err := decoder.Decode(args); err != nil {
		return in, fmt.Errorf("invalid arguments: %w", err)
	}
	return in, nil
}

// resolve turns the name/source argument pair into a Program.
func (s *Server) resolve(in programArgs) (*domain.Program, error) {
	switch {
	case in.Source != "":
		return dsl.Parse(in.Source)
	case in.Name != "":
		return s.catalog.Get(in.Name)
	default:
		return nil, fmt.Errorf("either 'name' or 'source' is required")
	}
}

func (s *Server) handleShowProgram(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (ProgramResult, error) {
	in, err := decodeArgs(args)
	if err != nil {
		return ProgramResult{}, err
	}

	program, err := s.catalog.Get(in.Name)
	if err != nil {
		return ProgramResult{}, err
	}

	result := ProgramResult{Program: program}
	if s.sources != nil {
		if source, err := s.sources.LoadSource(in.Name); err == nil {
			result.Source = source
		}
	}
	return result, nil
}

func (s *Server) handleRunProgram(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (RunResult, error) {
	in, err := decodeArgs(args)
	if err != nil {
		return RunResult{}, err
	}

	program, err := s.resolve(in)
	if err != nil {
		return RunResult{}, err
	}

	m := machine.New(program)
	if in.Tapes != "" {
		var tapes []string
		if err := json.Unmarshal([]byte(in.Tapes), &tapes); err != nil {
			return RunResult{}, fmt.Errorf("'tapes' must be a JSON array of strings: %w", err)
		}
		if err := m.SetTapesContent(tapes); err != nil {
			return RunResult{}, err
		}
	}

	outcome, runErr := m.Run()
	return runResult(program, m, outcome, runErr), nil
}

func (s *Server) handleStepProgram(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (RunResult, error) {
	in, err := decodeArgs(args)
	if err != nil {
		return RunResult{}, err
	}

	program, err := s.resolve(in)
	if err != nil {
		return RunResult{}, err
	}
	count := in.Count
	if count < 1 {
		count = 1
	}

	m := machine.New(program)
	outcome, stepErr := m.Step()
	for i := 1; i < count && outcome == machine.Continue; i++ {
		outcome, stepErr = m.Step()
	}
	return runResult(program, m, outcome, stepErr), nil
}

func (s *Server) handleEncodeProgram(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (EncodeResult, error) {
	in, err := decodeArgs(args)
	if err != nil {
		return EncodeResult{}, err
	}

	program, err := s.resolve(in)
	if err != nil {
		return EncodeResult{}, err
	}

	encoded, err := tur.Encode(program)
	if err != nil {
		return EncodeResult{}, err
	}
	return EncodeResult{Encoded: encoded}, nil
}

func (s *Server) handleDecodeProgram(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (ProgramResult, error) {
	encoded, ok := args["encoded"].(string)
	if !ok || encoded == "" {
		return ProgramResult{}, fmt.Errorf("'encoded' is required")
	}

	program, err := tur.Decode(encoded)
	if err != nil {
		return ProgramResult{}, err
	}
	return ProgramResult{Program: program}, nil
}

// runResult folds a strict-mode halt into the structured output instead of
// failing the tool call.
func runResult(p *domain.Program, m *machine.Machine, outcome machine.Outcome, err error) RunResult {
	result := RunResult{
		Program:  p.Name,
		Snapshot: m.Snapshot(),
		Outcome:  outcome.String(),
	}
	if err != nil {
		result.HaltReason = err.Error()
	}
	return result
}
