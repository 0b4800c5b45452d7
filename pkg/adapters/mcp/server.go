// Package mcp exposes machines as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MachinesURI is the resource listing every machine.
const MachinesURI = "turing://machines"

// Machines is the lookup the server needs; *registry.Registry satisfies it.
type Machines interface {
	List() ([]string, error)
	Get(name string) (*turing.Engine, error)
}

// ListResponse is the result of list_machines.
type ListResponse struct {
	Machines []string `json:"machines" jsonschema_description:"Names of the available machines"`
}

// DescribeArgs selects a machine.
type DescribeArgs struct {
	Machine string `json:"machine"`
}

// DescribeResponse is the result of describe_machine.
type DescribeResponse struct {
	Definition *domain.Definition `json:"definition" jsonschema_description:"The transition table"`
	Digest     string             `json:"digest" jsonschema_description:"Identifies the table behaviour"`
	Capacity   int                `json:"capacity" jsonschema_description:"Tape cells available to a run"`
}

// ExecuteArgs are the arguments of execute_machine.
type ExecuteArgs struct {
	Machine string `json:"machine"`
	Input   string `json:"input"`
	Raw     bool   `json:"raw,omitempty"`
}

// Server wraps the machine registry and exposes it as an MCP Server.
type Server struct {
	machines  Machines
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger used for failed tool calls.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(machines Machines, opts ...Option) *Server {
	s := &Server{
		machines: machines,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		mcpServer: server.NewMCPServer(
			"turing-mcp",
			strings.TrimSpace(turing.Version),
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server, for custom transports.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("mcp server is not configured")
	}
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_machines",
		mcp.WithDescription("List the names of the available Turing machines."),
		mcp.WithOutputSchema[ListResponse](),
	), mcp.NewStructuredToolHandler(s.handleList))

	s.mcpServer.AddTool(mcp.NewTool("describe_machine",
		mcp.WithDescription("Get the transition table and settings of a machine."),
		mcp.WithString("machine", mcp.Required(), mcp.Description("Machine name")),
		mcp.WithOutputSchema[DescribeResponse](),
	), mcp.NewStructuredToolHandler(s.handleDescribe))

	s.mcpServer.AddTool(mcp.NewTool("execute_machine",
		mcp.WithDescription("Run a machine on an input string and return the run record. The input is framed with the machine sentinel unless raw is set."),
		mcp.WithString("machine", mcp.Required(), mcp.Description("Machine name")),
		mcp.WithString("input", mcp.Required(), mcp.Description("Input symbols, one byte per cell")),
		mcp.WithBoolean("raw", mcp.Description("Load the input onto the tape as-is, without sentinels")),
		mcp.WithOutputSchema[domain.Run](),
	), mcp.NewStructuredToolHandler(s.handleExecute))
}

func (s *Server) handleList(ctx context.Context, request mcp.CallToolRequest, _ map[string]any) (ListResponse, error) {
	names, err := s.machines.List()
	if err != nil {
		return ListResponse{}, fmt.Errorf("list failed: %w", err)
	}
	return ListResponse{Machines: names}, nil
}

func (s *Server) handleDescribe(ctx context.Context, request mcp.CallToolRequest, args DescribeArgs) (DescribeResponse, error) {
	eng, err := s.machines.Get(args.Machine)
	if err != nil {
		return DescribeResponse{}, err
	}
	return DescribeResponse{
		Definition: eng.Definition(),
		Digest:     eng.Digest(),
		Capacity:   eng.Capacity(),
	}, nil
}

// handleExecute reports execution failures as tool errors carrying the
// error kind, so callers can tell a bad input from a bad table.
func (s *Server) handleExecute(ctx context.Context, request mcp.CallToolRequest, args ExecuteArgs) (domain.Run, error) {
	eng, err := s.machines.Get(args.Machine)
	if err != nil {
		return domain.Run{}, err
	}

	var run *domain.Run
	if args.Raw {
		run, err = eng.ExecuteRaw(ctx, args.Input)
	} else {
		run, err = eng.Execute(ctx, args.Input)
	}
	if err != nil {
		s.logger.Warn("MCP execute_machine failed", "machine", args.Machine, "kind", domain.ErrorKind(err), "err", err)
		return domain.Run{}, fmt.Errorf("%s: %w", domain.ErrorKind(err), err)
	}
	return *run, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(MachinesURI, "Available machines",
		mcp.WithMIMEType("application/json"),
	), s.readMachines)
}

func (s *Server) readMachines(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	names, err := s.machines.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list machines: %w", err)
	}
	descriptions := make(map[string]string, len(names))
	for _, name := range names {
		eng, err := s.machines.Get(name)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", name, err)
		}
		descriptions[name] = strings.TrimSpace(eng.Definition().Description)
	}
	jsonBytes, err := json.Marshal(descriptions)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      MachinesURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
