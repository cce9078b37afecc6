package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/dto"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/aretw0/arbor/pkg/registry"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// PresetURIPrefix prefixes the resource URI of every preset grammar.
const PresetURIPrefix = "arbor://presets/"

// Server wraps a ports.Generator and exposes it as an MCP Server.
type Server struct {
	gen       ports.Generator
	presets   *registry.Registry
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithRegistry publishes the catalog's grammars as MCP resources.
func WithRegistry(reg *registry.Registry) Option {
	return func(s *Server) {
		s.presets = reg
	}
}

// WithLogger sets the logger used for tool calls.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(gen ports.Generator, opts ...Option) *Server {
	s := &Server{
		gen:       gen,
		mcpServer: server.NewMCPServer("arbor-mcp", strings.TrimSpace(arbor.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server, e.g. for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func grammarOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("grammar", mcp.Description("Grammar source (mutually exclusive with preset)")),
		mcp.WithString("format", mcp.Description("Grammar syntax"), mcp.Enum(string(domain.FormatText), string(domain.FormatYAML))),
		mcp.WithString("preset", mcp.Description("Name of a built-in grammar (see list_presets)")),
		mcp.WithNumber("iterations", mcp.Required(), mcp.Description("Rewriting iterations, 0 returns the axiom")),
		mcp.WithNumber("angle", mcp.Description("Turn angle in degrees, overrides the grammar default")),
		mcp.WithNumber("step", mcp.Description("Forward step length, overrides the grammar default")),
		mcp.WithNumber("seed", mcp.Description("Seed for stochastic grammars")),
	}
}

func (s *Server) registerTools() {
	// TOOL: generate_branches
	generateTool := mcp.NewTool("generate_branches", append([]mcp.ToolOption{
		mcp.WithDescription("Expand an L-system grammar and interpret it with a 3D turtle. Returns the drawn branches and their bounding box."),
		mcp.WithOutputSchema[domain.GenerateResult](),
	}, grammarOptions()...)...)
	s.mcpServer.AddTool(generateTool, mcp.NewStructuredToolHandler(s.handleGenerate))

	// TOOL: expand_grammar
	expandTool := mcp.NewTool("expand_grammar", append([]mcp.ToolOption{
		mcp.WithDescription("Rewrite an L-system grammar without interpreting it. Returns the expanded symbol sequence."),
		mcp.WithOutputSchema[domain.ExpandResult](),
	}, grammarOptions()...)...)
	s.mcpServer.AddTool(expandTool, mcp.NewStructuredToolHandler(s.handleExpand))

	// TOOL: list_presets
	s.mcpServer.AddTool(mcp.NewTool("list_presets",
		mcp.WithDescription("List the names of the built-in grammars."),
	), s.handleListPresets)
}

func (s *Server) handleGenerate(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (domain.GenerateResult, error) {
	req, err := toRequest(args)
	if err != nil {
		return domain.GenerateResult{}, err
	}
	res, err := s.gen.Generate(ctx, req)
	if err != nil {
		s.logFailure("generate", err)
		return domain.GenerateResult{}, fmt.Errorf("generate failed: %w", err)
	}
	s.logger.Debug("MCP generate", "iterations", req.Iterations, "branches", len(res.Branches), "cached", res.Cached)
	return *res, nil
}

func (s *Server) handleExpand(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (domain.ExpandResult, error) {
	req, err := toRequest(args)
	if err != nil {
		return domain.ExpandResult{}, err
	}
	res, err := s.gen.Expand(ctx, req)
	if err != nil {
		s.logFailure("expand", err)
		return domain.ExpandResult{}, fmt.Errorf("expand failed: %w", err)
	}
	return *res, nil
}

func (s *Server) handleListPresets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names := s.gen.Presets()
	if names == nil {
		names = []string{}
	}
	jsonBytes, err := json.Marshal(names)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list presets failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

// toRequest converts loosely typed tool arguments into a generation request.
func toRequest(args map[string]any) (domain.GenerateRequest, error) {
	var in dto.ToolArguments
	if err := dto.Decode(args, &in); err != nil {
		return domain.GenerateRequest{}, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}

	req := domain.GenerateRequest{
		Grammar: in.Grammar,
		Format:  domain.GrammarFormat(in.Format),
		Preset:  in.Preset,
		Angle:   in.Angle,
		Step:    in.Step,
	}

	if in.Iterations == nil {
		return req, fmt.Errorf("%w: iterations is required", domain.ErrInvalidRequest)
	}
	n, err := wholeNumber("iterations", *in.Iterations, 0, math.MaxUint32)
	if err != nil {
		return req, err
	}
	req.Iterations = uint(n)

	if in.Seed != nil {
		seed, err := wholeNumber("seed", *in.Seed, -maxExactInt, maxExactInt)
		if err != nil {
			return req, err
		}
		req.Seed = &seed
	}
	return req, nil
}

// maxExactInt is the largest integer a JSON number (float64) holds exactly.
const maxExactInt = 1 << 53

func wholeNumber(name string, v, lo, hi float64) (int64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) || v < lo || v > hi {
		return 0, fmt.Errorf("%w: %s must be a whole number in [%.0f, %.0f], got %v", domain.ErrInvalidRequest, name, lo, hi, v)
	}
	return int64(v), nil
}

func (s *Server) registerResources() {
	if s.presets == nil {
		return
	}
	for _, p := range s.presets.List() {
		uri := PresetURIPrefix + p.Name
		s.mcpServer.AddResource(mcp.NewResource(uri, p.Name,
			mcp.WithResourceDescription(p.Description),
			mcp.WithMIMEType("text/plain"),
		), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			name := strings.TrimPrefix(request.Params.URI, PresetURIPrefix)
			preset, err := s.presets.Get(name)
			if err != nil {
				return nil, err
			}
			return []mcp.ResourceContents{
				mcp.TextResourceContents{
					URI:      request.Params.URI,
					MIMEType: "text/plain",
					Text:     preset.Grammar,
				},
			}, nil
		})
	}
}

func (s *Server) logFailure(tool string, err error) {
	if IsRequestError(err) {
		s.logger.Debug("MCP tool rejected", "tool", tool, "err", err)
		return
	}
	s.logger.Error("MCP tool failed", "tool", tool, "err", err)
}

// IsRequestError reports whether err was caused by the tool arguments rather than the server.
func IsRequestError(err error) bool {
	return errors.Is(err, domain.ErrInvalidRequest) ||
		errors.Is(err, domain.ErrGrammarSyntax) ||
		errors.Is(err, domain.ErrUnbalancedBracket) ||
		errors.Is(err, domain.ErrInvalidParameter) ||
		errors.Is(err, domain.ErrIterationLimit) ||
		errors.Is(err, domain.ErrPresetNotFound)
}
