// Package mcp provides a Model Context Protocol server for Prospect.
//
// It exposes the matching engine (idea matching, record similarity,
// combination suggestions, analytics, idea classification) as MCP tools,
// plus the live analytics snapshot as an MCP resource. Stdio transport,
// for agent hosts.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hurttlocker/prospect/internal/analytics"
	"github.com/hurttlocker/prospect/internal/catalog"
	"github.com/hurttlocker/prospect/internal/classify"
	"github.com/hurttlocker/prospect/internal/combine"
	"github.com/hurttlocker/prospect/internal/match"
	"github.com/hurttlocker/prospect/internal/remote"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	defaultToolLimit = 5
	maxToolLimit     = 50
)

// ServerConfig holds the dependencies for the MCP server.
type ServerConfig struct {
	Store   *catalog.Store
	Ranker  *match.Ranker
	Matcher remote.Matcher
	Version string
}

// NewServer creates a configured MCP server with all Prospect tools and
// resources.
func NewServer(cfg ServerConfig) *server.MCPServer {
	ver := cfg.Version
	if ver == "" {
		ver = "dev"
	}

	s := server.NewMCPServer(
		"Prospect",
		ver,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(true, false),
	)

	registerMatchTool(s, cfg.Matcher)
	registerSimilarTool(s, cfg.Store, cfg.Ranker)
	registerCombineTool(s, cfg.Store)
	registerAnalyticsTool(s, cfg.Store)
	registerClassifyTool(s)

	registerAnalyticsResource(s, cfg.Store)

	return s
}

func registerMatchTool(s *server.MCPServer, matcher remote.Matcher) {
	tool := mcp.NewTool("prospect_match",
		mcp.WithDescription("Find projects in the catalog that resemble a free-text idea. Returns scored matches with a human-readable reason per match."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("idea",
			mcp.Required(),
			mcp.Description("Free-text description of the idea to match"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of matches (default: 5, max: 50)"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		idea, err := req.RequireString("idea")
		if err != nil {
			return mcp.NewToolResultError("idea is required"), nil
		}

		matches := matcher.FindSimilar(ctx, idea, toolLimit(req))
		data, _ := json.MarshalIndent(matches, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerSimilarTool(s *server.MCPServer, store *catalog.Store, ranker *match.Ranker) {
	tool := mcp.NewTool("prospect_similar",
		mcp.WithDescription("Find catalog projects similar to an existing project, by shared technologies, frameworks, and AI models."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Project id to compare against"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of matches (default: 5, max: 50)"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		idVal, err := req.RequireFloat("id")
		if err != nil {
			return mcp.NewToolResultError("id is required"), nil
		}

		rec, ok := store.ByID(ctx, int(idVal))
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("no project with id %d", int(idVal))), nil
		}

		matches := ranker.SimilarTo(rec, store.Load(ctx), toolLimit(req))
		data, _ := json.MarshalIndent(matches, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerCombineTool(s *server.MCPServer, store *catalog.Store) {
	tool := mcp.NewTool("prospect_combine",
		mcp.WithDescription("Suggest complementary projects for a primary project, with an integration plan and missing-component analysis."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Primary project id"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		idVal, err := req.RequireFloat("id")
		if err != nil {
			return mcp.NewToolResultError("id is required"), nil
		}

		rec, ok := store.ByID(ctx, int(idVal))
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("no project with id %d", int(idVal))), nil
		}

		combos := combine.Suggest(rec, store.Load(ctx))
		data, _ := json.MarshalIndent(combos, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerAnalyticsTool(s *server.MCPServer, store *catalog.Store) {
	tool := mcp.NewTool("prospect_analytics",
		mcp.WithDescription("Compute aggregate trends over the whole catalog: technology axis breakdowns, overall stats, and market insight signals."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		snapshot := analytics.Aggregate(store.Load(ctx))
		data, _ := json.MarshalIndent(snapshot, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerClassifyTool(s *server.MCPServer) {
	tool := mcp.NewTool("prospect_classify",
		mcp.WithDescription("Classify a free-text idea into a structured profile: category, technologies, features, complexity, and time estimate."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("idea",
			mcp.Required(),
			mcp.Description("Free-text idea to classify"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		idea, err := req.RequireString("idea")
		if err != nil {
			return mcp.NewToolResultError("idea is required"), nil
		}

		analysis := classify.Classify(idea)
		data, _ := json.MarshalIndent(analysis, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerAnalyticsResource(s *server.MCPServer, store *catalog.Store) {
	resource := mcp.NewResource(
		"prospect://analytics",
		"Catalog Analytics",
		mcp.WithResourceDescription("Live aggregate snapshot of the project catalog: axis breakdowns, stats, and market insights."),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(resource, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		snapshot := analytics.Aggregate(store.Load(ctx))
		data, _ := json.MarshalIndent(snapshot, "", "  ")
		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: req.Params.URI, MIMEType: "application/json", Text: string(data)},
		}, nil
	})
}

func toolLimit(req mcp.CallToolRequest) int {
	limit := defaultToolLimit
	if v, err := req.RequireFloat("limit"); err == nil && int(v) > 0 {
		limit = int(v)
		if limit > maxToolLimit {
			limit = maxToolLimit
		}
	}
	return limit
}
