// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/motionchart/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the motion chart MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"Motion Chart Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{baseCfg: baseCfg}

	// --- 1. Tool: describe_dataset ---
	s.AddTool(mcp.NewTool("describe_dataset",
		mcp.WithDescription("Summarize a time-keyed dataset: slices, categories, metric ranges and malformed records."),
		mcp.WithString("dataset", mcp.Description("Dataset file path or http(s) URL (defaults to the configured dataset).")),
	), h.handleDescribeDataset)

	// --- 2. Tool: render_frame ---
	s.AddTool(mcp.NewTool("render_frame",
		mcp.WithDescription("Render the bubble chart for one time slice."),
		mcp.WithString("dataset", mcp.Description("Dataset file path or http(s) URL.")),
		mcp.WithString("time", mcp.Description("Time key of the slice to render. Defaults to the first slice.")),
		mcp.WithString("highlight", mcp.Description("Category to highlight; other categories are dimmed.")),
		mcp.WithString("hover", mcp.Description("Point id to hover, which adds its tooltip.")),
		mcp.WithString("format", mcp.Description("Result format. Defaults to 'json'."), mcp.Enum("json", "svg")),
	), h.handleRenderFrame)

	// --- 3. Tool: get_tooltip ---
	s.AddTool(mcp.NewTool("get_tooltip",
		mcp.WithDescription("Get the tooltip of a point at a time slice."),
		mcp.WithString("id", mcp.Description("The point id."), mcp.Required()),
		mcp.WithString("time", mcp.Description("Time key of the slice. Defaults to the first slice.")),
		mcp.WithString("dataset", mcp.Description("Dataset file path or http(s) URL.")),
	), h.handleGetTooltip)

	// --- 4. Tool: get_point_trail ---
	s.AddTool(mcp.NewTool("get_point_trail",
		mcp.WithDescription("Trace one point through every time slice it is drawn in."),
		mcp.WithString("id", mcp.Description("The point id."), mcp.Required()),
		mcp.WithString("dataset", mcp.Description("Dataset file path or http(s) URL.")),
	), h.handleGetPointTrail)

	return s
}

// StartMCPServer starts the motion chart MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
