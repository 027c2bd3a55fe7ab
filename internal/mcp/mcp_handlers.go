package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/huangsam/motionchart/core"
	"github.com/huangsam/motionchart/internal/contract"
	"github.com/huangsam/motionchart/internal/outwriter"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

// configFor clones the base config and applies the shared dataset argument.
func (h *toolHandler) configFor(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	cfg.TimeKey, cfg.Highlight, cfg.Hover = "", "", ""
	if p := strings.TrimSpace(request.GetString("dataset", "")); p != "" {
		if err := contract.RevalidateDataset(cfg, p); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func (h *toolHandler) handleDescribeDataset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid dataset: %v", err)), nil
	}

	summary, err := core.InspectDataset(core.WithSuppressHeader(ctx), cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("inspect failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(summary, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleRenderFrame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid dataset: %v", err)), nil
	}
	cfg.TimeKey = strings.TrimSpace(request.GetString("time", ""))
	cfg.Highlight = strings.TrimSpace(request.GetString("highlight", ""))
	cfg.Hover = strings.TrimSpace(request.GetString("hover", ""))

	format := request.GetString("format", "json")
	if format != "json" && format != "svg" {
		return mcp.NewToolResultError(fmt.Sprintf("invalid format '%s'. must be json, svg", format)), nil
	}

	report, _, err := core.RenderReport(core.WithSuppressHeader(ctx), cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("render failed: %v", err)), nil
	}

	if format == "svg" {
		return mcp.NewToolResultText(outwriter.FrameSVG(report.Frame)), nil
	}
	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetTooltip(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := strings.TrimSpace(request.GetString("id", ""))
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid dataset: %v", err)), nil
	}
	cfg.TimeKey = strings.TrimSpace(request.GetString("time", ""))
	cfg.Hover = id

	report, _, err := core.RenderReport(core.WithSuppressHeader(ctx), cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("tooltip failed: %v", err)), nil
	}
	if report.Frame.Tooltip == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no tooltip for %q at %s", id, report.Frame.TimeKey)), nil
	}

	jsonData, _ := json.MarshalIndent(report.Frame.Tooltip, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetPointTrail(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := strings.TrimSpace(request.GetString("id", ""))
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid dataset: %v", err)), nil
	}

	trail, err := core.PointTrail(core.WithSuppressHeader(ctx), cfg, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("trail failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(trail, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
