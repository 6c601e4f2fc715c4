package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/rvss/core"
	"github.com/huangsam/rvss/core/codec"
	"github.com/huangsam/rvss/internal/contract"
	"github.com/huangsam/rvss/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	reg     *core.Registry
}

func (h *toolHandler) handleCalculateVector(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	vector := request.GetString("vector", "")
	if vector == "" {
		return mcp.NewToolResultError("vector is required"), nil
	}
	explain := request.GetBool("explain", h.baseCfg.Explain)

	res := h.reg.Score(vector, explain)
	if res.Error != "" {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %s", res.Error)), nil
	}
	return jsonResult(res)
}

func (h *toolHandler) handleParseVector(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	vector := request.GetString("vector", "")
	if vector == "" {
		return mcp.NewToolResultError("vector is required"), nil
	}

	var opts []codec.Option
	if request.GetBool("full", h.baseCfg.Full) {
		opts = append(opts, codec.WithDefaults())
	}
	if h.baseCfg.Prefix {
		opts = append(opts, codec.WithPrefix())
	}

	parsed, err := h.reg.Describe(vector, opts...)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("parse failed: %v", err)), nil
	}
	return jsonResult(parsed)
}

func (h *toolHandler) handleListSystems(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	systems := h.reg.Systems()
	infos := make([]schema.SystemInfo, len(systems))
	for i, sys := range systems {
		infos[i] = sys.Info()
	}
	return jsonResult(infos)
}

func (h *toolHandler) handleDescribeSystem(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("system", "")
	sys, err := h.reg.System(name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("describe failed: %v", err)), nil
	}
	return jsonResult(sys.Describe())
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
