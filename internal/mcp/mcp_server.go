// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/rvss/core"
	"github.com/huangsam/rvss/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the rvss MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, reg *core.Registry) *server.MCPServer {
	s := server.NewMCPServer(
		"RVSS Scoring Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		reg:     reg,
	}

	// --- 1. Tool: calculate_vector ---
	s.AddTool(mcp.NewTool("calculate_vector",
		mcp.WithDescription("Score a CVSS v2, CVSS v3.x, RVSS or plugin vector string."),
		mcp.WithString("vector", mcp.Description("The vector to score, e.g. CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H."), mcp.Required()),
		mcp.WithBoolean("explain", mcp.Description("Include the intermediate subscores used by the formula.")),
	), h.handleCalculateVector)

	// --- 2. Tool: parse_vector ---
	s.AddTool(mcp.NewTool("parse_vector",
		mcp.WithDescription("Parse a vector and list every metric with its resolved value and weight."),
		mcp.WithString("vector", mcp.Description("The vector to parse."), mcp.Required()),
		mcp.WithBoolean("full", mcp.Description("Include default values in the canonical vector.")),
	), h.handleParseVector)

	// --- 3. Tool: list_systems ---
	s.AddTool(mcp.NewTool("list_systems",
		mcp.WithDescription("List the registered scoring systems and their version prefixes."),
	), h.handleListSystems)

	// --- 4. Tool: describe_system ---
	s.AddTool(mcp.NewTool("describe_system",
		mcp.WithDescription("Describe every metric and value of a scoring system."),
		mcp.WithString("system", mcp.Description("System name (e.g. cvss31) or version prefix (e.g. RVSS:1.0)."), mcp.Required()),
	), h.handleDescribeSystem)

	return s
}

// StartMCPServer starts the rvss MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, reg *core.Registry) error {
	s := NewMCPServer(baseCfg, reg)
	return server.ServeStdio(s)
}
