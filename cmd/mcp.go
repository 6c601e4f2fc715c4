package cmd

import (
	"github.com/huangsam/rvss/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:     "mcp",
	Short:   "Start the RVSS MCP server",
	Long:    `Launch an MCP server that allows AI agents to parse and score vectors via standard tools.`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, registry)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
