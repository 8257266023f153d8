package cmd

import (
	"github.com/spf13/cobra"

	"climatlas/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Climatlas MCP server",
	Long:  `Launch an MCP server that allows AI agents to query indicator rankings, trends and country panels via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Keep stdout clean for the protocol; setup logs go to stderr.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, storeManager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
