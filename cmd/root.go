package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the basecamp-mcp application
var rootCmd = &cobra.Command{
	Use:   "basecamp-mcp",
	Short: "MCP server for Basecamp 4",
	Long: `basecamp-mcp exposes Basecamp 4 projects, to-dos, messages, campfires and
card tables to AI assistants through the Model Context Protocol.

It runs as a long-lived HTTP service (the default) serving the MCP endpoint
at /mcp and a browser OAuth flow at /oauth, or as a stdio MCP server for
local assistant integrations.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "basecamp-mcp version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
}
