package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the google-workspace-mcp application
var rootCmd = &cobra.Command{
	Use:   "google-workspace-mcp",
	Short: "MCP server for Gmail and Google Calendar",
	Long: `google-workspace-mcp is a Model Context Protocol (MCP) server that lets AI
assistants read, search and send Gmail messages and list and create Google
Calendar events on behalf of one Google account.

Credentials are taken from the environment (or a .env file):
  GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET, GOOGLE_REFRESH_TOKEN (required)
  GOOGLE_ACCESS_TOKEN, GOOGLE_USER_EMAIL (optional)`,
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
	rootCmd.SetVersionTemplate(`{{printf "google-workspace-mcp version %s\n" .Version}}`)

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
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
}
