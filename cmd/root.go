// Package cmd defines the sharepoint-client CLI: global flags, the command
// groups, and the entry point called from main.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sharepoint-client",
	Short: "A CLI client for SharePoint document management",
	Long: `sharepoint-client is a command-line tool for managing SharePoint sites
through the Microsoft Graph API using app-only credentials.

Current capabilities include:
  - File and folder operations (ls, stat, mkdir, upload, download, rm, mv, cp, rename, search)
  - Resumable chunked uploads with progress reporting
  - Sharing and permissions management (invites, sharing links, roles)
  - Site page management (create, update, publish, web parts)
  - Lists, list items, and document sets

Credentials come from the environment (SHAREPOINT_CLIENT_ID,
SHAREPOINT_CLIENT_SECRET, SHAREPOINT_TENANT_ID, SHAREPOINT_TENANT_NAME),
optionally via a .env file. The target site is SHAREPOINT_SITE_NAME or the
--site flag; resolved site and drive ids are cached between invocations.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging for SDK and internal operations")
	rootCmd.PersistentFlags().String("site", "", "SharePoint site name (overrides SHAREPOINT_SITE_NAME)")

	initFilesCommands(rootCmd)
	initUploadCommands(rootCmd)
	initPagesCommands(rootCmd)
	initSecurityCommands(rootCmd)
	initListsCommands(rootCmd)
	initDocsetsCommands(rootCmd)
}
