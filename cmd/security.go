package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/tmattila/sharepoint-client/internal/app"
	"github.com/tmattila/sharepoint-client/internal/ui"
)

var securityCmd = &cobra.Command{
	Use:   "security",
	Short: "Manage sharing and permissions",
}

var securityListCmd = &cobra.Command{
	Use:   "list <item-id>",
	Short: "List the permissions on an item",
	Args:  cobra.ExactArgs(1),
	RunE:  runWithDrive(securityListLogic),
}

var securityShareCmd = &cobra.Command{
	Use:   "share <item-id> <email> <role>",
	Short: "Share an item with a user",
	Long:  "Invites a user to an item with the given role (e.g. read, write). The role string is passed to the service as-is.",
	Args:  cobra.ExactArgs(3),
	RunE:  runWithDrive(securityShareLogic),
}

var securityLinkCmd = &cobra.Command{
	Use:   "link <item-id> <type> <scope>",
	Short: "Create a sharing link",
	Long:  "Creates a sharing link of the given type (view, edit, embed) and scope (anonymous, organization).",
	Args:  cobra.ExactArgs(3),
	RunE:  runWithDrive(securityLinkLogic),
}

var securityUpdateRoleCmd = &cobra.Command{
	Use:   "update-role <item-id> <permission-id> <role>",
	Short: "Change the role of an existing permission",
	Args:  cobra.ExactArgs(3),
	RunE:  runWithDrive(securityUpdateRoleLogic),
}

var securityRevokeCmd = &cobra.Command{
	Use:   "revoke <item-id> <permission-id>",
	Short: "Revoke a permission",
	Args:  cobra.ExactArgs(2),
	RunE:  runWithDrive(securityRevokeLogic),
}

func securityListLogic(a *app.App, cmd *cobra.Command, args []string) error {
	paging, err := ui.ParsePagingFlags(cmd)
	if err != nil {
		return err
	}

	permissions, nextLink, err := a.SDK.ListPermissions(cmd.Context(), args[0], paging)
	if err != nil {
		return err
	}

	ui.DisplayPermissions(permissions)
	ui.HandleNextPageInfo(nextLink, paging.FetchAll)
	return nil
}

func securityShareLogic(a *app.App, cmd *cobra.Command, args []string) error {
	permissions, err := a.SDK.ShareWithUser(cmd.Context(), args[0], args[1], args[2])
	if err != nil {
		return err
	}
	log.Printf("Item shared with %s (%s).", args[1], args[2])
	ui.DisplayPermissions(permissions)
	return nil
}

func securityLinkLogic(a *app.App, cmd *cobra.Command, args []string) error {
	permission, err := a.SDK.CreateSharingLink(cmd.Context(), args[0], args[1], args[2])
	if err != nil {
		return err
	}
	if permission.Link != nil {
		fmt.Printf("Sharing link: %s\n", permission.Link.WebURL)
	}
	return nil
}

func securityUpdateRoleLogic(a *app.App, cmd *cobra.Command, args []string) error {
	permission, err := a.SDK.UpdatePermission(cmd.Context(), args[0], args[1], args[2])
	if err != nil {
		return err
	}
	log.Printf("Permission %s updated to roles %v.", permission.ID, permission.Roles)
	return nil
}

func securityRevokeLogic(a *app.App, cmd *cobra.Command, args []string) error {
	if err := a.SDK.DeletePermission(cmd.Context(), args[0], args[1]); err != nil {
		return err
	}
	log.Printf("Permission %s revoked.", args[1])
	return nil
}

func initSecurityCommands(root *cobra.Command) {
	ui.AddPagingFlags(securityListCmd)

	securityCmd.AddCommand(securityListCmd)
	securityCmd.AddCommand(securityShareCmd)
	securityCmd.AddCommand(securityLinkCmd)
	securityCmd.AddCommand(securityUpdateRoleCmd)
	securityCmd.AddCommand(securityRevokeCmd)
	root.AddCommand(securityCmd)
}
