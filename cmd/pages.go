package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/tmattila/sharepoint-client/internal/app"
	"github.com/tmattila/sharepoint-client/internal/ui"
)

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "Manage site pages",
}

var pagesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the pages of the site",
	Args:  cobra.NoArgs,
	RunE:  runWithSite(pagesListLogic),
}

var pagesStatCmd = &cobra.Command{
	Use:   "stat <page-id>",
	Short: "Show the details of a page",
	Args:  cobra.ExactArgs(1),
	RunE:  runWithSite(pagesStatLogic),
}

var pagesCreateCmd = &cobra.Command{
	Use:   "create <name> <title>",
	Short: "Create a new page",
	Long:  "Creates a draft article page. Use 'pages publish' to make it visible.",
	Args:  cobra.ExactArgs(2),
	RunE:  runWithSite(pagesCreateLogic),
}

var pagesUpdateCmd = &cobra.Command{
	Use:   "update <page-id> <title> [description]",
	Short: "Update a page's title and description",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  runWithSite(pagesUpdateLogic),
}

var pagesPublishCmd = &cobra.Command{
	Use:   "publish <page-id>",
	Short: "Publish a draft page",
	Args:  cobra.ExactArgs(1),
	RunE:  runWithSite(pagesPublishLogic),
}

var pagesRmCmd = &cobra.Command{
	Use:   "rm <page-id>",
	Short: "Delete a page",
	Args:  cobra.ExactArgs(1),
	RunE:  runWithSite(pagesRmLogic),
}

var pagesAddWebPartCmd = &cobra.Command{
	Use:   "add-webpart <page-id> <webpart-json>",
	Short: "Add a web part to a page",
	Long:  "Adds a web part to a page. The web part payload is given as a JSON document and passed to the service as-is.",
	Args:  cobra.ExactArgs(2),
	RunE:  runWithSite(pagesAddWebPartLogic),
}

func pagesListLogic(a *app.App, cmd *cobra.Command, args []string) error {
	paging, err := ui.ParsePagingFlags(cmd)
	if err != nil {
		return err
	}

	pages, nextLink, err := a.SDK.ListPages(cmd.Context(), paging)
	if err != nil {
		return err
	}

	ui.DisplayPages(pages)
	ui.HandleNextPageInfo(nextLink, paging.FetchAll)
	return nil
}

func pagesStatLogic(a *app.App, cmd *cobra.Command, args []string) error {
	page, err := a.SDK.GetPage(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	ui.DisplayPage(page)
	return nil
}

func pagesCreateLogic(a *app.App, cmd *cobra.Command, args []string) error {
	page, err := a.SDK.CreatePage(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	log.Printf("Page '%s' created with ID: %s", page.Title, page.ID)
	return nil
}

func pagesUpdateLogic(a *app.App, cmd *cobra.Command, args []string) error {
	description := ""
	if len(args) > 2 {
		description = args[2]
	}

	page, err := a.SDK.UpdatePage(cmd.Context(), args[0], args[1], description)
	if err != nil {
		return err
	}
	log.Printf("Page '%s' updated.", page.Title)
	return nil
}

func pagesPublishLogic(a *app.App, cmd *cobra.Command, args []string) error {
	if err := a.SDK.PublishPage(cmd.Context(), args[0]); err != nil {
		return err
	}
	log.Printf("Page %s published.", args[0])
	return nil
}

func pagesRmLogic(a *app.App, cmd *cobra.Command, args []string) error {
	if err := a.SDK.DeletePage(cmd.Context(), args[0]); err != nil {
		return err
	}
	log.Printf("Page %s deleted.", args[0])
	return nil
}

func pagesAddWebPartLogic(a *app.App, cmd *cobra.Command, args []string) error {
	var webPartData any
	if err := json.Unmarshal([]byte(args[1]), &webPartData); err != nil {
		return fmt.Errorf("parsing web part JSON: %w", err)
	}

	webPart, err := a.SDK.AddWebPart(cmd.Context(), args[0], webPartData)
	if err != nil {
		return err
	}
	log.Printf("Web part %s added.", webPart.ID)
	return nil
}

func initPagesCommands(root *cobra.Command) {
	ui.AddPagingFlags(pagesListCmd)

	pagesCmd.AddCommand(pagesListCmd)
	pagesCmd.AddCommand(pagesStatCmd)
	pagesCmd.AddCommand(pagesCreateCmd)
	pagesCmd.AddCommand(pagesUpdateCmd)
	pagesCmd.AddCommand(pagesPublishCmd)
	pagesCmd.AddCommand(pagesRmCmd)
	pagesCmd.AddCommand(pagesAddWebPartCmd)
	root.AddCommand(pagesCmd)
}
