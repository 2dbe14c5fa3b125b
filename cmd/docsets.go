package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/tmattila/sharepoint-client/internal/app"
	"github.com/tmattila/sharepoint-client/internal/ui"
)

var docsetsCmd = &cobra.Command{
	Use:   "docsets",
	Short: "Manage document sets",
}

var docsetsListCmd = &cobra.Command{
	Use:   "list <list-id>",
	Short: "List the document sets in a list",
	Args:  cobra.ExactArgs(1),
	RunE:  runWithSite(docsetsListLogic),
}

var docsetsCreateCmd = &cobra.Command{
	Use:   "create <list-id> <title>",
	Short: "Create a document set",
	Args:  cobra.ExactArgs(2),
	RunE:  runWithSite(docsetsCreateLogic),
}

var docsetsStatCmd = &cobra.Command{
	Use:   "stat <list-id> <docset-id>",
	Short: "Show a document set",
	Args:  cobra.ExactArgs(2),
	RunE:  runWithSite(docsetsStatLogic),
}

var docsetsUpdateCmd = &cobra.Command{
	Use:   "update <list-id> <docset-id> <title>",
	Short: "Update a document set's title",
	Args:  cobra.ExactArgs(3),
	RunE:  runWithSite(docsetsUpdateLogic),
}

var docsetsRmCmd = &cobra.Command{
	Use:   "rm <list-id> <docset-id>",
	Short: "Delete a document set and its contents",
	Args:  cobra.ExactArgs(2),
	RunE:  runWithSite(docsetsRmLogic),
}

var docsetsContentsCmd = &cobra.Command{
	Use:   "contents <docset-folder-id>",
	Short: "List the documents in a document set",
	Long:  "Lists the documents inside a document set's backing drive folder.",
	Args:  cobra.ExactArgs(1),
	RunE:  runWithDrive(docsetsContentsLogic),
}

func docsetsListLogic(a *app.App, cmd *cobra.Command, args []string) error {
	paging, err := ui.ParsePagingFlags(cmd)
	if err != nil {
		return err
	}

	docsets, nextLink, err := a.SDK.ListDocumentSets(cmd.Context(), args[0], paging)
	if err != nil {
		return err
	}

	ui.DisplayListItems(docsets)
	ui.HandleNextPageInfo(nextLink, paging.FetchAll)
	return nil
}

func docsetsCreateLogic(a *app.App, cmd *cobra.Command, args []string) error {
	docset, err := a.SDK.CreateDocumentSet(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	log.Printf("Document set '%s' created with ID: %s", args[1], docset.ID)
	return nil
}

func docsetsStatLogic(a *app.App, cmd *cobra.Command, args []string) error {
	docset, err := a.SDK.GetDocumentSet(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	ui.DisplayListItem(docset)
	return nil
}

func docsetsUpdateLogic(a *app.App, cmd *cobra.Command, args []string) error {
	docset, err := a.SDK.UpdateDocumentSet(cmd.Context(), args[0], args[1], args[2])
	if err != nil {
		return err
	}
	log.Printf("Document set %s updated.", docset.ID)
	return nil
}

func docsetsRmLogic(a *app.App, cmd *cobra.Command, args []string) error {
	if err := a.SDK.DeleteDocumentSet(cmd.Context(), args[0], args[1]); err != nil {
		return err
	}
	log.Printf("Document set %s deleted.", args[1])
	return nil
}

func docsetsContentsLogic(a *app.App, cmd *cobra.Command, args []string) error {
	paging, err := ui.ParsePagingFlags(cmd)
	if err != nil {
		return err
	}

	docs, nextLink, err := a.SDK.ListDocumentSetContents(cmd.Context(), args[0], paging)
	if err != nil {
		return err
	}

	ui.DisplayItems(docs)
	ui.HandleNextPageInfo(nextLink, paging.FetchAll)
	return nil
}

func initDocsetsCommands(root *cobra.Command) {
	ui.AddPagingFlags(docsetsListCmd)
	ui.AddPagingFlags(docsetsContentsCmd)

	docsetsCmd.AddCommand(docsetsListCmd)
	docsetsCmd.AddCommand(docsetsCreateCmd)
	docsetsCmd.AddCommand(docsetsStatCmd)
	docsetsCmd.AddCommand(docsetsUpdateCmd)
	docsetsCmd.AddCommand(docsetsRmCmd)
	docsetsCmd.AddCommand(docsetsContentsCmd)
	root.AddCommand(docsetsCmd)
}
