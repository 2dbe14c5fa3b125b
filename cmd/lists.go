package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/tmattila/sharepoint-client/internal/app"
	"github.com/tmattila/sharepoint-client/internal/ui"
)

var listsCmd = &cobra.Command{
	Use:   "lists",
	Short: "Manage lists and list items",
}

var listsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the lists of the site",
	Args:  cobra.NoArgs,
	RunE:  runWithSite(listsListLogic),
}

var listsCreateItemCmd = &cobra.Command{
	Use:   "create-item <list-id> <fields-json>",
	Short: "Create a list item",
	Long:  `Creates a list item with the given column values, e.g. '{"Title":"Contract A"}'.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runWithSite(listsCreateItemLogic),
}

var listsStatItemCmd = &cobra.Command{
	Use:   "stat-item <list-id> <item-id>",
	Short: "Show a list item",
	Args:  cobra.ExactArgs(2),
	RunE:  runWithSite(listsStatItemLogic),
}

var listsUpdateItemCmd = &cobra.Command{
	Use:   "update-item <list-id> <item-id> <fields-json>",
	Short: "Update the fields of a list item",
	Args:  cobra.ExactArgs(3),
	RunE:  runWithSite(listsUpdateItemLogic),
}

var listsRmItemCmd = &cobra.Command{
	Use:   "rm-item <list-id> <item-id>",
	Short: "Delete a list item",
	Args:  cobra.ExactArgs(2),
	RunE:  runWithSite(listsRmItemLogic),
}

func listsListLogic(a *app.App, cmd *cobra.Command, args []string) error {
	paging, err := ui.ParsePagingFlags(cmd)
	if err != nil {
		return err
	}

	lists, nextLink, err := a.SDK.ListLists(cmd.Context(), paging)
	if err != nil {
		return err
	}

	ui.DisplayLists(lists)
	ui.HandleNextPageInfo(nextLink, paging.FetchAll)
	return nil
}

func parseFields(raw string) (map[string]any, error) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, fmt.Errorf("parsing fields JSON: %w", err)
	}
	return fields, nil
}

func listsCreateItemLogic(a *app.App, cmd *cobra.Command, args []string) error {
	fields, err := parseFields(args[1])
	if err != nil {
		return err
	}

	item, err := a.SDK.CreateListItem(cmd.Context(), args[0], fields)
	if err != nil {
		return err
	}
	log.Printf("List item created with ID: %s", item.ID)
	return nil
}

func listsStatItemLogic(a *app.App, cmd *cobra.Command, args []string) error {
	item, err := a.SDK.GetListItem(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	ui.DisplayListItem(item)
	return nil
}

func listsUpdateItemLogic(a *app.App, cmd *cobra.Command, args []string) error {
	fields, err := parseFields(args[2])
	if err != nil {
		return err
	}

	item, err := a.SDK.UpdateListItem(cmd.Context(), args[0], args[1], fields)
	if err != nil {
		return err
	}
	log.Printf("List item %s updated.", item.ID)
	return nil
}

func listsRmItemLogic(a *app.App, cmd *cobra.Command, args []string) error {
	if err := a.SDK.DeleteListItem(cmd.Context(), args[0], args[1]); err != nil {
		return err
	}
	log.Printf("List item %s deleted.", args[1])
	return nil
}

func initListsCommands(root *cobra.Command) {
	ui.AddPagingFlags(listsListCmd)

	listsCmd.AddCommand(listsListCmd)
	listsCmd.AddCommand(listsCreateItemCmd)
	listsCmd.AddCommand(listsStatItemCmd)
	listsCmd.AddCommand(listsUpdateItemCmd)
	listsCmd.AddCommand(listsRmItemCmd)
	root.AddCommand(listsCmd)
}
