package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/tmattila/sharepoint-client/internal/app"
	"github.com/tmattila/sharepoint-client/internal/ui"
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Manage files and folders in the document library",
}

var filesLsCmd = &cobra.Command{
	Use:   "ls <folder-id>",
	Short: "List the children of a folder",
	Args:  cobra.ExactArgs(1),
	RunE:  runWithDrive(filesLsLogic),
}

var filesStatCmd = &cobra.Command{
	Use:   "stat <item-id>",
	Short: "Show the metadata of a file or folder",
	Args:  cobra.ExactArgs(1),
	RunE:  runWithDrive(filesStatLogic),
}

var filesMkdirCmd = &cobra.Command{
	Use:   "mkdir <parent-id> <name>",
	Short: "Create a new folder",
	Args:  cobra.ExactArgs(2),
	RunE:  runWithDrive(filesMkdirLogic),
}

var filesRmCmd = &cobra.Command{
	Use:   "rm <item-id>",
	Short: "Delete a file or folder",
	Args:  cobra.ExactArgs(1),
	RunE:  runWithDrive(filesRmLogic),
}

var filesRenameCmd = &cobra.Command{
	Use:   "rename <item-id> <new-name>",
	Short: "Rename a file or folder in place",
	Args:  cobra.ExactArgs(2),
	RunE:  runWithDrive(filesRenameLogic),
}

var filesMvCmd = &cobra.Command{
	Use:   "mv <item-id> <dest-folder-id>",
	Short: "Move a file or folder into another folder",
	Args:  cobra.ExactArgs(2),
	RunE:  runWithDrive(filesMvLogic),
}

var filesCpCmd = &cobra.Command{
	Use:   "cp <item-id> <new-name> <dest-folder-id>",
	Short: "Copy a file or folder",
	Long:  "Starts an asynchronous server-side copy and prints the monitor URL for tracking its progress.",
	Args:  cobra.ExactArgs(3),
	RunE:  runWithDrive(filesCpLogic),
}

var filesSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the document library",
	Args:  cobra.ExactArgs(1),
	RunE:  runWithDrive(filesSearchLogic),
}

var filesDownloadCmd = &cobra.Command{
	Use:   "download <item-id> <local-path>",
	Short: "Download a file",
	Args:  cobra.ExactArgs(2),
	RunE:  runWithDrive(filesDownloadLogic),
}

var filesUploadSimpleCmd = &cobra.Command{
	Use:   "upload-simple <local-file> <folder-id>",
	Short: "Upload a file in a single request",
	Long:  "Uploads a local file into a folder using non-resumable upload. Suitable for small files only.",
	Args:  cobra.ExactArgs(2),
	RunE:  runWithDrive(filesUploadSimpleLogic),
}

func filesLsLogic(a *app.App, cmd *cobra.Command, args []string) error {
	paging, err := ui.ParsePagingFlags(cmd)
	if err != nil {
		return err
	}

	items, nextLink, err := a.SDK.ListChildren(cmd.Context(), args[0], paging)
	if err != nil {
		return err
	}

	ui.DisplayItems(items)
	ui.HandleNextPageInfo(nextLink, paging.FetchAll)
	return nil
}

func filesStatLogic(a *app.App, cmd *cobra.Command, args []string) error {
	item, err := a.SDK.GetItem(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	ui.DisplayItem(item)
	return nil
}

func filesMkdirLogic(a *app.App, cmd *cobra.Command, args []string) error {
	item, err := a.SDK.CreateFolder(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	log.Printf("Folder '%s' created successfully with ID: %s", item.Name, item.ID)
	return nil
}

func filesRmLogic(a *app.App, cmd *cobra.Command, args []string) error {
	if err := a.SDK.DeleteItem(cmd.Context(), args[0]); err != nil {
		return err
	}
	log.Printf("Item %s deleted successfully.", args[0])
	return nil
}

func filesRenameLogic(a *app.App, cmd *cobra.Command, args []string) error {
	item, err := a.SDK.RenameItem(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	log.Printf("Item renamed to '%s'.", item.Name)
	return nil
}

func filesMvLogic(a *app.App, cmd *cobra.Command, args []string) error {
	item, err := a.SDK.MoveItem(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	log.Printf("Item '%s' moved successfully.", item.Name)
	return nil
}

func filesCpLogic(a *app.App, cmd *cobra.Command, args []string) error {
	monitorURL, err := a.SDK.CopyItem(cmd.Context(), args[0], args[1], args[2])
	if err != nil {
		return err
	}
	fmt.Printf("Copy started. Monitor URL: %s\n", monitorURL)
	return nil
}

func filesSearchLogic(a *app.App, cmd *cobra.Command, args []string) error {
	paging, err := ui.ParsePagingFlags(cmd)
	if err != nil {
		return err
	}

	items, nextLink, err := a.SDK.SearchItems(cmd.Context(), args[0], paging)
	if err != nil {
		return err
	}

	ui.DisplayItems(items)
	ui.HandleNextPageInfo(nextLink, paging.FetchAll)
	return nil
}

func filesDownloadLogic(a *app.App, cmd *cobra.Command, args []string) error {
	if err := a.SDK.DownloadItem(cmd.Context(), args[0], args[1]); err != nil {
		return err
	}
	log.Printf("Downloaded to '%s'.", args[1])
	return nil
}

func filesUploadSimpleLogic(a *app.App, cmd *cobra.Command, args []string) error {
	localPath := args[0]
	if _, err := os.Stat(localPath); os.IsNotExist(err) {
		return fmt.Errorf("local file '%s' does not exist", localPath)
	}

	item, err := a.SDK.UploadFile(cmd.Context(), localPath, args[1])
	if err != nil {
		return err
	}
	log.Printf("File uploaded successfully. Item ID: %s, Size: %d bytes", item.ID, item.Size)
	return nil
}

func initFilesCommands(root *cobra.Command) {
	ui.AddPagingFlags(filesLsCmd)
	ui.AddPagingFlags(filesSearchCmd)

	filesCmd.AddCommand(filesLsCmd)
	filesCmd.AddCommand(filesStatCmd)
	filesCmd.AddCommand(filesMkdirCmd)
	filesCmd.AddCommand(filesRmCmd)
	filesCmd.AddCommand(filesRenameCmd)
	filesCmd.AddCommand(filesMvCmd)
	filesCmd.AddCommand(filesCpCmd)
	filesCmd.AddCommand(filesSearchCmd)
	filesCmd.AddCommand(filesDownloadCmd)
	filesCmd.AddCommand(filesUploadSimpleCmd)
	root.AddCommand(filesCmd)
}
