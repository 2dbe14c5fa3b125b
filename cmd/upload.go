package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tmattila/sharepoint-client/internal/app"
	"github.com/tmattila/sharepoint-client/internal/session"
	"github.com/tmattila/sharepoint-client/internal/transfer"
	"github.com/tmattila/sharepoint-client/internal/ui"
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Resumable chunked uploads",
}

var uploadFileCmd = &cobra.Command{
	Use:   "file <local-file> <folder-id>",
	Short: "Upload a file in resumable chunks",
	Long: `Uploads a local file into a folder in 5 MB chunks through an upload
session. Interrupted uploads resume from the last completed chunk on the
next invocation.`,
	Args: cobra.ExactArgs(2),
	RunE: runWithDrive(uploadFileLogic),
}

var uploadStatusCmd = &cobra.Command{
	Use:   "status <upload-url>",
	Short: "Show the status of an upload session",
	Args:  cobra.ExactArgs(1),
	RunE:  runWithDrive(uploadStatusLogic),
}

var uploadAbortCmd = &cobra.Command{
	Use:   "abort <local-file> <folder-id>",
	Short: "Abort an interrupted upload",
	Long:  "Cancels the remote upload session of an interrupted upload and removes its saved state.",
	Args:  cobra.ExactArgs(2),
	RunE:  runWithDrive(uploadAbortLogic),
}

func uploadFileLogic(a *app.App, cmd *cobra.Command, args []string) error {
	localPath := args[0]
	if _, err := os.Stat(localPath); os.IsNotExist(err) {
		return fmt.Errorf("local file '%s' does not exist", localPath)
	}

	mgr, err := session.NewManager()
	if err != nil {
		return fmt.Errorf("creating session manager: %w", err)
	}

	uploader := transfer.NewUploader(a.SDK, mgr, a.Logger)
	uploader.ShowProgress = true

	// Ctrl-C cancels the context; the uploader saves its state for resumption.
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := uploader.Upload(ctx, localPath, args[1])
	if err != nil {
		return err
	}

	fmt.Printf("Upload %s: %d/%d bytes\n", result.Status, result.BytesSent, result.TotalSize)
	return nil
}

func uploadStatusLogic(a *app.App, cmd *cobra.Command, args []string) error {
	uploadURL := args[0]
	if uploadURL == "" {
		return fmt.Errorf("upload URL cannot be empty")
	}

	status, err := a.SDK.GetUploadSessionStatus(cmd.Context(), uploadURL)
	if err != nil {
		return err
	}

	ui.DisplayUploadSession(status)
	return nil
}

func uploadAbortLogic(a *app.App, cmd *cobra.Command, args []string) error {
	mgr, err := session.NewManager()
	if err != nil {
		return fmt.Errorf("creating session manager: %w", err)
	}

	uploader := transfer.NewUploader(a.SDK, mgr, a.Logger)
	result, err := uploader.Abort(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}

	fmt.Printf("Upload aborted at %d bytes.\n", result.BytesSent)
	return nil
}

func initUploadCommands(root *cobra.Command) {
	uploadCmd.AddCommand(uploadFileCmd)
	uploadCmd.AddCommand(uploadStatusCmd)
	uploadCmd.AddCommand(uploadAbortCmd)
	root.AddCommand(uploadCmd)
}
