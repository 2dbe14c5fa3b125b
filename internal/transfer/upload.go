// Package transfer drives chunked uploads over the raw upload-session
// primitives. It owns the transfer lifecycle (created, uploading, completed,
// aborted), persists progress between runs so interrupted uploads resume,
// and reports progress to the terminal.
package transfer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/tmattila/sharepoint-client/internal/logger"
	"github.com/tmattila/sharepoint-client/internal/session"
	"github.com/tmattila/sharepoint-client/internal/ui"
	"github.com/tmattila/sharepoint-client/pkg/sharepoint"
)

// DefaultChunkSize is the upload chunk size. The Graph API requires chunk
// sizes to be a multiple of 320 KiB; 5 MiB satisfies that.
const DefaultChunkSize = int64(5 * 1024 * 1024)

// Status is the lifecycle state of a transfer.
type Status string

const (
	StatusCreated   Status = "created"
	StatusUploading Status = "uploading"
	StatusCompleted Status = "completed"
	StatusAborted   Status = "aborted"
)

// API is the slice of the sharepoint client the uploader needs.
type API interface {
	CreateUploadSession(ctx context.Context, filename, folderID string) (sharepoint.UploadSession, error)
	UploadChunk(ctx context.Context, uploadURL string, startByte, endByte, totalSize int64, chunkData io.Reader) (sharepoint.UploadSession, error)
	CancelUploadSession(ctx context.Context, uploadURL string) error
}

// Transfer describes the observable state of one upload.
type Transfer struct {
	Status    Status
	BytesSent int64
	TotalSize int64
	UploadURL string
}

// Uploader runs chunked uploads against an upload session, resuming from
// persisted state when a previous run was interrupted.
type Uploader struct {
	api      API
	sessions *session.Manager
	logger   logger.Logger

	// ChunkSize overrides DefaultChunkSize when positive.
	ChunkSize int64
	// ShowProgress renders a terminal progress bar during the upload.
	ShowProgress bool
}

// NewUploader creates an uploader over the given client slice and session
// store.
func NewUploader(api API, sessions *session.Manager, log logger.Logger) *Uploader {
	if log == nil {
		log = logger.NoopLogger{}
	}
	return &Uploader{
		api:      api,
		sessions: sessions,
		logger:   log,
	}
}

func (u *Uploader) chunkSize() int64 {
	if u.ChunkSize > 0 {
		return u.ChunkSize
	}
	return DefaultChunkSize
}

// Upload transfers a local file into the given folder. An interrupted upload
// of the same file to the same folder resumes from the last completed chunk.
// The returned Transfer reflects the final state even when an error is
// returned, so callers can inspect how far the upload got.
func (u *Uploader) Upload(ctx context.Context, localPath, folderID string) (Transfer, error) {
	transfer := Transfer{Status: StatusCreated}

	file, err := os.Open(localPath)
	if err != nil {
		return transfer, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		return transfer, fmt.Errorf("getting file info: %w", err)
	}
	transfer.TotalSize = fileInfo.Size()

	state, err := u.sessions.Load(localPath, folderID)
	if err != nil {
		return transfer, fmt.Errorf("loading session state: %w", err)
	}

	var expiration time.Time
	if state != nil {
		u.logger.Infof("Resuming upload from %d bytes", state.CompletedBytes)
		transfer.UploadURL = state.UploadURL
		transfer.BytesSent = state.CompletedBytes
		expiration = state.ExpirationDateTime
	} else {
		uploadSession, err := u.api.CreateUploadSession(ctx, filepath.Base(localPath), folderID)
		if err != nil {
			return transfer, fmt.Errorf("creating upload session: %w", err)
		}
		transfer.UploadURL = uploadSession.UploadURL
		expiration, _ = time.Parse(time.RFC3339, uploadSession.ExpirationDateTime)
	}

	return u.uploadChunks(ctx, file, localPath, folderID, expiration, transfer)
}

func (u *Uploader) uploadChunks(ctx context.Context, file *os.File, localPath, folderID string, expiration time.Time, transfer Transfer) (Transfer, error) {
	transfer.Status = StatusUploading

	var progressBar = ui.NewProgressBar(transfer.TotalSize, u.ShowProgress)
	defer progressBar.Close()
	_ = progressBar.Set64(transfer.BytesSent)

	chunkSize := u.chunkSize()
	currentByte := transfer.BytesSent

	for currentByte < transfer.TotalSize {
		if err := ctx.Err(); err != nil {
			u.saveState(localPath, folderID, transfer.UploadURL, expiration, currentByte)
			transfer.BytesSent = currentByte
			return transfer, fmt.Errorf("upload interrupted, session saved for resumption: %w", err)
		}

		endByte := currentByte + chunkSize - 1
		if endByte >= transfer.TotalSize {
			endByte = transfer.TotalSize - 1
		}

		chunkData := make([]byte, endByte-currentByte+1)
		if _, err := file.ReadAt(chunkData, currentByte); err != nil && err != io.EOF {
			transfer.BytesSent = currentByte
			return transfer, fmt.Errorf("reading chunk: %w", err)
		}

		result, err := u.api.UploadChunk(ctx, transfer.UploadURL, currentByte, endByte, transfer.TotalSize, bytes.NewReader(chunkData))
		if err != nil {
			u.saveState(localPath, folderID, transfer.UploadURL, expiration, currentByte)
			transfer.BytesSent = currentByte
			return transfer, fmt.Errorf("uploading chunk: %w", err)
		}

		currentByte = endByte + 1
		transfer.BytesSent = currentByte
		_ = progressBar.Set64(currentByte)

		if result.UploadURL != "" {
			transfer.UploadURL = result.UploadURL
		}
	}

	if err := u.sessions.Delete(localPath, folderID); err != nil {
		u.logger.Warnf("could not clean up session file: %v", err)
	}

	transfer.Status = StatusCompleted
	u.logger.Infof("File '%s' uploaded successfully", localPath)
	return transfer, nil
}

// Abort cancels an interrupted upload: the remote session is discarded and
// the persisted state removed, so the next Upload starts from scratch.
func (u *Uploader) Abort(ctx context.Context, localPath, folderID string) (Transfer, error) {
	transfer := Transfer{Status: StatusAborted}

	state, err := u.sessions.Load(localPath, folderID)
	if err != nil {
		return transfer, fmt.Errorf("loading session state: %w", err)
	}
	if state == nil {
		return transfer, fmt.Errorf("no resumable upload found for '%s'", localPath)
	}

	transfer.UploadURL = state.UploadURL
	transfer.BytesSent = state.CompletedBytes

	if err := u.api.CancelUploadSession(ctx, state.UploadURL); err != nil {
		return transfer, fmt.Errorf("canceling upload session: %w", err)
	}

	if err := u.sessions.Delete(localPath, folderID); err != nil {
		u.logger.Warnf("could not clean up session file: %v", err)
	}

	return transfer, nil
}

func (u *Uploader) saveState(localPath, folderID, uploadURL string, expiration time.Time, completedBytes int64) {
	state := &session.State{
		UploadURL:          uploadURL,
		ExpirationDateTime: expiration,
		LocalPath:          localPath,
		FolderID:           folderID,
		CompletedBytes:     completedBytes,
	}
	if err := u.sessions.Save(state); err != nil {
		u.logger.Warnf("could not save session state: %v", err)
	}
}
