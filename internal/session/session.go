// Package session persists resumable upload session state between process
// runs. Session files are flock-guarded so two instances cannot corrupt the
// same upload.
package session

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// State represents the state of a resumable upload.
type State struct {
	UploadURL          string    `json:"uploadUrl"`
	ExpirationDateTime time.Time `json:"expirationDateTime"`
	LocalPath          string    `json:"localPath"`
	FolderID           string    `json:"folderId"`
	CompletedBytes     int64     `json:"completedBytes"`
}

// Manager handles session file operations with a configurable directory.
type Manager struct {
	configDir string
}

// NewManager creates a session manager under the user's config directory.
func NewManager() (*Manager, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("could not get user config directory: %w", err)
	}
	return &Manager{
		configDir: filepath.Join(configDir, "sharepoint-client"),
	}, nil
}

// NewManagerWithConfigDir creates a session manager with a custom directory.
func NewManagerWithConfigDir(configDir string) *Manager {
	return &Manager{configDir: configDir}
}

func (m *Manager) getSessionDir() string {
	return filepath.Join(m.configDir, "sessions")
}

// GetSessionFilePath returns the session file path for an upload, named
// deterministically from the local path and target folder.
func (m *Manager) GetSessionFilePath(localPath, folderID string) string {
	hash := sha256.New()
	hash.Write([]byte(localPath + ":" + folderID))
	filename := hex.EncodeToString(hash.Sum(nil)) + ".json"

	return filepath.Join(m.getSessionDir(), filename)
}

// Save persists the upload session state to a file.
func (m *Manager) Save(state *State) error {
	sessionDir := m.getSessionDir()
	if err := os.MkdirAll(sessionDir, 0755); err != nil {
		return fmt.Errorf("could not create session directory: %w", err)
	}

	filePath := m.GetSessionFilePath(state.LocalPath, state.FolderID)

	lock := flock.New(filePath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("could not acquire file lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("could not acquire file lock, another instance may be running")
	}
	defer lock.Unlock()

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("could not marshal session state: %w", err)
	}

	return os.WriteFile(filePath, data, 0600)
}

// Load retrieves the upload session state from a file. It returns nil, nil
// when no resumable session exists or the stored one has expired.
func (m *Manager) Load(localPath, folderID string) (*State, error) {
	// The lock file lives in the session directory, which won't exist
	// before the first Save.
	if err := os.MkdirAll(m.getSessionDir(), 0755); err != nil {
		return nil, fmt.Errorf("could not create session directory: %w", err)
	}

	filePath := m.GetSessionFilePath(localPath, folderID)

	lock := flock.New(filePath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("could not acquire file lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("could not acquire file lock, another instance may be running")
	}
	defer lock.Unlock()

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not read session file: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("could not unmarshal session state: %w", err)
	}

	if time.Now().After(state.ExpirationDateTime) {
		// Remove inline: Delete would contend for the lock Load still holds.
		if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("could not delete expired session file: %w", err)
		}
		return nil, nil
	}

	return &state, nil
}

// Delete removes the session state file.
func (m *Manager) Delete(localPath, folderID string) error {
	if err := os.MkdirAll(m.getSessionDir(), 0755); err != nil {
		return fmt.Errorf("could not create session directory: %w", err)
	}

	filePath := m.GetSessionFilePath(localPath, folderID)

	lock := flock.New(filePath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("could not acquire file lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("could not acquire file lock, another instance may be running")
	}
	defer lock.Unlock()

	err = os.Remove(filePath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("could not delete session file: %w", err)
	}
	return nil
}
