// Package config loads application credentials from the environment and
// persists CLI state between invocations.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"

	"github.com/tmattila/sharepoint-client/pkg/sharepoint"
)

const configDir = ".sharepoint-client"
const configFile = "config.json"

// Environment variables holding the Azure AD application credentials.
// Credentials are never persisted to disk.
const (
	EnvClientID     = "SHAREPOINT_CLIENT_ID"
	EnvClientSecret = "SHAREPOINT_CLIENT_SECRET"
	EnvTenantID     = "SHAREPOINT_TENANT_ID"
	EnvTenantName   = "SHAREPOINT_TENANT_NAME"
	EnvSiteName     = "SHAREPOINT_SITE_NAME"
)

// LoadCredentials reads the application credentials from the environment,
// consulting a .env file in the working directory first. The site name is
// optional (it can be given on the command line); everything else is
// required.
func LoadCredentials() (sharepoint.Credentials, string, error) {
	// Ignore a missing .env; plain environment variables still work.
	_ = godotenv.Load()

	creds := sharepoint.Credentials{
		ClientID:     os.Getenv(EnvClientID),
		ClientSecret: os.Getenv(EnvClientSecret),
		TenantID:     os.Getenv(EnvTenantID),
		TenantName:   os.Getenv(EnvTenantName),
	}

	missing := []string{}
	if creds.ClientID == "" {
		missing = append(missing, EnvClientID)
	}
	if creds.ClientSecret == "" {
		missing = append(missing, EnvClientSecret)
	}
	if creds.TenantID == "" {
		missing = append(missing, EnvTenantID)
	}
	if creds.TenantName == "" {
		missing = append(missing, EnvTenantName)
	}
	if len(missing) > 0 {
		return creds, "", fmt.Errorf("missing required environment variables: %v", missing)
	}

	return creds, os.Getenv(EnvSiteName), nil
}

// State holds the application's persisted settings: the resolved site and
// drive ids so repeat invocations skip re-resolution, and the debug flag.
type State struct {
	SiteID  string       `json:"siteId,omitempty"`
	DriveID string       `json:"driveId,omitempty"`
	Debug   bool         `json:"debug"`
	mu      sync.RWMutex // guards writes during Save
}

// Save persists the state struct to a JSON file on disk.
func (s *State) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	jsonData, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling state to JSON: %v", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("getting home directory: %v", err)
	}

	configDirPath := filepath.Join(homeDir, configDir)
	if _, err := os.Stat(configDirPath); os.IsNotExist(err) {
		if err := os.Mkdir(configDirPath, 0700); err != nil {
			return fmt.Errorf("creating config directory: %v", err)
		}
	}

	configFilePath := filepath.Join(configDirPath, configFile)
	if err := os.WriteFile(configFilePath, jsonData, 0600); err != nil {
		return fmt.Errorf("writing state file: %v", err)
	}

	return nil
}

// Load reads the state file from disk.
func Load() (*State, error) {
	state := &State{}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting home directory: %v", err)
	}

	statePath := filepath.Join(homeDir, configDir, configFile)
	data, err := os.ReadFile(statePath)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("unmarshalling json: %v", err)
	}

	return state, nil
}

// LoadOrCreate attempts to load the state file. If it doesn't exist, it
// returns a new, empty state struct.
func LoadOrCreate() (*State, error) {
	state, err := Load()
	if err != nil {
		if os.IsNotExist(err) {
			return &State{}, nil
		}
		return nil, err
	}
	return state, nil
}
