// Package app wires configuration, logging, and the SharePoint client
// together for the command layer.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmattila/sharepoint-client/internal/config"
	"github.com/tmattila/sharepoint-client/internal/logger"
	"github.com/tmattila/sharepoint-client/pkg/sharepoint"
)

// ErrNoSiteName is returned when site resolution is needed but no site name
// was configured or given on the command line.
var ErrNoSiteName = errors.New("no site name configured, set " + config.EnvSiteName + " or pass --site")

// App carries the dependencies of a command invocation.
type App struct {
	Config   *config.State
	SDK      SDK
	Logger   logger.Logger
	SiteName string
}

// NewApp builds an App from persisted state, environment credentials, and
// the command's flags. No network call happens here; the client's token is
// acquired lazily on the first operation.
func NewApp(cmd *cobra.Command) (*App, error) {
	cfg, err := config.LoadOrCreate()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	// Set debug mode from the flag if it was passed.
	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		cfg.Debug = true
	}

	log := logger.NewDefaultLogger(cfg.Debug)

	creds, siteName, err := config.LoadCredentials()
	if err != nil {
		return nil, err
	}

	if flagSite, _ := cmd.Flags().GetString("site"); flagSite != "" {
		siteName = flagSite
	}

	client := sharepoint.NewClient(cmd.Context(), creds, log)

	// Seed resolved context from an earlier run.
	if cfg.SiteID != "" {
		client.UseSite(cfg.SiteID)
	}
	if cfg.DriveID != "" {
		client.UseDrive(cfg.DriveID)
	}

	return &App{
		Config:   cfg,
		SDK:      client,
		Logger:   log,
		SiteName: siteName,
	}, nil
}

// EnsureSite resolves the configured site unless an id is already cached,
// persisting the resolution for later invocations.
func (a *App) EnsureSite(ctx context.Context) error {
	if a.SDK.SiteID() != "" {
		return nil
	}

	if a.SiteName == "" {
		return ErrNoSiteName
	}

	site, err := a.SDK.ResolveSite(ctx, a.SiteName)
	if err != nil {
		return fmt.Errorf("resolving site '%s': %w", a.SiteName, err)
	}
	a.Logger.Debug("resolved site", "name", a.SiteName, "id", site.ID)

	a.Config.SiteID = site.ID
	if err := a.Config.Save(); err != nil {
		a.Logger.Warnf("could not persist site id: %v", err)
	}
	return nil
}

// EnsureDrive resolves the site's default document library unless an id is
// already cached.
func (a *App) EnsureDrive(ctx context.Context) error {
	if err := a.EnsureSite(ctx); err != nil {
		return err
	}

	if a.SDK.DriveID() != "" {
		return nil
	}

	drive, err := a.SDK.ResolveDrive(ctx)
	if err != nil {
		return fmt.Errorf("resolving drive: %w", err)
	}
	a.Logger.Debug("resolved drive", "name", drive.Name, "id", drive.ID)

	a.Config.DriveID = drive.ID
	if err := a.Config.Save(); err != nil {
		a.Logger.Warnf("could not persist drive id: %v", err)
	}
	return nil
}
