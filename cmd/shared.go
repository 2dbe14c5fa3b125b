package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmattila/sharepoint-client/internal/app"
)

// logicFunc is the testable body of a command, separated from cobra wiring
// so tests can drive it with a mock SDK.
type logicFunc func(a *app.App, cmd *cobra.Command, args []string) error

// runWithDrive wraps a command body that needs the resolved drive context.
func runWithDrive(logic logicFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := app.NewApp(cmd)
		if err != nil {
			return fmt.Errorf("error creating app: %w", err)
		}
		if err := a.EnsureDrive(cmd.Context()); err != nil {
			return err
		}
		return logic(a, cmd, args)
	}
}

// runWithSite wraps a command body that needs only the resolved site context.
func runWithSite(logic logicFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := app.NewApp(cmd)
		if err != nil {
			return fmt.Errorf("error creating app: %w", err)
		}
		if err := a.EnsureSite(cmd.Context()); err != nil {
			return err
		}
		return logic(a, cmd, args)
	}
}
