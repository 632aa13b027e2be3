package cli

import (
	"github.com/consonum/timetrack/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands,
// plus the per-invocation user and display configuration.
type App struct {
	Timers   service.TimerService
	Entries  service.EntryService
	Projects service.ProjectService
	Reports  service.ReportService

	// UserID scopes every timer and entry operation to the invoking user.
	UserID string
	// Currency is the display currency for amounts.
	Currency string

	// IsInteractive reports whether stdin is attached to a terminal,
	// gating the interactive prompts.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "timetrack" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "timetrack",
		Short: "Track time against projects and categories",
	}

	root.AddCommand(
		newTimerCmd(app),
		newEntryCmd(app),
		newProjectCmd(app),
		newReportCmd(app),
	)

	return root
}
