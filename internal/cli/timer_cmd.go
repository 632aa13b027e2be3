package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/consonum/timetrack/internal/cli/formatter"
	"github.com/consonum/timetrack/internal/service"
	"github.com/spf13/cobra"
)

func newTimerCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Start, pause, resume and stop the active timer",
	}

	cmd.AddCommand(
		newTimerStartCmd(app),
		newTimerPauseCmd(app),
		newTimerResumeCmd(app),
		newTimerStopCmd(app),
		newTimerStatusCmd(app),
		newTimerWatchCmd(app),
	)

	return cmd
}

func newTimerStartCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "start [PROJECT [CATEGORY]]",
		Short: "Start a timer (auto-stops a previous one)",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var projectID, categoryID string
			if len(args) > 0 {
				project, err := resolveProject(ctx, app, args[0])
				if err != nil {
					return err
				}
				projectID = project.ID
			} else if app.interactive() {
				projects, err := app.Projects.ListProjects(ctx, true)
				if err != nil {
					return err
				}
				if len(projects) == 0 {
					return fmt.Errorf("no active projects; create one with 'timetrack project add'")
				}
				if err := projectSelectForm(projects, &projectID).Run(); err != nil {
					return err
				}
			} else {
				return fmt.Errorf("project is required")
			}

			if len(args) > 1 {
				category, err := resolveCategory(ctx, app, projectID, args[1])
				if err != nil {
					return err
				}
				categoryID = category.ID
			} else if app.interactive() {
				categories, err := app.Projects.ListCategories(ctx, projectID)
				if err != nil {
					return err
				}
				if len(categories) == 0 {
					return fmt.Errorf("project has no categories; add one with 'timetrack project category add'")
				}
				if err := categorySelectForm(categories, &categoryID).Run(); err != nil {
					return err
				}
			} else {
				return fmt.Errorf("category is required")
			}

			timer, err := app.Timers.Start(ctx, app.UserID, projectID, categoryID)
			if err != nil {
				return err
			}

			fmt.Printf("%s  started at %s\n",
				formatter.TimerStatusPill(timer.Status),
				formatter.FormatClock(timer.StartedAt))
			return nil
		},
	}
}

func newTimerPauseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pause",
		Short: "Pause the running timer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			timer, err := app.Timers.Pause(context.Background(), app.UserID)
			if err != nil {
				return err
			}
			fmt.Printf("%s  at %s\n",
				formatter.TimerStatusPill(timer.Status),
				formatter.FormatElapsed(timer.ElapsedSeconds(time.Now().UTC())))
			return nil
		},
	}
}

func newTimerResumeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "resume",
		Short: "Resume a paused timer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			timer, err := app.Timers.Resume(context.Background(), app.UserID)
			if err != nil {
				return err
			}
			fmt.Printf("%s  paused %s in total\n",
				formatter.TimerStatusPill(timer.Status),
				formatter.FormatElapsed(timer.PausedDuration))
			return nil
		},
	}
}

func newTimerStopCmd(app *App) *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the timer and record a time entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("message") && app.interactive() {
				if err := stopDescriptionForm(&message).Run(); err != nil {
					return err
				}
			}

			entry, err := app.Timers.Stop(context.Background(), app.UserID, message)
			if err != nil {
				return err
			}

			fmt.Println("Recorded:")
			fmt.Println(formatter.FormatEntryDetail(entry, app.Currency))
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Description for the recorded entry")

	return cmd
}

func newTimerStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the active timer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			timer, err := app.Timers.Current(ctx, app.UserID)
			if err != nil {
				if service.IsNotFound(err) {
					fmt.Println(formatter.Dim("No active timer."))
					return nil
				}
				return err
			}

			data := formatter.TimerStatusData{Timer: timer, Now: time.Now().UTC()}
			if p, err := app.Projects.GetProject(ctx, timer.ProjectID); err == nil {
				data.Project = p
			}
			if c, err := resolveCategory(ctx, app, timer.ProjectID, timer.CategoryID); err == nil {
				data.Category = c
			}

			fmt.Println(formatter.FormatTimerStatus(data))
			return nil
		},
	}
}
