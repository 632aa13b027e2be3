package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/consonum/timetrack/internal/cli/formatter"
	"github.com/consonum/timetrack/internal/service"
	"github.com/spf13/cobra"
)

func newEntryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Manage recorded time entries",
	}

	cmd.AddCommand(
		newEntryAddCmd(app),
		newEntryListCmd(app),
		newEntryUpdateCmd(app),
		newEntryRemoveCmd(app),
	)

	return cmd
}

// parseDay parses a YYYY-MM-DD flag value.
func parseDay(value string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return d, nil
}

// parseClockOn combines a HH:MM flag value with a calendar day.
func parseClockOn(day time.Time, value string) (time.Time, error) {
	c, err := time.Parse("15:04", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, expected HH:MM", value)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour(), c.Minute(), 0, 0, time.UTC), nil
}

func newEntryAddCmd(app *App) *cobra.Command {
	var projectFlag, categoryFlag, dateFlag, startFlag, endFlag, message string
	var durationFlag float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a time entry manually",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			project, err := resolveProject(ctx, app, projectFlag)
			if err != nil {
				return err
			}

			day := time.Now().UTC()
			if dateFlag != "" {
				if day, err = parseDay(dateFlag); err != nil {
					return err
				}
			}
			start, err := parseClockOn(day, startFlag)
			if err != nil {
				return err
			}

			params := service.CreateEntryParams{
				ProjectID:   project.ID,
				StartTime:   start,
				Description: message,
			}
			if categoryFlag != "" {
				category, err := resolveCategory(ctx, app, project.ID, categoryFlag)
				if err != nil {
					return err
				}
				params.CategoryID = &category.ID
			}
			if endFlag != "" {
				end, err := parseClockOn(day, endFlag)
				if err != nil {
					return err
				}
				params.EndTime = &end
			}
			if cmd.Flags().Changed("duration") {
				params.DurationHours = &durationFlag
			}

			entry, err := app.Entries.Create(ctx, app.UserID, params)
			if err != nil {
				return err
			}

			fmt.Println("Recorded:")
			fmt.Println(formatter.FormatEntryDetail(entry, app.Currency))
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectFlag, "project", "p", "", "Project (code, name or ID)")
	cmd.Flags().StringVarP(&categoryFlag, "category", "c", "", "Category (code or ID)")
	cmd.Flags().StringVar(&dateFlag, "date", "", "Entry date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&startFlag, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&endFlag, "end", "", "End time (HH:MM, omit for a draft)")
	cmd.Flags().Float64Var(&durationFlag, "duration", 0, "Duration in hours (drafts only)")
	cmd.Flags().StringVarP(&message, "message", "m", "", "Description")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

// listFilterFromFlags turns the shared --from/--to/--project flags into a
// service filter.
func listFilterFromFlags(ctx context.Context, app *App, fromFlag, toFlag, projectFlag string) (service.EntryListFilter, error) {
	var f service.EntryListFilter

	if fromFlag != "" {
		from, err := parseDay(fromFlag)
		if err != nil {
			return f, err
		}
		f.From = &from
	}
	if toFlag != "" {
		to, err := parseDay(toFlag)
		if err != nil {
			return f, err
		}
		f.To = &to
	}
	if projectFlag != "" && projectFlag != "all" {
		project, err := resolveProject(ctx, app, projectFlag)
		if err != nil {
			return f, err
		}
		f.ProjectID = project.ID
	}
	return f, nil
}

func newEntryListCmd(app *App) *cobra.Command {
	var fromFlag, toFlag, projectFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List time entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			filter, err := listFilterFromFlags(ctx, app, fromFlag, toFlag, projectFlag)
			if err != nil {
				return err
			}
			entries, err := app.Entries.List(ctx, app.UserID, filter)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println(formatter.Dim("No entries found."))
				return nil
			}

			projects, categories, err := referenceMaps(ctx, app, entries)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatEntryTable(entries, projects, categories, app.Currency))
			return nil
		},
	}

	cmd.Flags().StringVar(&fromFlag, "from", "", "Range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toFlag, "to", "", "Range end (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&projectFlag, "project", "p", "", "Project filter (code, name, ID or 'all')")

	return cmd
}

func newEntryUpdateCmd(app *App) *cobra.Command {
	var dateFlag, startFlag, endFlag, message string
	var durationFlag float64
	var clearEnd bool

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Edit a time entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			current, err := app.Entries.Get(ctx, app.UserID, args[0])
			if err != nil {
				return err
			}

			day := current.Date
			var params service.UpdateEntryParams
			if cmd.Flags().Changed("date") {
				if day, err = parseDay(dateFlag); err != nil {
					return err
				}
				params.Date = &day
			}
			if cmd.Flags().Changed("start") {
				start, err := parseClockOn(day, startFlag)
				if err != nil {
					return err
				}
				params.StartTime = &start
			}
			if cmd.Flags().Changed("end") {
				end, err := parseClockOn(day, endFlag)
				if err != nil {
					return err
				}
				params.EndTime = &end
			}
			if clearEnd {
				params.ClearEnd = true
			}
			if cmd.Flags().Changed("duration") {
				params.DurationHours = &durationFlag
			}
			if cmd.Flags().Changed("message") {
				params.Description = &message
			}

			entry, err := app.Entries.Update(ctx, app.UserID, args[0], params)
			if err != nil {
				return err
			}

			fmt.Println("Updated:")
			fmt.Println(formatter.FormatEntryDetail(entry, app.Currency))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Entry date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&startFlag, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&endFlag, "end", "", "End time (HH:MM)")
	cmd.Flags().BoolVar(&clearEnd, "clear-end", false, "Remove the end time (reverts to draft)")
	cmd.Flags().Float64Var(&durationFlag, "duration", 0, "Duration in hours")
	cmd.Flags().StringVarP(&message, "message", "m", "", "Description")

	return cmd
}

func newEntryRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a time entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Entries.Delete(context.Background(), app.UserID, args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed entry %s\n", args[0])
			return nil
		},
	}
}
