package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/consonum/timetrack/internal/cli/formatter"
	"github.com/consonum/timetrack/internal/export"
	"github.com/spf13/cobra"
)

func newReportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Aggregate and export tracked time",
	}

	cmd.AddCommand(
		newReportSummaryCmd(app),
		newReportTodayCmd(app),
		newReportHoursCmd(app),
		newReportExportCmd(app),
	)

	return cmd
}

func newReportSummaryCmd(app *App) *cobra.Command {
	var fromFlag, toFlag, projectFlag string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show totals for a period",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			filter, err := listFilterFromFlags(ctx, app, fromFlag, toFlag, projectFlag)
			if err != nil {
				return err
			}
			sum, err := app.Reports.Summarize(ctx, app.UserID, filter)
			if err != nil {
				return err
			}

			fmt.Println(formatter.FormatSummary(sum, app.Currency))
			return nil
		},
	}

	cmd.Flags().StringVar(&fromFlag, "from", "", "Range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toFlag, "to", "", "Range end (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&projectFlag, "project", "p", "", "Project filter (code, name, ID or 'all')")

	return cmd
}

func newReportTodayCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's entries and per-project breakdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			report, err := app.Reports.Today(ctx, app.UserID)
			if err != nil {
				return err
			}
			projects, categories, err := referenceMaps(ctx, app, report.Entries)
			if err != nil {
				return err
			}

			fmt.Println(formatter.FormatTodayReport(report, projects, categories, app.Currency))
			return nil
		},
	}
}

func newReportHoursCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "hours",
		Short: "Show hours tracked this week and this month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			week, err := app.Reports.WeekHours(ctx, app.UserID)
			if err != nil {
				return err
			}
			month, err := app.Reports.MonthHours(ctx, app.UserID)
			if err != nil {
				return err
			}

			fmt.Printf("This week   %s\n", formatter.Bold(formatter.FormatHours(week)))
			fmt.Printf("This month  %s\n", formatter.Bold(formatter.FormatHours(month)))
			return nil
		},
	}
}

func newReportExportCmd(app *App) *cobra.Command {
	var fromFlag, toFlag, projectFlag, outFlag string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export entries as CSV",
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
			projects, categories, err := referenceMaps(ctx, app, entries)
			if err != nil {
				return err
			}

			out := os.Stdout
			if outFlag != "" {
				f, err := os.Create(outFlag)
				if err != nil {
					return fmt.Errorf("creating export file: %w", err)
				}
				defer f.Close()
				out = f
			}

			if err := export.WriteEntriesCSV(out, app.Currency, entries, projects, categories); err != nil {
				return err
			}
			if outFlag != "" {
				fmt.Printf("Exported %d entries to %s\n", len(entries), outFlag)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&fromFlag, "from", "", "Range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toFlag, "to", "", "Range end (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&projectFlag, "project", "p", "", "Project filter (code, name, ID or 'all')")
	cmd.Flags().StringVarP(&outFlag, "out", "o", "", "Output file (defaults to stdout)")

	return cmd
}
