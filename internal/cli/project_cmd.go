package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/consonum/timetrack/internal/cli/formatter"
	"github.com/consonum/timetrack/internal/service"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects and their categories",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newCategoryCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name, code, description, color, department string
	var rate float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			params := service.CreateProjectParams{
				Name:        name,
				Code:        strings.ToUpper(code),
				Description: description,
				Color:       color,
				Department:  department,
			}
			if cmd.Flags().Changed("rate") {
				params.HourlyRate = &rate
			}

			p, err := app.Projects.CreateProject(context.Background(), params)
			if err != nil {
				return err
			}

			fmt.Printf("Created project %s at %s/h\n",
				formatter.Swatch(p.Color, p.Name),
				formatter.FormatMoney(app.Currency, p.HourlyRate))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&code, "code", "", "Short code (e.g. WEB)")
	cmd.Flags().StringVar(&description, "description", "", "Project description")
	cmd.Flags().StringVar(&color, "color", "", "Display color (hex, e.g. #3B82F6)")
	cmd.Flags().StringVar(&department, "department", "", "Owning department")
	cmd.Flags().Float64Var(&rate, "rate", 0, "Hourly rate (defaults to the configured rate)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.ListProjects(context.Background(), !all)
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Println(formatter.Dim("No projects found."))
				return nil
			}
			fmt.Print(formatter.FormatProjectList(projects, app.Currency))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include inactive and completed projects")

	return cmd
}

func newCategoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage a project's categories",
	}

	cmd.AddCommand(
		newCategoryAddCmd(app),
		newCategoryListCmd(app),
	)

	return cmd
}

func newCategoryAddCmd(app *App) *cobra.Command {
	var projectFlag, code, name, description string
	var sortOrder int
	var notBillable bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a category to a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			project, err := resolveProject(ctx, app, projectFlag)
			if err != nil {
				return err
			}

			c, err := app.Projects.CreateCategory(ctx, service.CreateCategoryParams{
				ProjectID:   project.ID,
				Code:        strings.ToUpper(code),
				Name:        name,
				Description: description,
				SortOrder:   sortOrder,
				Billable:    !notBillable,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Added category %s — %s to %s\n", c.Code, c.Name, project.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectFlag, "project", "p", "", "Project (code, name or ID)")
	cmd.Flags().StringVar(&code, "code", "", "Short code (e.g. DEV)")
	cmd.Flags().StringVar(&name, "name", "", "Category name")
	cmd.Flags().StringVar(&description, "description", "", "Category description")
	cmd.Flags().IntVar(&sortOrder, "sort", 0, "Display sort order")
	cmd.Flags().BoolVar(&notBillable, "non-billable", false, "Mark the category non-billable")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("code")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newCategoryListCmd(app *App) *cobra.Command {
	var projectFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			project, err := resolveProject(ctx, app, projectFlag)
			if err != nil {
				return err
			}
			categories, err := app.Projects.ListCategories(ctx, project.ID)
			if err != nil {
				return err
			}
			if len(categories) == 0 {
				fmt.Println(formatter.Dim("No categories found."))
				return nil
			}
			fmt.Print(formatter.FormatCategoryList(categories))
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectFlag, "project", "p", "", "Project (code, name or ID)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}
