package formatter

import (
	"fmt"

	"github.com/consonum/timetrack/internal/domain"
)

// FormatProjectList renders the project directory as a table.
func FormatProjectList(projects []*domain.Project, currency string) string {
	headers := []string{"ID", "Name", "Code", "Status", fmt.Sprintf("Rate (%s)", currency)}
	rows := make([][]string, 0, len(projects))

	for _, p := range projects {
		code := p.Code
		if code == "" {
			code = Dim("--")
		}
		rows = append(rows, []string{
			TruncID(p.ID),
			Swatch(p.Color, p.Name),
			code,
			ProjectStatusPill(p.Status),
			fmt.Sprintf("%.2f", p.HourlyRate),
		})
	}

	return RenderTable(headers, rows)
}

// FormatCategoryList renders a project's categories in sort order.
func FormatCategoryList(categories []*domain.Category) string {
	headers := []string{"ID", "Code", "Name", "Billable"}
	rows := make([][]string, 0, len(categories))

	for _, c := range categories {
		billable := StyleGreen.Render("yes")
		if !c.IsBillable {
			billable = Dim("no")
		}
		rows = append(rows, []string{
			TruncID(c.ID),
			StyleBold.Render(c.Code),
			c.Name,
			billable,
		})
	}

	return RenderTable(headers, rows)
}
