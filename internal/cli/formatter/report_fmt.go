package formatter

import (
	"fmt"
	"strings"

	"github.com/consonum/timetrack/internal/domain"
	"github.com/consonum/timetrack/internal/service"
)

// FormatSummary renders the aggregate totals of an entry listing.
func FormatSummary(sum *service.Summary, currency string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Entries       %d\n", sum.EntryCount))
	b.WriteString(fmt.Sprintf("Total Hours   %s\n", FormatHours(sum.TotalHours)))
	b.WriteString(fmt.Sprintf("Total Amount  %s\n", FormatMoney(currency, sum.TotalAmount)))
	b.WriteString(fmt.Sprintf("Average Rate  %s/h", FormatMoney(currency, sum.AverageRate)))
	return RenderBox("Summary", b.String())
}

// FormatTodayReport renders today's entries and the per-project breakdown.
func FormatTodayReport(
	report *service.TodayReport,
	projects map[string]*domain.Project,
	categories map[string]*domain.Category,
	currency string,
) string {
	var b strings.Builder

	b.WriteString(Header(fmt.Sprintf("Today — %s", report.Date.Format("Mon, Jan 2 2006"))))
	b.WriteString("\n\n")

	if len(report.Entries) == 0 {
		b.WriteString(Dim("No time tracked yet today."))
		return b.String()
	}

	b.WriteString(FormatEntryTable(report.Entries, projects, categories, currency))
	b.WriteString("\n")

	for _, bucket := range report.Buckets {
		b.WriteString(fmt.Sprintf("%s  %s\n",
			Swatch(bucket.Color, bucket.Label),
			StyleBold.Render(FormatHours(bucket.Hours))))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Total: %s", StyleBold.Render(FormatHours(report.TotalHours))))

	return b.String()
}
