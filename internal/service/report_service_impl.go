package service

import (
	"context"
	"fmt"
	"time"

	"github.com/consonum/timetrack/internal/domain"
	"github.com/consonum/timetrack/internal/repository"
)

type reportService struct {
	entries    repository.EntryRepo
	projects   repository.ProjectRepo
	categories repository.CategoryRepo
	clock      Clock
}

func NewReportService(
	entries repository.EntryRepo,
	projects repository.ProjectRepo,
	categories repository.CategoryRepo,
	clock Clock,
) ReportService {
	return &reportService{entries: entries, projects: projects, categories: categories, clock: clock}
}

func (s *reportService) Summarize(ctx context.Context, userID string, f EntryListFilter) (*Summary, error) {
	entries, err := s.entries.List(ctx, userID, repoFilter(f))
	if err != nil {
		return nil, err
	}
	return summarize(entries), nil
}

func summarize(entries []*domain.TimeEntry) *Summary {
	sum := &Summary{EntryCount: len(entries)}
	for _, e := range entries {
		sum.TotalHours += e.DurationHours
		sum.TotalAmount += e.TotalAmount
	}
	sum.TotalHours = domain.RoundHours(sum.TotalHours)
	sum.TotalAmount = domain.RoundAmount(sum.TotalAmount)
	if sum.TotalHours > 0 {
		sum.AverageRate = domain.RoundAmount(sum.TotalAmount / sum.TotalHours)
	}
	return sum
}

func (s *reportService) Today(ctx context.Context, userID string) (*TodayReport, error) {
	today := calendarDate(s.clock.Now())
	entries, err := s.entries.List(ctx, userID, repository.EntryFilter{From: &today, To: &today})
	if err != nil {
		return nil, err
	}

	report := &TodayReport{Date: today, Entries: entries}

	// Buckets keep first-seen order so the breakdown is stable run to run.
	index := make(map[string]int)
	projectCache := make(map[string]*domain.Project)
	categoryCache := make(map[string]*domain.Category)
	for _, e := range entries {
		report.TotalHours += e.DurationHours

		project, ok := projectCache[e.ProjectID]
		if !ok {
			project, err = s.projects.GetByID(ctx, e.ProjectID)
			if err != nil {
				return nil, fmt.Errorf("resolving project for report: %w", err)
			}
			projectCache[e.ProjectID] = project
		}

		label := project.Name
		if e.CategoryID != nil {
			category, ok := categoryCache[*e.CategoryID]
			if !ok {
				category, err = s.categories.GetByID(ctx, *e.CategoryID)
				if err != nil {
					return nil, fmt.Errorf("resolving category for report: %w", err)
				}
				categoryCache[*e.CategoryID] = category
			}
			label = fmt.Sprintf("%s - %s", project.Name, category.Code)
		}

		if i, ok := index[label]; ok {
			report.Buckets[i].Hours = domain.RoundHours(report.Buckets[i].Hours + e.DurationHours)
			continue
		}
		index[label] = len(report.Buckets)
		report.Buckets = append(report.Buckets, ProjectBucket{
			Label: label,
			Color: project.Color,
			Hours: domain.RoundHours(e.DurationHours),
		})
	}
	report.TotalHours = domain.RoundHours(report.TotalHours)
	return report, nil
}

func (s *reportService) WeekHours(ctx context.Context, userID string) (float64, error) {
	now := s.clock.Now()
	from := weekStart(now)
	to := from.AddDate(0, 0, 6)
	return s.rangeHours(ctx, userID, from, to)
}

func (s *reportService) MonthHours(ctx context.Context, userID string) (float64, error) {
	now := s.clock.Now()
	from := monthStart(now)
	to := from.AddDate(0, 1, -1)
	return s.rangeHours(ctx, userID, from, to)
}

func (s *reportService) rangeHours(ctx context.Context, userID string, from, to time.Time) (float64, error) {
	entries, err := s.entries.List(ctx, userID, repository.EntryFilter{From: &from, To: &to})
	if err != nil {
		return 0, err
	}
	var hours float64
	for _, e := range entries {
		hours += e.DurationHours
	}
	return domain.RoundHours(hours), nil
}
