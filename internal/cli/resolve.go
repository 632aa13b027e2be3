package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/consonum/timetrack/internal/domain"
)

// resolveProject turns user input into a project, matching by code, exact
// ID, name, or unambiguous ID prefix, in that order.
func resolveProject(ctx context.Context, app *App, input string) (*domain.Project, error) {
	if input == "" {
		return nil, fmt.Errorf("project is required")
	}

	projects, err := app.Projects.ListProjects(ctx, false)
	if err != nil {
		return nil, err
	}

	for _, p := range projects {
		if p.Code != "" && strings.EqualFold(p.Code, input) {
			return p, nil
		}
	}
	for _, p := range projects {
		if p.ID == input {
			return p, nil
		}
	}
	for _, p := range projects {
		if strings.EqualFold(p.Name, input) {
			return p, nil
		}
	}

	var matches []*domain.Project
	for _, p := range projects {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("project %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveCategory turns user input into one of the project's categories,
// matching by code first, then ID.
func resolveCategory(ctx context.Context, app *App, projectID, input string) (*domain.Category, error) {
	if input == "" {
		return nil, fmt.Errorf("category is required")
	}

	categories, err := app.Projects.ListCategories(ctx, projectID)
	if err != nil {
		return nil, err
	}

	for _, c := range categories {
		if strings.EqualFold(c.Code, input) {
			return c, nil
		}
	}
	for _, c := range categories {
		if c.ID == input {
			return c, nil
		}
	}
	return nil, fmt.Errorf("category not found in project: %q", input)
}

// referenceMaps fetches lookup maps for rendering entry listings.
func referenceMaps(ctx context.Context, app *App, entries []*domain.TimeEntry) (map[string]*domain.Project, map[string]*domain.Category, error) {
	projects := make(map[string]*domain.Project)
	categories := make(map[string]*domain.Category)

	for _, e := range entries {
		if _, ok := projects[e.ProjectID]; !ok {
			p, err := app.Projects.GetProject(ctx, e.ProjectID)
			if err != nil {
				return nil, nil, err
			}
			projects[e.ProjectID] = p
			cats, err := app.Projects.ListCategories(ctx, e.ProjectID)
			if err != nil {
				return nil, nil, err
			}
			for _, c := range cats {
				categories[c.ID] = c
			}
		}
	}
	return projects, categories, nil
}
