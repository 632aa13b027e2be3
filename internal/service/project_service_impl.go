package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/consonum/timetrack/internal/config"
	"github.com/consonum/timetrack/internal/domain"
	"github.com/consonum/timetrack/internal/repository"
	"github.com/google/uuid"
)

type projectService struct {
	projects   repository.ProjectRepo
	categories repository.CategoryRepo
	cfg        config.Config
	clock      Clock
}

func NewProjectService(projects repository.ProjectRepo, categories repository.CategoryRepo, cfg config.Config, clock Clock) ProjectService {
	return &projectService{projects: projects, categories: categories, cfg: cfg, clock: clock}
}

func (s *projectService) CreateProject(ctx context.Context, p CreateProjectParams) (*domain.Project, error) {
	now := s.clock.Now()

	rate := s.cfg.DefaultHourlyRate
	if p.HourlyRate != nil {
		rate = *p.HourlyRate
	}
	color := p.Color
	if color == "" {
		color = domain.DefaultProjectColor
	}

	project := &domain.Project{
		ID:          uuid.New().String(),
		Name:        p.Name,
		Code:        p.Code,
		Description: p.Description,
		Color:       color,
		Department:  p.Department,
		HourlyRate:  rate,
		Status:      domain.ProjectActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := project.Validate(); err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}
	return project, nil
}

func (s *projectService) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) ListProjects(ctx context.Context, activeOnly bool) ([]*domain.Project, error) {
	return s.projects.List(ctx, activeOnly)
}

func (s *projectService) CreateCategory(ctx context.Context, p CreateCategoryParams) (*domain.Category, error) {
	now := s.clock.Now()

	if _, err := s.projects.GetByID(ctx, p.ProjectID); err != nil {
		return nil, err
	}

	category := &domain.Category{
		ID:          uuid.New().String(),
		ProjectID:   p.ProjectID,
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		SortOrder:   p.SortOrder,
		IsBillable:  p.Billable,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := category.Validate(); err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}
	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("category code %q in project: %w", p.Code, ErrConflict)
		}
		return nil, fmt.Errorf("creating category: %w", err)
	}
	return category, nil
}

func (s *projectService) ListCategories(ctx context.Context, projectID string) ([]*domain.Category, error) {
	return s.categories.ListByProject(ctx, projectID)
}
