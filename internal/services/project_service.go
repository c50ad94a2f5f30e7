package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/vitrine-studio/vitrine/internal/models"
)

// ProjectInput is the payload accepted when adding a portfolio project.
type ProjectInput struct {
	Title       string   `json:"title" validate:"notblank"`
	Slug        *string  `json:"slug"`
	Description string   `json:"description" validate:"notblank"`
	Image       *string  `json:"image"`
	Video       *string  `json:"video"`
	Category    string   `json:"category" validate:"notblank"`
	Tags        []string `json:"tags"`
	Date        *Date    `json:"date"`
}

// ProjectUpdate carries the fields to change; nil fields are left untouched.
type ProjectUpdate struct {
	Title       *string   `json:"title" validate:"omitempty,notblank"`
	Slug        *string   `json:"slug"`
	Description *string   `json:"description" validate:"omitempty,notblank"`
	Image       *string   `json:"image"`
	Video       *string   `json:"video"`
	Category    *string   `json:"category" validate:"omitempty,notblank"`
	Tags        *[]string `json:"tags"`
	Date        *Date     `json:"date"`
}

// ProjectService manages portfolio projects and their slugs.
type ProjectService struct {
	db    *gorm.DB
	slugs slugAllocator
	now   func() time.Time
}

// NewProjectService constructs a ProjectService.
func NewProjectService(db *gorm.DB) (*ProjectService, error) {
	if db == nil {
		return nil, errors.New("project service: db is required")
	}
	return &ProjectService{
		db:    db,
		slugs: newSlugAllocator(db, "projects", "project"),
		now:   time.Now,
	}, nil
}

// List returns projects newest first. The "Tous" category means all.
func (s *ProjectService) List(ctx context.Context, category string) ([]models.Project, error) {
	ctx = ensureContext(ctx)

	query := s.db.WithContext(ctx).Model(&models.Project{})
	if category = strings.TrimSpace(category); category != "" && category != models.AllProjectsCategory {
		query = query.Where("category = ?", category)
	}

	projects := make([]models.Project, 0)
	if err := query.Order("date DESC").Order("id DESC").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("project service: list projects: %w", err)
	}
	return projects, nil
}

// Get resolves ref as a numeric id first, then as a slug.
func (s *ProjectService) Get(ctx context.Context, ref string) (*models.Project, error) {
	ctx = ensureContext(ctx)

	var project models.Project
	if id, ok := parseID(ref); ok {
		err := s.db.WithContext(ctx).First(&project, id).Error
		if err == nil {
			return &project, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project service: get project: %w", err)
		}
	}

	err := s.db.WithContext(ctx).Where("slug = ?", strings.TrimSpace(ref)).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("project service: get project by slug: %w", err)
	}
	return &project, nil
}

// Create inserts a project with a unique slug.
func (s *ProjectService) Create(ctx context.Context, input ProjectInput) (*models.Project, error) {
	ctx = ensureContext(ctx)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	project := &models.Project{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Image:       optionalString(input.Image),
		Video:       optionalString(input.Video),
		Category:    strings.TrimSpace(input.Category),
		Tags:        cleanList(input.Tags),
		Date:        timeOr(input.Date, s.now()),
	}

	_, err := s.slugs.assign(ctx, input.Slug, project.Title, 0, func(ctx context.Context, candidate string) error {
		project.Slug = candidate
		return s.db.WithContext(ctx).Create(project).Error
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

// Update applies input to the project and returns the slug it had before.
func (s *ProjectService) Update(ctx context.Context, id uint, input ProjectUpdate) (*models.Project, string, error) {
	ctx = ensureContext(ctx)
	if err := validateInput(input); err != nil {
		return nil, "", err
	}

	var project models.Project
	err := s.db.WithContext(ctx).First(&project, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", ErrProjectNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("project service: load project: %w", err)
	}
	previousSlug := project.Slug

	updates := map[string]any{}
	title := project.Title
	if input.Title != nil {
		if t := strings.TrimSpace(*input.Title); t != project.Title {
			updates["title"] = t
			title = t
		}
	}
	if input.Description != nil {
		updates["description"] = strings.TrimSpace(*input.Description)
	}
	if input.Image != nil {
		updates["image"] = optionalString(input.Image)
	}
	if input.Video != nil {
		updates["video"] = optionalString(input.Video)
	}
	if input.Category != nil {
		updates["category"] = strings.TrimSpace(*input.Category)
	}
	if input.Tags != nil {
		updates["tags"] = cleanList(*input.Tags)
	}
	if input.Date != nil && !input.Date.IsZero() {
		updates["date"] = input.Date.UTC()
	}

	persist := func(ctx context.Context, candidate string) error {
		if candidate != "" {
			updates["slug"] = candidate
		}
		if len(updates) == 0 {
			return nil
		}
		return s.db.WithContext(ctx).Model(&project).Updates(updates).Error
	}

	explicit := input.Slug != nil
	if _, titleChanged := updates["title"]; explicit || titleChanged {
		if _, err := s.slugs.assign(ctx, input.Slug, title, project.ID, persist); err != nil {
			return nil, "", err
		}
	} else if err := persist(ctx, ""); err != nil {
		return nil, "", fmt.Errorf("project service: update project: %w", err)
	}

	if err := s.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, "", fmt.Errorf("project service: reload project: %w", err)
	}
	return &project, previousSlug, nil
}

// Delete removes the project and returns the deleted record.
func (s *ProjectService) Delete(ctx context.Context, id uint) (*models.Project, error) {
	ctx = ensureContext(ctx)

	var project models.Project
	err := s.db.WithContext(ctx).First(&project, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("project service: load project: %w", err)
	}

	if err := s.db.WithContext(ctx).Delete(&project).Error; err != nil {
		return nil, fmt.Errorf("project service: delete project: %w", err)
	}
	return &project, nil
}
