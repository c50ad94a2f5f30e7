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

// ArticleInput is the payload accepted when publishing an article.
type ArticleInput struct {
	Title     string   `json:"title" validate:"notblank"`
	Slug      *string  `json:"slug"`
	Excerpt   string   `json:"excerpt" validate:"notblank"`
	Content   string   `json:"content" validate:"notblank"`
	Image     *string  `json:"image"`
	Video     *string  `json:"video"`
	Author    string   `json:"author" validate:"notblank"`
	Category  string   `json:"category" validate:"notblank"`
	Tags      []string `json:"tags"`
	Published bool     `json:"published"`
	Date      *Date    `json:"date"`
}

// ArticleUpdate carries the fields to change; nil fields are left untouched.
type ArticleUpdate struct {
	Title     *string   `json:"title" validate:"omitempty,notblank"`
	Slug      *string   `json:"slug"`
	Excerpt   *string   `json:"excerpt" validate:"omitempty,notblank"`
	Content   *string   `json:"content" validate:"omitempty,notblank"`
	Image     *string   `json:"image"`
	Video     *string   `json:"video"`
	Author    *string   `json:"author" validate:"omitempty,notblank"`
	Category  *string   `json:"category" validate:"omitempty,notblank"`
	Tags      *[]string `json:"tags"`
	Published *bool     `json:"published"`
	Date      *Date     `json:"date"`
}

// ArticleFilter narrows List results.
type ArticleFilter struct {
	Published *bool
	Category  string
}

// ArticleService manages news articles and their slugs.
type ArticleService struct {
	db    *gorm.DB
	slugs slugAllocator
	now   func() time.Time
}

// NewArticleService constructs an ArticleService.
func NewArticleService(db *gorm.DB) (*ArticleService, error) {
	if db == nil {
		return nil, errors.New("article service: db is required")
	}
	return &ArticleService{
		db:    db,
		slugs: newSlugAllocator(db, "articles", "article"),
		now:   time.Now,
	}, nil
}

// List returns articles, newest first.
func (s *ArticleService) List(ctx context.Context, filter ArticleFilter) ([]models.Article, error) {
	ctx = ensureContext(ctx)

	query := s.db.WithContext(ctx).Model(&models.Article{})
	if filter.Published != nil {
		query = query.Where("published = ?", *filter.Published)
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}

	articles := make([]models.Article, 0)
	if err := query.Order("date DESC").Order("id DESC").Find(&articles).Error; err != nil {
		return nil, fmt.Errorf("article service: list articles: %w", err)
	}
	return articles, nil
}

// Get resolves ref as a numeric id first, then as a slug.
func (s *ArticleService) Get(ctx context.Context, ref string) (*models.Article, error) {
	ctx = ensureContext(ctx)

	var article models.Article
	if id, ok := parseID(ref); ok {
		err := s.db.WithContext(ctx).First(&article, id).Error
		if err == nil {
			return &article, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("article service: get article: %w", err)
		}
	}

	err := s.db.WithContext(ctx).Where("slug = ?", strings.TrimSpace(ref)).First(&article).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("article service: get article by slug: %w", err)
	}
	return &article, nil
}

// Create inserts an article with a unique slug derived from its title or
// from the explicit slug.
func (s *ArticleService) Create(ctx context.Context, input ArticleInput) (*models.Article, error) {
	ctx = ensureContext(ctx)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	article := &models.Article{
		Title:     strings.TrimSpace(input.Title),
		Excerpt:   strings.TrimSpace(input.Excerpt),
		Content:   input.Content,
		Image:     optionalString(input.Image),
		Video:     optionalString(input.Video),
		Author:    strings.TrimSpace(input.Author),
		Category:  strings.TrimSpace(input.Category),
		Tags:      cleanList(input.Tags),
		Published: input.Published,
		Date:      timeOr(input.Date, s.now()),
	}

	_, err := s.slugs.assign(ctx, input.Slug, article.Title, 0, func(ctx context.Context, candidate string) error {
		article.Slug = candidate
		return s.db.WithContext(ctx).Create(article).Error
	})
	if err != nil {
		return nil, err
	}
	return article, nil
}

// Update applies input to the article. The slug is recomputed when the
// title changes and no explicit slug is given. The slug held before the
// update is returned so callers can purge it.
func (s *ArticleService) Update(ctx context.Context, id uint, input ArticleUpdate) (*models.Article, string, error) {
	ctx = ensureContext(ctx)
	if err := validateInput(input); err != nil {
		return nil, "", err
	}

	var article models.Article
	err := s.db.WithContext(ctx).First(&article, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", ErrArticleNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("article service: load article: %w", err)
	}
	previousSlug := article.Slug

	updates := map[string]any{}
	titleChanged := false
	if input.Title != nil {
		if title := strings.TrimSpace(*input.Title); title != article.Title {
			updates["title"] = title
			titleChanged = true
		}
	}
	if input.Excerpt != nil {
		updates["excerpt"] = strings.TrimSpace(*input.Excerpt)
	}
	if input.Content != nil {
		updates["content"] = *input.Content
	}
	if input.Image != nil {
		updates["image"] = optionalString(input.Image)
	}
	if input.Video != nil {
		updates["video"] = optionalString(input.Video)
	}
	if input.Author != nil {
		updates["author"] = strings.TrimSpace(*input.Author)
	}
	if input.Category != nil {
		updates["category"] = strings.TrimSpace(*input.Category)
	}
	if input.Tags != nil {
		updates["tags"] = cleanList(*input.Tags)
	}
	if input.Published != nil {
		updates["published"] = *input.Published
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
		return s.db.WithContext(ctx).Model(&article).Updates(updates).Error
	}

	explicit := input.Slug != nil
	if explicit || titleChanged {
		title := article.Title
		if t, ok := updates["title"].(string); ok {
			title = t
		}
		if _, err := s.slugs.assign(ctx, input.Slug, title, article.ID, persist); err != nil {
			return nil, "", err
		}
	} else if err := persist(ctx, ""); err != nil {
		return nil, "", fmt.Errorf("article service: update article: %w", err)
	}

	if err := s.db.WithContext(ctx).First(&article, id).Error; err != nil {
		return nil, "", fmt.Errorf("article service: reload article: %w", err)
	}
	return &article, previousSlug, nil
}

// Delete removes the article and returns the deleted record.
func (s *ArticleService) Delete(ctx context.Context, id uint) (*models.Article, error) {
	ctx = ensureContext(ctx)

	var article models.Article
	err := s.db.WithContext(ctx).First(&article, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("article service: load article: %w", err)
	}

	if err := s.db.WithContext(ctx).Delete(&article).Error; err != nil {
		return nil, fmt.Errorf("article service: delete article: %w", err)
	}
	return &article, nil
}

// Count returns the number of articles, optionally only published ones.
func (s *ArticleService) Count(ctx context.Context, publishedOnly bool) (int64, error) {
	ctx = ensureContext(ctx)

	query := s.db.WithContext(ctx).Model(&models.Article{})
	if publishedOnly {
		query = query.Where("published = ?", true)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("article service: count articles: %w", err)
	}
	return count, nil
}
