package category

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"helpcenter/internal/domain/entity"
	"helpcenter/internal/repository"
	"helpcenter/internal/utils/text"
)

// Input is the editable part of a category. Slug is derived from Name when empty.
type Input struct {
	Name        string
	Slug        string
	Description string
	Position    int
}

type Service struct {
	Repo     repository.CategoryRepository
	Articles repository.ArticleRepository
}

// List returns the home grid: every category with its number of published articles.
func (s *Service) List(ctx context.Context) ([]repository.CategoryWithCount, error) {
	cats, err := s.Repo.ListWithCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// GetWithArticles returns the category page: the category and its published articles.
func (s *Service) GetWithArticles(ctx context.Context, slug string) (*entity.Category, []*entity.Article, error) {
	cat, err := s.Repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, fmt.Errorf("get category by slug: %w", err)
	}
	if cat == nil {
		return nil, nil, ErrCategoryNotFound
	}

	filter := repository.PublishedFilter()
	filter.CategoryID = &cat.ID
	articles, err := s.Articles.List(ctx, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("list category articles: %w", err)
	}
	return cat, articles, nil
}

func (s *Service) Create(ctx context.Context, in Input) (*entity.Category, error) {
	cat := &entity.Category{CreatedAt: time.Now()}
	if err := apply(cat, in); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, cat); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateSlug
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return cat, nil
}

// Update replaces the editable fields of category id.
func (s *Service) Update(ctx context.Context, id int64, in Input) (*entity.Category, error) {
	if id <= 0 {
		return nil, ErrInvalidCategoryID
	}
	cat, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if cat == nil {
		return nil, ErrCategoryNotFound
	}
	if err := apply(cat, in); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, cat); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrDuplicateSlug
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("update category: %w", err)
	}
	return cat, nil
}

// Delete removes a category. The database refuses while articles still point at it.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidCategoryID
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrCategoryNotFound
		case errors.Is(err, repository.ErrInUse):
			return ErrCategoryInUse
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func apply(cat *entity.Category, in Input) error {
	name := strings.TrimSpace(in.Name)
	if err := entity.ValidateTitle("name", name); err != nil {
		return err
	}
	slug := in.Slug
	if slug == "" {
		slug = text.Slugify(name)
	}
	if err := entity.ValidateSlug(slug); err != nil {
		return err
	}
	if in.Position < 0 {
		return &entity.ValidationError{Field: "position", Message: "position cannot be negative"}
	}
	cat.Name = name
	cat.Slug = slug
	cat.Description = strings.TrimSpace(in.Description)
	cat.Position = in.Position
	return nil
}
