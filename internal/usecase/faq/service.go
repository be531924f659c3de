package faq

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"helpcenter/internal/domain/entity"
	"helpcenter/internal/infra/content"
	"helpcenter/internal/repository"
)

// Input is the editable part of a FAQ. A nil CategoryID makes the FAQ global.
type Input struct {
	Question   string
	Answer     string
	CategoryID *int64
	Position   int
	Published  bool
}

type Service struct {
	Repo       repository.FAQRepository
	Categories repository.CategoryRepository
	Content    *content.Processor
}

// ListPublished returns the published FAQs ordered by position, optionally of one category.
func (s *Service) ListPublished(ctx context.Context, categoryID *int64) ([]*entity.FAQ, error) {
	faqs, err := s.Repo.List(ctx, repository.FAQFilter{CategoryID: categoryID, PublishedOnly: true})
	if err != nil {
		return nil, fmt.Errorf("list published faqs: %w", err)
	}
	return faqs, nil
}

// ListAll returns every FAQ, drafts included.
func (s *Service) ListAll(ctx context.Context) ([]*entity.FAQ, error) {
	faqs, err := s.Repo.List(ctx, repository.FAQFilter{})
	if err != nil {
		return nil, fmt.Errorf("list faqs: %w", err)
	}
	return faqs, nil
}

func (s *Service) Create(ctx context.Context, in Input) (*entity.FAQ, error) {
	now := time.Now()
	f := &entity.FAQ{CreatedAt: now, UpdatedAt: now}
	if err := s.apply(ctx, f, in); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("create faq: %w", err)
	}
	return f, nil
}

func (s *Service) Update(ctx context.Context, id int64, in Input) (*entity.FAQ, error) {
	if id <= 0 {
		return nil, ErrInvalidFAQID
	}
	f, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get faq: %w", err)
	}
	if f == nil {
		return nil, ErrFAQNotFound
	}
	if err := s.apply(ctx, f, in); err != nil {
		return nil, err
	}
	f.UpdatedAt = time.Now()
	if err := s.Repo.Update(ctx, f); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFAQNotFound
		}
		return nil, fmt.Errorf("update faq: %w", err)
	}
	return f, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidFAQID
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrFAQNotFound
		}
		return fmt.Errorf("delete faq: %w", err)
	}
	return nil
}

func (s *Service) apply(ctx context.Context, f *entity.FAQ, in Input) error {
	question := strings.TrimSpace(in.Question)
	if err := entity.ValidateTitle("question", question); err != nil {
		return err
	}
	answer := s.processor().Sanitize(in.Answer)
	if answer == "" {
		return &entity.ValidationError{Field: "answer", Message: "answer is required"}
	}
	if in.Position < 0 {
		return &entity.ValidationError{Field: "position", Message: "position cannot be negative"}
	}
	if in.CategoryID != nil {
		cat, err := s.Categories.Get(ctx, *in.CategoryID)
		if err != nil {
			return fmt.Errorf("get category: %w", err)
		}
		if cat == nil {
			return &entity.ValidationError{Field: "category_id", Message: "category not found"}
		}
	}

	f.Question = question
	f.Answer = answer
	f.CategoryID = in.CategoryID
	f.Position = in.Position
	f.Published = in.Published
	return nil
}

var defaultProcessor = content.NewProcessor()

func (s *Service) processor() *content.Processor {
	if s.Content != nil {
		return s.Content
	}
	return defaultProcessor
}
