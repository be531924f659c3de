package tag

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"helpcenter/internal/domain/entity"
	"helpcenter/internal/repository"
	"helpcenter/internal/utils/text"
)

const maxTagsPerArticle = 20

type Service struct {
	Repo     repository.TagRepository
	Articles repository.ArticleRepository
}

func (s *Service) List(ctx context.Context) ([]*entity.Tag, error) {
	tags, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

// Create stores a tag. The slug is always derived from name.
func (s *Service) Create(ctx context.Context, name string) (*entity.Tag, error) {
	name = strings.TrimSpace(name)
	if err := entity.ValidateTitle("name", name); err != nil {
		return nil, err
	}
	tag := &entity.Tag{Name: name, Slug: text.Slugify(name)}
	if err := entity.ValidateSlug(tag.Slug); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, tag); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateTag
		}
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return tag, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidTagID
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTagNotFound
		}
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}

// ListByArticle returns the tags attached to an article.
func (s *Service) ListByArticle(ctx context.Context, articleID int64) ([]*entity.Tag, error) {
	tags, err := s.Repo.ListByArticle(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("list article tags: %w", err)
	}
	return tags, nil
}

// Names returns the tag names of an article, the keyword set of the related-articles scorer.
func (s *Service) Names(ctx context.Context, articleID int64) ([]string, error) {
	tags, err := s.ListByArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return names, nil
}

// SetArticleTags replaces the tag set of an article. Duplicate ids are ignored;
// an unknown tag id rejects the whole set.
func (s *Service) SetArticleTags(ctx context.Context, articleID int64, tagIDs []int64) error {
	if articleID <= 0 {
		return &entity.ValidationError{Field: "article_id", Message: "article_id must be positive"}
	}
	ids := dedupe(tagIDs)
	if len(ids) > maxTagsPerArticle {
		return &entity.ValidationError{
			Field:   "tag_ids",
			Message: fmt.Sprintf("an article must be tagged with at most %d tags", maxTagsPerArticle),
		}
	}

	art, err := s.Articles.Get(ctx, articleID)
	if err != nil {
		return fmt.Errorf("get article: %w", err)
	}
	if art == nil {
		return ErrArticleNotFound
	}

	for _, id := range ids {
		if id <= 0 {
			return &entity.ValidationError{Field: "tag_ids", Message: "tag ids must be positive"}
		}
		t, err := s.Repo.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("get tag: %w", err)
		}
		if t == nil {
			return &entity.ValidationError{Field: "tag_ids", Message: fmt.Sprintf("tag %d not found", id)}
		}
	}

	if err := s.Repo.SetArticleTags(ctx, articleID, ids); err != nil {
		return fmt.Errorf("set article tags: %w", err)
	}
	return nil
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
