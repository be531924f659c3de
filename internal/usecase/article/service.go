package article

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"helpcenter/internal/common/pagination"
	"helpcenter/internal/domain/entity"
	"helpcenter/internal/infra/content"
	"helpcenter/internal/observability/metrics"
	"helpcenter/internal/pkg/search"
	"helpcenter/internal/repository"
	"helpcenter/internal/utils/text"
)

// CreateInput represents the input parameters for creating a new article.
// Slug is derived from Title when empty. ReadingTime and MetaDescription are
// computed from Content when left at their zero value.
type CreateInput struct {
	Title           string
	Slug            string
	CategoryID      int64
	Content         string
	MetaDescription string
	ReadingTime     int
	Type            entity.ContentType
	Status          entity.Status
}

// UpdateInput represents the input parameters for updating an existing article.
// Fields with nil values will not be updated.
type UpdateInput struct {
	ID              int64
	Title           *string
	Slug            *string
	CategoryID      *int64
	Content         *string
	MetaDescription *string
	ReadingTime     *int
	Type            *entity.ContentType
	Status          *entity.Status
}

// ListFilter is the admin listing filter. Zero values are not applied.
type ListFilter struct {
	Status     entity.Status
	CategoryID int64
}

// Service provides article management use cases.
// It handles business logic for article operations and delegates persistence to the repositories.
type Service struct {
	Repo       repository.ArticleRepository
	Categories repository.CategoryRepository
	Content    *content.Processor
	Now        func() time.Time
	Logger     *slog.Logger
}

// PaginatedResult represents the result of a paginated query.
// It contains both the data and pagination metadata.
type PaginatedResult struct {
	Data       []*entity.Article
	Pagination pagination.Metadata
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

var defaultProcessor = content.NewProcessor()

func (s *Service) processor() *content.Processor {
	if s.Content != nil {
		return s.Content
	}
	return defaultProcessor
}

// ListPaginated returns one page of articles for the admin list, most recently updated first.
func (s *Service) ListPaginated(ctx context.Context, f ListFilter, params pagination.Params) (*PaginatedResult, error) {
	filter, err := f.toRepo()
	if err != nil {
		return nil, err
	}

	params = params.WithDefaults(pagination.DefaultConfig())

	total, err := s.Repo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}

	articles, err := s.Repo.ListPaginated(ctx, filter, params.Offset(), params.Limit)
	if err != nil {
		return nil, fmt.Errorf("list articles paginated: %w", err)
	}

	return &PaginatedResult{
		Data: articles,
		Pagination: pagination.NewMetadata(params, total),
	}, nil
}

func (f ListFilter) toRepo() (repository.ArticleFilter, error) {
	var filter repository.ArticleFilter
	if f.Status != "" {
		if !f.Status.Valid() {
			return filter, &entity.ValidationError{Field: "status", Message: "status is invalid"}
		}
		st := f.Status
		filter.Status = &st
	}
	if f.CategoryID < 0 {
		return filter, &entity.ValidationError{Field: "category_id", Message: "category_id must be positive"}
	}
	if f.CategoryID > 0 {
		id := f.CategoryID
		filter.CategoryID = &id
	}
	return filter, nil
}

// Get retrieves a single article by its ID regardless of status.
// Returns ErrInvalidArticleID if the ID is not positive.
// Returns ErrArticleNotFound if the article does not exist.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Article, error) {
	if id <= 0 {
		return nil, ErrInvalidArticleID
	}

	article, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}
	return article, nil
}

// GetPublished returns the published article with the given slug and records a view.
// Drafts and archived articles are reported as ErrArticleNotFound.
func (s *Service) GetPublished(ctx context.Context, slug string) (*entity.Article, error) {
	article, err := s.Repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get article by slug: %w", err)
	}
	if article == nil || !article.IsPublished() {
		return nil, ErrArticleNotFound
	}

	// a lost view must not fail the page
	if err := s.Repo.IncrementViews(ctx, article.ID); err != nil {
		s.logger().WarnContext(ctx, "failed to record article view",
			slog.Int64("article_id", article.ID),
			slog.Any("error", err))
	} else {
		article.Views++
		metrics.ArticleViewsTotal.Inc()
	}
	return article, nil
}

// ListPublished returns the published articles of a category, newest first.
// categoryID 0 lists every published article.
func (s *Service) ListPublished(ctx context.Context, categoryID int64) ([]*entity.Article, error) {
	filter := repository.PublishedFilter()
	if categoryID > 0 {
		filter.CategoryID = &categoryID
	}
	articles, err := s.Repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list published articles: %w", err)
	}
	return articles, nil
}

// Search finds published articles matching every space-separated keyword of query.
func (s *Service) Search(ctx context.Context, query string) ([]*entity.Article, error) {
	keywords, err := search.ParseKeywords(query, search.DefaultMaxKeywordCount, search.DefaultMaxKeywordLength)
	if err != nil {
		return nil, err
	}

	articles, err := s.Repo.Search(ctx, keywords, repository.PublishedFilter())
	if err != nil {
		return nil, fmt.Errorf("search articles: %w", err)
	}
	metrics.RecordSearch(len(articles))
	return articles, nil
}

// Create validates and stores a new article. The body is sanitised before storage.
// Returns a ValidationError if any input field is invalid and ErrDuplicateSlug
// if another article uses the slug.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Article, error) {
	now := s.now()
	art := &entity.Article{
		Title:           in.Title,
		Slug:            in.Slug,
		CategoryID:      in.CategoryID,
		Content:         in.Content,
		MetaDescription: in.MetaDescription,
		ReadingTime:     in.ReadingTime,
		Type:            in.Type,
		Status:          in.Status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if art.Slug == "" {
		art.Slug = text.Slugify(art.Title)
	}
	if art.Type == "" {
		art.Type = entity.TypeArticle
	}
	if art.Status == "" {
		art.Status = entity.StatusDraft
	}

	if err := s.validate(ctx, art); err != nil {
		return nil, err
	}
	s.prepareContent(art, in.ReadingTime > 0, in.MetaDescription != "")
	if art.Status == entity.StatusPublished {
		art.Publish(now)
	}

	if err := s.Repo.Create(ctx, art); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateSlug
		}
		return nil, fmt.Errorf("create article: %w", err)
	}
	return art, nil
}

// Update modifies an existing article with the provided input.
// Only non-nil fields in the input will be updated. Moving an article to the
// published status stamps its publication date the first time.
//
// A content change refreshes the reading time and meta description only when
// the stored values were derived from the old content. Values the editor set
// are kept. Sending 0 or "" explicitly asks for them to be derived again.
// Returns ErrInvalidArticleID if the ID is not positive.
// Returns ErrArticleNotFound if the article does not exist.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*entity.Article, error) {
	if in.ID <= 0 {
		return nil, ErrInvalidArticleID
	}

	art, err := s.Repo.Get(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if art == nil {
		return nil, ErrArticleNotFound
	}

	p := s.processor()
	readingDerived := art.ReadingTime <= 0 || art.ReadingTime == p.ReadingTime(art.Content)
	descriptionDerived := art.MetaDescription == "" || art.MetaDescription == p.MetaDescription(art.Content)

	contentChanged := false
	if in.Title != nil {
		art.Title = *in.Title
	}
	if in.Slug != nil {
		art.Slug = *in.Slug
	}
	if in.CategoryID != nil {
		art.CategoryID = *in.CategoryID
	}
	if in.Content != nil {
		art.Content = *in.Content
		contentChanged = true
	}
	if in.MetaDescription != nil {
		art.MetaDescription = *in.MetaDescription
	}
	if in.ReadingTime != nil {
		art.ReadingTime = *in.ReadingTime
	}
	if in.Type != nil {
		art.Type = *in.Type
	}
	if in.Status != nil {
		art.Status = *in.Status
	}

	if err := s.validate(ctx, art); err != nil {
		return nil, err
	}
	keepReadingTime := art.ReadingTime > 0 && (in.ReadingTime != nil || !contentChanged || !readingDerived)
	keepDescription := art.MetaDescription != "" && (in.MetaDescription != nil || !contentChanged || !descriptionDerived)
	if contentChanged || !keepReadingTime || !keepDescription {
		s.prepareContent(art, keepReadingTime, keepDescription)
	}

	now := s.now()
	if art.Status == entity.StatusPublished {
		art.Publish(now)
	}
	art.UpdatedAt = now

	if err := s.Repo.Update(ctx, art); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrDuplicateSlug
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrArticleNotFound
		}
		return nil, fmt.Errorf("update article: %w", err)
	}
	return art, nil
}

// Delete removes an article by its ID.
// Returns ErrInvalidArticleID if the ID is not positive.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidArticleID
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrArticleNotFound
		}
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}

func (s *Service) validate(ctx context.Context, art *entity.Article) error {
	if err := entity.ValidateTitle("title", art.Title); err != nil {
		return err
	}
	if err := entity.ValidateSlug(art.Slug); err != nil {
		return err
	}
	if !art.Type.Valid() {
		return &entity.ValidationError{Field: "type", Message: "type must be tutorial or artigo"}
	}
	if !art.Status.Valid() {
		return &entity.ValidationError{Field: "status", Message: "status is invalid"}
	}
	if art.ReadingTime < 0 {
		return &entity.ValidationError{Field: "reading_time", Message: "reading_time cannot be negative"}
	}
	if art.CategoryID <= 0 {
		return &entity.ValidationError{Field: "category_id", Message: "category_id is required"}
	}

	cat, err := s.Categories.Get(ctx, art.CategoryID)
	if err != nil {
		return fmt.Errorf("get category: %w", err)
	}
	if cat == nil {
		return &entity.ValidationError{Field: "category_id", Message: "category not found"}
	}

	exists, err := s.Repo.ExistsBySlug(ctx, art.Slug, art.ID)
	if err != nil {
		return fmt.Errorf("check slug: %w", err)
	}
	if exists {
		return ErrDuplicateSlug
	}
	return nil
}

// prepareContent sanitises the body and fills the derived fields the editor left empty.
func (s *Service) prepareContent(art *entity.Article, keepReadingTime, keepDescription bool) {
	p := s.processor()
	art.Content = p.Sanitize(art.Content)
	if !keepReadingTime {
		art.ReadingTime = p.ReadingTime(art.Content)
	}
	if !keepDescription {
		art.MetaDescription = p.MetaDescription(art.Content)
	}
}
