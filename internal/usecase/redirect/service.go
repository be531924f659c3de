package redirect

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"helpcenter/internal/domain/entity"
	"helpcenter/internal/observability/metrics"
	"helpcenter/internal/repository"
)

// Input describes one redirect. StatusCode 0 means 301.
type Input struct {
	FromPath   string
	ToPath     string
	StatusCode int
}

type Service struct {
	Repo   repository.RedirectRepository
	Logger *slog.Logger
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func (s *Service) List(ctx context.Context) ([]*entity.Redirect, error) {
	list, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list redirects: %w", err)
	}
	return list, nil
}

func (s *Service) Create(ctx context.Context, in Input) (*entity.Redirect, error) {
	r, err := build(in)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, r); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateRedirect
		}
		return nil, fmt.Errorf("create redirect: %w", err)
	}
	return r, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidRedirectID
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRedirectNotFound
		}
		return fmt.Errorf("delete redirect: %w", err)
	}
	return nil
}

// Resolve returns the redirect registered for path and counts the hit.
// A failed hit update is logged and does not fail the lookup.
func (s *Service) Resolve(ctx context.Context, path string) (*entity.Redirect, error) {
	path = entity.NormalizePath(path)
	if err := entity.ValidateRedirectSource(path); err != nil {
		return nil, err
	}

	r, err := s.Repo.GetByFromPath(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("get redirect: %w", err)
	}
	metrics.RecordRedirectLookup(r != nil)
	if r == nil {
		return nil, ErrRedirectNotFound
	}

	if err := s.Repo.IncrementHits(ctx, r.ID); err != nil {
		s.logger().WarnContext(ctx, "failed to count redirect hit",
			slog.Int64("redirect_id", r.ID),
			slog.Any("error", err))
	} else {
		r.Hits++
	}
	return r, nil
}

// build validates in and returns the redirect to store.
func build(in Input) (*entity.Redirect, error) {
	from := entity.NormalizePath(in.FromPath)
	if err := entity.ValidateRedirectSource(from); err != nil {
		return nil, err
	}
	if err := entity.ValidateRedirectTarget(in.ToPath); err != nil {
		return nil, err
	}
	if pointsBackTo(in.ToPath, from) {
		return nil, &entity.ValidationError{Field: "to", Message: "to cannot be the same as from"}
	}
	status := in.StatusCode
	if status == 0 {
		status = http.StatusMovedPermanently
	}
	if !entity.ValidRedirectStatus(status) {
		return nil, &entity.ValidationError{Field: "status", Message: "status must be 301 or 302"}
	}
	return &entity.Redirect{
		FromPath:   from,
		ToPath:     in.ToPath,
		StatusCode: status,
		CreatedAt:  time.Now(),
	}, nil
}

// pointsBackTo reports whether a site-relative target resolves to from again.
// Resolve ignores a trailing slash, the query and the fragment, so they are
// ignored here too.
func pointsBackTo(to, from string) bool {
	if !strings.HasPrefix(to, "/") || strings.HasPrefix(to, "//") {
		return false
	}
	if i := strings.IndexAny(to, "?#"); i >= 0 {
		to = to[:i]
	}
	return entity.NormalizePath(to) == from
}
