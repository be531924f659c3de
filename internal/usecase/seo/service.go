package seo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"helpcenter/internal/repository"
)

// Service loads what the documents need from the repositories.
type Service struct {
	Articles   repository.ArticleRepository
	Categories repository.CategoryRepository
	Site       Site
}

// Sitemap renders sitemap.xml from the current catalogue.
func (s *Service) Sitemap(ctx context.Context) ([]byte, error) {
	cats, err := s.Categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	arts, err := s.Articles.List(ctx, repository.PublishedFilter())
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return BuildSitemap(s.Site.BaseURL, cats, arts)
}

// Feed renders feed.xml from the current catalogue.
func (s *Service) Feed(ctx context.Context) ([]byte, error) {
	arts, err := s.Articles.List(ctx, repository.PublishedFilter())
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return BuildFeed(s.Site, arts)
}

// ExportResult names the files written by Export.
type ExportResult struct {
	Sitemap string
	Feed    string
}

// Export writes sitemap.xml and feed.xml into dir. Each file is replaced
// atomically so a web server never serves a partial document.
func (s *Service) Export(ctx context.Context, dir string) (*ExportResult, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	sitemap, err := s.Sitemap(ctx)
	if err != nil {
		return nil, err
	}
	feed, err := s.Feed(ctx)
	if err != nil {
		return nil, err
	}

	res := &ExportResult{
		Sitemap: filepath.Join(dir, "sitemap.xml"),
		Feed:    filepath.Join(dir, "feed.xml"),
	}
	if err := writeFileAtomic(res.Sitemap, sitemap); err != nil {
		return nil, err
	}
	if err := writeFileAtomic(res.Feed, feed); err != nil {
		return nil, err
	}
	return res, nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", filepath.Base(path), err)
	}
	return nil
}
