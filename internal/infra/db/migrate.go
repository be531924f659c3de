package db

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed seeds/categories.sql
var seedCategoriesSQL string

var tables = []string{
	`
CREATE TABLE IF NOT EXISTS categories (
    id          SERIAL PRIMARY KEY,
    name        TEXT NOT NULL,
    slug        TEXT NOT NULL UNIQUE,
    description TEXT NOT NULL DEFAULT '',
    position    INTEGER NOT NULL DEFAULT 0,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`
CREATE TABLE IF NOT EXISTS articles (
    id               SERIAL PRIMARY KEY,
    slug             TEXT NOT NULL UNIQUE,
    title            TEXT NOT NULL,
    category_id      INTEGER NOT NULL REFERENCES categories(id),
    content          TEXT NOT NULL DEFAULT '',
    meta_description TEXT NOT NULL DEFAULT '',
    views            BIGINT NOT NULL DEFAULT 0,
    reading_time     INTEGER NOT NULL DEFAULT 0,
    type             VARCHAR(20) NOT NULL DEFAULT 'artigo',
    status           VARCHAR(20) NOT NULL DEFAULT 'draft',
    published_at     TIMESTAMPTZ,
    created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
    CONSTRAINT chk_article_type CHECK (type IN ('tutorial', 'artigo')),
    CONSTRAINT chk_article_status CHECK (status IN ('draft', 'review', 'published', 'archived'))
)`,
	`
CREATE TABLE IF NOT EXISTS tags (
    id   SERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    slug TEXT NOT NULL UNIQUE
)`,
	`
CREATE TABLE IF NOT EXISTS article_tags (
    article_id INTEGER NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
    tag_id     INTEGER NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
    PRIMARY KEY (article_id, tag_id)
)`,
	`
CREATE TABLE IF NOT EXISTS faqs (
    id          SERIAL PRIMARY KEY,
    question    TEXT NOT NULL,
    answer      TEXT NOT NULL,
    category_id INTEGER REFERENCES categories(id) ON DELETE SET NULL,
    position    INTEGER NOT NULL DEFAULT 0,
    published   BOOLEAN NOT NULL DEFAULT FALSE,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`
CREATE TABLE IF NOT EXISTS redirects (
    id          SERIAL PRIMARY KEY,
    from_path   TEXT NOT NULL UNIQUE,
    to_path     TEXT NOT NULL,
    status_code SMALLINT NOT NULL DEFAULT 301,
    hits        BIGINT NOT NULL DEFAULT 0,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`
CREATE TABLE IF NOT EXISTS feedback (
    id         SERIAL PRIMARY KEY,
    article_id INTEGER NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
    helpful    BOOLEAN NOT NULL,
    comment    TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
}

var indexes = []string{
	// public listings and the related-articles candidate pool
	`CREATE INDEX IF NOT EXISTS idx_articles_status_published_at ON articles(status, published_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_articles_category_id ON articles(category_id)`,
	`CREATE INDEX IF NOT EXISTS idx_faqs_category_id ON faqs(category_id)`,
	`CREATE INDEX IF NOT EXISTS idx_feedback_article_id ON feedback(article_id)`,
}

// Trigram indexes speed up ILIKE search. They need pg_trgm, so failures are ignored.
var searchIndexes = []string{
	`CREATE INDEX IF NOT EXISTS trgm_articles_title ON articles USING gin(title gin_trgm_ops)`,
	`CREATE INDEX IF NOT EXISTS trgm_articles_content ON articles USING gin(content gin_trgm_ops)`,
}

// dropOrder lists the tables dependents first.
var dropOrder = []string{"feedback", "redirects", "faqs", "article_tags", "tags", "articles", "categories"}

// MigrateUp creates the schema and seeds the default categories. It is idempotent.
// The pg_trgm extension and its indexes are optional.
func MigrateUp(ctx context.Context, db *sql.DB) error {
	steps := []struct {
		name  string
		stmts []string
	}{
		{"create tables", tables},
		{"create indexes", indexes},
		{"seed categories", []string{seedCategoriesSQL}},
	}
	for i, step := range steps {
		if i == len(steps)-1 {
			createSearchIndexes(ctx, db)
		}
		for _, stmt := range step.stmts {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("migrate up: %s: %w", step.name, err)
			}
		}
	}
	return nil
}

func createSearchIndexes(ctx context.Context, db *sql.DB) {
	if _, err := db.ExecContext(ctx, `CREATE EXTENSION IF NOT EXISTS pg_trgm`); err != nil {
		return
	}
	for _, idx := range searchIndexes {
		_, _ = db.ExecContext(ctx, idx)
	}
}

// MigrateDown drops every table created by MigrateUp. It deletes all content.
func MigrateDown(ctx context.Context, db *sql.DB) error {
	for _, table := range dropOrder {
		if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return fmt.Errorf("migrate down: drop %s: %w", table, err)
		}
	}
	return nil
}
