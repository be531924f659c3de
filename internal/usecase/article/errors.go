// Package article provides use cases for managing help-center articles.
// It implements the editorial operations (create, update, publish, delete) and the
// public reads (article page by slug, category listing, keyword search).
package article

import "errors"

// Sentinel errors for article use case operations.
var (
	// ErrArticleNotFound indicates that the requested article was not found,
	// or that it exists but is not visible on the public site.
	ErrArticleNotFound = errors.New("article not found")

	// ErrInvalidArticleID indicates that the provided article ID is invalid.
	// Article IDs must be positive integers.
	ErrInvalidArticleID = errors.New("invalid article ID")

	// ErrDuplicateSlug indicates that another article already uses the slug.
	ErrDuplicateSlug = errors.New("article with this slug already exists")
)
