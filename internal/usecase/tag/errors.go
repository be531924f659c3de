// Package tag provides use cases for article tags.
package tag

import "errors"

var (
	ErrTagNotFound     = errors.New("tag not found")
	ErrInvalidTagID    = errors.New("invalid tag ID")
	ErrDuplicateTag    = errors.New("tag with this slug already exists")
	ErrArticleNotFound = errors.New("article not found")
)
