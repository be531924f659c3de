// Package feedback records "was this article helpful?" votes and alerts
// editors about negative ones.
package feedback

import "errors"

var (
	ErrArticleNotFound  = errors.New("article not found")
	ErrInvalidArticleID = errors.New("invalid article ID")
)
