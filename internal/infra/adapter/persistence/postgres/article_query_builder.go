// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"fmt"
	"strings"

	"helpcenter/internal/pkg/search"
	"helpcenter/internal/repository"
)

// ArticleQueryBuilder builds WHERE clauses for article listings and search.
// The same builder feeds the COUNT and SELECT queries so both always agree.
type ArticleQueryBuilder struct{}

// NewArticleQueryBuilder creates a new query builder instance.
func NewArticleQueryBuilder() *ArticleQueryBuilder {
	return &ArticleQueryBuilder{}
}

// BuildWhereClause returns the WHERE clause and its arguments.
// Keywords are ANDed, each one matching title, meta description or content with ILIKE.
// Returns an empty clause when there is nothing to filter on.
func (qb *ArticleQueryBuilder) BuildWhereClause(keywords []string, filter repository.ArticleFilter) (clause string, args []interface{}) {
	var conditions []string
	paramIndex := 1

	for _, keyword := range keywords {
		conditions = append(conditions,
			fmt.Sprintf("(title ILIKE $%d OR meta_description ILIKE $%d OR content ILIKE $%d)", paramIndex, paramIndex, paramIndex))
		args = append(args, search.EscapeILIKE(keyword))
		paramIndex++
	}

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", paramIndex))
		args = append(args, string(*filter.Status))
		paramIndex++
	}

	if filter.CategoryID != nil {
		conditions = append(conditions, fmt.Sprintf("category_id = $%d", paramIndex))
		args = append(args, *filter.CategoryID)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}
