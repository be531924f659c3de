// Package category provides use cases for the help-center categories shown on the home grid.
package category

import "errors"

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrInvalidCategoryID = errors.New("invalid category ID")
	ErrDuplicateSlug     = errors.New("category with this slug already exists")
	ErrCategoryInUse     = errors.New("category cannot be deleted while it has articles")
)
