package entity

import "time"

// Category groups articles on the help-center home grid.
type Category struct {
	ID          int64
	Name        string
	Slug        string
	Description string
	Position    int
	CreatedAt   time.Time
}

// Tag is a free-form label attached to articles.
type Tag struct {
	ID   int64
	Name string
	Slug string
}

// FAQ is a short question and answer pair, optionally bound to a category.
type FAQ struct {
	ID         int64
	Question   string
	Answer     string
	CategoryID *int64
	Position   int
	Published  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
