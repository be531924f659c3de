// Package entity defines the core domain entities and validation logic for the help center.
// It contains the content objects (articles, categories, tags, FAQs), the redirect table
// used for legacy URLs and reader feedback, along with their validation rules.
package entity

import "time"

// Status is the editorial state of an article.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusReview    Status = "review"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusReview, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// ContentType distinguishes step-by-step tutorials from regular articles.
type ContentType string

const (
	TypeTutorial ContentType = "tutorial"
	TypeArticle  ContentType = "artigo"
)

// Valid reports whether t is one of the known content types.
func (t ContentType) Valid() bool {
	return t == TypeTutorial || t == TypeArticle
}

// Article represents a help-center article.
// ReadingTime is expressed in minutes; zero means the estimate is unknown.
type Article struct {
	ID              int64
	Slug            string
	Title           string
	CategoryID      int64
	Content         string
	MetaDescription string
	Views           int64
	ReadingTime     int
	Type            ContentType
	Status          Status
	PublishedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsPublished reports whether the article is visible on the public site.
func (a *Article) IsPublished() bool {
	return a.Status == StatusPublished
}

// Publish moves the article to the published state.
// PublishedAt is only stamped the first time the article goes live.
func (a *Article) Publish(now time.Time) {
	a.Status = StatusPublished
	if a.PublishedAt == nil {
		t := now
		a.PublishedAt = &t
	}
}
