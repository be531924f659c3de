// Package article provides the HTTP handlers for help-center articles: the public
// article page and search, and the admin editorial endpoints.
package article

import (
	"time"

	"helpcenter/internal/domain/entity"
)

// DTO is the full article representation returned by the article page and the admin API.
type DTO struct {
	ID              int64      `json:"id"`
	Slug            string     `json:"slug"`
	Title           string     `json:"title"`
	CategoryID      int64      `json:"category_id"`
	Content         string     `json:"content"`
	MetaDescription string     `json:"meta_description"`
	Views           int64      `json:"views"`
	ReadingTime     int        `json:"reading_time"`
	Type            string     `json:"type"`
	Status          string     `json:"status"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// SummaryDTO is the list representation: everything but the body.
type SummaryDTO struct {
	ID              int64      `json:"id"`
	Slug            string     `json:"slug"`
	Title           string     `json:"title"`
	CategoryID      int64      `json:"category_id"`
	MetaDescription string     `json:"meta_description"`
	ReadingTime     int        `json:"reading_time"`
	Type            string     `json:"type"`
	Status          string     `json:"status"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func toDTO(a *entity.Article) DTO {
	return DTO{
		ID:              a.ID,
		Slug:            a.Slug,
		Title:           a.Title,
		CategoryID:      a.CategoryID,
		Content:         a.Content,
		MetaDescription: a.MetaDescription,
		Views:           a.Views,
		ReadingTime:     a.ReadingTime,
		Type:            string(a.Type),
		Status:          string(a.Status),
		PublishedAt:     a.PublishedAt,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// ToSummary converts a into its list representation. The category page reuses it.
func ToSummary(a *entity.Article) SummaryDTO {
	return SummaryDTO{
		ID:              a.ID,
		Slug:            a.Slug,
		Title:           a.Title,
		CategoryID:      a.CategoryID,
		MetaDescription: a.MetaDescription,
		ReadingTime:     a.ReadingTime,
		Type:            string(a.Type),
		Status:          string(a.Status),
		PublishedAt:     a.PublishedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// ToSummaries converts a slice, never returning nil so the JSON is [] rather than null.
func ToSummaries(list []*entity.Article) []SummaryDTO {
	out := make([]SummaryDTO, 0, len(list))
	for _, a := range list {
		out = append(out, ToSummary(a))
	}
	return out
}
