// Package pagination parses page/limit query parameters and builds the
// metadata block of paginated admin lists.
package pagination

import (
	"fmt"
	"net/http"
	"strconv"

	"helpcenter/pkg/config"
)

// Config bounds what clients may ask for.
type Config struct {
	DefaultPage  int
	DefaultLimit int
	MaxLimit     int
}

func DefaultConfig() Config {
	return Config{DefaultPage: 1, DefaultLimit: 20, MaxLimit: 100}
}

// LoadFromEnv reads PAGINATION_DEFAULT_PAGE, PAGINATION_DEFAULT_LIMIT and
// PAGINATION_MAX_LIMIT. An inconsistent combination falls back to DefaultConfig.
func LoadFromEnv() Config {
	def := DefaultConfig()
	cfg := Config{
		DefaultPage:  config.GetEnvInt("PAGINATION_DEFAULT_PAGE", def.DefaultPage),
		DefaultLimit: config.GetEnvInt("PAGINATION_DEFAULT_LIMIT", def.DefaultLimit),
		MaxLimit:     config.GetEnvInt("PAGINATION_MAX_LIMIT", def.MaxLimit),
	}
	if cfg.DefaultPage < 1 || cfg.DefaultLimit < 1 || cfg.MaxLimit < cfg.DefaultLimit {
		return def
	}
	return cfg
}

// Params is a 1-based page request.
type Params struct {
	Page  int
	Limit int
}

// ParseQueryParams reads ?page= and ?limit=, applying the config defaults for missing values.
func ParseQueryParams(r *http.Request, cfg Config) (Params, error) {
	params := Params{Page: cfg.DefaultPage, Limit: cfg.DefaultLimit}
	q := r.URL.Query()

	if s := q.Get("page"); s != "" {
		page, err := strconv.Atoi(s)
		if err != nil || page < 1 {
			return params, fmt.Errorf("invalid query parameter: page must be a positive integer")
		}
		params.Page = page
	}
	if s := q.Get("limit"); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil || limit < 1 || limit > cfg.MaxLimit {
			return params, fmt.Errorf("invalid query parameter: limit must be between 1 and %d", cfg.MaxLimit)
		}
		params.Limit = limit
	}
	return params, nil
}

func (p Params) Validate(cfg Config) error {
	if p.Page < 1 {
		return fmt.Errorf("page must be a positive integer")
	}
	if p.Limit < 1 || p.Limit > cfg.MaxLimit {
		return fmt.Errorf("limit must be between 1 and %d", cfg.MaxLimit)
	}
	return nil
}

// WithDefaults replaces non-positive values with the defaults and caps the limit.
func (p Params) WithDefaults(cfg Config) Params {
	if p.Page <= 0 {
		p.Page = cfg.DefaultPage
	}
	if p.Limit <= 0 {
		p.Limit = cfg.DefaultLimit
	}
	if p.Limit > cfg.MaxLimit {
		p.Limit = cfg.MaxLimit
	}
	return p
}

// Offset is the SQL OFFSET of the page.
func (p Params) Offset() int {
	return CalculateOffset(p.Page, p.Limit)
}

func CalculateOffset(page, limit int) int {
	return (page - 1) * limit
}

// CalculateTotalPages rounds up and never returns less than 1.
func CalculateTotalPages(total int64, limit int) int {
	if total == 0 || limit <= 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// Metadata is the "pagination" block of a list response.
type Metadata struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

func NewMetadata(p Params, total int64) Metadata {
	return Metadata{
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: CalculateTotalPages(total, p.Limit),
	}
}

// Response wraps one page of items.
type Response[T any] struct {
	Data       []T      `json:"data"`
	Pagination Metadata `json:"pagination"`
}

func NewResponse[T any](data []T, meta Metadata) Response[T] {
	if data == nil {
		data = []T{}
	}
	return Response[T]{Data: data, Pagination: meta}
}
