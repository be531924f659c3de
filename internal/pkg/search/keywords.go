// Package search holds the keyword parsing and escaping shared by the article search paths.
package search

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// DefaultMaxKeywordCount caps the number of space-separated terms in a query.
	DefaultMaxKeywordCount = 10
	// DefaultMaxKeywordLength caps each term, in runes.
	DefaultMaxKeywordLength = 100
	// DefaultSearchTimeout bounds a single search query.
	DefaultSearchTimeout = 5 * time.Second
)

var (
	// ErrEmptyQuery is returned when the query holds no usable term.
	ErrEmptyQuery = errors.New("search query is required")
	// ErrInvalidQuery wraps the keyword count and length violations.
	ErrInvalidQuery = errors.New("invalid search query")
)

// ParseKeywords splits raw on whitespace, drops duplicates and enforces the limits.
func ParseKeywords(raw string, maxCount, maxLength int) ([]string, error) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return nil, ErrEmptyQuery
	}
	if len(fields) > maxCount {
		return nil, fmt.Errorf("%w: must be at most %d keywords", ErrInvalidQuery, maxCount)
	}

	seen := make(map[string]struct{}, len(fields))
	keywords := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) > maxLength {
			return nil, fmt.Errorf("%w: keywords must be at most %d characters", ErrInvalidQuery, maxLength)
		}
		key := strings.ToLower(f)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keywords = append(keywords, f)
	}
	return keywords, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeILIKE wraps keyword in % wildcards after escaping the LIKE metacharacters.
func EscapeILIKE(keyword string) string {
	return "%" + likeEscaper.Replace(keyword) + "%"
}
