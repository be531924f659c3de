package entity

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	maxSlugLength  = 200
	maxTitleLength = 255
	maxPathLength  = 2048
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidateSlug checks that slug is lowercase ASCII words joined by single hyphens.
func ValidateSlug(slug string) error {
	if slug == "" {
		return &ValidationError{Field: "slug", Message: "slug is required"}
	}
	if len(slug) > maxSlugLength {
		return &ValidationError{
			Field:   "slug",
			Message: fmt.Sprintf("slug must not exceed %d characters", maxSlugLength),
		}
	}
	if !slugPattern.MatchString(slug) {
		return &ValidationError{Field: "slug", Message: "slug must be lowercase letters, digits and hyphens"}
	}
	return nil
}

// ValidateTitle checks presence and length of a display title.
func ValidateTitle(field, title string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: field, Message: field + " is required"}
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s must not exceed %d characters", field, maxTitleLength),
		}
	}
	return nil
}

// ValidateRedirectSource checks the legacy side of a redirect.
// It must be a site-relative path without query string.
func ValidateRedirectSource(path string) error {
	if path == "" {
		return &ValidationError{Field: "from", Message: "from path is required"}
	}
	if len(path) > maxPathLength {
		return &ValidationError{Field: "from", Message: "from path is too long"}
	}
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") {
		return &ValidationError{Field: "from", Message: "from path must be site-relative"}
	}
	if strings.ContainsAny(path, "?# ") {
		return &ValidationError{Field: "from", Message: "from path cannot be a query or fragment"}
	}
	return nil
}

// ValidateRedirectTarget checks the destination of a redirect.
// Site-relative paths and absolute http(s) URLs are accepted.
func ValidateRedirectTarget(target string) error {
	if target == "" {
		return &ValidationError{Field: "to", Message: "to path is required"}
	}
	if len(target) > maxPathLength {
		return &ValidationError{Field: "to", Message: "to path is too long"}
	}
	if strings.HasPrefix(target, "/") && !strings.HasPrefix(target, "//") {
		return nil
	}
	u, err := url.Parse(target)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &ValidationError{Field: "to", Message: "to must be a site path or an http(s) URL"}
	}
	return nil
}

// NormalizePath trims whitespace and a trailing slash so "/a/" and "/a" resolve alike.
func NormalizePath(path string) string {
	path = strings.TrimSpace(path)
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}
