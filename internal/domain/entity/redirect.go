package entity

import (
	"net/http"
	"time"
)

// Redirect maps a legacy path to its current location.
type Redirect struct {
	ID         int64
	FromPath   string
	ToPath     string
	StatusCode int
	Hits       int64
	CreatedAt  time.Time
}

// ValidRedirectStatus reports whether code is a redirect status we serve.
func ValidRedirectStatus(code int) bool {
	return code == http.StatusMovedPermanently || code == http.StatusFound
}
