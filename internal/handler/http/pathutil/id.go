// Package pathutil reads typed values from route wildcards and query strings.
package pathutil

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

// ErrInvalidID is returned when a route wildcard is not a positive integer.
var ErrInvalidID = errors.New("invalid id")

// ID parses the {name} wildcard of the matched route pattern.
//
//	mux.Handle("GET /admin/articles/{id}", h)
//	id, err := pathutil.ID(r, "id")
func ID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// QueryInt parses an optional integer query parameter.
// A missing parameter yields def; a malformed one is an error naming the parameter.
func QueryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid query parameter: %s must be an integer", name)
	}
	return n, nil
}

// QueryBool parses an optional boolean query parameter ("1", "true", ...).
func QueryBool(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid query parameter: %s must be a boolean", name)
	}
	return b, nil
}
