package seo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubService struct{ err error }

func (s stubService) Sitemap(context.Context) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []byte(`<?xml version="1.0" encoding="UTF-8"?><urlset></urlset>`), nil
}

func (s stubService) Feed(context.Context) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []byte(`<rss version="2.0"></rss>`), nil
}

func TestRegister(t *testing.T) {
	mux := http.NewServeMux()
	Register(mux, stubService{})

	tests := []struct {
		path        string
		contentType string
		body        string
	}{
		{path: "/sitemap.xml", contentType: "application/xml; charset=utf-8", body: "<urlset>"},
		{path: "/feed.xml", contentType: "application/rss+xml; charset=utf-8", body: `<rss version="2.0">`},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, tt.contentType, rr.Header().Get("Content-Type"))
			assert.Contains(t, rr.Body.String(), tt.body)
		})
	}
}

func TestRegister_RenderFailure(t *testing.T) {
	mux := http.NewServeMux()
	Register(mux, stubService{err: errors.New("list articles: connection refused")})

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "connection refused")
}
