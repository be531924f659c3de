// Package seo serves sitemap.xml and feed.xml.
package seo

import (
	"context"
	"net/http"

	"helpcenter/internal/handler/http/respond"
)

// Service is implemented by *seoUC.Service.
type Service interface {
	Sitemap(ctx context.Context) ([]byte, error)
	Feed(ctx context.Context) ([]byte, error)
}

func Register(mux *http.ServeMux, svc Service) {
	mux.Handle("GET /sitemap.xml", document{render: svc.Sitemap, contentType: "application/xml; charset=utf-8"})
	mux.Handle("GET /feed.xml", document{render: svc.Feed, contentType: "application/rss+xml; charset=utf-8"})
}

// document writes a rendered XML document. Crawlers may cache it for an hour.
type document struct {
	render      func(context.Context) ([]byte, error)
	contentType string
}

func (d document) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := d.render(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", d.contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
