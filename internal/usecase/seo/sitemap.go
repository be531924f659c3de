// Package seo renders the public discovery documents: sitemap.xml and the
// RSS feed of recently published articles.
package seo

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"helpcenter/internal/domain/entity"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// ArticleURL is the public address of an article.
func ArticleURL(baseURL, slug string) string {
	return strings.TrimRight(baseURL, "/") + "/articles/" + slug
}

// CategoryURL is the public address of a category page.
func CategoryURL(baseURL, slug string) string {
	return strings.TrimRight(baseURL, "/") + "/categories/" + slug
}

// BuildSitemap lists the home page, every category and every published
// article. Unpublished articles passed in are skipped.
func BuildSitemap(baseURL string, categories []*entity.Category, articles []*entity.Article) ([]byte, error) {
	base := strings.TrimRight(baseURL, "/")
	set := urlSet{
		XMLNS: sitemapNS,
		URLs:  make([]sitemapURL, 0, 1+len(categories)+len(articles)),
	}
	set.URLs = append(set.URLs, sitemapURL{Loc: base + "/", ChangeFreq: "daily", Priority: "1.0"})

	for _, c := range categories {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        CategoryURL(base, c.Slug),
			ChangeFreq: "weekly",
			Priority:   "0.8",
		})
	}
	for _, a := range articles {
		if !a.IsPublished() {
			continue
		}
		u := sitemapURL{Loc: ArticleURL(base, a.Slug), Priority: "0.6"}
		if !a.UpdatedAt.IsZero() {
			u.LastMod = a.UpdatedAt.UTC().Format(time.DateOnly)
		}
		set.URLs = append(set.URLs, u)
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal sitemap: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}
