package seo

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strings"
	"time"

	"helpcenter/internal/domain/entity"
)

// DefaultFeedItems is how many articles the feed carries when Site.FeedItems is unset.
const DefaultFeedItems = 20

// Site describes the help center in feed channel metadata.
type Site struct {
	Name        string
	BaseURL     string
	Language    string
	Description string
	FeedItems   int
}

type rss struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language,omitempty"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string  `xml:"title"`
	Link        string  `xml:"link"`
	GUID        rssGUID `xml:"guid"`
	Description string  `xml:"description,omitempty"`
	PubDate     string  `xml:"pubDate"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// BuildFeed renders an RSS 2.0 document of the most recently published
// articles, newest first. Articles without a publication date are skipped.
func BuildFeed(site Site, articles []*entity.Article) ([]byte, error) {
	limit := site.FeedItems
	if limit <= 0 {
		limit = DefaultFeedItems
	}

	published := make([]*entity.Article, 0, len(articles))
	for _, a := range articles {
		if a.IsPublished() && a.PublishedAt != nil {
			published = append(published, a)
		}
	}
	sort.SliceStable(published, func(i, j int) bool {
		return published[i].PublishedAt.After(*published[j].PublishedAt)
	})
	if len(published) > limit {
		published = published[:limit]
	}

	ch := rssChannel{
		Title:       site.Name,
		Link:        strings.TrimRight(site.BaseURL, "/") + "/",
		Description: site.Description,
		Language:    site.Language,
		Items:       make([]rssItem, 0, len(published)),
	}
	if ch.Description == "" {
		ch.Description = site.Name
	}
	if len(published) > 0 {
		ch.LastBuildDate = published[0].PublishedAt.UTC().Format(time.RFC1123Z)
	}
	for _, a := range published {
		link := ArticleURL(site.BaseURL, a.Slug)
		ch.Items = append(ch.Items, rssItem{
			Title:       a.Title,
			Link:        link,
			GUID:        rssGUID{IsPermaLink: true, Value: link},
			Description: a.MetaDescription,
			PubDate:     a.PublishedAt.UTC().Format(time.RFC1123Z),
		})
	}

	out, err := xml.MarshalIndent(rss{Version: "2.0", Channel: ch}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal feed: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}
