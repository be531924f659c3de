// Package content turns editor-supplied article HTML into what the site stores and serves:
// sanitized markup, a plain-text rendition, a meta description and a reading-time estimate.
package content

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"

	"helpcenter/internal/utils/text"
)

const (
	// WordsPerMinute is the reading speed used for ReadingTime.
	WordsPerMinute = 200
	// MetaDescriptionLength is the longest description search engines display.
	MetaDescriptionLength = 160
)

// Processor is safe for concurrent use.
type Processor struct {
	ugc    *bluemonday.Policy
	strict *bluemonday.Policy
}

// NewProcessor creates a Processor with the article policy: user-generated-content
// markup, nofollow links and target=_blank on absolute URLs.
func NewProcessor() *Processor {
	ugc := bluemonday.UGCPolicy()
	ugc.RequireNoFollowOnLinks(true)
	ugc.AddTargetBlankToFullyQualifiedLinks(true)

	strict := bluemonday.StrictPolicy()
	strict.AddSpaceWhenStrippingTag(true)

	return &Processor{ugc: ugc, strict: strict}
}

// Sanitize removes scripts, event handlers and any markup outside the article policy.
func (p *Processor) Sanitize(body string) string {
	return strings.TrimSpace(p.ugc.Sanitize(body))
}

// PlainText strips every tag, decodes entities and collapses whitespace.
func (p *Processor) PlainText(body string) string {
	stripped := html.UnescapeString(p.strict.Sanitize(body))
	return strings.Join(strings.Fields(stripped), " ")
}

// ReadingTime estimates minutes to read body, never less than one.
func (p *Processor) ReadingTime(body string) int {
	words := text.WordCount(p.PlainText(body))
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// Excerpt returns the first non-empty paragraph of body, or its whole text when it has
// no paragraph, truncated to max runes.
func (p *Processor) Excerpt(body string, max int) string {
	source := ""
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(body)); err == nil {
		doc.Find("p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			source = strings.Join(strings.Fields(s.Text()), " ")
			return source == ""
		})
	}
	if source == "" {
		source = p.PlainText(body)
	}
	return text.Truncate(source, max)
}

// MetaDescription is Excerpt sized for search engine snippets.
func (p *Processor) MetaDescription(body string) string {
	return p.Excerpt(body, MetaDescriptionLength)
}

// StripTags reduces untrusted reader input (feedback comments) to plain text.
func (p *Processor) StripTags(s string) string {
	return strings.Join(strings.Fields(html.UnescapeString(p.strict.Sanitize(s))), " ")
}
