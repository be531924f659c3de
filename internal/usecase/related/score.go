package related

import (
	"math"
	"strings"
	"time"

	"helpcenter/internal/domain/entity"
	"helpcenter/internal/utils/text"
)

// Reasons attached to a candidate, one per rule that contributed.
const (
	ReasonSameCategory    = "same category"
	ReasonSimilarKeywords = "similar keywords"
	ReasonRelatedContent  = "related content"
	ReasonPopular         = "popular article"
	ReasonRecentlyUpdated = "recently updated"
	ReasonRecentContent   = "recent content"
	ReasonReadingTime     = "similar reading time"
	ReasonTutorial        = "practical tutorial"
	ReasonSameType        = "same content type"
)

const (
	sameCategoryPoints  = 30.0
	keywordWeight       = 40.0
	maxKeywordRatio     = 0.4
	minOverlapWordRunes = 4
	overlapThreshold    = 2
	maxOverlapPoints    = 15.0
	popularityWeight    = 10.0
	maxPopularityRatio  = 2.0
	popularFactor       = 1.5
	defaultReadingTime  = 5
	readingTimeSlack    = 2
	longDescriptionLen  = 100
)

// target is the outcome of the best-effort lookup of the article being read.
// Rules needing its metadata check found and fall back to defaults otherwise.
type target struct {
	article *entity.Article
	found   bool
}

func (t target) readingTime() int {
	if !t.found {
		return defaultReadingTime
	}
	return readingTimeOrDefault(t.article.ReadingTime)
}

func (t target) description() string {
	if !t.found {
		return ""
	}
	return t.article.MetaDescription
}

func readingTimeOrDefault(minutes int) int {
	if minutes <= 0 {
		return defaultReadingTime
	}
	return minutes
}

// scorer holds everything shared by all candidates of one pass.
type scorer struct {
	categoryID int64
	tags       []string
	target     target
	meanViews  float64
	now        time.Time
}

func newScorer(categoryID int64, tags []string, t target, pool []*entity.Article, now time.Time) *scorer {
	return &scorer{
		categoryID: categoryID,
		tags:       normalizeTags(tags),
		target:     t,
		meanViews:  meanViews(pool),
		now:        now,
	}
}

// normalizeTags lowercases, trims and deduplicates, dropping empty names.
func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func meanViews(pool []*entity.Article) float64 {
	if len(pool) == 0 {
		return 1
	}
	var total float64
	for _, a := range pool {
		total += float64(a.Views)
	}
	return math.Max(total/float64(len(pool)), 1)
}

// score applies the rules in order. Each rule appends its reason only when it adds points.
func (s *scorer) score(a *entity.Article) (float64, []string) {
	var points float64
	reasons := make([]string, 0, 4)

	if a.CategoryID == s.categoryID {
		points += sameCategoryPoints
		reasons = append(reasons, ReasonSameCategory)
	}

	if len(s.tags) > 0 {
		if ratio := s.keywordRatio(a.Title); ratio > 0 {
			points += ratio * keywordWeight
			reasons = append(reasons, ReasonSimilarKeywords)
		}

		if overlap := s.descriptionOverlap(a.MetaDescription); overlap > overlapThreshold {
			points += math.Min(float64(overlap)*2, maxOverlapPoints)
			reasons = append(reasons, ReasonRelatedContent)
		}
	}

	ratio := float64(a.Views) / s.meanViews
	points += math.Min(ratio, maxPopularityRatio) * popularityWeight
	if float64(a.Views) > s.meanViews*popularFactor {
		reasons = append(reasons, ReasonPopular)
	}

	switch age := ageDays(s.now, a.UpdatedAt); {
	case age <= 7:
		points += 10
		reasons = append(reasons, ReasonRecentlyUpdated)
	case age <= 30:
		points += 5
		reasons = append(reasons, ReasonRecentContent)
	}

	if abs(readingTimeOrDefault(a.ReadingTime)-s.target.readingTime()) <= readingTimeSlack {
		points += 5
		reasons = append(reasons, ReasonReadingTime)
	}

	switch {
	case a.Type == entity.TypeTutorial:
		points += 5
		reasons = append(reasons, ReasonTutorial)
	case a.Type == entity.TypeArticle && s.target.found && s.target.article.Type == entity.TypeArticle:
		points += 3
		reasons = append(reasons, ReasonSameType)
	}

	if text.CountRunes(a.MetaDescription) > longDescriptionLen {
		points += 2
	}

	return points, reasons
}

// keywordRatio is the share of title tokens that overlap, by substring in
// either direction, with at least one tag, capped at maxKeywordRatio.
func (s *scorer) keywordRatio(title string) float64 {
	tokens := strings.Fields(strings.ToLower(title))
	if len(tokens) == 0 {
		return 0
	}
	matched := 0
	for _, token := range tokens {
		for _, tag := range s.tags {
			if strings.Contains(tag, token) || strings.Contains(token, tag) {
				matched++
				break
			}
		}
	}
	return math.Min(float64(matched)/float64(len(tokens)), maxKeywordRatio)
}

// descriptionOverlap counts the candidate's description words of four or more
// characters that occur inside the target's description.
func (s *scorer) descriptionOverlap(description string) int {
	targetDesc := strings.ToLower(s.target.description())
	if description == "" || targetDesc == "" {
		return 0
	}
	count := 0
	for _, word := range strings.Fields(strings.ToLower(description)) {
		if text.CountRunes(word) >= minOverlapWordRunes && strings.Contains(targetDesc, word) {
			count++
		}
	}
	return count
}

// ageDays is the number of whole days elapsed since t.
func ageDays(now, t time.Time) int {
	return int(math.Floor(now.Sub(t).Hours() / 24))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
