package related

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpcenter/internal/domain/entity"
	"helpcenter/internal/repository"
)

/* ───────── helpers ───────── */

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type stubStore struct {
	categories []*entity.Category
	articles   []*entity.Article
	getErr     error
	listErr    error
	catErr     error
	panicList  bool
	filter     *repository.ArticleFilter
}

func (s *stubStore) ListCategories(context.Context) ([]*entity.Category, error) {
	return s.categories, s.catErr
}

func (s *stubStore) ListArticles(_ context.Context, f repository.ArticleFilter) ([]*entity.Article, error) {
	if s.panicList {
		panic("boom")
	}
	s.filter = &f
	return s.articles, s.listErr
}

func (s *stubStore) GetArticle(_ context.Context, id int64) (*entity.Article, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	for _, a := range s.articles {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func art(id, cat, views int64, updatedAgo time.Duration) *entity.Article {
	return &entity.Article{
		ID: id, CategoryID: cat, Views: views,
		Title: "Artigo", Type: entity.TypeArticle, Status: entity.StatusPublished,
		UpdatedAt: now.Add(-updatedAgo),
	}
}

func newService(store Store) *Service {
	return &Service{Store: store, Clock: fixedClock{now}}
}

func ids(items []ScoredCandidate) []int64 {
	out := make([]int64, 0, len(items))
	for _, c := range items {
		out = append(out, c.Article.ID)
	}
	return out
}

const day = 24 * time.Hour

/* ───────── 1. Exclusion / empty pool ───────── */

func TestFind_ExcludesTarget(t *testing.T) {
	store := &stubStore{articles: []*entity.Article{
		art(1, 1, 10, day), art(2, 1, 10, day), art(3, 2, 10, day),
	}}

	res := newService(store).Find(context.Background(), Request{ArticleID: 1, MaxResults: 6})

	assert.NotContains(t, ids(res.Items), int64(1))
	assert.ElementsMatch(t, []int64{2, 3}, ids(res.Items))
	require.NotNil(t, store.filter)
	require.NotNil(t, store.filter.Status)
	assert.Equal(t, entity.StatusPublished, *store.filter.Status)
}

func TestFind_EmptyPool(t *testing.T) {
	tests := []struct {
		name     string
		articles []*entity.Article
	}{
		{name: "no articles", articles: nil},
		{name: "only the target", articles: []*entity.Article{art(1, 1, 10, day)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := newService(&stubStore{articles: tt.articles}).
				Find(context.Background(), Request{ArticleID: 1})
			assert.Empty(t, res.Items)
		})
	}
}

/* ───────── 2. Failure semantics ───────── */

func TestFind_BulkFetchFailureIsEmpty(t *testing.T) {
	tests := []struct {
		name  string
		store *stubStore
	}{
		{name: "articles error", store: &stubStore{listErr: errors.New("db down"), articles: []*entity.Article{art(2, 1, 1, day)}}},
		{name: "categories error", store: &stubStore{catErr: errors.New("db down"), articles: []*entity.Article{art(2, 1, 1, day)}}},
		{name: "panic", store: &stubStore{panicList: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var res Result
			assert.NotPanics(t, func() {
				res = newService(tt.store).Find(context.Background(), Request{ArticleID: 1})
			})
			assert.Empty(t, res.Items)
		})
	}
}

func TestFind_TargetLookupFailureDegrades(t *testing.T) {
	// without the target the scorer falls back to a 5 minute reading time and no description
	a := art(2, 1, 10, 100*day)
	a.ReadingTime = 6 // |6-5| <= 2 against the default
	b := art(3, 2, 10, 100*day)
	b.ReadingTime = 10
	b.MetaDescription = "configurar pagamento painel pix"
	store := &stubStore{
		getErr:   errors.New("timeout"),
		articles: []*entity.Article{a, b},
	}

	res := newService(store).Find(context.Background(), Request{
		ArticleID: 1, CategoryID: 1, Tags: []string{"pix"}, MaxResults: 6,
	})

	require.Len(t, res.Items, 2)
	byID := map[int64]ScoredCandidate{}
	for _, c := range res.Items {
		byID[c.Article.ID] = c
		assert.NotContains(t, c.Reasons, ReasonSameType)
		assert.NotContains(t, c.Reasons, ReasonRelatedContent)
	}
	assert.Contains(t, byID[2].Reasons, ReasonSameCategory)
	assert.Contains(t, byID[2].Reasons, ReasonReadingTime)
	assert.NotContains(t, byID[3].Reasons, ReasonReadingTime)
}

/* ───────── 3. Scenarios ───────── */

func TestFind_SameCategoryPopularRecentRanksFirst(t *testing.T) {
	target := art(1, 1, 0, 2*day)
	a := art(2, 1, 100, time.Hour)
	b := art(3, 2, 40, 180*day)
	c := art(4, 3, 10, 365*day)
	d := art(5, 3, 10, 365*day)
	store := &stubStore{
		categories: []*entity.Category{{ID: 1, Slug: "pagamentos"}, {ID: 2, Slug: "conta"}, {ID: 3, Slug: "integracoes"}},
		articles:   []*entity.Article{target, b, c, a, d},
	}

	res := newService(store).Find(context.Background(), Request{ArticleID: 1, MaxResults: 6})

	require.NotEmpty(t, res.Items)
	first := res.Items[0]
	assert.Equal(t, int64(2), first.Article.ID)
	assert.Equal(t, "pagamentos", first.Category.Slug)
	assert.GreaterOrEqual(t, first.Score, 30.0+20+10)
	assert.Contains(t, first.Reasons, ReasonSameCategory)
	assert.Contains(t, first.Reasons, ReasonRecentlyUpdated)
	assert.Contains(t, first.Reasons, ReasonPopular)

	for _, c := range res.Items[1:] {
		assert.Less(t, c.Score, first.Score)
	}
	// mean is 40, so B (40 views) is not popular
	for _, c := range res.Items {
		if c.Article.ID == 3 {
			assert.NotContains(t, c.Reasons, ReasonPopular)
		}
	}
}

func TestFind_EmptyTagsNeverMatchKeywords(t *testing.T) {
	target := art(1, 1, 0, day)
	target.MetaDescription = "como configurar pagamento pix painel"
	cand := art(2, 2, 5, day)
	cand.Title = "pix pagamento configurar"
	cand.MetaDescription = "configurar pagamento painel pix"
	store := &stubStore{articles: []*entity.Article{target, cand}}

	for _, tags := range [][]string{nil, {}, {"", "  "}} {
		res := newService(store).Find(context.Background(), Request{ArticleID: 1, Tags: tags})
		require.Len(t, res.Items, 1)
		assert.NotContains(t, res.Items[0].Reasons, ReasonSimilarKeywords)
		assert.NotContains(t, res.Items[0].Reasons, ReasonRelatedContent)
	}

	res := newService(store).Find(context.Background(), Request{ArticleID: 1, Tags: []string{"Pix"}})
	require.Len(t, res.Items, 1)
	assert.Contains(t, res.Items[0].Reasons, ReasonSimilarKeywords)
	assert.Contains(t, res.Items[0].Reasons, ReasonRelatedContent)
}

func TestFind_CategoryFallsBackToTarget(t *testing.T) {
	store := &stubStore{articles: []*entity.Article{art(1, 7, 0, day), art(2, 7, 0, 100*day)}}

	res := newService(store).Find(context.Background(), Request{ArticleID: 1})

	require.Len(t, res.Items, 1)
	assert.Contains(t, res.Items[0].Reasons, ReasonSameCategory)
}

/* ───────── 4. Display ───────── */

func TestFind_DisplayModes(t *testing.T) {
	articles := []*entity.Article{art(1, 1, 0, day)}
	for i := int64(2); i <= 30; i++ {
		articles = append(articles, art(i, i, i, day))
	}
	store := &stubStore{articles: articles}

	sidebar := newService(store).Find(context.Background(), Request{ArticleID: 1, MaxResults: 6, Mode: ModeSidebar})
	assert.Len(t, sidebar.Items, 12)
	assert.Equal(t, 3, sidebar.Display)
	assert.Len(t, sidebar.Visible(false), 3)
	assert.Len(t, sidebar.Visible(true), 12)

	section := newService(store).Find(context.Background(), Request{ArticleID: 1, MaxResults: 2, Mode: ModeSection})
	assert.Len(t, section.Items, 4)
	assert.Len(t, section.Visible(false), 2)

	small := newService(store).Find(context.Background(), Request{ArticleID: 1, MaxResults: 2, Mode: ModeSidebar})
	assert.Equal(t, 2, small.Display)
}

func TestClampMaxResults(t *testing.T) {
	assert.Equal(t, DefaultMaxResults, clampMaxResults(0))
	assert.Equal(t, DefaultMaxResults, clampMaxResults(-3))
	assert.Equal(t, 4, clampMaxResults(4))
	assert.Equal(t, MaxResultsLimit, clampMaxResults(50))
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	assert.NoError(t, err)
	assert.Equal(t, ModeSection, m)

	m, err = ParseMode("sidebar")
	assert.NoError(t, err)
	assert.Equal(t, ModeSidebar, m)

	_, err = ParseMode("grid")
	assert.ErrorIs(t, err, ErrInvalidMode)
}

func TestResult_VisibleShorterThanDisplay(t *testing.T) {
	r := Result{Items: make([]ScoredCandidate, 2), Display: 3}
	assert.Len(t, r.Visible(false), 2)
}
