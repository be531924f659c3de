package feedback_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpcenter/internal/domain/entity"
	"helpcenter/internal/repository"
	fbUC "helpcenter/internal/usecase/feedback"
)

/* ───────── stubs ───────── */

type stubRepo struct {
	saved  []*entity.Feedback
	err    error
	nextID int64
}

func (s *stubRepo) Create(_ context.Context, f *entity.Feedback) error {
	if s.err != nil {
		return s.err
	}
	s.nextID++
	f.ID = s.nextID
	s.saved = append(s.saved, f)
	return nil
}
func (s *stubRepo) ListByArticle(_ context.Context, articleID int64) ([]*entity.Feedback, error) {
	var out []*entity.Feedback
	for _, f := range s.saved {
		if f.ArticleID == articleID {
			out = append(out, f)
		}
	}
	return out, s.err
}
func (s *stubRepo) Summary(_ context.Context, articleID int64) (*entity.FeedbackSummary, error) {
	if s.err != nil {
		return nil, s.err
	}
	sum := &entity.FeedbackSummary{ArticleID: articleID}
	for _, f := range s.saved {
		if f.ArticleID != articleID {
			continue
		}
		if f.Helpful {
			sum.Helpful++
		} else {
			sum.Unhelpful++
		}
	}
	return sum, nil
}

type stubArticles struct {
	repository.ArticleRepository
	data map[int64]*entity.Article
	err  error
}

func (s *stubArticles) Get(_ context.Context, id int64) (*entity.Article, error) {
	return s.data[id], s.err
}

type recordingAlerter struct {
	alerts []*entity.FeedbackAlert
	err    error
}

func (r *recordingAlerter) NotifyNegativeFeedback(_ context.Context, a *entity.FeedbackAlert) error {
	r.alerts = append(r.alerts, a)
	return r.err
}

var fixedNow = time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)

func newService() (*fbUC.Service, *stubRepo, *recordingAlerter) {
	repo := &stubRepo{}
	alerts := &recordingAlerter{}
	svc := &fbUC.Service{
		Repo: repo,
		Articles: &stubArticles{data: map[int64]*entity.Article{
			1: {ID: 1, Title: "Como emitir nota fiscal", Slug: "como-emitir-nota-fiscal", Status: entity.StatusPublished},
			2: {ID: 2, Title: "Rascunho", Slug: "rascunho", Status: entity.StatusDraft},
		}},
		Alerts:  alerts,
		BaseURL: "https://ajuda.example.com/",
		Now:     func() time.Time { return fixedNow },
	}
	return svc, repo, alerts
}

/* ───────── 1. Submit ───────── */

func TestSubmit_HelpfulVote(t *testing.T) {
	svc, repo, alerts := newService()

	f, err := svc.Submit(context.Background(), fbUC.SubmitInput{ArticleID: 1, Helpful: true, Comment: "ótimo"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), f.ID)
	assert.Equal(t, fixedNow, f.CreatedAt)
	assert.Len(t, repo.saved, 1)
	assert.Empty(t, alerts.alerts)
}

func TestSubmit_NegativeWithCommentAlerts(t *testing.T) {
	svc, _, alerts := newService()

	f, err := svc.Submit(context.Background(), fbUC.SubmitInput{
		ArticleID: 1,
		Comment:   "  <b>O menu</b> mudou   de lugar <script>x()</script> ",
	})

	require.NoError(t, err)
	assert.Equal(t, "O menu mudou de lugar", f.Comment)
	require.Len(t, alerts.alerts, 1)
	got := alerts.alerts[0]
	assert.Same(t, f, got.Feedback)
	assert.Equal(t, "Como emitir nota fiscal", got.ArticleTitle)
	assert.Equal(t, "https://ajuda.example.com/articles/como-emitir-nota-fiscal", got.ArticleURL)
}

func TestSubmit_NegativeWithoutCommentIsSilent(t *testing.T) {
	svc, repo, alerts := newService()

	_, err := svc.Submit(context.Background(), fbUC.SubmitInput{ArticleID: 1, Comment: "   "})

	require.NoError(t, err)
	assert.Len(t, repo.saved, 1)
	assert.Empty(t, alerts.alerts)
}

func TestSubmit_AlertFailureDoesNotFailVote(t *testing.T) {
	svc, repo, alerts := newService()
	alerts.err = errors.New("dispatcher closed")

	_, err := svc.Submit(context.Background(), fbUC.SubmitInput{ArticleID: 1, Comment: "confuso"})

	require.NoError(t, err)
	assert.Len(t, repo.saved, 1)
}

func TestSubmit_NilAlerter(t *testing.T) {
	svc, repo, _ := newService()
	svc.Alerts = nil

	_, err := svc.Submit(context.Background(), fbUC.SubmitInput{ArticleID: 1, Comment: "confuso"})

	require.NoError(t, err)
	assert.Len(t, repo.saved, 1)
}

func TestSubmit_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   fbUC.SubmitInput
		want error
	}{
		{name: "zero id", in: fbUC.SubmitInput{ArticleID: 0}, want: fbUC.ErrInvalidArticleID},
		{name: "unknown article", in: fbUC.SubmitInput{ArticleID: 99}, want: fbUC.ErrArticleNotFound},
		{name: "draft article", in: fbUC.SubmitInput{ArticleID: 2}, want: fbUC.ErrArticleNotFound},
		{
			name: "comment too long",
			in:   fbUC.SubmitInput{ArticleID: 1, Comment: strings.Repeat("é", entity.MaxFeedbackCommentLength+1)},
			want: entity.ErrInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService()
			_, err := svc.Submit(context.Background(), tt.in)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, repo.saved)
		})
	}
}

func TestSubmit_CommentAtLimit(t *testing.T) {
	svc, _, _ := newService()
	_, err := svc.Submit(context.Background(), fbUC.SubmitInput{
		ArticleID: 1, Helpful: true, Comment: strings.Repeat("é", entity.MaxFeedbackCommentLength),
	})
	assert.NoError(t, err)
}

func TestSubmit_RepoError(t *testing.T) {
	svc, repo, alerts := newService()
	repo.err = errors.New("db down")

	_, err := svc.Submit(context.Background(), fbUC.SubmitInput{ArticleID: 1, Comment: "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "create feedback")
	assert.Empty(t, alerts.alerts)
}

/* ───────── 2. Admin reads ───────── */

func TestListAndSummary(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	for _, helpful := range []bool{true, true, false} {
		_, err := svc.Submit(ctx, fbUC.SubmitInput{ArticleID: 1, Helpful: helpful})
		require.NoError(t, err)
	}

	list, err := svc.ListByArticle(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 3)

	sum, err := svc.Summary(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, &entity.FeedbackSummary{ArticleID: 1, Helpful: 2, Unhelpful: 1}, sum)

	_, err = svc.ListByArticle(ctx, 0)
	assert.ErrorIs(t, err, fbUC.ErrInvalidArticleID)
	_, err = svc.Summary(ctx, -1)
	assert.ErrorIs(t, err, fbUC.ErrInvalidArticleID)
}
