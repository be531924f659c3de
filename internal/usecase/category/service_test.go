package category_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpcenter/internal/domain/entity"
	"helpcenter/internal/repository"
	catUC "helpcenter/internal/usecase/category"
)

/* ───────── stubs ───────── */

type stubRepo struct {
	data      map[int64]*entity.Category
	counts    map[int64]int64
	nextID    int64
	err       error
	deleteErr error
}

func newStub() *stubRepo {
	return &stubRepo{data: map[int64]*entity.Category{}, counts: map[int64]int64{}, nextID: 1}
}

func (s *stubRepo) List(context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range s.data {
		out = append(out, c)
	}
	return out, s.err
}
func (s *stubRepo) ListWithCounts(context.Context) ([]repository.CategoryWithCount, error) {
	var out []repository.CategoryWithCount
	for id, c := range s.data {
		out = append(out, repository.CategoryWithCount{Category: c, ArticleCount: s.counts[id]})
	}
	return out, s.err
}
func (s *stubRepo) Get(_ context.Context, id int64) (*entity.Category, error) {
	return s.data[id], s.err
}
func (s *stubRepo) GetBySlug(_ context.Context, slug string) (*entity.Category, error) {
	for _, c := range s.data {
		if c.Slug == slug {
			return c, s.err
		}
	}
	return nil, s.err
}
func (s *stubRepo) Create(_ context.Context, c *entity.Category) error {
	if s.err != nil {
		return s.err
	}
	for _, other := range s.data {
		if other.Slug == c.Slug {
			return repository.ErrDuplicate
		}
	}
	c.ID = s.nextID
	s.nextID++
	s.data[c.ID] = c
	return nil
}
func (s *stubRepo) Update(_ context.Context, c *entity.Category) error {
	if s.err != nil {
		return s.err
	}
	s.data[c.ID] = c
	return nil
}
func (s *stubRepo) Delete(_ context.Context, id int64) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.data, id)
	return nil
}

type stubArticles struct {
	repository.ArticleRepository
	filter repository.ArticleFilter
	err    error
}

func (s *stubArticles) List(_ context.Context, f repository.ArticleFilter) ([]*entity.Article, error) {
	s.filter = f
	return []*entity.Article{{ID: 9, CategoryID: *f.CategoryID}}, s.err
}

/* ───────── 1. Create ───────── */

func TestService_Create(t *testing.T) {
	stub := newStub()
	svc := catUC.Service{Repo: stub}

	cat, err := svc.Create(context.Background(), catUC.Input{Name: "  Notas Fiscais ", Position: 2})
	require.NoError(t, err)
	assert.Equal(t, "Notas Fiscais", cat.Name)
	assert.Equal(t, "notas-fiscais", cat.Slug)
	assert.Equal(t, 2, cat.Position)
	assert.Equal(t, int64(1), cat.ID)

	_, err = svc.Create(context.Background(), catUC.Input{Name: "Notas fiscais"})
	assert.ErrorIs(t, err, catUC.ErrDuplicateSlug)
}

func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name  string
		in    catUC.Input
		field string
	}{
		{name: "empty name", in: catUC.Input{Name: " "}, field: "name"},
		{name: "bad slug", in: catUC.Input{Name: "Conta", Slug: "Conta!"}, field: "slug"},
		{name: "negative position", in: catUC.Input{Name: "Conta", Position: -1}, field: "position"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&catUC.Service{Repo: newStub()}).Create(context.Background(), tt.in)
			var vErr *entity.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

/* ───────── 2. Update / Delete ───────── */

func TestService_Update(t *testing.T) {
	stub := newStub()
	stub.data[1] = &entity.Category{ID: 1, Name: "Conta", Slug: "conta"}
	svc := catUC.Service{Repo: stub}

	cat, err := svc.Update(context.Background(), 1, catUC.Input{Name: "Minha conta", Slug: "conta", Description: " Dados "})
	require.NoError(t, err)
	assert.Equal(t, "Minha conta", cat.Name)
	assert.Equal(t, "Dados", cat.Description)

	_, err = svc.Update(context.Background(), 7, catUC.Input{Name: "x"})
	assert.ErrorIs(t, err, catUC.ErrCategoryNotFound)

	_, err = svc.Update(context.Background(), 0, catUC.Input{Name: "x"})
	assert.ErrorIs(t, err, catUC.ErrInvalidCategoryID)
}

func TestService_Delete(t *testing.T) {
	tests := []struct {
		name    string
		id      int64
		repoErr error
		wantErr error
	}{
		{name: "ok", id: 1},
		{name: "invalid id", id: 0, wantErr: catUC.ErrInvalidCategoryID},
		{name: "missing", id: 1, repoErr: repository.ErrNotFound, wantErr: catUC.ErrCategoryNotFound},
		{name: "has articles", id: 1, repoErr: repository.ErrInUse, wantErr: catUC.ErrCategoryInUse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := newStub()
			stub.deleteErr = tt.repoErr
			err := (&catUC.Service{Repo: stub}).Delete(context.Background(), tt.id)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	stub := newStub()
	stub.deleteErr = errors.New("conn reset")
	err := (&catUC.Service{Repo: stub}).Delete(context.Background(), 1)
	assert.EqualError(t, err, "delete category: conn reset")
}

/* ───────── 3. Public reads ───────── */

func TestService_List(t *testing.T) {
	stub := newStub()
	stub.data[1] = &entity.Category{ID: 1, Slug: "pagamentos"}
	stub.counts[1] = 12

	got, err := (&catUC.Service{Repo: stub}).List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(12), got[0].ArticleCount)

	stub.err = errors.New("boom")
	_, err = (&catUC.Service{Repo: stub}).List(context.Background())
	assert.Error(t, err)
}

func TestService_GetWithArticles(t *testing.T) {
	stub := newStub()
	stub.data[3] = &entity.Category{ID: 3, Slug: "pagamentos"}
	arts := &stubArticles{}
	svc := catUC.Service{Repo: stub, Articles: arts}

	cat, list, err := svc.GetWithArticles(context.Background(), "pagamentos")
	require.NoError(t, err)
	assert.Equal(t, int64(3), cat.ID)
	require.Len(t, list, 1)
	require.NotNil(t, arts.filter.Status)
	assert.Equal(t, entity.StatusPublished, *arts.filter.Status)
	assert.Equal(t, int64(3), *arts.filter.CategoryID)

	_, _, err = svc.GetWithArticles(context.Background(), "nope")
	assert.ErrorIs(t, err, catUC.ErrCategoryNotFound)
}
