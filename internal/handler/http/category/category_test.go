package category

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpcenter/internal/domain/entity"
	"helpcenter/internal/repository"
	catUC "helpcenter/internal/usecase/category"
)

type stubService struct {
	err     error
	gotIn   catUC.Input
	gotID   int64
	deleted bool
}

func (s *stubService) List(context.Context) ([]repository.CategoryWithCount, error) {
	return []repository.CategoryWithCount{
		{Category: &entity.Category{ID: 1, Name: "Pagamentos", Slug: "pagamentos"}, ArticleCount: 12},
		{Category: &entity.Category{ID: 2, Name: "Conta", Slug: "conta", Position: 1}, ArticleCount: 0},
	}, s.err
}

func (s *stubService) GetWithArticles(_ context.Context, slug string) (*entity.Category, []*entity.Article, error) {
	if slug != "pagamentos" {
		return nil, nil, catUC.ErrCategoryNotFound
	}
	return &entity.Category{ID: 1, Name: "Pagamentos", Slug: "pagamentos"},
		[]*entity.Article{{ID: 5, Slug: "pix", Title: "Pix", Content: "<p>corpo</p>"}}, nil
}

func (s *stubService) Create(_ context.Context, in catUC.Input) (*entity.Category, error) {
	s.gotIn = in
	if s.err != nil {
		return nil, s.err
	}
	return &entity.Category{ID: 9, Name: in.Name, Slug: "nova"}, nil
}

func (s *stubService) Update(_ context.Context, id int64, in catUC.Input) (*entity.Category, error) {
	s.gotID, s.gotIn = id, in
	if s.err != nil {
		return nil, s.err
	}
	return &entity.Category{ID: id, Name: in.Name, Slug: in.Slug}, nil
}

func (s *stubService) Delete(_ context.Context, id int64) error {
	s.gotID = id
	if s.err != nil {
		return s.err
	}
	s.deleted = true
	return nil
}

func serve(h http.Handler, pattern, method, target, body string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.Handle(pattern, h)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(method, target, strings.NewReader(body)))
	return rr
}

func TestListHandler(t *testing.T) {
	rr := serve(ListHandler{Svc: &stubService{}}, "GET /categories", http.MethodGet, "/categories", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var got []DTO
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 2)
	require.NotNil(t, got[0].ArticleCount)
	assert.Equal(t, int64(12), *got[0].ArticleCount)
	require.NotNil(t, got[1].ArticleCount)
	assert.Equal(t, int64(0), *got[1].ArticleCount)
}

func TestGetHandler(t *testing.T) {
	h := GetHandler{Svc: &stubService{}}

	rr := serve(h, "GET /categories/{slug}", http.MethodGet, "/categories/pagamentos", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var page PageDTO
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page))
	assert.Equal(t, "Pagamentos", page.Category.Name)
	require.Len(t, page.Articles, 1)
	assert.Equal(t, "pix", page.Articles[0].Slug)
	assert.NotContains(t, rr.Body.String(), "corpo")

	rr = serve(h, "GET /categories/{slug}", http.MethodGet, "/categories/nada", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreateHandler(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
	}{
		{name: "created", body: `{"name":"Nova","description":"d","position":2}`, wantCode: http.StatusCreated},
		{name: "bad json", body: `[`, wantCode: http.StatusBadRequest},
		{name: "validation", body: `{"name":""}`, err: &entity.ValidationError{Field: "name", Message: "name is required"}, wantCode: http.StatusBadRequest},
		{name: "duplicate", body: `{"name":"Nova"}`, err: catUC.ErrDuplicateSlug, wantCode: http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{err: tt.err}
			rr := serve(CreateHandler{Svc: svc}, "POST /admin/categories", http.MethodPost, "/admin/categories", tt.body)
			assert.Equal(t, tt.wantCode, rr.Code)
			if tt.wantCode == http.StatusCreated {
				assert.Equal(t, catUC.Input{Name: "Nova", Description: "d", Position: 2}, svc.gotIn)
				assert.Equal(t, "/admin/categories/9", rr.Header().Get("Location"))
			}
		})
	}
}

func TestUpdateHandler(t *testing.T) {
	svc := &stubService{}
	rr := serve(UpdateHandler{Svc: svc}, "PUT /admin/categories/{id}", http.MethodPut,
		"/admin/categories/4", `{"name":"Conta","slug":"minha-conta"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(4), svc.gotID)
	assert.Equal(t, "minha-conta", svc.gotIn.Slug)

	svc.err = catUC.ErrCategoryNotFound
	rr = serve(UpdateHandler{Svc: svc}, "PUT /admin/categories/{id}", http.MethodPut,
		"/admin/categories/4", `{"name":"Conta"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeleteHandler(t *testing.T) {
	svc := &stubService{}
	rr := serve(DeleteHandler{Svc: svc}, "DELETE /admin/categories/{id}", http.MethodDelete, "/admin/categories/3", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.True(t, svc.deleted)

	svc = &stubService{err: catUC.ErrCategoryInUse}
	rr = serve(DeleteHandler{Svc: svc}, "DELETE /admin/categories/{id}", http.MethodDelete, "/admin/categories/3", "")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "cannot be deleted")
}

func TestRegister_AdminRequiresToken(t *testing.T) {
	t.Setenv("JWT_SECRET", strings.Repeat("k", 32))
	mux := http.NewServeMux()
	Register(mux, &stubService{})

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/admin/categories/1", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/categories", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}
