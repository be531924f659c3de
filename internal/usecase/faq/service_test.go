package faq_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpcenter/internal/domain/entity"
	"helpcenter/internal/repository"
	faqUC "helpcenter/internal/usecase/faq"
)

type stubRepo struct {
	data   map[int64]*entity.FAQ
	filter repository.FAQFilter
	nextID int64
}

func newStub() *stubRepo {
	return &stubRepo{data: map[int64]*entity.FAQ{}, nextID: 1}
}

func (s *stubRepo) List(_ context.Context, f repository.FAQFilter) ([]*entity.FAQ, error) {
	s.filter = f
	var out []*entity.FAQ
	for _, v := range s.data {
		out = append(out, v)
	}
	return out, nil
}
func (s *stubRepo) Get(_ context.Context, id int64) (*entity.FAQ, error) { return s.data[id], nil }
func (s *stubRepo) Create(_ context.Context, f *entity.FAQ) error {
	f.ID = s.nextID
	s.nextID++
	s.data[f.ID] = f
	return nil
}
func (s *stubRepo) Update(_ context.Context, f *entity.FAQ) error {
	if _, ok := s.data[f.ID]; !ok {
		return repository.ErrNotFound
	}
	s.data[f.ID] = f
	return nil
}
func (s *stubRepo) Delete(_ context.Context, id int64) error {
	if _, ok := s.data[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.data, id)
	return nil
}

type stubCategories struct{ repository.CategoryRepository }

func (stubCategories) Get(_ context.Context, id int64) (*entity.Category, error) {
	if id == 1 {
		return &entity.Category{ID: 1}, nil
	}
	return nil, nil
}

func newService(stub *stubRepo) *faqUC.Service {
	return &faqUC.Service{Repo: stub, Categories: stubCategories{}}
}

func ptr[T any](v T) *T { return &v }

func TestService_Create(t *testing.T) {
	stub := newStub()
	f, err := newService(stub).Create(context.Background(), faqUC.Input{
		Question:   " Como emitir boleto? ",
		Answer:     `<p>Use o menu <a href="https://x.example">Cobranças</a></p><img src=x onerror=alert(1)>`,
		CategoryID: ptr(int64(1)),
		Published:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Como emitir boleto?", f.Question)
	assert.NotContains(t, f.Answer, "onerror")
	assert.Contains(t, f.Answer, "Cobranças")
	assert.Len(t, stub.data, 1)
}

func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name  string
		in    faqUC.Input
		field string
	}{
		{name: "no question", in: faqUC.Input{Answer: "a"}, field: "question"},
		{name: "answer only script", in: faqUC.Input{Question: "q", Answer: "<script>x</script>"}, field: "answer"},
		{name: "negative position", in: faqUC.Input{Question: "q", Answer: "a", Position: -2}, field: "position"},
		{name: "unknown category", in: faqUC.Input{Question: "q", Answer: "a", CategoryID: ptr(int64(5))}, field: "category_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newService(newStub()).Create(context.Background(), tt.in)
			var vErr *entity.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestService_UpdateDelete(t *testing.T) {
	stub := newStub()
	stub.data[4] = &entity.FAQ{ID: 4, Question: "old", Answer: "a"}
	svc := newService(stub)

	f, err := svc.Update(context.Background(), 4, faqUC.Input{Question: "new", Answer: "b", Position: 2})
	require.NoError(t, err)
	assert.Equal(t, "new", f.Question)
	assert.Nil(t, f.CategoryID)

	_, err = svc.Update(context.Background(), 5, faqUC.Input{Question: "q", Answer: "a"})
	assert.ErrorIs(t, err, faqUC.ErrFAQNotFound)

	assert.NoError(t, svc.Delete(context.Background(), 4))
	assert.ErrorIs(t, svc.Delete(context.Background(), 4), faqUC.ErrFAQNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), 0), faqUC.ErrInvalidFAQID)
}

func TestService_ListPublished(t *testing.T) {
	stub := newStub()
	svc := newService(stub)

	_, err := svc.ListPublished(context.Background(), ptr(int64(3)))
	require.NoError(t, err)
	assert.True(t, stub.filter.PublishedOnly)
	require.NotNil(t, stub.filter.CategoryID)
	assert.Equal(t, int64(3), *stub.filter.CategoryID)

	_, err = svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.False(t, stub.filter.PublishedOnly)
}
