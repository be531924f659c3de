package pathutil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID(t *testing.T) {
	tests := []struct {
		path    string
		want    int64
		wantErr bool
	}{
		{path: "/articles/42", want: 42},
		{path: "/articles/0", wantErr: true},
		{path: "/articles/-3", wantErr: true},
		{path: "/articles/abc", wantErr: true},
		{path: "/articles/99999999999999999999", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var got int64
			var err error
			mux := http.NewServeMux()
			mux.HandleFunc("GET /articles/{id}", func(_ http.ResponseWriter, r *http.Request) {
				got, err = ID(r, "id")
			})
			mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQueryInt(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/x?limit=5&bad=five", nil)

	n, err := QueryInt(r, "limit", 6)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = QueryInt(r, "missing", 6)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	_, err = QueryInt(r, "bad", 6)
	assert.EqualError(t, err, "invalid query parameter: bad must be an integer")
}

func TestQueryBool(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/x?expand=1&off=false&bad=maybe", nil)

	b, err := QueryBool(r, "expand")
	require.NoError(t, err)
	assert.True(t, b)

	b, err = QueryBool(r, "off")
	require.NoError(t, err)
	assert.False(t, b)

	b, err = QueryBool(r, "missing")
	require.NoError(t, err)
	assert.False(t, b)

	_, err = QueryBool(r, "bad")
	assert.Error(t, err)
}
