package httpquery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func newSource(t *testing.T) *Source {
	t.Helper()
	s := New()
	t.Cleanup(func() { s.Close() })
	return s
}

func TestQuery(t *testing.T) {
	srv := startServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("42.5\n"))
	})

	value, err := newSource(t).Query(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 42.5, value)
}

func TestQueryErrorStatus(t *testing.T) {
	srv := startServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := newSource(t).Query(context.Background(), srv.URL)
	assert.ErrorContains(t, err, "status")
}

func TestQueryNonNumericBody(t *testing.T) {
	srv := startServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not a number"))
	})

	_, err := newSource(t).Query(context.Background(), srv.URL)
	assert.ErrorContains(t, err, "is not a number")
}

func TestQueryCanceledContext(t *testing.T) {
	srv := startServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("1"))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newSource(t).Query(ctx, srv.URL)
	assert.Error(t, err)
}
