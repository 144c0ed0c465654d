package baseline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fplwatch/pkg/errors"
	"fplwatch/pkg/logger"
)

func newTestLoader(t *testing.T, handler http.HandlerFunc) *Loader {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewLoader(Config{URL: srv.URL}, logger.Get())
}

func TestLoader_Fetch(t *testing.T) {
	loader := newTestLoader(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("id,web_name,now_cost\n1,Saka,87\n2,Raya,55\n"))
	})

	table, err := loader.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Table{1: 87, 2: 55}, table)
}

func TestLoader_FetchColumnOrderIrrelevant(t *testing.T) {
	loader := newTestLoader(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("now_cost,extra,id\n87,x,1\n"))
	})

	table, err := loader.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Table{1: 87}, table)
}

func TestLoader_FetchHeaderOnly(t *testing.T) {
	loader := newTestLoader(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("id,now_cost\n"))
	})

	table, err := loader.Fetch(context.Background())
	require.NoError(t, err)

	// Empty but valid: downstream treats it as "no comparison possible"
	assert.Empty(t, table)
}

func TestLoader_FetchMissingColumns(t *testing.T) {
	loader := newTestLoader(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("code,price\n1,87\n"))
	})

	table, err := loader.Fetch(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrBaselineMissing))
	assert.Empty(t, table)
}

func TestLoader_FetchMalformedRow(t *testing.T) {
	loader := newTestLoader(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("id,now_cost\nnot_a_number,87\n"))
	})

	_, err := loader.Fetch(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrBaselineMissing))
}

func TestLoader_FetchNonSuccessStatus(t *testing.T) {
	loader := newTestLoader(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	table, err := loader.Fetch(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrBaselineMissing))
	assert.Empty(t, table)
}

func TestLoader_FetchConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	loader := NewLoader(Config{URL: srv.URL}, logger.Get())

	_, err := loader.Fetch(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrBaselineMissing))
}
