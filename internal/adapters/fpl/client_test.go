package fpl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fplwatch/internal/domain/player"
	"fplwatch/pkg/errors"
	"fplwatch/pkg/logger"
)

const bootstrapFixture = `{
	"elements": [
		{
			"id": 1,
			"web_name": "Saka",
			"team": 1,
			"element_type": 3,
			"status": "a",
			"now_cost": 87,
			"transfers_in_event": 250000,
			"transfers_out_event": 50000,
			"selected_by_percent": "34.2"
		},
		{
			"id": 2,
			"web_name": "Raya",
			"team": 1,
			"element_type": 1,
			"status": "d",
			"now_cost": 55,
			"transfers_in_event": 1000,
			"transfers_out_event": 2000,
			"selected_by_percent": "12.0"
		},
		{
			"id": 3,
			"web_name": "Mystery",
			"team": 99,
			"element_type": 4,
			"status": "u",
			"now_cost": 45,
			"transfers_in_event": 0,
			"transfers_out_event": 0,
			"selected_by_percent": "oops"
		}
	],
	"teams": [
		{"id": 1, "short_name": "ARS"},
		{"id": 2, "short_name": "AVL"}
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(Config{BaseURL: srv.URL + "/"}, logger.Get())
}

func TestClient_Fetch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bootstrap-static/", r.URL.Path)
		w.Write([]byte(bootstrapFixture))
	})

	snapshot, err := client.Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, snapshot.Players, 3)
	assert.Equal(t, map[int]string{1: "ARS", 2: "AVL"}, snapshot.Teams)

	saka := snapshot.Players[0]
	assert.Equal(t, 1, saka.ID)
	assert.Equal(t, "Saka", saka.Name)
	assert.Equal(t, "ARS", saka.Team)
	assert.Equal(t, player.Midfielder, saka.Position)
	assert.Equal(t, player.StatusAvailable, saka.Status)
	assert.Equal(t, 87, saka.NowCost)
	assert.Equal(t, 250_000, saka.TransfersIn)
	assert.Equal(t, 50_000, saka.TransfersOut)
	assert.True(t, saka.SelectedBy.Equal(decimal.RequireFromString("34.2")))

	// Unknown team reference resolves to empty, unparseable ownership to zero
	mystery := snapshot.Players[2]
	assert.Equal(t, "", mystery.Team)
	assert.True(t, mystery.SelectedBy.IsZero())
}

func TestClient_FetchNonSuccessStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Fetch(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUpstreamUnavailable))
}

func TestClient_FetchMalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"elements": [{`))
	})

	_, err := client.Fetch(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUpstreamUnavailable))
}

func TestClient_FetchConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // refuse connections

	client := NewClient(Config{BaseURL: srv.URL + "/"}, logger.Get())

	_, err := client.Fetch(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUpstreamUnavailable))
}
