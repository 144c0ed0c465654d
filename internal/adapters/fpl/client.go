package fpl

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"fplwatch/internal/domain/player"
	"fplwatch/internal/metrics"
	"fplwatch/pkg/errors"
	"fplwatch/pkg/logger"
)

const bootstrapPath = "bootstrap-static/"

// Config contains FPL API client configuration
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client fetches the current game snapshot from the FPL API
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

// NewClient creates a new FPL API client
func NewClient(cfg Config, log *logger.Logger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		baseURL: cfg.BaseURL,
		http: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		log: log.With("component", "fpl_client"),
	}
}

// Fetch retrieves the current player table and team lookup in a single
// bootstrap-static request. Any transport error, non-2xx status or decode
// failure is fatal for the run and surfaces as ErrUpstreamUnavailable.
func (c *Client) Fetch(ctx context.Context) (*Snapshot, error) {
	url := c.baseURL + bootstrapPath

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrUpstreamUnavailable, err.Error())
	}

	resp, err := c.http.Do(req)
	metrics.RecordUpstreamRequest("fpl", time.Since(start), err)
	if err != nil {
		c.log.Errorw("FPL request failed",
			"url", url,
			"error", err,
		)
		return nil, errors.Wrap(errors.ErrUpstreamUnavailable, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Errorw("FPL request returned non-success status",
			"url", url,
			"status", resp.StatusCode,
		)
		return nil, errors.Wrapf(errors.ErrUpstreamUnavailable, "unexpected status %d", resp.StatusCode)
	}

	var payload bootstrapResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.log.Errorw("Failed to decode FPL response",
			"url", url,
			"error", err,
		)
		return nil, errors.Wrap(errors.ErrUpstreamUnavailable, err.Error())
	}

	snapshot := toSnapshot(payload)

	c.log.Debugw("Fetched FPL snapshot",
		"players", len(snapshot.Players),
		"teams", len(snapshot.Teams),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return snapshot, nil
}

// toSnapshot maps the wire payload onto domain players and resolves team
// short names. An unknown team reference leaves Team empty rather than
// failing the snapshot.
func toSnapshot(payload bootstrapResponse) *Snapshot {
	teams := make(map[int]string, len(payload.Teams))
	for _, t := range payload.Teams {
		teams[t.ID] = t.ShortName
	}

	players := make([]player.Player, 0, len(payload.Elements))
	for _, e := range payload.Elements {
		players = append(players, player.Player{
			ID:           e.ID,
			Name:         e.WebName,
			Team:         teams[e.Team],
			Position:     player.Position(e.ElementType),
			Status:       player.Status(e.Status),
			NowCost:      e.NowCost,
			TransfersIn:  e.TransfersInEvent,
			TransfersOut: e.TransfersOutEvent,
			SelectedBy:   e.SelectedByPercent.Decimal,
		})
	}

	return &Snapshot{
		Players: players,
		Teams:   teams,
	}
}
