package baseline

import (
	"context"
	"encoding/csv"
	"io"
	"net/http"
	"strconv"
	"time"

	"fplwatch/internal/metrics"
	"fplwatch/pkg/errors"
	"fplwatch/pkg/logger"
)

// Table maps player ID to yesterday's recorded price in tenths. An empty
// table is a valid state and means no comparison is possible.
type Table map[int]int

// Config contains baseline loader configuration
type Config struct {
	URL     string
	Timeout time.Duration
}

// Loader fetches the previous day's price snapshot from a remote CSV.
// The file is written by an external recording job between runs; this
// system only ever reads it.
type Loader struct {
	url  string
	http *http.Client
	log  *logger.Logger
}

// NewLoader creates a new baseline loader
func NewLoader(cfg Config, log *logger.Logger) *Loader {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Loader{
		url: cfg.URL,
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: log.With("component", "baseline_loader"),
	}
}

// Fetch retrieves and parses the baseline table. Failures are degraded,
// not fatal: callers receive ErrBaselineMissing and an empty table, and
// downstream emits a user-visible warning instead of computed changes.
func (l *Loader) Fetch(ctx context.Context) (Table, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return Table{}, errors.Wrap(errors.ErrBaselineMissing, err.Error())
	}

	resp, err := l.http.Do(req)
	metrics.RecordUpstreamRequest("baseline", time.Since(start), err)
	if err != nil {
		l.log.Warnw("Baseline fetch failed",
			"url", l.url,
			"error", err,
		)
		return Table{}, errors.Wrap(errors.ErrBaselineMissing, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		l.log.Warnw("Baseline fetch returned non-success status",
			"url", l.url,
			"status", resp.StatusCode,
		)
		return Table{}, errors.Wrapf(errors.ErrBaselineMissing, "unexpected status %d", resp.StatusCode)
	}

	table, err := parse(resp.Body)
	if err != nil {
		l.log.Warnw("Baseline parse failed",
			"url", l.url,
			"error", err,
		)
		return Table{}, errors.Wrap(errors.ErrBaselineMissing, err.Error())
	}

	l.log.Debugw("Loaded baseline snapshot",
		"records", len(table),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return table, nil
}

// parse reads a CSV with at least id and now_cost columns. Extra columns
// are ignored; a missing header or malformed row fails the whole table.
func parse(r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "read header")
	}

	idCol, costCol := -1, -1
	for i, name := range header {
		switch name {
		case "id":
			idCol = i
		case "now_cost":
			costCol = i
		}
	}
	if idCol < 0 || costCol < 0 {
		return nil, errors.Newf("missing id/now_cost columns in header %v", header)
	}

	table := make(Table)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read row")
		}
		if len(record) <= idCol || len(record) <= costCol {
			return nil, errors.Newf("short row %v", record)
		}

		id, err := strconv.Atoi(record[idCol])
		if err != nil {
			return nil, errors.Wrapf(err, "bad id %q", record[idCol])
		}
		cost, err := strconv.Atoi(record[costCol])
		if err != nil {
			return nil, errors.Wrapf(err, "bad now_cost %q", record[costCol])
		}

		table[id] = cost
	}

	return table, nil
}
