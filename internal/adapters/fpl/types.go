package fpl

import (
	"bytes"
	"strings"

	"github.com/shopspring/decimal"

	"fplwatch/internal/domain/player"
)

// Snapshot is the decoded state of the game at fetch time: the full
// player table plus the team short-name lookup.
type Snapshot struct {
	Players []player.Player
	Teams   map[int]string
}

// bootstrapResponse mirrors the subset of bootstrap-static/ we consume
type bootstrapResponse struct {
	Elements []element `json:"elements"`
	Teams    []team    `json:"teams"`
}

type element struct {
	ID                int         `json:"id"`
	WebName           string      `json:"web_name"`
	Team              int         `json:"team"`
	ElementType       int         `json:"element_type"`
	Status            string      `json:"status"`
	NowCost           int         `json:"now_cost"`
	TransfersInEvent  int         `json:"transfers_in_event"`
	TransfersOutEvent int         `json:"transfers_out_event"`
	SelectedByPercent FlexPercent `json:"selected_by_percent"`
}

type team struct {
	ID        int    `json:"id"`
	ShortName string `json:"short_name"`
}

// FlexPercent is a decimal that tolerates the provider's loose typing:
// selected_by_percent arrives as a quoted string, occasionally as a bare
// number, and sometimes as garbage. Anything unparseable decodes to zero
// so one bad row cannot fail the whole snapshot.
type FlexPercent struct {
	decimal.Decimal
}

func (f *FlexPercent) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(bytes.TrimSpace(data), `"`))
	if s == "" || s == "null" {
		f.Decimal = decimal.Zero
		return nil
	}

	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		f.Decimal = decimal.Zero
		return nil
	}

	f.Decimal = d
	return nil
}
