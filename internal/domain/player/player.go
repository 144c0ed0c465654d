package player

import (
	"github.com/shopspring/decimal"
)

// Position is the FPL element type
type Position int

const (
	Goalkeeper Position = 1
	Defender   Position = 2
	Midfielder Position = 3
	Forward    Position = 4
)

// String returns the short position label used in messages
func (p Position) String() string {
	switch p {
	case Goalkeeper:
		return "GK"
	case Defender:
		return "DEF"
	case Midfielder:
		return "MID"
	case Forward:
		return "FWD"
	default:
		return "UNK"
	}
}

// Status is the provider's availability flag
type Status string

const (
	StatusAvailable   Status = "a"
	StatusDoubtful    Status = "d"
	StatusUnavailable Status = "u"
)

// Description returns the human-readable availability
func (s Status) Description() string {
	switch s {
	case StatusAvailable:
		return "Available"
	case StatusDoubtful:
		return "Doubtful"
	case StatusUnavailable:
		return "Unavailable"
	default:
		return "Info unavailable"
	}
}

// Player is one row of the current FPL snapshot. ID is the only join key
// that is stable across snapshots; names can change.
type Player struct {
	ID       int
	Name     string
	Team     string // short name, e.g. "ARS"; empty when unresolved
	Position Position
	Status   Status

	// NowCost is the current price in tenths of a million
	NowCost int

	// Transfer counts for the current gameweek
	TransfersIn  int
	TransfersOut int

	// SelectedBy is the ownership percentage
	SelectedBy decimal.Decimal
}

// NetTransfers returns transfers in minus transfers out for the gameweek
func (p Player) NetTransfers() int {
	return p.TransfersIn - p.TransfersOut
}
