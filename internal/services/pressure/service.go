package pressure

import (
	"sort"

	"github.com/shopspring/decimal"

	"fplwatch/internal/domain/player"
)

var hundred = decimal.NewFromInt(100)

// Config holds the heuristic's thresholds. All of them are injected so
// the rough total-manager estimate can be recalibrated without a code
// change.
type Config struct {
	// TotalManagers is the approximate size of the FPL user base used to
	// turn ownership percentage into an absolute owner count.
	TotalManagers int64

	// OwnersFloor clamps the owner-count divisor so near-zero ownership
	// cannot blow the ratio up.
	OwnersFloor int64

	// MinOwnership is the percentage below which a player is never a
	// candidate, whatever their transfer volume.
	MinOwnership decimal.Decimal

	// MinTransfers is the one-sided absolute-activity floor that keeps
	// low-ownership noise out of the lists.
	MinTransfers int

	// Shortlist and Picks are the two-stage cut sizes.
	Shortlist int
	Picks     int
}

// Candidate is a player with their one-sided pressure score
type Candidate struct {
	Player player.Player
	Score  decimal.Decimal
}

// Estimator derives transfer-pressure predictions from a snapshot
type Estimator struct {
	cfg Config
}

// NewEstimator creates an estimator, filling unset thresholds with the
// calibration the heuristic was tuned on.
func NewEstimator(cfg Config) *Estimator {
	if cfg.TotalManagers == 0 {
		cfg.TotalManagers = 10_000_000
	}
	if cfg.OwnersFloor == 0 {
		cfg.OwnersFloor = 10_000
	}
	if cfg.MinOwnership.IsZero() {
		cfg.MinOwnership = decimal.RequireFromString("0.1")
	}
	if cfg.MinTransfers == 0 {
		cfg.MinTransfers = 5000
	}
	if cfg.Shortlist == 0 {
		cfg.Shortlist = 10
	}
	if cfg.Picks == 0 {
		cfg.Picks = 5
	}

	return &Estimator{cfg: cfg}
}

// Predict returns the players most likely to rise and fall tonight.
// Rising candidates need positive net transfers and meaningful inbound
// volume; falling candidates mirror that with outbound counts. Ranking
// is by one-sided pressure score descending, cut to the shortlist and
// then to the final picks. The ratio is deliberately second-guessed by
// the absolute-volume floor: a ratio alone overweights players whose
// tiny ownership makes any activity look dramatic.
func (e *Estimator) Predict(players []player.Player) (rising, falling []Candidate) {
	ownersFloor := decimal.NewFromInt(e.cfg.OwnersFloor)
	totalManagers := decimal.NewFromInt(e.cfg.TotalManagers)

	for _, p := range players {
		if p.SelectedBy.LessThan(e.cfg.MinOwnership) {
			continue
		}

		owners := p.SelectedBy.Div(hundred).Mul(totalManagers)
		if owners.LessThan(ownersFloor) {
			owners = ownersFloor
		}

		net := p.NetTransfers()

		if net > 0 && p.TransfersIn > e.cfg.MinTransfers {
			score := decimal.NewFromInt(int64(p.TransfersIn)).Div(owners)
			rising = append(rising, Candidate{Player: p, Score: score})
		}

		if net < 0 && p.TransfersOut > e.cfg.MinTransfers {
			score := decimal.NewFromInt(int64(p.TransfersOut)).Div(owners)
			falling = append(falling, Candidate{Player: p, Score: score})
		}
	}

	rising = e.cut(rising)
	falling = e.cut(falling)

	return rising, falling
}

// cut ranks by score descending and applies the shortlist/picks stages
func (e *Estimator) cut(candidates []Candidate) []Candidate {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score.GreaterThan(candidates[j].Score)
	})

	if len(candidates) > e.cfg.Shortlist {
		candidates = candidates[:e.cfg.Shortlist]
	}
	if len(candidates) > e.cfg.Picks {
		candidates = candidates[:e.cfg.Picks]
	}

	return candidates
}
