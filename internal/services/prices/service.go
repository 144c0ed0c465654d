package prices

import (
	"sort"

	"fplwatch/internal/adapters/baseline"
	"fplwatch/internal/domain/player"
)

// Change is one player whose price moved since the baseline snapshot
type Change struct {
	Player   player.Player
	PrevCost int // baseline price in tenths
	Delta    int // NowCost - PrevCost, never zero
}

// Calculate left-joins the current table on the baseline by player ID and
// partitions the non-zero deltas into falls and rises. Players without a
// baseline match are excluded: no comparison is possible for them.
// Each partition is sorted by current price ascending so budget-tier
// movers appear first; ties keep their snapshot order.
func Calculate(players []player.Player, base baseline.Table) (falls, rises []Change) {
	for _, p := range players {
		prev, ok := base[p.ID]
		if !ok {
			continue
		}

		delta := p.NowCost - prev
		if delta == 0 {
			continue
		}

		change := Change{Player: p, PrevCost: prev, Delta: delta}
		if delta < 0 {
			falls = append(falls, change)
		} else {
			rises = append(rises, change)
		}
	}

	byCostAsc := func(changes []Change) func(i, j int) bool {
		return func(i, j int) bool {
			return changes[i].Player.NowCost < changes[j].Player.NowCost
		}
	}
	sort.SliceStable(falls, byCostAsc(falls))
	sort.SliceStable(rises, byCostAsc(rises))

	return falls, rises
}
