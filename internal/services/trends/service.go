package trends

import (
	"sort"

	"fplwatch/internal/domain/player"
)

// TopMovers returns the top n players by transfers in and, independently,
// by transfers out for the current gameweek. The lists are ranked
// separately, so a heavily churned player can appear in both.
func TopMovers(players []player.Player, n int) (topIn, topOut []player.Player) {
	if n <= 0 {
		n = 10
	}

	topIn = make([]player.Player, len(players))
	copy(topIn, players)
	sort.SliceStable(topIn, func(i, j int) bool {
		return topIn[i].TransfersIn > topIn[j].TransfersIn
	})
	if len(topIn) > n {
		topIn = topIn[:n]
	}

	topOut = make([]player.Player, len(players))
	copy(topOut, players)
	sort.SliceStable(topOut, func(i, j int) bool {
		return topOut[i].TransfersOut > topOut[j].TransfersOut
	})
	if len(topOut) > n {
		topOut = topOut[:n]
	}

	return topIn, topOut
}
