package prices

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fplwatch/internal/adapters/baseline"
	"fplwatch/internal/domain/player"
)

func TestCalculate_PartitionsBySign(t *testing.T) {
	players := []player.Player{
		{ID: 1, Name: "Riser", NowCost: 55},
		{ID: 2, Name: "Faller", NowCost: 44},
		{ID: 3, Name: "Steady", NowCost: 60},
	}
	base := baseline.Table{1: 50, 2: 45, 3: 60}

	falls, rises := Calculate(players, base)

	require.Len(t, falls, 1)
	require.Len(t, rises, 1)

	assert.Equal(t, "Faller", falls[0].Player.Name)
	assert.Equal(t, -1, falls[0].Delta)
	assert.Equal(t, 45, falls[0].PrevCost)

	assert.Equal(t, "Riser", rises[0].Player.Name)
	assert.Equal(t, 5, rises[0].Delta)
	assert.Equal(t, 50, rises[0].PrevCost)
}

func TestCalculate_UnmatchedPlayersExcluded(t *testing.T) {
	players := []player.Player{
		{ID: 1, NowCost: 55},
		{ID: 99, NowCost: 100}, // new signing, no baseline row
	}
	base := baseline.Table{1: 50}

	falls, rises := Calculate(players, base)

	assert.Empty(t, falls)
	require.Len(t, rises, 1)
	assert.Equal(t, 1, rises[0].Player.ID)
}

func TestCalculate_ZeroDeltaDropped(t *testing.T) {
	players := []player.Player{
		{ID: 1, NowCost: 50},
		{ID: 2, NowCost: 70},
	}
	base := baseline.Table{1: 50, 2: 70}

	falls, rises := Calculate(players, base)

	assert.Empty(t, falls)
	assert.Empty(t, rises)
}

func TestCalculate_SortedByCurrentPriceAscending(t *testing.T) {
	players := []player.Player{
		{ID: 1, Name: "Premium", NowCost: 130},
		{ID: 2, Name: "Budget", NowCost: 45},
		{ID: 3, Name: "Mid", NowCost: 75},
		{ID: 4, Name: "PremiumFall", NowCost: 120},
		{ID: 5, Name: "BudgetFall", NowCost: 40},
	}
	base := baseline.Table{1: 125, 2: 44, 3: 74, 4: 121, 5: 41}

	falls, rises := Calculate(players, base)

	require.Len(t, rises, 3)
	assert.Equal(t, []string{"Budget", "Mid", "Premium"}, names(rises))

	require.Len(t, falls, 2)
	assert.Equal(t, []string{"BudgetFall", "PremiumFall"}, names(falls))

	for i := 1; i < len(rises); i++ {
		assert.LessOrEqual(t, rises[i-1].Player.NowCost, rises[i].Player.NowCost)
	}
}

func TestCalculate_TiesKeepSnapshotOrder(t *testing.T) {
	players := []player.Player{
		{ID: 1, Name: "First", NowCost: 50},
		{ID: 2, Name: "Second", NowCost: 50},
	}
	base := baseline.Table{1: 49, 2: 49}

	_, rises := Calculate(players, base)

	require.Len(t, rises, 2)
	assert.Equal(t, []string{"First", "Second"}, names(rises))
}

func TestCalculate_EmptyBaseline(t *testing.T) {
	players := []player.Player{{ID: 1, NowCost: 55}}

	falls, rises := Calculate(players, baseline.Table{})

	assert.Empty(t, falls)
	assert.Empty(t, rises)
}

func names(changes []Change) []string {
	out := make([]string, 0, len(changes))
	for _, c := range changes {
		out = append(out, c.Player.Name)
	}
	return out
}
