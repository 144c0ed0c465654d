package trends

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fplwatch/internal/domain/player"
)

func TestTopMovers_RankedIndependently(t *testing.T) {
	players := []player.Player{
		{ID: 1, Name: "QuietIn", TransfersIn: 100, TransfersOut: 900_000},
		{ID: 2, Name: "Hot", TransfersIn: 800_000, TransfersOut: 50},
		{ID: 3, Name: "Churned", TransfersIn: 600_000, TransfersOut: 500_000},
	}

	topIn, topOut := TopMovers(players, 2)

	require.Len(t, topIn, 2)
	assert.Equal(t, "Hot", topIn[0].Name)
	assert.Equal(t, "Churned", topIn[1].Name)

	require.Len(t, topOut, 2)
	assert.Equal(t, "QuietIn", topOut[0].Name)
	assert.Equal(t, "Churned", topOut[1].Name)
}

func TestTopMovers_PlayerCanAppearInBothLists(t *testing.T) {
	players := []player.Player{
		{ID: 1, Name: "Churned", TransfersIn: 700_000, TransfersOut: 650_000},
		{ID: 2, Name: "Other", TransfersIn: 10, TransfersOut: 10},
	}

	topIn, topOut := TopMovers(players, 1)

	require.Len(t, topIn, 1)
	require.Len(t, topOut, 1)
	assert.Equal(t, "Churned", topIn[0].Name)
	assert.Equal(t, "Churned", topOut[0].Name)
}

func TestTopMovers_FewerPlayersThanN(t *testing.T) {
	players := []player.Player{
		{ID: 1, TransfersIn: 5},
	}

	topIn, topOut := TopMovers(players, 10)

	assert.Len(t, topIn, 1)
	assert.Len(t, topOut, 1)
}

func TestTopMovers_DefaultsN(t *testing.T) {
	players := make([]player.Player, 15)
	for i := range players {
		players[i] = player.Player{ID: i + 1, TransfersIn: i, TransfersOut: i}
	}

	topIn, topOut := TopMovers(players, 0)

	assert.Len(t, topIn, 10)
	assert.Len(t, topOut, 10)
}

func TestTopMovers_DoesNotMutateInput(t *testing.T) {
	players := []player.Player{
		{ID: 1, TransfersIn: 1},
		{ID: 2, TransfersIn: 2},
	}

	TopMovers(players, 2)

	assert.Equal(t, 1, players[0].ID)
	assert.Equal(t, 2, players[1].ID)
}
