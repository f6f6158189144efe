package roulette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	tests := []struct {
		bet        string
		pockets    int
		multiplier int64
	}{
		{"00", 1, 35},
		{"17", 1, 35},
		{"r", 18, 1},
		{"b", 18, 1},
		{"o", 18, 1},
		{"e", 18, 1},
		{"h", 18, 1},
		{"l", 18, 1},
		{"c1", 12, 2},
		{"c3", 12, 2},
		{"d2", 12, 2},
	}

	for _, tt := range tests {
		t.Run(tt.bet, func(t *testing.T) {
			bet, err := ParseBet(tt.bet)
			require.NoError(t, err)

			odds := Analyze(bet)
			assert.Equal(t, tt.pockets, odds.WinningPockets)
			assert.Equal(t, tt.multiplier, odds.Multiplier)
			assert.InDelta(t, float64(tt.pockets)/38, odds.WinProbability, 1e-12)
			// Every bet on a double zero wheel carries the same 2/38 house edge.
			assert.InDelta(t, -2.0/38, odds.ExpectedReturn, 1e-12)
		})
	}
}

func TestAllBets(t *testing.T) {
	bets := AllBets()
	require.Len(t, bets, 50)
	assert.Equal(t, "0", bets[0].String())
	assert.Equal(t, "00", bets[19].String())
	assert.Equal(t, "b", bets[38].String())
	assert.Equal(t, "d3", bets[49].String())
}

func TestSimulate(t *testing.T) {
	red, err := ParseBet("r")
	require.NoError(t, err)

	t.Run("fixed winning pocket", func(t *testing.T) {
		sim := Simulate(FixedSpinner("1"), red, 100)
		assert.Equal(t, 100, sim.Wins)
		assert.Equal(t, 1.0, sim.WinRate)
		assert.InDelta(t, 1-18.0/38, sim.Deviation, 1e-12)
		assert.Greater(t, sim.ChiSquared, 0.0)
	})

	t.Run("fixed losing pocket", func(t *testing.T) {
		sim := Simulate(FixedSpinner("00"), red, 50)
		assert.Zero(t, sim.Wins)
		assert.Zero(t, sim.WinRate)
	})

	t.Run("seeded wheel is close to exact odds", func(t *testing.T) {
		sim := Simulate(NewSeededSpinner(42), red, 200000)
		assert.InDelta(t, 18.0/38, sim.WinRate, 0.01)
	})

	t.Run("no trials", func(t *testing.T) {
		sim := Simulate(FixedSpinner("1"), red, 0)
		assert.Equal(t, Simulation{}, sim)
	})
}
