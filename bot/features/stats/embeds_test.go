package stats

import (
	"testing"

	"croulette/application"
	"croulette/bot/common"
	"croulette/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSpinStatsEmbed_NoSpins(t *testing.T) {
	summary := &application.PlayerSummary{
		User:  &models.User{Balance: 1000},
		Stats: &models.SpinStats{},
	}

	embed := BuildSpinStatsEmbed(summary, "alice", "XP")
	require.Len(t, embed.Fields, 2)
	assert.Equal(t, "**1,000 XP**", embed.Fields[0].Value)
	assert.Equal(t, "No spins yet", embed.Fields[1].Value)
	assert.Equal(t, common.ColorPrimary, embed.Color)
}

func TestBuildSpinStatsEmbed_WithSpins(t *testing.T) {
	summary := &application.PlayerSummary{
		User: &models.User{Balance: 2650},
		Stats: &models.SpinStats{
			TotalSpins:   4,
			TotalWins:    1,
			TotalLosses:  3,
			Jackpots:     1,
			TotalWagered: 200,
			TotalWon:     1750,
			TotalLost:    150,
			BiggestWin:   1750,
		},
		RecentSpins: []*models.Spin{
			{Bet: "17", Pocket: "17", Multiplier: 35, Cost: 50, Payout: 1750},
			{Bet: "b", Pocket: "0", Cost: 50},
		},
	}

	embed := BuildSpinStatsEmbed(summary, "alice", "XP")
	require.Len(t, embed.Fields, 4)
	assert.Contains(t, embed.Title, "alice")
	assert.Contains(t, embed.Fields[1].Value, "Total: **4**")
	assert.Contains(t, embed.Fields[1].Value, "Jackpots: **1**")
	assert.Contains(t, embed.Fields[2].Value, "Biggest win: **1,750**")
	assert.Contains(t, embed.Fields[3].Value, "🟢 0 on **b**: -50 XP")
	assert.Equal(t, common.ColorSuccess, embed.Color)
}
