package common

import (
	"testing"

	"croulette/models"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBalance(t *testing.T) {
	tests := []struct {
		balance  int64
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-1500, "-1,500"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatBalance(tt.balance))
	}
}

func TestFormatPocket(t *testing.T) {
	assert.Equal(t, "🔴 1", FormatPocket("1"))
	assert.Equal(t, "⚫ 2", FormatPocket("2"))
	assert.Equal(t, "🟢 00", FormatPocket("00"))
}

func TestFormatSpinLine(t *testing.T) {
	win := &models.Spin{Bet: "17", Pocket: "17", Multiplier: 35, Cost: 50, Payout: 1750}
	loss := &models.Spin{Bet: "r", Pocket: "2", Multiplier: 0, Cost: 50}

	assert.Equal(t, "⚫ 17 on **17**: +1,750 XP", FormatSpinLine(win, "XP"))
	assert.Equal(t, "⚫ 2 on **r**: -50 XP", FormatSpinLine(loss, "XP"))
}

func TestGuildScope(t *testing.T) {
	scope, err := GuildScope("123456789012345678")
	require.NoError(t, err)
	assert.Equal(t, models.PlatformDiscord, scope.Platform)
	assert.Equal(t, int64(123456789012345678), scope.ID)

	_, err = GuildScope("")
	assert.Error(t, err)
}

func TestMemberDisplayName(t *testing.T) {
	user := &discordgo.User{Username: "alice_01", GlobalName: "Alice"}

	assert.Equal(t, "Ally", MemberDisplayName(&discordgo.Member{Nick: "Ally"}, user))
	assert.Equal(t, "Alice", MemberDisplayName(&discordgo.Member{}, user))
	assert.Equal(t, "alice_01", MemberDisplayName(nil, &discordgo.User{Username: "alice_01"}))
	assert.Equal(t, "", MemberDisplayName(nil, nil))
}
