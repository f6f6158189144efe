package stats

import (
	"fmt"
	"strings"
	"time"

	"croulette/application"
	"croulette/bot/common"

	"github.com/bwmarrin/discordgo"
)

// BuildSpinStatsEmbed creates the roulette statistics embed for a player
func BuildSpinStatsEmbed(summary *application.PlayerSummary, targetName, currency string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("🎡 Roulette stats for %s", targetName),
		Color:     common.ColorPrimary,
		Timestamp: time.Now().Format(time.RFC3339),
		Fields:    []*discordgo.MessageEmbedField{},
	}

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   "💰 Balance",
		Value:  fmt.Sprintf("**%s %s**", common.FormatBalance(summary.User.Balance), currency),
		Inline: true,
	})

	stats := summary.Stats
	if stats == nil || stats.TotalSpins == 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "🎲 Spins",
			Value:  "No spins yet",
			Inline: true,
		})
		return embed
	}

	embed.Fields = append(embed.Fields,
		&discordgo.MessageEmbedField{
			Name: "🎲 Spins",
			Value: fmt.Sprintf("Total: **%d**\nWins: **%d** (%.1f%%)\nJackpots: **%d**",
				stats.TotalSpins, stats.TotalWins, stats.WinPercentage(), stats.Jackpots),
			Inline: true,
		},
		&discordgo.MessageEmbedField{
			Name: "📈 Results",
			Value: fmt.Sprintf("Wagered: **%s**\nNet P/L: **%s**\nBiggest win: **%s**",
				common.FormatBalance(stats.TotalWagered),
				common.FormatBalance(stats.NetProfit()),
				common.FormatBalance(stats.BiggestWin)),
			Inline: true,
		},
	)

	if stats.NetProfit() < 0 {
		embed.Color = common.ColorDanger
	} else if stats.Jackpots > 0 {
		embed.Color = common.ColorSuccess
	}

	if len(summary.RecentSpins) > 0 {
		lines := make([]string, 0, len(summary.RecentSpins))
		for _, spin := range summary.RecentSpins {
			lines = append(lines, common.FormatSpinLine(spin, currency))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "🕑 Recent spins",
			Value: strings.Join(lines, "\n"),
		})
	}

	return embed
}
