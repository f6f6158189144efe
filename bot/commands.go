package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

const (
	commandBalance       = "balance"
	commandRouletteStats = "roulette-stats"
)

// applicationCommands lists the slash commands the bot offers
func applicationCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        commandBalance,
			Description: "Check your current balance",
		},
		{
			Name:        commandRouletteStats,
			Description: "View roulette statistics",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "User to check stats for (defaults to you)",
					Required:    false,
				},
			},
		},
	}
}

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	for _, cmd := range applicationCommands() {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, "", cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	return nil
}
