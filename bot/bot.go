package bot

import (
	"fmt"

	"croulette/application"
	"croulette/bot/features/balance"
	"croulette/bot/features/roulette"
	"croulette/bot/features/stats"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token string
}

// Bot manages the Discord session and the feature modules
type Bot struct {
	config  Config
	session *discordgo.Session

	// Feature modules
	roulette *roulette.Feature
	balance  *balance.Feature
	stats    *stats.Feature
}

// New creates a bot, opens the gateway connection and registers slash commands
func New(config Config, command *application.RouletteCommand, queries *application.PlayerQueries) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	currency := command.Settings().CurrencyName()
	bot := &Bot{
		config:   config,
		session:  dg,
		roulette: roulette.New(command),
		balance:  balance.New(queries, currency),
		stats:    stats.NewFeature(queries, currency),
	}

	// Register handlers
	dg.AddHandler(bot.handleCommands)
	dg.AddHandler(bot.handleMessageCreate)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	log.WithField("user", dg.State.User.Username).Info("Discord bot connected")
	return bot, nil
}

// Close gracefully shuts down the bot
func (b *Bot) Close() error {
	return b.session.Close()
}

// handleCommands routes slash commands to appropriate handlers
func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case commandBalance:
		b.balance.HandleCommand(s, i)
	case commandRouletteStats:
		b.stats.HandleCommand(s, i)
	}
}

// handleMessageCreate feeds guild messages to the roulette chat command
func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author != nil && s.State.User != nil && m.Author.ID == s.State.User.ID {
		return
	}
	b.roulette.HandleMessage(s, m)
}
