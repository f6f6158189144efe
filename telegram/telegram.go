// Package telegram runs the roulette command in Telegram group chats.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"croulette/application"
	"croulette/bot/common"
	"croulette/models"
	"croulette/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// commandTimeout bounds one chat command end to end
const commandTimeout = 10 * time.Second

// Sender delivers messages to Telegram
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot long-polls Telegram and answers the roulette command
type Bot struct {
	api     *tgbotapi.BotAPI
	sender  Sender
	command *application.RouletteCommand
	queries *application.PlayerQueries
}

// New authenticates with Telegram
func New(token string, command *application.RouletteCommand, queries *application.PlayerQueries) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("error creating telegram bot: %w", err)
	}

	log.WithField("user", api.Self.UserName).Info("Telegram bot authorized")
	return &Bot{
		api:     api,
		sender:  api,
		command: command,
		queries: queries,
	}, nil
}

// Run polls for updates until ctx is done
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			log.Info("Telegram bot stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message != nil {
				b.handleMessage(ctx, update.Message)
			}
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	inv, ok := InvocationFromMessage(msg)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	var (
		text string
		err  error
	)
	switch {
	case msg.IsCommand() && msg.Command() == "balance":
		text, err = b.balanceText(ctx, inv)
	case msg.IsCommand() && msg.Command() == "roulettestats":
		text, err = b.statsText(ctx, inv)
	case b.command.Matches(inv.Text):
		var reply *application.Reply
		reply, err = b.command.Handle(ctx, inv)
		if reply != nil {
			text = reply.Text
		}
	default:
		return
	}

	if err != nil {
		log.WithFields(log.Fields{
			"chat_id": msg.Chat.ID,
			"user_id": inv.UserID,
			"error":   err,
		}).Error("Telegram command failed")
		return
	}
	if text == "" {
		return
	}

	out := tgbotapi.NewMessage(msg.Chat.ID, text)
	out.ReplyToMessageID = msg.MessageID
	if _, err := b.sender.Send(out); err != nil {
		log.WithError(err).WithField("chat_id", msg.Chat.ID).Error("Failed to send telegram reply")
	}
}

func (b *Bot) balanceText(ctx context.Context, inv application.Invocation) (string, error) {
	user, err := b.queries.Balance(ctx, inv.Scope, inv.UserID, inv.Username)
	if err != nil {
		return "", err
	}
	currency := b.command.Settings().CurrencyName()
	return fmt.Sprintf("%s, your current balance: %s %s", inv.Username, common.FormatBalance(user.Balance), currency), nil
}

func (b *Bot) statsText(ctx context.Context, inv application.Invocation) (string, error) {
	summary, err := b.queries.Summary(ctx, inv.Scope, inv.UserID, 0)
	if errors.Is(err, service.ErrUserNotFound) {
		return fmt.Sprintf("%s, you have not played roulette yet.", inv.Username), nil
	}
	if err != nil {
		return "", err
	}
	return FormatStats(inv.Username, summary, b.command.Settings().CurrencyName()), nil
}

// FormatStats renders a player summary as plain text
func FormatStats(name string, summary *application.PlayerSummary, currency string) string {
	stats := summary.Stats
	if stats == nil || stats.TotalSpins == 0 {
		return fmt.Sprintf("%s: %s %s, no spins yet.", name, common.FormatBalance(summary.User.Balance), currency)
	}
	return fmt.Sprintf("%s: %s %s, %d spins, %d wins (%.1f%%), %d jackpots, net %s %s",
		name,
		common.FormatBalance(summary.User.Balance), currency,
		stats.TotalSpins, stats.TotalWins, stats.WinPercentage(), stats.Jackpots,
		common.FormatBalance(stats.NetProfit()), currency)
}

// InvocationFromMessage turns a group message into a command invocation.
// Private chats, channels and bot senders are skipped.
func InvocationFromMessage(msg *tgbotapi.Message) (application.Invocation, bool) {
	if msg == nil || msg.From == nil || msg.Chat == nil || msg.From.IsBot {
		return application.Invocation{}, false
	}
	if !msg.Chat.IsGroup() && !msg.Chat.IsSuperGroup() {
		return application.Invocation{}, false
	}

	return application.Invocation{
		Scope:    models.Scope{Platform: models.PlatformTelegram, ID: msg.Chat.ID},
		UserID:   msg.From.ID,
		Username: displayName(msg.From),
		Text:     msg.Text,
	}, true
}

func displayName(u *tgbotapi.User) string {
	if u.UserName != "" {
		return "@" + u.UserName
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
