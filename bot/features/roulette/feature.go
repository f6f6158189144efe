package roulette

import (
	"context"
	"time"

	"croulette/application"
	"croulette/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// commandTimeout bounds one chat command end to end
const commandTimeout = 10 * time.Second

// Feature plays the roulette chat command in guild channels
type Feature struct {
	command *application.RouletteCommand
}

// New creates the roulette feature
func New(command *application.RouletteCommand) *Feature {
	return &Feature{command: command}
}

// HandleMessage runs the command for a guild message and posts the reply
func (f *Feature) HandleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	inv, ok := InvocationFromMessage(m)
	if !ok || !f.command.Matches(inv.Text) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	reply, err := f.command.Handle(ctx, inv)
	if err != nil {
		log.WithFields(log.Fields{
			"guild_id":   m.GuildID,
			"channel_id": m.ChannelID,
			"user_id":    m.Author.ID,
			"error":      err,
		}).Error("Roulette command failed")
		return
	}
	if reply == nil {
		return
	}

	if _, err := s.ChannelMessageSend(m.ChannelID, reply.Text); err != nil {
		log.WithError(err).WithField("channel_id", m.ChannelID).Error("Failed to send roulette reply")
	}
}

// InvocationFromMessage turns a guild message into a command invocation.
// Bot authors, DMs and malformed IDs are skipped.
func InvocationFromMessage(m *discordgo.MessageCreate) (application.Invocation, bool) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return application.Invocation{}, false
	}

	scope, err := common.GuildScope(m.GuildID)
	if err != nil {
		return application.Invocation{}, false
	}
	userID, err := common.ParseUserID(m.Author.ID)
	if err != nil {
		return application.Invocation{}, false
	}

	return application.Invocation{
		Scope:    scope,
		UserID:   userID,
		Username: common.MemberDisplayName(m.Member, m.Author),
		Text:     m.Content,
	}, true
}
