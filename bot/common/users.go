package common

import (
	"fmt"
	"strconv"

	"croulette/models"

	"github.com/bwmarrin/discordgo"
)

// GetDisplayName returns the server-specific display name for a user
// Falls back to username if nickname is not set or if there's an error
func GetDisplayName(s *discordgo.Session, guildID, userID string) string {
	member, err := s.GuildMember(guildID, userID)
	if err == nil && member != nil {
		if member.Nick != "" {
			return member.Nick
		}
		if member.User != nil {
			return member.User.Username
		}
	}

	user, err := s.User(userID)
	if err == nil && user != nil {
		return user.Username
	}

	return "Unknown"
}

// MemberDisplayName picks the nickname, global name or username of a member
func MemberDisplayName(member *discordgo.Member, user *discordgo.User) string {
	if member != nil && member.Nick != "" {
		return member.Nick
	}
	if user == nil {
		return ""
	}
	if user.GlobalName != "" {
		return user.GlobalName
	}
	return user.Username
}

// ParseUserID converts a Discord user ID string to int64
func ParseUserID(userID string) (int64, error) {
	return strconv.ParseInt(userID, 10, 64)
}

// GuildScope returns the scope of a guild given its Discord ID
func GuildScope(guildID string) (models.Scope, error) {
	id, err := strconv.ParseInt(guildID, 10, 64)
	if err != nil {
		return models.Scope{}, fmt.Errorf("invalid guild ID %q: %w", guildID, err)
	}
	return models.Scope{Platform: models.PlatformDiscord, ID: id}, nil
}

// InteractionUser returns the user who triggered an interaction, in a guild or a DM
func InteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}
