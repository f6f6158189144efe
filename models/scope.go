package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Platform identifies the chat service a player belongs to
type Platform string

const (
	PlatformDiscord  Platform = "discord"
	PlatformTelegram Platform = "telegram"
)

// Valid reports whether the platform is one the bot serves
func (p Platform) Valid() bool {
	return p == PlatformDiscord || p == PlatformTelegram
}

// Scope is the community a balance lives in: a Discord guild or a Telegram chat.
// Balances, spins and history never cross scopes.
type Scope struct {
	Platform Platform
	ID       int64
}

func (s Scope) String() string {
	return fmt.Sprintf("%s:%d", s.Platform, s.ID)
}

// UserKey identifies one player inside the scope, used for cooldowns and limits
func (s Scope) UserKey(userID int64) string {
	return fmt.Sprintf("%s:%d:%d", s.Platform, s.ID, userID)
}

// ParseScope reads the "platform:id" form produced by String
func ParseScope(s string) (Scope, error) {
	platform, id, ok := strings.Cut(s, ":")
	if !ok {
		return Scope{}, fmt.Errorf("invalid scope %q: expected platform:id", s)
	}
	scopeID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return Scope{}, fmt.Errorf("invalid scope id %q: %w", id, err)
	}
	scope := Scope{Platform: Platform(platform), ID: scopeID}
	if !scope.Platform.Valid() {
		return Scope{}, fmt.Errorf("unknown platform %q", platform)
	}
	return scope, nil
}
