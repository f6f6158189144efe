package stats

import (
	"context"
	"errors"

	"croulette/application"
	"croulette/bot/common"
	"croulette/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature represents the roulette stats feature
type Feature struct {
	queries  *application.PlayerQueries
	currency string
}

// NewFeature creates a new stats feature instance
func NewFeature(queries *application.PlayerQueries, currency string) *Feature {
	return &Feature{
		queries:  queries,
		currency: currency,
	}
}

// HandleCommand handles /roulette-stats with an optional user option
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	scope, err := common.GuildScope(i.GuildID)
	if err != nil {
		common.RespondWithError(s, i, "Stats are kept per server. Use this command in a server.")
		return
	}

	target := common.InteractionUser(i)
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "user" && opt.Type == discordgo.ApplicationCommandOptionUser {
			target = opt.UserValue(s)
		}
	}

	userID, err := common.ParseUserID(target.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", target.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	summary, err := f.queries.Summary(ctx, scope, userID, common.RecentSpinsShown)
	if errors.Is(err, service.ErrUserNotFound) {
		common.RespondWithError(s, i, "That player has not played roulette yet.")
		return
	}
	if err != nil {
		log.Errorf("Error getting roulette stats for %d: %v", userID, err)
		common.RespondWithError(s, i, "Unable to retrieve stats. Please try again.")
		return
	}

	targetName := common.GetDisplayName(s, i.GuildID, target.ID)
	embed := BuildSpinStatsEmbed(summary, targetName, f.currency)
	if err := common.RespondWithEmbed(s, i, embed, false); err != nil {
		log.Errorf("Error responding to stats command: %v", err)
	}
}
