package balance

import (
	"context"
	"fmt"

	"croulette/application"
	"croulette/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

type Feature struct {
	queries  *application.PlayerQueries
	currency string
}

func New(queries *application.PlayerQueries, currency string) *Feature {
	return &Feature{
		queries:  queries,
		currency: currency,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	if i.GuildID == "" {
		common.RespondWithError(s, i, "Balances are kept per server. Use this command in a server.")
		return
	}

	scope, err := common.GuildScope(i.GuildID)
	if err != nil {
		log.Errorf("Error parsing guild ID %s: %v", i.GuildID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	author := common.InteractionUser(i)
	userID, err := common.ParseUserID(author.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", author.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	displayName := common.MemberDisplayName(i.Member, author)
	user, err := f.queries.Balance(ctx, scope, userID, displayName)
	if err != nil {
		log.Errorf("Error getting user %d: %v", userID, err)
		common.RespondWithError(s, i, "Unable to retrieve balance. Please try again.")
		return
	}

	message := fmt.Sprintf("%s, your current balance: **%s %s**", displayName, common.FormatBalance(user.Balance), f.currency)
	if err := common.RespondWithMessage(s, i, message); err != nil {
		log.Errorf("Error responding to balance command: %v", err)
	}
}
