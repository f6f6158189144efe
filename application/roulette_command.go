package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"croulette/infrastructure/observability"
	"croulette/models"
	"croulette/roulette"
	"croulette/service"
	"croulette/settings"

	log "github.com/sirupsen/logrus"
)

// Invocation is one chat message that may carry the game command
type Invocation struct {
	Scope    models.Scope
	UserID   int64
	Username string
	Text     string
}

// Rejection explains why a command produced no spin
type Rejection string

const (
	RejectionNone       Rejection = ""
	RejectionNotEnough  Rejection = "not_enough"
	RejectionCooldown   Rejection = "cooldown"
	RejectionInvalidBet Rejection = "invalid_bet"
)

// Reply is what the command answers in chat
type Reply struct {
	Text      string
	Outcome   roulette.Outcome // Set when a spin happened
	Rejection Rejection        // Set when no spin happened
	Balance   int64            // Player balance after the command
	Result    *models.SpinResult
}

// RouletteCommandDeps collects what the command needs
type RouletteCommandDeps struct {
	UoWFactory      service.UnitOfWorkFactory
	Settings        settings.GameCommandConfig
	Cooldowns       service.CooldownTracker
	Spinner         roulette.Spinner
	Throttle        *ScopeThrottle // nil disables throttling
	StartingBalance int64
	Metrics         *observability.MetricsProvider // may be nil
}

// RouletteCommand runs the chat roulette game
type RouletteCommand struct {
	uowFactory      service.UnitOfWorkFactory
	settings        settings.GameCommandConfig
	cooldowns       service.CooldownTracker
	spinner         roulette.Spinner
	throttle        *ScopeThrottle
	startingBalance int64
	metrics         *observability.MetricsProvider
}

// NewRouletteCommand creates the command handler
func NewRouletteCommand(deps RouletteCommandDeps) *RouletteCommand {
	return &RouletteCommand{
		uowFactory:      deps.UoWFactory,
		settings:        deps.Settings,
		cooldowns:       deps.Cooldowns,
		spinner:         deps.Spinner,
		throttle:        deps.Throttle,
		startingBalance: deps.StartingBalance,
		metrics:         deps.Metrics,
	}
}

// Settings returns the game settings the command runs with
func (c *RouletteCommand) Settings() settings.GameCommandConfig {
	return c.settings
}

// Matches reports whether text starts with the command trigger
func (c *RouletteCommand) Matches(text string) bool {
	fields := strings.Fields(text)
	return len(fields) > 0 && strings.EqualFold(fields[0], c.settings.Command())
}

// Handle runs the command for one message. It returns nil, nil when the
// message is not the command or the scope is throttled.
func (c *RouletteCommand) Handle(ctx context.Context, inv Invocation) (*Reply, error) {
	fields := strings.Fields(inv.Text)
	if len(fields) == 0 || !strings.EqualFold(fields[0], c.settings.Command()) {
		return nil, nil
	}

	platform := string(inv.Scope.Platform)
	c.metrics.RecordCommand(platform)

	if c.throttle != nil && !c.throttle.Allow(inv.Scope) {
		c.metrics.RecordRejection(platform, observability.RejectionThrottled)
		log.WithFields(log.Fields{
			"scope":  inv.Scope.String(),
			"userID": inv.UserID,
		}).Debug("Command throttled")
		return nil, nil
	}

	reply, err := c.play(ctx, inv, fields[1:])
	if err != nil {
		c.metrics.RecordRejection(platform, observability.RejectionInternalError)
		return nil, err
	}

	if reply.Rejection != RejectionNone {
		c.metrics.RecordRejection(platform, string(reply.Rejection))
	} else {
		c.metrics.RecordSpin(platform, reply.Result.Bet, string(reply.Outcome), reply.Result.Cost, reply.Result.Payout)
	}
	return reply, nil
}

func (c *RouletteCommand) play(ctx context.Context, inv Invocation, args []string) (*Reply, error) {
	cfg := c.settings
	cost := cfg.Cost()
	currency := cfg.CurrencyName()

	uow := c.uowFactory.CreateForScope(inv.Scope)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	userService := service.NewUserService(uow.UserRepository(), uow.BalanceHistoryRepository(), uow.EventBus(), c.startingBalance)
	user, err := userService.GetOrCreateUser(ctx, inv.UserID, inv.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create user: %w", err)
	}
	name := displayName(inv, user)

	// Rejections still commit so a first-time player is kept
	reject := func(rejection Rejection, text string) (*Reply, error) {
		if err := uow.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit transaction: %w", err)
		}
		return &Reply{Text: text, Rejection: rejection, Balance: user.Balance}, nil
	}

	if user.Balance < cost {
		return reject(RejectionNotEnough, settings.Format(cfg.MsgNotEnough(), name, cost, currency))
	}

	cooldownKey := inv.Scope.UserKey(inv.UserID)
	remaining, ok := c.cooldowns.Reserve(cooldownKey, cfg.UserCooldown())
	if !ok {
		mins, secs := splitCooldown(remaining)
		return reject(RejectionCooldown, settings.Format(cfg.MsgUserCooldown(), name, mins, secs))
	}

	// From here on the cooldown is held; give it back unless the spin commits
	committed := false
	defer func() {
		if !committed {
			c.cooldowns.Release(cooldownKey)
		}
	}()

	if len(args) == 0 {
		return reject(RejectionInvalidBet, settings.Format(cfg.MsgInvalidBet(), name))
	}
	bet, err := roulette.ParseBet(args[0])
	if err != nil {
		return reject(RejectionInvalidBet, settings.Format(cfg.MsgInvalidBet(), name))
	}

	rouletteService := service.NewRouletteService(uow.UserRepository(), uow.BalanceHistoryRepository(), uow.SpinRepository(), uow.EventBus(), c.spinner)
	result, err := rouletteService.Spin(ctx, inv.UserID, bet, cost)
	if err != nil {
		if errors.Is(err, service.ErrInsufficientBalance) {
			return reject(RejectionNotEnough, settings.Format(cfg.MsgNotEnough(), name, cost, currency))
		}
		return nil, fmt.Errorf("failed to spin: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	committed = true

	outcome := roulette.OutcomeFor(result.Multiplier)
	text := settings.Format(cfg.MsgBase(), name, result.Pocket) + " ... " + resultMessage(cfg, outcome, result)

	log.WithFields(log.Fields{
		"scope":      inv.Scope.String(),
		"userID":     inv.UserID,
		"bet":        result.Bet,
		"pocket":     result.Pocket,
		"multiplier": result.Multiplier,
		"newBalance": result.NewBalance,
	}).Info("Roulette spin settled")

	return &Reply{
		Text:    text,
		Outcome: outcome,
		Balance: result.NewBalance,
		Result:  result,
	}, nil
}

func resultMessage(cfg settings.GameCommandConfig, outcome roulette.Outcome, result *models.SpinResult) string {
	switch outcome {
	case roulette.OutcomeJackpot:
		return settings.Format(cfg.MsgJackpot(), result.Payout, cfg.CurrencyName())
	case roulette.OutcomeTwoToOne:
		return settings.Format(cfg.Msg2to1(), result.Payout, cfg.CurrencyName())
	case roulette.OutcomeOneToOne:
		return settings.Format(cfg.Msg1to1(), result.Payout, cfg.CurrencyName())
	default:
		return settings.Format(cfg.MsgLoss(), result.Cost, cfg.CurrencyName())
	}
}

// splitCooldown renders a remaining cooldown as minutes and two-digit
// seconds, counting partial seconds as whole ones.
func splitCooldown(remaining time.Duration) (string, string) {
	total := int64((remaining + time.Second - 1) / time.Second)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%d", total/60), fmt.Sprintf("%02d", total%60)
}

func displayName(inv Invocation, user *models.User) string {
	if inv.Username != "" {
		return inv.Username
	}
	if user.Username != "" {
		return user.Username
	}
	return fmt.Sprintf("%d", inv.UserID)
}
