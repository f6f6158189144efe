package application

import (
	"context"
	"fmt"

	"croulette/models"
	"croulette/service"
)

// PlayerSummary is a player's balance with their roulette record
type PlayerSummary struct {
	User        *models.User
	Stats       *models.SpinStats
	RecentSpins []*models.Spin
}

// PlayerQueries answers read-only questions about players
type PlayerQueries struct {
	uowFactory      service.UnitOfWorkFactory
	startingBalance int64
}

// NewPlayerQueries creates the query handler
func NewPlayerQueries(uowFactory service.UnitOfWorkFactory, startingBalance int64) *PlayerQueries {
	return &PlayerQueries{
		uowFactory:      uowFactory,
		startingBalance: startingBalance,
	}
}

// Balance returns the player, creating them on first contact
func (q *PlayerQueries) Balance(ctx context.Context, scope models.Scope, userID int64, username string) (*models.User, error) {
	uow := q.uowFactory.CreateForScope(scope)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	userService := service.NewUserService(uow.UserRepository(), uow.BalanceHistoryRepository(), uow.EventBus(), q.startingBalance)
	user, err := userService.GetOrCreateUser(ctx, userID, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create user: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return user, nil
}

// Summary returns a known player's balance, stats and latest spins. It
// returns service.ErrUserNotFound for players who never played.
func (q *PlayerQueries) Summary(ctx context.Context, scope models.Scope, userID int64, recent int) (*PlayerSummary, error) {
	uow := q.uowFactory.CreateForScope(scope)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	userService := service.NewUserService(uow.UserRepository(), uow.BalanceHistoryRepository(), uow.EventBus(), q.startingBalance)
	user, err := userService.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	rouletteService := service.NewRouletteService(uow.UserRepository(), uow.BalanceHistoryRepository(), uow.SpinRepository(), uow.EventBus(), nil)
	stats, err := rouletteService.GetStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &PlayerSummary{User: user, Stats: stats}
	if recent > 0 {
		summary.RecentSpins, err = rouletteService.GetRecentSpins(ctx, userID, recent)
		if err != nil {
			return nil, err
		}
	}
	return summary, nil
}
