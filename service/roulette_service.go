package service

import (
	"context"
	"fmt"

	"croulette/events"
	"croulette/models"
	"croulette/roulette"

	log "github.com/sirupsen/logrus"
)

type rouletteService struct {
	userRepo           UserRepository
	balanceHistoryRepo BalanceHistoryRepository
	spinRepo           SpinRepository
	eventPublisher     EventPublisher
	spinner            roulette.Spinner
}

// NewRouletteService creates a new roulette service bound to a unit of work's repositories
func NewRouletteService(
	userRepo UserRepository,
	balanceHistoryRepo BalanceHistoryRepository,
	spinRepo SpinRepository,
	eventPublisher EventPublisher,
	spinner roulette.Spinner,
) RouletteService {
	return &rouletteService{
		userRepo:           userRepo,
		balanceHistoryRepo: balanceHistoryRepo,
		spinRepo:           spinRepo,
		eventPublisher:     eventPublisher,
		spinner:            spinner,
	}
}

func (s *rouletteService) Spin(ctx context.Context, userID int64, bet roulette.Bet, cost int64) (*models.SpinResult, error) {
	if cost < 0 {
		return nil, fmt.Errorf("spin cost must not be negative")
	}

	user, err := s.userRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.Balance < cost {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientBalance, user.Balance, cost)
	}

	pocket := s.spinner.Spin()
	multiplier := bet.Multiplier(pocket)
	payout := cost * multiplier

	// A win credits the payout on top of the stake; a loss takes the stake
	var changeAmount int64
	var transactionType models.TransactionType
	if multiplier > 0 {
		changeAmount = payout
		transactionType = models.TransactionTypeRouletteWin
		if payout > 0 {
			if err := s.userRepo.AddBalance(ctx, userID, payout); err != nil {
				return nil, fmt.Errorf("failed to add winnings: %w", err)
			}
		}
	} else {
		changeAmount = -cost
		transactionType = models.TransactionTypeRouletteLoss
		if cost > 0 {
			if err := s.userRepo.DeductBalance(ctx, userID, cost); err != nil {
				return nil, fmt.Errorf("failed to deduct spin cost: %w", err)
			}
		}
	}
	newBalance := user.Balance + changeAmount

	spin := &models.Spin{
		UserID:     userID,
		Bet:        bet.String(),
		Pocket:     pocket.String(),
		Multiplier: multiplier,
		Cost:       cost,
		Payout:     payout,
	}

	// Free spins move no money and leave no balance history
	if changeAmount != 0 {
		history := &models.BalanceHistory{
			UserID:          userID,
			BalanceBefore:   user.Balance,
			BalanceAfter:    newBalance,
			ChangeAmount:    changeAmount,
			TransactionType: transactionType,
			TransactionMetadata: map[string]any{
				"bet":        bet.String(),
				"pocket":     pocket.String(),
				"multiplier": multiplier,
				"cost":       cost,
			},
		}
		if err := RecordBalanceChange(ctx, s.balanceHistoryRepo, s.eventPublisher, history); err != nil {
			return nil, fmt.Errorf("failed to record balance change: %w", err)
		}
		spin.BalanceHistoryID = &history.ID
	}

	if err := s.spinRepo.Create(ctx, spin); err != nil {
		return nil, fmt.Errorf("failed to create spin record: %w", err)
	}

	s.eventPublisher.Publish(events.SpinCompletedEvent{
		Platform:   spin.Platform,
		ScopeID:    spin.ScopeID,
		UserID:     userID,
		SpinID:     spin.ID,
		Bet:        spin.Bet,
		Pocket:     spin.Pocket,
		Multiplier: multiplier,
		Cost:       cost,
		Payout:     payout,
	})

	log.WithFields(log.Fields{
		"userID":     userID,
		"bet":        spin.Bet,
		"pocket":     spin.Pocket,
		"multiplier": multiplier,
		"newBalance": newBalance,
	}).Debug("Settled roulette spin")

	return &models.SpinResult{
		SpinID:        spin.ID,
		Bet:           spin.Bet,
		Pocket:        spin.Pocket,
		Multiplier:    multiplier,
		Cost:          cost,
		Payout:        payout,
		BalanceBefore: user.Balance,
		NewBalance:    newBalance,
	}, nil
}

func (s *rouletteService) GetStats(ctx context.Context, userID int64) (*models.SpinStats, error) {
	stats, err := s.spinRepo.GetStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get spin stats: %w", err)
	}
	return stats, nil
}

func (s *rouletteService) GetRecentSpins(ctx context.Context, userID int64, limit int) ([]*models.Spin, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}
	spins, err := s.spinRepo.GetByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent spins: %w", err)
	}
	return spins, nil
}
