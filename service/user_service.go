package service

import (
	"context"
	"errors"
	"fmt"

	"croulette/models"
)

// userService implements the UserService interface
type userService struct {
	userRepo           UserRepository
	balanceHistoryRepo BalanceHistoryRepository
	eventPublisher     EventPublisher
	startingBalance    int64
}

// NewUserService creates a new user service bound to a unit of work's repositories
func NewUserService(userRepo UserRepository, balanceHistoryRepo BalanceHistoryRepository, eventPublisher EventPublisher, startingBalance int64) UserService {
	return &userService{
		userRepo:           userRepo,
		balanceHistoryRepo: balanceHistoryRepo,
		eventPublisher:     eventPublisher,
		startingBalance:    startingBalance,
	}
}

// GetOrCreateUser retrieves an existing user or creates a new one with the starting balance
func (s *userService) GetOrCreateUser(ctx context.Context, userID int64, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if user != nil {
		return user, nil
	}

	user, err = s.userRepo.Create(ctx, userID, username, s.startingBalance)
	if errors.Is(err, ErrUserExists) {
		// Another command for the same new player won the insert
		return s.GetUser(ctx, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	history := &models.BalanceHistory{
		UserID:          userID,
		BalanceBefore:   0,
		BalanceAfter:    s.startingBalance,
		ChangeAmount:    s.startingBalance,
		TransactionType: models.TransactionTypeInitial,
		TransactionMetadata: map[string]any{
			"username": username,
		},
	}

	if err := RecordBalanceChange(ctx, s.balanceHistoryRepo, s.eventPublisher, history); err != nil {
		return nil, fmt.Errorf("failed to record initial balance: %w", err)
	}

	return user, nil
}

// GetUser retrieves a user, returning ErrUserNotFound if they never played
func (s *userService) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
