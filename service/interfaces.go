package service

import (
	"context"
	"time"

	"croulette/events"
	"croulette/models"
	"croulette/roulette"
)

// UserRepository defines the interface for player data access within one scope
type UserRepository interface {
	// GetByUserID retrieves a user by their platform user ID, nil if unknown
	GetByUserID(ctx context.Context, userID int64) (*models.User, error)

	// Create creates a new user with the initial balance, or returns
	// ErrUserExists if the user is already there
	Create(ctx context.Context, userID int64, username string, initialBalance int64) (*models.User, error)

	// AddBalance adds to a user's balance atomically
	AddBalance(ctx context.Context, userID int64, amount int64) error

	// DeductBalance deducts from a user's balance atomically, failing with
	// ErrInsufficientBalance if the balance would go negative
	DeductBalance(ctx context.Context, userID int64, amount int64) error
}

// BalanceHistoryRepository defines the interface for balance history tracking
type BalanceHistoryRepository interface {
	// Record creates a new balance history entry
	Record(ctx context.Context, history *models.BalanceHistory) error

	// GetByUser returns the most recent balance history for a user
	GetByUser(ctx context.Context, userID int64, limit int) ([]*models.BalanceHistory, error)
}

// SpinRepository defines the interface for roulette spin data access
type SpinRepository interface {
	// Create stores a settled spin
	Create(ctx context.Context, spin *models.Spin) error

	// GetByUser returns the most recent spins of a user
	GetByUser(ctx context.Context, userID int64, limit int) ([]*models.Spin, error)

	// GetStats returns aggregated spin statistics for a user
	GetStats(ctx context.Context, userID int64) (*models.SpinStats, error)
}

// UserService defines the interface for player operations
type UserService interface {
	// GetOrCreateUser retrieves an existing user or creates a new one with the starting balance
	GetOrCreateUser(ctx context.Context, userID int64, username string) (*models.User, error)

	// GetUser retrieves a user, returning ErrUserNotFound if they never played
	GetUser(ctx context.Context, userID int64) (*models.User, error)
}

// RouletteService defines the interface for roulette operations
type RouletteService interface {
	// Spin settles one spin of bet at the given cost for an existing user
	Spin(ctx context.Context, userID int64, bet roulette.Bet, cost int64) (*models.SpinResult, error)

	// GetStats returns a user's roulette statistics
	GetStats(ctx context.Context, userID int64) (*models.SpinStats, error)

	// GetRecentSpins returns a user's latest spins, newest first
	GetRecentSpins(ctx context.Context, userID int64, limit int) ([]*models.Spin, error)
}

// CooldownTracker keeps per-player cooldowns between spins
type CooldownTracker interface {
	// Reserve starts a cooldown of d for key. If one is already running it
	// returns the time left and false. A zero d never blocks.
	Reserve(key string, d time.Duration) (remaining time.Duration, ok bool)

	// Release cancels a cooldown started by Reserve
	Release(key string)

	// Remaining returns the time left on key's cooldown, 0 if none
	Remaining(key string) time.Duration
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and releases pending events
	Commit() error

	// Rollback rolls back the transaction and drops pending events
	Rollback() error

	// Repository getters
	UserRepository() UserRepository
	BalanceHistoryRepository() BalanceHistoryRepository
	SpinRepository() SpinRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// CreateForScope creates a new UnitOfWork bound to one guild or chat
	CreateForScope(scope models.Scope) UnitOfWork
}
