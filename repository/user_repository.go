package repository

import (
	"context"
	"errors"
	"fmt"

	"croulette/database"
	"croulette/models"
	"croulette/service"

	"github.com/jackc/pgx/v5"
)

// UserRepository implements service.UserRepository for one scope
type UserRepository struct {
	q     queryable
	scope models.Scope
}

// NewUserRepository creates a user repository that runs outside a transaction
func NewUserRepository(db *database.DB, scope models.Scope) *UserRepository {
	return &UserRepository{q: db.Pool, scope: scope}
}

// newUserRepository creates a user repository bound to a transaction
func newUserRepository(tx queryable, scope models.Scope) *UserRepository {
	return &UserRepository{q: tx, scope: scope}
}

// GetByUserID retrieves a user, returning nil if they are not known in this scope
func (r *UserRepository) GetByUserID(ctx context.Context, userID int64) (*models.User, error) {
	query := `
		SELECT platform, scope_id, user_id, username, balance, created_at, updated_at
		FROM users
		WHERE platform = $1 AND scope_id = $2 AND user_id = $3
	`

	var user models.User
	err := r.q.QueryRow(ctx, query, r.scope.Platform, r.scope.ID, userID).Scan(
		&user.Platform,
		&user.ScopeID,
		&user.UserID,
		&user.Username,
		&user.Balance,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d in %s: %w", userID, r.scope, err)
	}

	return &user, nil
}

// Create creates a new user with the initial balance. It returns
// service.ErrUserExists if the user is already there.
func (r *UserRepository) Create(ctx context.Context, userID int64, username string, initialBalance int64) (*models.User, error) {
	query := `
		INSERT INTO users (platform, scope_id, user_id, username, balance)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (platform, scope_id, user_id) DO NOTHING
		RETURNING platform, scope_id, user_id, username, balance, created_at, updated_at
	`

	var user models.User
	err := r.q.QueryRow(ctx, query, r.scope.Platform, r.scope.ID, userID, username, initialBalance).Scan(
		&user.Platform,
		&user.ScopeID,
		&user.UserID,
		&user.Username,
		&user.Balance,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user %d in %s: %w", userID, r.scope, service.ErrUserExists)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user %d in %s: %w", userID, r.scope, err)
	}

	return &user, nil
}

// AddBalance adds to a user's balance atomically
func (r *UserRepository) AddBalance(ctx context.Context, userID int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE users
		SET balance = balance + $1, updated_at = NOW()
		WHERE platform = $2 AND scope_id = $3 AND user_id = $4
	`

	result, err := r.q.Exec(ctx, query, amount, r.scope.Platform, r.scope.ID, userID)
	if err != nil {
		return fmt.Errorf("failed to add balance for user %d: %w", userID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d in %s: %w", userID, r.scope, service.ErrUserNotFound)
	}

	return nil
}

// DeductBalance deducts from a user's balance atomically, failing if insufficient funds
func (r *UserRepository) DeductBalance(ctx context.Context, userID int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE users
		SET balance = balance - $1, updated_at = NOW()
		WHERE platform = $2 AND scope_id = $3 AND user_id = $4 AND balance >= $1
	`

	result, err := r.q.Exec(ctx, query, amount, r.scope.Platform, r.scope.ID, userID)
	if err != nil {
		return fmt.Errorf("failed to deduct balance for user %d: %w", userID, err)
	}

	if result.RowsAffected() == 0 {
		user, err := r.GetByUserID(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to check user: %w", err)
		}
		if user == nil {
			return fmt.Errorf("user %d in %s: %w", userID, r.scope, service.ErrUserNotFound)
		}
		return fmt.Errorf("%w: have %d, need %d", service.ErrInsufficientBalance, user.Balance, amount)
	}

	return nil
}
