package repository

import (
	"context"
	"fmt"

	"croulette/database"
	"croulette/models"
)

// SpinRepository implements service.SpinRepository for one scope
type SpinRepository struct {
	q     queryable
	scope models.Scope
}

// NewSpinRepository creates a spin repository that runs outside a transaction
func NewSpinRepository(db *database.DB, scope models.Scope) *SpinRepository {
	return &SpinRepository{q: db.Pool, scope: scope}
}

func newSpinRepository(tx queryable, scope models.Scope) *SpinRepository {
	return &SpinRepository{q: tx, scope: scope}
}

// Create stores a settled spin and fills in its ID, scope and timestamp
func (r *SpinRepository) Create(ctx context.Context, spin *models.Spin) error {
	query := `
		INSERT INTO roulette_spins (platform, scope_id, user_id, bet, pocket, multiplier, cost, payout, balance_history_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	err := r.q.QueryRow(ctx, query,
		r.scope.Platform,
		r.scope.ID,
		spin.UserID,
		spin.Bet,
		spin.Pocket,
		spin.Multiplier,
		spin.Cost,
		spin.Payout,
		spin.BalanceHistoryID,
	).Scan(&spin.ID, &spin.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create spin: %w", err)
	}

	spin.Platform = r.scope.Platform
	spin.ScopeID = r.scope.ID

	return nil
}

// GetByUser returns the most recent spins of a user
func (r *SpinRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*models.Spin, error) {
	query := `
		SELECT id, platform, scope_id, user_id, bet, pocket, multiplier, cost, payout, balance_history_id, created_at
		FROM roulette_spins
		WHERE platform = $1 AND scope_id = $2 AND user_id = $3
		ORDER BY created_at DESC, id DESC
		LIMIT $4`

	rows, err := r.q.Query(ctx, query, r.scope.Platform, r.scope.ID, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get spins for user %d: %w", userID, err)
	}
	defer rows.Close()

	var spins []*models.Spin
	for rows.Next() {
		var spin models.Spin
		err := rows.Scan(
			&spin.ID,
			&spin.Platform,
			&spin.ScopeID,
			&spin.UserID,
			&spin.Bet,
			&spin.Pocket,
			&spin.Multiplier,
			&spin.Cost,
			&spin.Payout,
			&spin.BalanceHistoryID,
			&spin.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan spin: %w", err)
		}
		spins = append(spins, &spin)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate spins: %w", err)
	}

	return spins, nil
}

// GetStats returns aggregated spin statistics for a user
func (r *SpinRepository) GetStats(ctx context.Context, userID int64) (*models.SpinStats, error) {
	query := `
		SELECT
			COUNT(*) AS total_spins,
			COUNT(CASE WHEN multiplier > 0 THEN 1 END) AS total_wins,
			COUNT(CASE WHEN multiplier = 0 THEN 1 END) AS total_losses,
			COUNT(CASE WHEN multiplier = 35 THEN 1 END) AS jackpots,
			COALESCE(SUM(cost), 0)::BIGINT AS total_wagered,
			COALESCE(SUM(payout), 0)::BIGINT AS total_won,
			COALESCE(SUM(CASE WHEN multiplier = 0 THEN cost ELSE 0 END), 0)::BIGINT AS total_lost,
			COALESCE(MAX(payout), 0)::BIGINT AS biggest_win
		FROM roulette_spins
		WHERE platform = $1 AND scope_id = $2 AND user_id = $3`

	var stats models.SpinStats
	err := r.q.QueryRow(ctx, query, r.scope.Platform, r.scope.ID, userID).Scan(
		&stats.TotalSpins,
		&stats.TotalWins,
		&stats.TotalLosses,
		&stats.Jackpots,
		&stats.TotalWagered,
		&stats.TotalWon,
		&stats.TotalLost,
		&stats.BiggestWin,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get spin stats: %w", err)
	}

	return &stats, nil
}
