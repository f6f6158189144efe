package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"croulette/database"
	"croulette/models"
)

// BalanceHistoryRepository implements service.BalanceHistoryRepository for one scope
type BalanceHistoryRepository struct {
	q     queryable
	scope models.Scope
}

// NewBalanceHistoryRepository creates a balance history repository that runs outside a transaction
func NewBalanceHistoryRepository(db *database.DB, scope models.Scope) *BalanceHistoryRepository {
	return &BalanceHistoryRepository{q: db.Pool, scope: scope}
}

func newBalanceHistoryRepository(tx queryable, scope models.Scope) *BalanceHistoryRepository {
	return &BalanceHistoryRepository{q: tx, scope: scope}
}

// Record creates a new balance history entry. The entry's scope is taken
// from the repository.
func (r *BalanceHistoryRepository) Record(ctx context.Context, history *models.BalanceHistory) error {
	metadataJSON, err := json.Marshal(history.TransactionMetadata)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction metadata: %w", err)
	}

	query := `
		INSERT INTO balance_history
		(platform, scope_id, user_id, balance_before, balance_after, change_amount, transaction_type, transaction_metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err = r.q.QueryRow(ctx, query,
		r.scope.Platform,
		r.scope.ID,
		history.UserID,
		history.BalanceBefore,
		history.BalanceAfter,
		history.ChangeAmount,
		history.TransactionType,
		metadataJSON,
	).Scan(&history.ID, &history.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record balance history for user %d: %w", history.UserID, err)
	}

	history.Platform = r.scope.Platform
	history.ScopeID = r.scope.ID

	return nil
}

// GetByUser returns the most recent balance history for a user
func (r *BalanceHistoryRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*models.BalanceHistory, error) {
	query := `
		SELECT id, platform, scope_id, user_id, balance_before, balance_after, change_amount,
		       transaction_type, transaction_metadata, created_at
		FROM balance_history
		WHERE platform = $1 AND scope_id = $2 AND user_id = $3
		ORDER BY created_at DESC, id DESC
		LIMIT $4
	`

	rows, err := r.q.Query(ctx, query, r.scope.Platform, r.scope.ID, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance history for user %d: %w", userID, err)
	}
	defer rows.Close()

	var histories []*models.BalanceHistory
	for rows.Next() {
		var history models.BalanceHistory
		var metadataJSON []byte

		err := rows.Scan(
			&history.ID,
			&history.Platform,
			&history.ScopeID,
			&history.UserID,
			&history.BalanceBefore,
			&history.BalanceAfter,
			&history.ChangeAmount,
			&history.TransactionType,
			&metadataJSON,
			&history.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan balance history: %w", err)
		}

		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &history.TransactionMetadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal transaction metadata: %w", err)
			}
		}

		histories = append(histories, &history)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate balance history: %w", err)
	}

	return histories, nil
}
