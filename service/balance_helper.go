package service

import (
	"context"
	"fmt"

	"croulette/events"
	"croulette/models"

	log "github.com/sirupsen/logrus"
)

// RecordBalanceChange records a balance history entry and publishes the
// matching events. It is the single entry point for all balance changes.
func RecordBalanceChange(ctx context.Context, historyRepo BalanceHistoryRepository, publisher EventPublisher, history *models.BalanceHistory) error {
	if err := historyRepo.Record(ctx, history); err != nil {
		return fmt.Errorf("failed to record balance history: %w", err)
	}

	log.WithFields(log.Fields{
		"platform":        history.Platform,
		"scopeID":         history.ScopeID,
		"userID":          history.UserID,
		"transactionType": history.TransactionType,
		"changeAmount":    history.ChangeAmount,
		"historyID":       history.ID,
	}).Debug("Recorded balance change")

	// Events are flushed only once the transaction commits
	publisher.Publish(events.BalanceChangeEvent{
		Platform:        history.Platform,
		ScopeID:         history.ScopeID,
		UserID:          history.UserID,
		OldBalance:      history.BalanceBefore,
		NewBalance:      history.BalanceAfter,
		TransactionType: history.TransactionType,
		ChangeAmount:    history.ChangeAmount,
	})

	if history.TransactionType == models.TransactionTypeInitial {
		username, _ := history.TransactionMetadata["username"].(string)
		publisher.Publish(events.UserCreatedEvent{
			Platform:       history.Platform,
			ScopeID:        history.ScopeID,
			UserID:         history.UserID,
			Username:       username,
			InitialBalance: history.BalanceAfter,
		})
	}

	return nil
}
