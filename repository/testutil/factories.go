package testutil

import (
	"time"

	"croulette/models"
)

// DefaultTestBalance is the balance given to users made by CreateTestUser
const DefaultTestBalance int64 = 1000

// TestScope returns a Discord scope for tests
func TestScope(id int64) models.Scope {
	return models.Scope{Platform: models.PlatformDiscord, ID: id}
}

// CreateTestUser creates a test user with default values
func CreateTestUser(userID int64, username string) *models.User {
	now := time.Now()
	return &models.User{
		UserID:    userID,
		Username:  username,
		Balance:   DefaultTestBalance,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CreateTestUserWithBalance creates a test user with a specific balance
func CreateTestUserWithBalance(userID int64, username string, balance int64) *models.User {
	user := CreateTestUser(userID, username)
	user.Balance = balance
	return user
}

// CreateTestBalanceHistory creates a test balance history entry
func CreateTestBalanceHistory(userID int64, transactionType models.TransactionType) *models.BalanceHistory {
	return &models.BalanceHistory{
		UserID:          userID,
		BalanceBefore:   1000,
		BalanceAfter:    950,
		ChangeAmount:    -50,
		TransactionType: transactionType,
		TransactionMetadata: map[string]any{
			"test": true,
		},
	}
}

// CreateTestSpin creates a test spin of bet landing on pocket
func CreateTestSpin(userID int64, bet, pocket string, multiplier, cost int64) *models.Spin {
	return &models.Spin{
		UserID:     userID,
		Bet:        bet,
		Pocket:     pocket,
		Multiplier: multiplier,
		Cost:       cost,
		Payout:     cost * multiplier,
	}
}
