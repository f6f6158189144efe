package models

import "time"

// Spin represents one completed roulette spin in the database
type Spin struct {
	ID               int64     `db:"id"`
	Platform         Platform  `db:"platform"`
	ScopeID          int64     `db:"scope_id"`
	UserID           int64     `db:"user_id"`
	Bet              string    `db:"bet"`
	Pocket           string    `db:"pocket"`
	Multiplier       int64     `db:"multiplier"`
	Cost             int64     `db:"cost"`
	Payout           int64     `db:"payout"`
	BalanceHistoryID *int64    `db:"balance_history_id"`
	CreatedAt        time.Time `db:"created_at"`
}

// Won reports whether the spin paid out
func (s *Spin) Won() bool {
	return s.Multiplier > 0
}

// NetChange is the amount the spin added to (or took from) the balance
func (s *Spin) NetChange() int64 {
	if s.Won() {
		return s.Payout
	}
	return -s.Cost
}

// SpinResult represents the outcome of a spin (returned to the caller)
type SpinResult struct {
	SpinID        int64
	Bet           string
	Pocket        string
	Multiplier    int64
	Cost          int64
	Payout        int64
	BalanceBefore int64
	NewBalance    int64
}

// Won reports whether the spin paid out
func (r *SpinResult) Won() bool {
	return r.Multiplier > 0
}

// SpinStats represents aggregated roulette statistics for a user
type SpinStats struct {
	TotalSpins   int
	TotalWins    int
	TotalLosses  int
	Jackpots     int
	TotalWagered int64
	TotalWon     int64
	TotalLost    int64
	BiggestWin   int64
}

// NetProfit is winnings minus losses
func (s *SpinStats) NetProfit() int64 {
	return s.TotalWon - s.TotalLost
}

// WinPercentage is the share of winning spins, 0 when nothing was played
func (s *SpinStats) WinPercentage() float64 {
	if s.TotalSpins == 0 {
		return 0
	}
	return float64(s.TotalWins) / float64(s.TotalSpins) * 100
}
