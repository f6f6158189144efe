package common

import (
	"fmt"
	"strings"

	"croulette/models"
	"croulette/roulette"
)

// FormatBalance formats a balance amount with thousand separators
func FormatBalance(balance int64) string {
	if balance < 0 {
		return "-" + FormatBalance(-balance)
	}

	str := fmt.Sprintf("%d", balance)

	// Add commas for thousands
	n := len(str)
	if n <= 3 {
		return str
	}

	var result strings.Builder
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}

	return result.String()
}

// FormatPocket renders a pocket with a color marker
func FormatPocket(pocket string) string {
	switch roulette.Pocket(pocket).Color() {
	case roulette.Red:
		return "🔴 " + pocket
	case roulette.Black:
		return "⚫ " + pocket
	default:
		return "🟢 " + pocket
	}
}

// FormatSpinLine renders one spin for a history list
func FormatSpinLine(spin *models.Spin, currency string) string {
	if spin.Won() {
		return fmt.Sprintf("%s on **%s**: +%s %s", FormatPocket(spin.Pocket), spin.Bet, FormatBalance(spin.Payout), currency)
	}
	return fmt.Sprintf("%s on **%s**: -%s %s", FormatPocket(spin.Pocket), spin.Bet, FormatBalance(spin.Cost), currency)
}
