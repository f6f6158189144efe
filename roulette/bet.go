package roulette

import (
	"errors"
	"strings"
)

// ErrInvalidBet is returned by ParseBet for anything that is not a pocket
// label or a bet code.
var ErrInvalidBet = errors.New("invalid bet")

// BetKind identifies what a bet covers.
type BetKind string

const (
	BetStraight BetKind = "straight"
	BetBlack    BetKind = "b"
	BetRed      BetKind = "r"
	BetOdd      BetKind = "o"
	BetEven     BetKind = "e"
	BetHigh     BetKind = "h"
	BetLow      BetKind = "l"
	BetColumn1  BetKind = "c1"
	BetColumn2  BetKind = "c2"
	BetColumn3  BetKind = "c3"
	BetDozen1   BetKind = "d1"
	BetDozen2   BetKind = "d2"
	BetDozen3   BetKind = "d3"
)

// BetCodes lists the outside bet codes in the order they are advertised.
var BetCodes = []BetKind{
	BetBlack, BetRed, BetOdd, BetEven, BetHigh, BetLow,
	BetColumn1, BetColumn2, BetColumn3, BetDozen1, BetDozen2, BetDozen3,
}

// Payout multipliers.
const (
	MultiplierLoss     int64 = 0
	MultiplierEvenOdds int64 = 1
	MultiplierTwoToOne int64 = 2
	MultiplierStraight int64 = 35
)

// Bet is a parsed wager. Pocket is set only for straight bets.
type Bet struct {
	Kind   BetKind
	Pocket Pocket
}

// ParseBet reads a bet as typed in chat. Codes are case-insensitive;
// straight bets must name a pocket exactly ("7", not "07").
func ParseBet(s string) (Bet, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Bet{}, ErrInvalidBet
	}

	if p := Pocket(s); p.Valid() {
		return Bet{Kind: BetStraight, Pocket: p}, nil
	}

	for _, code := range BetCodes {
		if s == string(code) {
			return Bet{Kind: code}, nil
		}
	}

	return Bet{}, ErrInvalidBet
}

// String returns the bet in the form it is typed.
func (b Bet) String() string {
	if b.Kind == BetStraight {
		return string(b.Pocket)
	}
	return string(b.Kind)
}

// Multiplier returns the payout multiplier of the bet for the pocket that
// came up, 0 when the bet loses.
func (b Bet) Multiplier(result Pocket) int64 {
	n := result.Number()

	switch b.Kind {
	case BetStraight:
		if b.Pocket == result {
			return MultiplierStraight
		}
	case BetBlack:
		if result.Color() == Black {
			return MultiplierEvenOdds
		}
	case BetRed:
		if result.Color() == Red {
			return MultiplierEvenOdds
		}
	case BetOdd:
		if n%2 == 1 {
			return MultiplierEvenOdds
		}
	case BetEven:
		if n > 0 && n%2 == 0 {
			return MultiplierEvenOdds
		}
	case BetHigh:
		if n >= 19 && n <= 36 {
			return MultiplierEvenOdds
		}
	case BetLow:
		if n >= 1 && n <= 18 {
			return MultiplierEvenOdds
		}
	case BetColumn1:
		if n > 0 && n%3 == 1 {
			return MultiplierTwoToOne
		}
	case BetColumn2:
		if n > 0 && n%3 == 2 {
			return MultiplierTwoToOne
		}
	case BetColumn3:
		if n > 0 && n%3 == 0 {
			return MultiplierTwoToOne
		}
	case BetDozen1:
		if n >= 1 && n <= 12 {
			return MultiplierTwoToOne
		}
	case BetDozen2:
		if n >= 13 && n <= 24 {
			return MultiplierTwoToOne
		}
	case BetDozen3:
		if n >= 25 && n <= 36 {
			return MultiplierTwoToOne
		}
	}

	return MultiplierLoss
}

// Outcome classifies a spin by its multiplier.
type Outcome string

const (
	OutcomeLoss     Outcome = "loss"
	OutcomeOneToOne Outcome = "1to1"
	OutcomeTwoToOne Outcome = "2to1"
	OutcomeJackpot  Outcome = "jackpot"
)

// OutcomeFor maps a multiplier to its outcome.
func OutcomeFor(multiplier int64) Outcome {
	switch {
	case multiplier >= MultiplierStraight:
		return OutcomeJackpot
	case multiplier == MultiplierTwoToOne:
		return OutcomeTwoToOne
	case multiplier > 0:
		return OutcomeOneToOne
	default:
		return OutcomeLoss
	}
}
