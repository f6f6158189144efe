package roulette

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWheel(t *testing.T) {
	seen := make(map[Pocket]bool)
	colors := make(map[Color]int)
	for _, p := range Wheel {
		assert.False(t, seen[p], "duplicate pocket %s", p)
		seen[p] = true
		colors[p.Color()]++
	}

	assert.Len(t, seen, 38)
	assert.Equal(t, 2, colors[Green])
	assert.Equal(t, 18, colors[Red])
	assert.Equal(t, 18, colors[Black])

	for n := 1; n <= 36; n++ {
		assert.True(t, seen[Pocket(strconv.Itoa(n))], "missing pocket %d", n)
	}
	assert.True(t, seen["0"])
	assert.True(t, seen[DoubleZero])
}

func TestPocket(t *testing.T) {
	assert.Equal(t, 0, DoubleZero.Number())
	assert.True(t, DoubleZero.IsZero())
	assert.True(t, Pocket("0").IsZero())
	assert.False(t, Pocket("36").IsZero())
	assert.Equal(t, Red, Pocket("1").Color())
	assert.Equal(t, Black, Pocket("2").Color())
	assert.Equal(t, Black, Pocket("10").Color())
	assert.Equal(t, Red, Pocket("19").Color())
	assert.False(t, Pocket("37").Valid())
	assert.False(t, Pocket("07").Valid())
}

func TestParseBet(t *testing.T) {
	tests := []struct {
		input    string
		expected Bet
	}{
		{"0", Bet{Kind: BetStraight, Pocket: "0"}},
		{"00", Bet{Kind: BetStraight, Pocket: "00"}},
		{"17", Bet{Kind: BetStraight, Pocket: "17"}},
		{" 36 ", Bet{Kind: BetStraight, Pocket: "36"}},
		{"b", Bet{Kind: BetBlack}},
		{"R", Bet{Kind: BetRed}},
		{"C2", Bet{Kind: BetColumn2}},
		{"d3", Bet{Kind: BetDozen3}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			bet, err := ParseBet(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, bet)
		})
	}

	for _, input := range []string{"", "37", "-1", "07", "x", "c4", "d0", "black", "1-36"} {
		t.Run("invalid "+input, func(t *testing.T) {
			_, err := ParseBet(input)
			assert.ErrorIs(t, err, ErrInvalidBet)
		})
	}
}

func TestBet_String(t *testing.T) {
	assert.Equal(t, "00", Bet{Kind: BetStraight, Pocket: DoubleZero}.String())
	assert.Equal(t, "c1", Bet{Kind: BetColumn1}.String())
}

func TestBet_Multiplier(t *testing.T) {
	tests := []struct {
		name     string
		bet      string
		pocket   Pocket
		expected int64
	}{
		{"straight hit", "17", "17", 35},
		{"straight miss", "17", "18", 0},
		{"zero does not match double zero", "0", "00", 0},
		{"double zero hit", "00", "00", 35},
		{"black hit", "b", "2", 1},
		{"black miss on red", "b", "1", 0},
		{"black miss on zero", "b", "0", 0},
		{"red hit", "r", "36", 1},
		{"odd hit", "o", "35", 1},
		{"odd miss on double zero", "o", "00", 0},
		{"even hit", "e", "2", 1},
		{"even miss on zero", "e", "0", 0},
		{"even miss on double zero", "e", "00", 0},
		{"high hit", "h", "19", 1},
		{"high miss", "h", "18", 0},
		{"low hit", "l", "1", 1},
		{"low miss on zero", "l", "0", 0},
		{"column one", "c1", "34", 2},
		{"column two", "c2", "35", 2},
		{"column three", "c3", "36", 2},
		{"column three miss on zero", "c3", "0", 0},
		{"first dozen", "d1", "12", 2},
		{"second dozen", "d2", "13", 2},
		{"third dozen", "d3", "25", 2},
		{"third dozen miss", "d3", "24", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bet, err := ParseBet(tt.bet)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, bet.Multiplier(tt.pocket))
		})
	}
}

func TestBet_MultiplierCoverage(t *testing.T) {
	// Each outside bet wins on exactly the pockets it covers.
	covered := map[BetKind]int{
		BetBlack: 18, BetRed: 18, BetOdd: 18, BetEven: 18, BetHigh: 18, BetLow: 18,
		BetColumn1: 12, BetColumn2: 12, BetColumn3: 12,
		BetDozen1: 12, BetDozen2: 12, BetDozen3: 12,
	}

	for kind, want := range covered {
		wins := 0
		for _, p := range Wheel {
			if (Bet{Kind: kind}).Multiplier(p) > 0 {
				wins++
			}
		}
		assert.Equal(t, want, wins, "bet %s", kind)
	}
}

func TestOutcomeFor(t *testing.T) {
	assert.Equal(t, OutcomeLoss, OutcomeFor(0))
	assert.Equal(t, OutcomeOneToOne, OutcomeFor(1))
	assert.Equal(t, OutcomeTwoToOne, OutcomeFor(2))
	assert.Equal(t, OutcomeJackpot, OutcomeFor(35))
}

func TestSpinner(t *testing.T) {
	assert.Equal(t, Pocket("7"), FixedSpinner("7").Spin())

	spinner := NewSeededSpinner(42)
	counts := make(map[Pocket]int)
	for i := 0; i < 38*200; i++ {
		p := spinner.Spin()
		require.True(t, p.Valid())
		counts[p]++
	}
	assert.Len(t, counts, 38, "every pocket should come up")
}
