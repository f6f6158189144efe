package roulette

import "math"

// Odds is the exact analysis of one bet over the full wheel.
type Odds struct {
	Bet            Bet
	WinningPockets int
	WinProbability float64
	Multiplier     int64
	// ExpectedReturn is the mean balance change per unit of cost: a winning
	// spin credits cost*multiplier, a losing spin debits cost.
	ExpectedReturn float64
}

// Analyze counts the pockets the bet wins on.
func Analyze(bet Bet) Odds {
	odds := Odds{Bet: bet}
	for _, p := range Wheel {
		if m := bet.Multiplier(p); m > 0 {
			odds.WinningPockets++
			odds.Multiplier = m
		}
	}

	n := float64(len(Wheel))
	odds.WinProbability = float64(odds.WinningPockets) / n
	odds.ExpectedReturn = odds.WinProbability*float64(odds.Multiplier) - (1 - odds.WinProbability)
	return odds
}

// AllBets returns every accepted bet: the straight bets in wheel order, then
// the outside bets.
func AllBets() []Bet {
	bets := make([]Bet, 0, len(Wheel)+len(BetCodes))
	for _, p := range Wheel {
		bets = append(bets, Bet{Kind: BetStraight, Pocket: p})
	}
	for _, code := range BetCodes {
		bets = append(bets, Bet{Kind: code})
	}
	return bets
}

// Simulation is the result of spinning a wheel many times for one bet.
type Simulation struct {
	Trials     int
	Wins       int
	WinRate    float64
	Deviation  float64 // WinRate minus the exact probability
	ChiSquared float64 // Goodness of fit of wins/losses against the exact odds
}

// Simulate spins the wheel trials times and compares the win rate of bet
// with its exact probability.
func Simulate(spinner Spinner, bet Bet, trials int) Simulation {
	sim := Simulation{Trials: trials}
	if trials <= 0 {
		return sim
	}

	for i := 0; i < trials; i++ {
		if bet.Multiplier(spinner.Spin()) > 0 {
			sim.Wins++
		}
	}

	p := Analyze(bet).WinProbability
	sim.WinRate = float64(sim.Wins) / float64(trials)
	sim.Deviation = sim.WinRate - p

	expectedWins := float64(trials) * p
	expectedLosses := float64(trials) * (1 - p)
	if expectedWins > 0 && expectedLosses > 0 {
		sim.ChiSquared = math.Pow(float64(sim.Wins)-expectedWins, 2)/expectedWins +
			math.Pow(float64(trials-sim.Wins)-expectedLosses, 2)/expectedLosses
	}
	return sim
}
