// Package roulette models an American double-zero roulette wheel and the
// bets accepted by the chat command.
package roulette

import (
	"strconv"
)

// Pocket is one slot on the wheel, labelled "0", "00" or "1" through "36".
type Pocket string

// Color of a pocket.
type Color string

const (
	Green Color = "green"
	Red   Color = "red"
	Black Color = "black"
)

// DoubleZero is the American wheel's extra zero pocket.
const DoubleZero Pocket = "00"

// Wheel lists the 38 pockets in clockwise order starting at 0.
var Wheel = [38]Pocket{
	"0", "28", "9", "26", "30", "11", "7", "20", "32", "17", "5", "22", "34", "15", "3", "24", "36", "13", "1",
	"00", "27", "10", "25", "29", "12", "8", "19", "31", "18", "6", "21", "33", "16", "4", "23", "35", "14", "2",
}

var redNumbers = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true, 14: true, 16: true, 18: true,
	19: true, 21: true, 23: true, 25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

var pocketIndex = func() map[Pocket]int {
	idx := make(map[Pocket]int, len(Wheel))
	for i, p := range Wheel {
		idx[p] = i
	}
	return idx
}()

// Valid reports whether p is one of the wheel's pockets.
func (p Pocket) Valid() bool {
	_, ok := pocketIndex[p]
	return ok
}

// Number is the numeric value of the pocket. Both zeros are 0.
func (p Pocket) Number() int {
	n, err := strconv.Atoi(string(p))
	if err != nil {
		return 0
	}
	return n
}

// IsZero reports whether p is "0" or "00".
func (p Pocket) IsZero() bool {
	return p.Number() == 0
}

// Color returns the pocket's color.
func (p Pocket) Color() Color {
	n := p.Number()
	switch {
	case n == 0:
		return Green
	case redNumbers[n]:
		return Red
	default:
		return Black
	}
}

func (p Pocket) String() string {
	return string(p)
}
