package settings

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"croulette/roulette"
)

// Upper bounds that keep cost*multiplier and the cooldown duration within int64.
const (
	MaxCost         = math.MaxInt64 / roulette.MultiplierStraight
	MaxUserCooldown = math.MaxInt64 / int64(time.Second)
)

// ErrInvalidSettings is matched by every validation failure.
var ErrInvalidSettings = errors.New("invalid settings")

// LoadError describes why a settings table could not be loaded or accepted.
type LoadError struct {
	Path   string
	Field  string
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	var b strings.Builder
	b.WriteString("settings")
	if e.Path != "" {
		fmt.Fprintf(&b, " %s", e.Path)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, ": %s", e.Field)
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	if e.Err != nil && !errors.Is(e.Err, ErrInvalidSettings) {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// templateArgs is the number of arguments each message template is given.
var templateArgs = []struct {
	field string
	get   func(Values) string
	args  int
}{
	{"msgBase", func(v Values) string { return v.MsgBase }, 2},
	{"msgUserCooldown", func(v Values) string { return v.MsgUserCooldown }, 3},
	{"msgInvalidBet", func(v Values) string { return v.MsgInvalidBet }, 1},
	{"msgNotEnough", func(v Values) string { return v.MsgNotEnough }, 3},
	{"msgLoss", func(v Values) string { return v.MsgLoss }, 2},
	{"msgJackpot", func(v Values) string { return v.MsgJackpot }, 2},
	{"msg2to1", func(v Values) string { return v.Msg2to1 }, 2},
	{"msg1to1", func(v Values) string { return v.Msg1to1 }, 2},
}

// Validate checks a table before it is accepted. The first problem found is
// returned as a *LoadError.
func Validate(v Values) error {
	if strings.TrimSpace(v.Command) == "" {
		return invalid("command", "is required")
	}
	if strings.ContainsAny(v.Command, " \t\r\n") {
		return invalid("command", "must be a single word")
	}
	if v.CurrencyName == "" {
		return invalid("currencyName", "is required")
	}
	if v.Cost < 0 {
		return invalid("cost", fmt.Sprintf("must not be negative, got %d", v.Cost))
	}
	if v.Cost > MaxCost {
		return invalid("cost", fmt.Sprintf("must be at most %d, got %d", MaxCost, v.Cost))
	}
	if v.UserCooldown < 0 {
		return invalid("userCooldown", fmt.Sprintf("must not be negative, got %d", v.UserCooldown))
	}
	if v.UserCooldown > MaxUserCooldown {
		return invalid("userCooldown", fmt.Sprintf("must be at most %d seconds, got %d", MaxUserCooldown, v.UserCooldown))
	}

	for _, t := range templateArgs {
		tmpl := t.get(v)
		if tmpl == "" {
			return invalid(t.field, "is required")
		}
		for _, idx := range Placeholders(tmpl) {
			if idx >= t.args {
				return invalid(t.field, fmt.Sprintf("placeholder {%d} is out of range, only {0} to {%d} are available", idx, t.args-1))
			}
		}
	}

	return nil
}

func invalid(field, reason string) *LoadError {
	return &LoadError{Field: field, Reason: reason, Err: ErrInvalidSettings}
}
