// Package settings holds the roulette command's configuration table: the
// chat trigger, the currency label, the cost and cooldown, and the message
// templates used to build every reply.
//
// A GameCommandConfig is immutable. It is built once at start-up (from
// Defaults or a settings file) and passed by value to whoever needs it.
package settings

import (
	"time"
)

// GameCommandConfig is the read-only configuration of the roulette command.
type GameCommandConfig struct {
	command      string
	currencyName string
	cost         int64
	userCooldown int64

	msgBase         string
	msgUserCooldown string
	msgInvalidBet   string
	msgNotEnough    string
	msgLoss         string
	msgJackpot      string
	msg2to1         string
	msg1to1         string
}

// Values is the plain, serializable form of a GameCommandConfig. Keys match
// the settings.json file format.
type Values struct {
	Command         string `json:"command" yaml:"command"`
	CurrencyName    string `json:"currencyName" yaml:"currencyName"`
	Cost            int64  `json:"cost" yaml:"cost"`
	UserCooldown    int64  `json:"userCooldown" yaml:"userCooldown"`
	MsgBase         string `json:"msgBase" yaml:"msgBase"`
	MsgUserCooldown string `json:"msgUserCooldown" yaml:"msgUserCooldown"`
	MsgInvalidBet   string `json:"msgInvalidBet" yaml:"msgInvalidBet"`
	MsgNotEnough    string `json:"msgNotEnough" yaml:"msgNotEnough"`
	MsgLoss         string `json:"msgLoss" yaml:"msgLoss"`
	MsgJackpot      string `json:"msgJackpot" yaml:"msgJackpot"`
	Msg2to1         string `json:"msg2to1" yaml:"msg2to1"`
	Msg1to1         string `json:"msg1to1" yaml:"msg1to1"`
}

// Default values of the configuration table.
const (
	DefaultCommand         = "!croulette"
	DefaultCurrencyName    = "XP"
	DefaultCost            = 50
	DefaultUserCooldown    = 300
	DefaultMsgBase         = "{0}, result: {1}"
	DefaultMsgUserCooldown = "{0}, the command is still on user cooldown for {1}:{2}!"
	DefaultMsgInvalidBet   = "{0}, specify a valid bet: 0, 00, 1-36, b, r, o, e, h, l, c1, c2, c3, d1, d2, or d3"
	DefaultMsgNotEnough    = "{0}, you don't have enough {2} to play! ({1} {2} required)"
	DefaultMsgLoss         = "You lost {0} {1}. Better luck next time? riPepperonis"
	DefaultMsgJackpot      = "JACKPOT! Congratulations. You might be a genius... or just really lucky. {0} {1} FlawlessVictory"
	DefaultMsg2to1         = "You took a risk and it paid off! ... I think. {0} {1} SeemsGood"
	DefaultMsg1to1         = "Alright, that was probably a little too easy. {0} {1} TwitchLit"
)

// DefaultValues returns the default table in its plain form.
func DefaultValues() Values {
	return Values{
		Command:         DefaultCommand,
		CurrencyName:    DefaultCurrencyName,
		Cost:            DefaultCost,
		UserCooldown:    DefaultUserCooldown,
		MsgBase:         DefaultMsgBase,
		MsgUserCooldown: DefaultMsgUserCooldown,
		MsgInvalidBet:   DefaultMsgInvalidBet,
		MsgNotEnough:    DefaultMsgNotEnough,
		MsgLoss:         DefaultMsgLoss,
		MsgJackpot:      DefaultMsgJackpot,
		Msg2to1:         DefaultMsg2to1,
		Msg1to1:         DefaultMsg1to1,
	}
}

// Defaults returns the built-in configuration table.
func Defaults() GameCommandConfig {
	return fromValues(DefaultValues())
}

// New validates v and builds a GameCommandConfig from it.
func New(v Values) (GameCommandConfig, error) {
	if err := Validate(v); err != nil {
		return GameCommandConfig{}, err
	}
	return fromValues(v), nil
}

func fromValues(v Values) GameCommandConfig {
	return GameCommandConfig{
		command:         v.Command,
		currencyName:    v.CurrencyName,
		cost:            v.Cost,
		userCooldown:    v.UserCooldown,
		msgBase:         v.MsgBase,
		msgUserCooldown: v.MsgUserCooldown,
		msgInvalidBet:   v.MsgInvalidBet,
		msgNotEnough:    v.MsgNotEnough,
		msgLoss:         v.MsgLoss,
		msgJackpot:      v.MsgJackpot,
		msg2to1:         v.Msg2to1,
		msg1to1:         v.Msg1to1,
	}
}

// Values returns a copy of the table in its plain form.
func (c GameCommandConfig) Values() Values {
	return Values{
		Command:         c.command,
		CurrencyName:    c.currencyName,
		Cost:            c.cost,
		UserCooldown:    c.userCooldown,
		MsgBase:         c.msgBase,
		MsgUserCooldown: c.msgUserCooldown,
		MsgInvalidBet:   c.msgInvalidBet,
		MsgNotEnough:    c.msgNotEnough,
		MsgLoss:         c.msgLoss,
		MsgJackpot:      c.msgJackpot,
		Msg2to1:         c.msg2to1,
		Msg1to1:         c.msg1to1,
	}
}

// Equal reports whether both tables hold the same values.
func (c GameCommandConfig) Equal(other GameCommandConfig) bool {
	return c == other
}

// Command is the chat trigger, e.g. "!croulette".
func (c GameCommandConfig) Command() string { return c.command }

// CurrencyName is the label of the points currency shown in replies.
func (c GameCommandConfig) CurrencyName() string { return c.currencyName }

// Cost is the price of one spin, in currency units.
func (c GameCommandConfig) Cost() int64 { return c.cost }

// UserCooldown is the time a user must wait between spins.
func (c GameCommandConfig) UserCooldown() time.Duration {
	return time.Duration(c.userCooldown) * time.Second
}

// UserCooldownSeconds is UserCooldown in whole seconds.
func (c GameCommandConfig) UserCooldownSeconds() int64 { return c.userCooldown }

// MsgBase receives the user name and the pocket that came up.
func (c GameCommandConfig) MsgBase() string { return c.msgBase }

// MsgUserCooldown receives the user name, minutes and two-digit seconds left.
func (c GameCommandConfig) MsgUserCooldown() string { return c.msgUserCooldown }

// MsgInvalidBet receives the user name.
func (c GameCommandConfig) MsgInvalidBet() string { return c.msgInvalidBet }

// MsgNotEnough receives the user name, the cost and the currency name.
func (c GameCommandConfig) MsgNotEnough() string { return c.msgNotEnough }

// MsgLoss receives the amount lost and the currency name.
func (c GameCommandConfig) MsgLoss() string { return c.msgLoss }

// MsgJackpot receives the payout and the currency name of a 35:1 win.
func (c GameCommandConfig) MsgJackpot() string { return c.msgJackpot }

// Msg2to1 receives the payout and the currency name of a 2:1 win.
func (c GameCommandConfig) Msg2to1() string { return c.msg2to1 }

// Msg1to1 receives the payout and the currency name of a 1:1 win.
func (c GameCommandConfig) Msg1to1() string { return c.msg1to1 }
