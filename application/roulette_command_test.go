package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"croulette/models"
	"croulette/roulette"
	"croulette/service"
	"croulette/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testScope = models.Scope{Platform: models.PlatformDiscord, ID: 42}

const testUserID int64 = 7

type commandHarness struct {
	factory   *service.MockUnitOfWorkFactory
	uow       *service.MockUnitOfWork
	users     *service.MockUserRepository
	history   *service.MockBalanceHistoryRepository
	spins     *service.MockSpinRepository
	publisher *service.MockEventPublisher
	cooldowns *service.CooldownCache
}

func newCommandHarness(t *testing.T) *commandHarness {
	t.Helper()

	h := &commandHarness{
		factory:   new(service.MockUnitOfWorkFactory),
		uow:       new(service.MockUnitOfWork),
		users:     new(service.MockUserRepository),
		history:   new(service.MockBalanceHistoryRepository),
		spins:     new(service.MockSpinRepository),
		publisher: new(service.MockEventPublisher),
		cooldowns: service.NewCooldownCache(time.Minute),
	}
	h.uow.SetRepositories(h.users, h.history, h.spins, h.publisher)
	h.uow.On("Begin", mock.Anything).Return(nil)
	h.uow.On("Rollback").Return(nil)
	h.factory.On("CreateForScope", testScope).Return(h.uow)
	h.publisher.On("Publish", mock.Anything).Return()
	h.history.On("Record", mock.Anything, mock.AnythingOfType("*models.BalanceHistory")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.BalanceHistory).ID = 11
		}).
		Return(nil).Maybe()

	return h
}

func (h *commandHarness) command(cfg settings.GameCommandConfig, pocket roulette.Pocket) *RouletteCommand {
	return NewRouletteCommand(RouletteCommandDeps{
		UoWFactory:      h.factory,
		Settings:        cfg,
		Cooldowns:       h.cooldowns,
		Spinner:         roulette.FixedSpinner(pocket),
		StartingBalance: 1000,
	})
}

func (h *commandHarness) existingUser(balance int64) {
	h.users.On("GetByUserID", mock.Anything, testUserID).Return(&models.User{
		Platform: testScope.Platform,
		ScopeID:  testScope.ID,
		UserID:   testUserID,
		Username: "alice",
		Balance:  balance,
	}, nil)
}

func (h *commandHarness) expectSpinStored() {
	h.spins.On("Create", mock.Anything, mock.AnythingOfType("*models.Spin")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Spin).ID = 99
		}).
		Return(nil)
}

func invocation(text string) Invocation {
	return Invocation{Scope: testScope, UserID: testUserID, Username: "alice", Text: text}
}

func TestRouletteCommand_IgnoresOtherMessages(t *testing.T) {
	h := newCommandHarness(t)
	cmd := h.command(settings.Defaults(), "17")

	for _, text := range []string{"", "hello there", "!roulette 17", "croulette 17"} {
		reply, err := cmd.Handle(context.Background(), invocation(text))
		require.NoError(t, err)
		assert.Nil(t, reply, text)
	}

	h.factory.AssertNotCalled(t, "CreateForScope", mock.Anything)
	assert.False(t, cmd.Matches("hello"))
	assert.True(t, cmd.Matches("  !CROULETTE  r"))
}

func TestRouletteCommand_Jackpot(t *testing.T) {
	h := newCommandHarness(t)
	h.existingUser(1000)
	h.users.On("AddBalance", mock.Anything, testUserID, int64(1750)).Return(nil)
	h.expectSpinStored()
	h.uow.On("Commit").Return(nil)

	cmd := h.command(settings.Defaults(), "17")
	reply, err := cmd.Handle(context.Background(), invocation("!CRoulette 17"))
	require.NoError(t, err)
	require.NotNil(t, reply)

	assert.Equal(t, "alice, result: 17 ... JACKPOT! Congratulations. You might be a genius... or just really lucky. 1750 XP FlawlessVictory", reply.Text)
	assert.Equal(t, roulette.OutcomeJackpot, reply.Outcome)
	assert.Equal(t, RejectionNone, reply.Rejection)
	assert.Equal(t, int64(2750), reply.Balance)
	assert.Equal(t, int64(99), reply.Result.SpinID)
	assert.InDelta(t, float64(5*time.Minute), float64(h.cooldowns.Remaining(testScope.UserKey(testUserID))), float64(time.Second))

	h.uow.AssertCalled(t, "Commit")
	h.users.AssertExpectations(t)
	h.spins.AssertExpectations(t)
}

func TestRouletteCommand_Wins(t *testing.T) {
	tests := []struct {
		name     string
		bet      string
		pocket   roulette.Pocket
		payout   int64
		expected string
		outcome  roulette.Outcome
	}{
		{"two to one", "d1", "5", 100, "alice, result: 5 ... You took a risk and it paid off! ... I think. 100 XP SeemsGood", roulette.OutcomeTwoToOne},
		{"one to one", "r", "5", 50, "alice, result: 5 ... Alright, that was probably a little too easy. 50 XP TwitchLit", roulette.OutcomeOneToOne},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newCommandHarness(t)
			h.existingUser(1000)
			h.users.On("AddBalance", mock.Anything, testUserID, tt.payout).Return(nil)
			h.expectSpinStored()
			h.uow.On("Commit").Return(nil)

			reply, err := h.command(settings.Defaults(), tt.pocket).Handle(context.Background(), invocation("!croulette "+tt.bet))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, reply.Text)
			assert.Equal(t, tt.outcome, reply.Outcome)
			assert.Equal(t, 1000+tt.payout, reply.Balance)
		})
	}
}

func TestRouletteCommand_Loss(t *testing.T) {
	h := newCommandHarness(t)
	h.existingUser(1000)
	h.users.On("DeductBalance", mock.Anything, testUserID, int64(50)).Return(nil)
	h.expectSpinStored()
	h.uow.On("Commit").Return(nil)

	reply, err := h.command(settings.Defaults(), "00").Handle(context.Background(), invocation("!croulette 0"))
	require.NoError(t, err)

	assert.Equal(t, "alice, result: 00 ... You lost 50 XP. Better luck next time? riPepperonis", reply.Text)
	assert.Equal(t, roulette.OutcomeLoss, reply.Outcome)
	assert.Equal(t, int64(950), reply.Balance)
	assert.Greater(t, h.cooldowns.Remaining(testScope.UserKey(testUserID)), time.Duration(0))
}

func TestRouletteCommand_NotEnough(t *testing.T) {
	h := newCommandHarness(t)
	h.existingUser(10)
	h.uow.On("Commit").Return(nil)

	reply, err := h.command(settings.Defaults(), "17").Handle(context.Background(), invocation("!croulette 17"))
	require.NoError(t, err)

	assert.Equal(t, "alice, you don't have enough XP to play! (50 XP required)", reply.Text)
	assert.Equal(t, RejectionNotEnough, reply.Rejection)
	assert.Equal(t, int64(10), reply.Balance)
	assert.Equal(t, time.Duration(0), h.cooldowns.Remaining(testScope.UserKey(testUserID)))
	h.users.AssertNotCalled(t, "DeductBalance", mock.Anything, mock.Anything, mock.Anything)
}

func TestRouletteCommand_Cooldown(t *testing.T) {
	h := newCommandHarness(t)
	h.existingUser(1000)
	h.uow.On("Commit").Return(nil)

	_, ok := h.cooldowns.Reserve(testScope.UserKey(testUserID), 90*time.Second)
	require.True(t, ok)

	reply, err := h.command(settings.Defaults(), "17").Handle(context.Background(), invocation("!croulette 17"))
	require.NoError(t, err)

	assert.Equal(t, "alice, the command is still on user cooldown for 1:30!", reply.Text)
	assert.Equal(t, RejectionCooldown, reply.Rejection)

	// A rejected command does not restart the running cooldown
	assert.LessOrEqual(t, h.cooldowns.Remaining(testScope.UserKey(testUserID)), 90*time.Second)
	h.spins.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRouletteCommand_CooldownComesBeforeBetValidation(t *testing.T) {
	h := newCommandHarness(t)
	h.existingUser(1000)
	h.uow.On("Commit").Return(nil)

	_, ok := h.cooldowns.Reserve(testScope.UserKey(testUserID), 10*time.Second)
	require.True(t, ok)

	reply, err := h.command(settings.Defaults(), "17").Handle(context.Background(), invocation("!croulette nonsense"))
	require.NoError(t, err)
	assert.Equal(t, RejectionCooldown, reply.Rejection)
	assert.Equal(t, "alice, the command is still on user cooldown for 0:10!", reply.Text)
}

func TestRouletteCommand_InvalidBet(t *testing.T) {
	for _, text := range []string{"!croulette", "!croulette x", "!croulette 37", "!croulette 07"} {
		t.Run(text, func(t *testing.T) {
			h := newCommandHarness(t)
			h.existingUser(1000)
			h.uow.On("Commit").Return(nil)

			reply, err := h.command(settings.Defaults(), "17").Handle(context.Background(), invocation(text))
			require.NoError(t, err)

			assert.Equal(t, "alice, specify a valid bet: 0, 00, 1-36, b, r, o, e, h, l, c1, c2, c3, d1, d2, or d3", reply.Text)
			assert.Equal(t, RejectionInvalidBet, reply.Rejection)
			assert.Equal(t, time.Duration(0), h.cooldowns.Remaining(testScope.UserKey(testUserID)), "cooldown is released")
		})
	}
}

func TestRouletteCommand_NewPlayer(t *testing.T) {
	h := newCommandHarness(t)
	h.users.On("GetByUserID", mock.Anything, testUserID).Return(nil, nil).Once()
	h.users.On("Create", mock.Anything, testUserID, "alice", int64(1000)).Return(&models.User{
		Platform: testScope.Platform,
		ScopeID:  testScope.ID,
		UserID:   testUserID,
		Username: "alice",
		Balance:  1000,
	}, nil)
	h.uow.On("Commit").Return(nil)

	reply, err := h.command(settings.Defaults(), "17").Handle(context.Background(), invocation("!croulette"))
	require.NoError(t, err)

	assert.Equal(t, RejectionInvalidBet, reply.Rejection)
	assert.Equal(t, int64(1000), reply.Balance)
	h.history.AssertCalled(t, "Record", mock.Anything, mock.MatchedBy(func(hist *models.BalanceHistory) bool {
		return hist.TransactionType == models.TransactionTypeInitial && hist.BalanceAfter == 1000
	}))
	h.uow.AssertCalled(t, "Commit")
}

func TestRouletteCommand_CustomSettings(t *testing.T) {
	v := settings.DefaultValues()
	v.Command = "!spin"
	v.CurrencyName = "coins"
	v.Cost = 0
	v.UserCooldown = 0
	v.MsgBase = "{0} got {1}"
	v.MsgLoss = "lost {0} {1}"
	cfg, err := settings.New(v)
	require.NoError(t, err)

	h := newCommandHarness(t)
	h.existingUser(0)
	h.expectSpinStored()
	h.uow.On("Commit").Return(nil)

	cmd := h.command(cfg, "2")
	reply, err := cmd.Handle(context.Background(), invocation("!spin r"))
	require.NoError(t, err)

	assert.Equal(t, "alice got 2 ... lost 0 coins", reply.Text)
	assert.Equal(t, int64(0), reply.Balance)
	assert.Equal(t, time.Duration(0), h.cooldowns.Remaining(testScope.UserKey(testUserID)))
	h.history.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)

	// Cooldown zero allows an immediate second spin
	reply, err = cmd.Handle(context.Background(), invocation("!spin r"))
	require.NoError(t, err)
	assert.Equal(t, RejectionNone, reply.Rejection)
}

func TestRouletteCommand_SpinFailureReleasesCooldown(t *testing.T) {
	h := newCommandHarness(t)
	h.existingUser(1000)
	h.users.On("DeductBalance", mock.Anything, testUserID, int64(50)).Return(nil)
	h.spins.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	reply, err := h.command(settings.Defaults(), "1").Handle(context.Background(), invocation("!croulette b"))
	require.Error(t, err)
	assert.Nil(t, reply)

	assert.Equal(t, time.Duration(0), h.cooldowns.Remaining(testScope.UserKey(testUserID)))
	h.uow.AssertNotCalled(t, "Commit")
	h.uow.AssertCalled(t, "Rollback")
}

func TestRouletteCommand_Throttle(t *testing.T) {
	h := newCommandHarness(t)
	h.existingUser(1000)
	h.uow.On("Commit").Return(nil)

	cmd := NewRouletteCommand(RouletteCommandDeps{
		UoWFactory:      h.factory,
		Settings:        settings.Defaults(),
		Cooldowns:       h.cooldowns,
		Spinner:         roulette.FixedSpinner("17"),
		Throttle:        NewScopeThrottle(0.001, 1),
		StartingBalance: 1000,
	})

	reply, err := cmd.Handle(context.Background(), invocation("!croulette"))
	require.NoError(t, err)
	require.NotNil(t, reply)

	reply, err = cmd.Handle(context.Background(), invocation("!croulette"))
	require.NoError(t, err)
	assert.Nil(t, reply, "second command in the window is dropped")
}

func TestScopeThrottle_PerScope(t *testing.T) {
	throttle := NewScopeThrottle(0.001, 1)
	other := models.Scope{Platform: models.PlatformTelegram, ID: 42}

	assert.True(t, throttle.Allow(testScope))
	assert.False(t, throttle.Allow(testScope))
	assert.True(t, throttle.Allow(other))
}

func TestSplitCooldown(t *testing.T) {
	tests := []struct {
		remaining time.Duration
		mins      string
		secs      string
	}{
		{0, "0", "00"},
		{500 * time.Millisecond, "0", "01"},
		{9 * time.Second, "0", "09"},
		{61 * time.Second, "1", "01"},
		{299*time.Second + time.Millisecond, "5", "00"},
		{10 * time.Minute, "10", "00"},
	}

	for _, tt := range tests {
		mins, secs := splitCooldown(tt.remaining)
		assert.Equal(t, tt.mins, mins, tt.remaining.String())
		assert.Equal(t, tt.secs, secs, tt.remaining.String())
	}
}
