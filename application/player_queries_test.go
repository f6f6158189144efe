package application

import (
	"context"
	"testing"

	"croulette/models"
	"croulette/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPlayerQueries_Balance(t *testing.T) {
	h := newCommandHarness(t)
	h.existingUser(1234)
	h.uow.On("Commit").Return(nil)

	user, err := NewPlayerQueries(h.factory, 1000).Balance(context.Background(), testScope, testUserID, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1234), user.Balance)
	h.uow.AssertCalled(t, "Commit")
}

func TestPlayerQueries_Summary(t *testing.T) {
	h := newCommandHarness(t)
	h.existingUser(2750)
	h.spins.On("GetStats", mock.Anything, testUserID).Return(&models.SpinStats{TotalSpins: 3, TotalWins: 1, Jackpots: 1}, nil)
	h.spins.On("GetByUser", mock.Anything, testUserID, 5).Return([]*models.Spin{{ID: 3, Bet: "17", Pocket: "17"}}, nil)

	summary, err := NewPlayerQueries(h.factory, 1000).Summary(context.Background(), testScope, testUserID, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(2750), summary.User.Balance)
	assert.Equal(t, 3, summary.Stats.TotalSpins)
	require.Len(t, summary.RecentSpins, 1)
	h.uow.AssertNotCalled(t, "Commit")
}

func TestPlayerQueries_SummaryUnknownPlayer(t *testing.T) {
	h := newCommandHarness(t)
	h.users.On("GetByUserID", mock.Anything, testUserID).Return(nil, nil)

	_, err := NewPlayerQueries(h.factory, 1000).Summary(context.Background(), testScope, testUserID, 0)
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}
