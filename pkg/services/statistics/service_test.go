package statistics

import (
	"context"
	"errors"
	"testing"

	"github.com/fadedpez/blackjack/pkg/entities"
	"github.com/fadedpez/blackjack/pkg/repositories/round"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the round.Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) SaveRound(ctx context.Context, record *entities.RoundRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockRepository) GetRecentRounds(ctx context.Context, limit int) ([]*entities.RoundRecord, error) {
	args := m.Called(ctx, limit)
	if rounds, ok := args.Get(0).([]*entities.RoundRecord); ok {
		return rounds, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	repo := round.NewMemoryRepository()

	// plain win
	require.NoError(t, repo.SaveRound(ctx, &entities.RoundRecord{
		ID: "r1",
		Hands: []entities.HandRecord{
			{Total: 20, Bet: 10, Payout: 20, Result: entities.ResultWin},
		},
	}))
	// split: doubled hand busts, other pushes
	require.NoError(t, repo.SaveRound(ctx, &entities.RoundRecord{
		ID:    "r2",
		Split: true,
		Hands: []entities.HandRecord{
			{Total: 24, Bust: true, Doubled: true, Bet: 20, Result: entities.ResultLose},
			{Total: 18, Bet: 10, Payout: 10, Result: entities.ResultPush},
		},
	}))

	stats, err := NewService(repo).Summary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.RoundsPlayed)
	assert.Equal(t, 3, stats.HandsPlayed)
	assert.Equal(t, 1, stats.Wins)
	assert.Equal(t, 1, stats.Losses)
	assert.Equal(t, 1, stats.Pushes)
	assert.Equal(t, 1, stats.Busts)
	assert.Equal(t, 1, stats.Splits)
	assert.Equal(t, 1, stats.DoubleDowns)
	assert.Equal(t, int64(40), stats.TotalBet)
	assert.Equal(t, int64(30), stats.TotalPaid)
	assert.Equal(t, int64(-10), stats.NetProfit())
	assert.InDelta(t, 33.33, stats.WinRate(), 0.01)
}

func TestSummaryEmpty(t *testing.T) {
	stats, err := NewService(round.NewMemoryRepository()).Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.RoundsPlayed)
	assert.Equal(t, 0.0, stats.WinRate())
}

func TestSummaryRepositoryError(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("GetRecentRounds", ctx, 0).Return(nil, errors.New("boom"))

	stats, err := NewService(repo).Summary(ctx)
	assert.Error(t, err)
	assert.Nil(t, stats)
	repo.AssertExpectations(t)
}

func TestRecentNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("GetRecentRounds", ctx, 2).Return([]*entities.RoundRecord{{ID: "older"}, {ID: "newer"}}, nil)

	rounds, err := NewService(repo).Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, rounds, 2)
	assert.Equal(t, "newer", rounds[0].ID)
	assert.Equal(t, "older", rounds[1].ID)
	repo.AssertExpectations(t)
}
