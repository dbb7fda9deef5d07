package statistics

import (
	"context"

	"github.com/fadedpez/blackjack/pkg/entities"
	"github.com/fadedpez/blackjack/pkg/repositories/round"
)

// Service aggregates the session's settled rounds
type Service struct {
	repository round.Repository
}

// NewService creates a new statistics service
func NewService(repository round.Repository) *Service {
	return &Service{
		repository: repository,
	}
}

// Summary totals every settled round of the session
func (s *Service) Summary(ctx context.Context) (*entities.SessionStatistics, error) {
	rounds, err := s.repository.GetRecentRounds(ctx, 0)
	if err != nil {
		return nil, err
	}

	stats := &entities.SessionStatistics{}
	for _, r := range rounds {
		addRound(stats, r)
	}
	return stats, nil
}

// Recent returns up to limit of the latest rounds, newest first
func (s *Service) Recent(ctx context.Context, limit int) ([]*entities.RoundRecord, error) {
	rounds, err := s.repository.GetRecentRounds(ctx, limit)
	if err != nil {
		return nil, err
	}

	out := make([]*entities.RoundRecord, len(rounds))
	for i, r := range rounds {
		out[len(rounds)-1-i] = r
	}
	return out, nil
}

func addRound(stats *entities.SessionStatistics, r *entities.RoundRecord) {
	stats.RoundsPlayed++
	if r.Split {
		stats.Splits++
	}

	for _, h := range r.Hands {
		stats.HandsPlayed++
		stats.TotalBet += h.Bet
		stats.TotalPaid += h.Payout

		switch h.Result {
		case entities.ResultWin:
			stats.Wins++
		case entities.ResultPush:
			stats.Pushes++
		default:
			stats.Losses++
		}
		if h.Bust {
			stats.Busts++
		}
		if h.Doubled {
			stats.DoubleDowns++
		}
	}
}
