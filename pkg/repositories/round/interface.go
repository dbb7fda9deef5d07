package round

import (
	"context"

	"github.com/fadedpez/blackjack/pkg/entities"
)

// Repository defines storage for settled rounds of the current session
type Repository interface {
	// SaveRound stores a settled round
	SaveRound(ctx context.Context, record *entities.RoundRecord) error

	// GetRecentRounds retrieves the most recent rounds, oldest first. A
	// non-positive limit returns every round.
	GetRecentRounds(ctx context.Context, limit int) ([]*entities.RoundRecord, error)
}
