package round

import (
	"context"
	"errors"
	"sync"

	"github.com/fadedpez/blackjack/pkg/entities"
)

var ErrNilRecord = errors.New("round record is nil")

// MemoryRepository implements Repository with in-memory storage. History is
// lost when the process exits.
type MemoryRepository struct {
	mu     sync.RWMutex
	rounds []*entities.RoundRecord
}

// NewMemoryRepository creates a new in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		rounds: make([]*entities.RoundRecord, 0),
	}
}

// SaveRound stores a settled round
func (r *MemoryRepository) SaveRound(ctx context.Context, record *entities.RoundRecord) error {
	if record == nil {
		return ErrNilRecord
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	recordCopy := *record
	r.rounds = append(r.rounds, &recordCopy)
	return nil
}

// GetRecentRounds retrieves recent rounds
func (r *MemoryRepository) GetRecentRounds(ctx context.Context, limit int) ([]*entities.RoundRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	start := 0
	if limit > 0 && len(r.rounds) > limit {
		start = len(r.rounds) - limit
	}

	out := make([]*entities.RoundRecord, len(r.rounds)-start)
	copy(out, r.rounds[start:])
	return out, nil
}
